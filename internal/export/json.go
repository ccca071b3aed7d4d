package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/daybook/internal/todo"
)

type document struct {
	ExportedAt string     `json:"exported_at" yaml:"exported_at"`
	Today      string     `json:"today" yaml:"today"`
	Count      int        `json:"count" yaml:"count"`
	Stats      todo.Stats `json:"stats" yaml:"stats"`
	Tasks      []entry    `json:"tasks" yaml:"tasks"`
}

type entry struct {
	ID        int64  `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	Due       string `json:"due,omitempty" yaml:"due,omitempty"`
	Status    string `json:"status" yaml:"status"`
}

func newDocument(tasks []todo.Task, today time.Time) document {
	doc := document{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Today:      today.Format("2006-01-02"),
		Count:      len(tasks),
		Tasks:      []entry{},
	}
	for _, t := range tasks {
		if t.Completed {
			doc.Stats.Completed++
		}
		doc.Tasks = append(doc.Tasks, entry{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Due:       t.Due(),
			Status:    string(t.StatusOn(today)),
		})
	}
	doc.Stats.Total = len(tasks)
	doc.Stats.Pending = doc.Stats.Total - doc.Stats.Completed
	return doc
}

func ToJSON(tasks []todo.Task, today time.Time, path string) error {
	data, err := json.MarshalIndent(newDocument(tasks, today), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

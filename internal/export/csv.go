package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/daybook/internal/duedate"
	"github.com/sadopc/daybook/internal/todo"
)

func ToCSV(tasks []todo.Task, today time.Time, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	// Header
	if err := w.Write([]string{"ID", "Text", "Completed", "Due", "Due (display)", "Status"}); err != nil {
		return err
	}

	for _, t := range tasks {
		row := []string{
			fmt.Sprintf("%d", t.ID),
			t.Text,
			fmt.Sprintf("%t", t.Completed),
			t.Due(),
			duedate.Display(t.Due()),
			string(t.StatusOn(today)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

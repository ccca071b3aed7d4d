package todo

import (
	"time"

	"github.com/sadopc/daybook/internal/duedate"
)

// Task is a single to-do record. The JSON shape is the persisted format.
type Task struct {
	ID        int64   `json:"id" yaml:"id"`
	Text      string  `json:"text" yaml:"text"`
	Completed bool    `json:"completed" yaml:"completed"`
	DueDate   *string `json:"dueDate" yaml:"due_date"`
}

// Due returns the due date or "" when the task has none.
func (t Task) Due() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}

// IsOverdue reports whether the due date is strictly before today.
func (t Task) IsOverdue(today time.Time) bool {
	return duedate.IsOverdue(t.Due(), today)
}

// IsDueToday reports whether the due date is today.
func (t Task) IsDueToday(today time.Time) bool {
	return duedate.IsDueToday(t.Due(), today)
}

// Status is the display state of a task on a given day.
type Status string

const (
	StatusDone     Status = "done"
	StatusOverdue  Status = "overdue"
	StatusDueToday Status = "due_today"
	StatusPending  Status = "pending"
)

// StatusOn folds completion and the due-date queries into one label.
// Completed tasks are never overdue or due today.
func (t Task) StatusOn(today time.Time) Status {
	switch {
	case t.Completed:
		return StatusDone
	case t.IsOverdue(today):
		return StatusOverdue
	case t.IsDueToday(today):
		return StatusDueToday
	}
	return StatusPending
}

type Stats struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
	Pending   int `json:"pending" yaml:"pending"`
}

func statsOf(tasks []Task) Stats {
	var s Stats
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Total = len(tasks)
	s.Pending = s.Total - s.Completed
	return s
}

func dueString(due string) *string {
	if due == "" {
		return nil
	}
	return &due
}

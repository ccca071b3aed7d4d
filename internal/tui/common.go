package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/daybook/internal/duedate"
	"github.com/sadopc/daybook/internal/todo"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewTodos
	viewFortune
	viewStats
)

var viewNames = []string{"Home", "TODO", "Fortune", "Stats"}

// profileNameKey is where the Home page keeps the display name.
const profileNameKey = "profile.name"

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path  string
	count int
}

// --- Helpers ---

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

// taskMarker is the single-cell state marker shown in front of a task row.
func taskMarker(t todo.Task, today time.Time) string {
	switch t.StatusOn(today) {
	case todo.StatusDone:
		return "✓"
	case todo.StatusOverdue:
		return "!"
	case todo.StatusDueToday:
		return "•"
	}
	return " "
}

func formatDue(t todo.Task) string {
	if t.DueDate == nil {
		return ""
	}
	return duedate.Display(*t.DueDate)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

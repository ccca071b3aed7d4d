package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/daybook/internal/clock"
	"github.com/sadopc/daybook/internal/duedate"
	"github.com/sadopc/daybook/internal/todo"
)

type editMode int

const (
	editNone editMode = iota
	editText
	editDue
)

type todosModel struct {
	store  *todo.Store
	clock  clock.Clock
	width  int
	height int

	tasks  []todo.Task
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "add", "clear"

	// Form field pointers (survive value copies)
	formText    *string
	formDue     *string
	formConfirm *bool

	editing editMode
	editID  int64
	input   textinput.Model
	editErr string
}

func newTodosModel(s *todo.Store, clk clock.Clock) todosModel {
	text, due, confirm := "", "", false
	ti := textinput.New()
	ti.CharLimit = 200
	return todosModel{
		store:       s,
		clock:       clk,
		tasks:       s.Tasks(),
		formText:    &text,
		formDue:     &due,
		formConfirm: &confirm,
		input:       ti,
	}
}

func (m *todosModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = max(20, w-30)
}

// capturing reports whether the view owns the keyboard.
func (m todosModel) capturing() bool {
	return m.formActive || m.editing != editNone
}

type todosDataMsg struct {
	tasks []todo.Task
}

func (m todosModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return todosDataMsg{tasks: m.store.Tasks()}
	}
}

func (m todosModel) update(msg tea.Msg) (todosModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	if m.editing != editNone {
		return m.updateEdit(msg)
	}

	switch msg := msg.(type) {
	case todosDataMsg:
		m.tasks = msg.tasks
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.updateList(msg)
	}
	return m, nil
}

func (m todosModel) updateList(msg tea.KeyMsg) (todosModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.New):
		return m.showAddForm()
	case key.Matches(msg, keys.Toggle):
		if t, ok := m.selected(); ok {
			return m.apply(m.store.Toggle(t.ID))
		}
	case key.Matches(msg, keys.Edit):
		if t, ok := m.selected(); ok {
			return m.startEdit(editText, t.ID, t.Text)
		}
	case key.Matches(msg, keys.DueDate):
		if t, ok := m.selected(); ok {
			return m.startEdit(editDue, t.ID, t.Due())
		}
	case key.Matches(msg, keys.Delete):
		if t, ok := m.selected(); ok {
			return m.apply(m.store.Remove(t.ID))
		}
	case key.Matches(msg, keys.Clear):
		if len(m.tasks) > 0 {
			return m.showClearConfirm()
		}
	}
	return m, nil
}

func (m todosModel) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return todo.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *todosModel) clampCursor() {
	if m.cursor >= len(m.tasks) {
		m.cursor = max(0, len(m.tasks)-1)
	}
}

// apply installs a snapshot returned by a store mutation.
func (m todosModel) apply(tasks []todo.Task, err error) (todosModel, tea.Cmd) {
	m.tasks = tasks
	m.clampCursor()
	if err != nil {
		return m, statusCmd(fmt.Sprintf("Save failed: %v", err), true)
	}
	return m, nil
}

// ============================================================
// Forms
// ============================================================

func (m todosModel) showAddForm() (todosModel, tea.Cmd) {
	*m.formText = ""
	*m.formDue = ""
	m.formType = "add"

	clk := m.clock
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Placeholder("What needs doing?").Value(m.formText),
			huh.NewInput().Title("Due date (optional)").Placeholder("YYYY-MM-DD").
				Value(m.formDue).
				Validate(func(s string) error {
					return duedate.Check(s, clk.Now())
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m todosModel) showClearConfirm() (todosModel, tea.Cmd) {
	*m.formConfirm = false
	m.formType = "clear"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete all %d tasks?", len(m.tasks))).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.formConfirm),
		),
	).WithShowHelp(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m todosModel) updateForm(msg tea.Msg) (todosModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.formActive = false
		m.form = nil
		switch m.formType {
		case "add":
			return m.submitAdd(*m.formText, *m.formDue)
		case "clear":
			if *m.formConfirm {
				return m.submitClear()
			}
		}
		return m, nil
	case huh.StateAborted:
		m.formActive = false
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m todosModel) submitAdd(text, due string) (todosModel, tea.Cmd) {
	if err := duedate.Check(due, m.clock.Now()); err != nil {
		return m, statusCmd(err.Error(), true)
	}
	t, ok, err := m.store.Add(text, due)
	m.tasks = m.store.Tasks()
	if err != nil {
		return m, statusCmd(fmt.Sprintf("Save failed: %v", err), true)
	}
	if !ok {
		return m, statusCmd("Nothing to add", false)
	}
	m.cursor = len(m.tasks) - 1
	return m, statusCmd("Added "+t.Text, false)
}

func (m todosModel) submitClear() (todosModel, tea.Cmd) {
	tasks, err := m.store.ClearAll()
	m.tasks = tasks
	m.cursor = 0
	if err != nil {
		return m, statusCmd(fmt.Sprintf("Clear failed: %v", err), true)
	}
	return m, statusCmd("All tasks deleted", false)
}

// ============================================================
// Inline editing
// ============================================================

func (m todosModel) startEdit(mode editMode, id int64, value string) (todosModel, tea.Cmd) {
	m.editing = mode
	m.editID = id
	m.editErr = ""
	m.input.Reset()
	m.input.SetValue(value)
	m.input.Placeholder = ""
	if mode == editDue {
		m.input.Placeholder = "YYYY-MM-DD"
	}
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m todosModel) stopEdit() todosModel {
	m.editing = editNone
	m.editErr = ""
	m.input.Blur()
	return m
}

func (m todosModel) updateEdit(msg tea.Msg) (todosModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			return m.stopEdit(), nil
		case tea.KeyEnter:
			return m.commitEdit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m todosModel) commitEdit() (todosModel, tea.Cmd) {
	value := m.input.Value()
	switch m.editing {
	case editText:
		m = m.stopEdit()
		return m.apply(m.store.EditText(m.editID, value))
	case editDue:
		// invalid dates keep the editor open
		if err := duedate.Check(value, m.clock.Now()); err != nil {
			m.editErr = err.Error()
			return m, nil
		}
		m = m.stopEdit()
		return m.apply(m.store.EditDueDate(m.editID, value))
	}
	return m.stopEdit(), nil
}

// ============================================================
// Rendering
// ============================================================

func (m todosModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		if m.formType == "clear" {
			title = titleStyle.Render("Clear All")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("TODO")
	if len(m.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	today := m.clock.Now()
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, t := range m.tasks {
		rows = append(rows, m.renderRow(i, t, today, w))
		if i == m.cursor && m.editing != editNone {
			rows = append(rows, m.renderEditor())
		}
	}

	stats := m.store.Stats()
	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render(fmt.Sprintf("  Total: %d | Done: %d | Pending: %d",
		stats.Total, stats.Completed, stats.Pending)))
	rows = append(rows, mutedStyle.Render("  n: new  space: done  e: edit  u: due date  d: delete  C: clear all"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m todosModel) renderRow(i int, t todo.Task, today time.Time, w int) string {
	cursor := "  "
	style := normalItemStyle
	if i == m.cursor {
		cursor = "> "
		style = selectedItemStyle
	}
	if t.Completed {
		style = completedItemStyle
	}

	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	marker := taskMarker(t, today)
	switch t.StatusOn(today) {
	case todo.StatusOverdue:
		marker = errorStyle.Render(marker)
	case todo.StatusDueToday:
		marker = warningStyle.Render(marker)
	case todo.StatusDone:
		marker = successStyle.Render(marker)
	}

	due := ""
	if d := formatDue(t); d != "" {
		label := " due " + d
		switch t.StatusOn(today) {
		case todo.StatusOverdue:
			due = errorStyle.Render(label)
		case todo.StatusDueToday:
			due = warningStyle.Render(label)
		default:
			due = mutedStyle.Render(label)
		}
	}

	text := truncate(t.Text, max(10, w-30))
	return fmt.Sprintf("%s%s %s %s%s", cursor, marker, check, style.Render(text), due)
}

func (m todosModel) renderEditor() string {
	label := "    Text: "
	if m.editing == editDue {
		label = "    Due:  "
	}
	line := highlightStyle.Render(label) + m.input.View()
	if m.editErr != "" {
		line += "\n" + errorStyle.Render("    "+m.editErr)
	}
	return line + "\n" + mutedStyle.Render("    enter: save  esc: cancel")
}

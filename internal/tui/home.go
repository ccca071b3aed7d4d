package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/daybook/internal/clock"
	"github.com/sadopc/daybook/internal/duedate"
	"github.com/sadopc/daybook/internal/todo"
)

type homeModel struct {
	kv     todo.KV
	todos  *todo.Store
	clock  clock.Clock
	width  int
	height int

	name     string
	stats    todo.Stats
	overdue  int
	dueToday int

	formActive bool
	form       *huh.Form
	formName   *string
}

func newHomeModel(kv todo.KV, s *todo.Store, clk clock.Clock) homeModel {
	n := ""
	return homeModel{
		kv:       kv,
		todos:    s,
		clock:    clk,
		formName: &n,
	}
}

func (h *homeModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

type homeDataMsg struct {
	name     string
	stats    todo.Stats
	overdue  int
	dueToday int
}

func (h homeModel) refresh() tea.Cmd {
	return func() tea.Msg {
		name, _, _ := h.kv.Get(profileNameKey)
		today := h.clock.Now()
		return homeDataMsg{
			name:     name,
			stats:    h.todos.Stats(),
			overdue:  len(h.todos.Overdue(today)),
			dueToday: len(h.todos.DueToday(today)),
		}
	}
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	switch msg := msg.(type) {
	case homeDataMsg:
		h.name = msg.name
		h.stats = msg.stats
		h.overdue = msg.overdue
		h.dueToday = msg.dueToday
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return h.showForm()
		}
	}
	return h, nil
}

func (h homeModel) showForm() (homeModel, tea.Cmd) {
	*h.formName = h.name
	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Your name").Placeholder("Name").Value(h.formName),
		),
	).WithShowHelp(true)

	h.formActive = true
	return h, h.form.Init()
}

func (h homeModel) updateForm(msg tea.Msg) (homeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	switch h.form.State {
	case huh.StateCompleted:
		h.formActive = false
		h.form = nil
		return h.saveName(*h.formName)
	case huh.StateAborted:
		h.formActive = false
		h.form = nil
		return h, nil
	}
	return h, cmd
}

func (h homeModel) saveName(name string) (homeModel, tea.Cmd) {
	name = strings.TrimSpace(name)
	var err error
	if name == "" {
		err = h.kv.Remove(profileNameKey)
	} else {
		err = h.kv.Set(profileNameKey, name)
	}
	if err != nil {
		return h, statusCmd(fmt.Sprintf("Save failed: %v", err), true)
	}
	h.name = name
	return h, nil
}

func greeting(name string) string {
	if name == "" {
		return "Welcome!"
	}
	return fmt.Sprintf("Welcome, %s!", name)
}

func (h homeModel) view() string {
	w := h.width - 4

	if h.formActive && h.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Profile"), "", h.form.View()),
		)
	}

	today := h.clock.Now()
	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render(greeting(h.name))
	date := mutedStyle.Render(today.Format("Monday, ") + duedate.Display(duedate.String(today)))

	digest := []string{
		fmt.Sprintf("  %s pending", highlightStyle.Render(fmt.Sprint(h.stats.Pending))),
		fmt.Sprintf("  %s overdue", errorStyle.Render(fmt.Sprint(h.overdue))),
		fmt.Sprintf("  %s due today", warningStyle.Render(fmt.Sprint(h.dueToday))),
		fmt.Sprintf("  %s done", successStyle.Render(fmt.Sprint(h.stats.Completed))),
	}

	hint := subtitleStyle.Render("Press enter to set your name. 2: TODO  3: Fortune")

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		date,
		"",
		accentStyle.Render("Today"),
		strings.Join(digest, "\n"),
		"",
		hint,
	))
}

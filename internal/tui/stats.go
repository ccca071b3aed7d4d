package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/daybook/internal/clock"
	"github.com/sadopc/daybook/internal/todo"
)

type statsModel struct {
	todos  *todo.Store
	clock  clock.Clock
	width  int
	height int

	counts statsCounts
	chart  barchart.Model
}

// statsCounts buckets tasks by their status today. Every task lands in
// exactly one bucket.
type statsCounts struct {
	done     int
	pending  int
	overdue  int
	dueToday int
}

func (c statsCounts) total() int {
	return c.done + c.pending + c.overdue + c.dueToday
}

func newStatsModel(s *todo.Store, clk clock.Clock) statsModel {
	return statsModel{
		todos: s,
		clock: clk,
		chart: barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type statsDataMsg struct {
	counts statsCounts
}

func countTasks(tasks []todo.Task, today time.Time) statsCounts {
	var c statsCounts
	for _, t := range tasks {
		switch t.StatusOn(today) {
		case todo.StatusDone:
			c.done++
		case todo.StatusOverdue:
			c.overdue++
		case todo.StatusDueToday:
			c.dueToday++
		default:
			c.pending++
		}
	}
	return c
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return statsDataMsg{counts: countTasks(m.todos.Tasks(), m.clock.Now())}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.counts = msg.counts
		m.buildChart()
		return m, nil
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	bar := func(label string, v int, c lipgloss.Color) barchart.BarData {
		return barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  label,
				Value: float64(v),
				Style: lipgloss.NewStyle().Foreground(c),
			}},
		}
	}

	m.chart.PushAll([]barchart.BarData{
		bar("Done", m.counts.done, colorSuccess),
		bar("Pending", m.counts.pending, colorHighlight),
		bar("Overdue", m.counts.overdue, colorError),
		bar("Today", m.counts.dueToday, colorWarning),
	})
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Stats")

	if m.counts.total() == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("  No tasks yet"),
		))
	}

	summary := fmt.Sprintf("  %s done  %s pending  %s overdue  %s due today",
		successStyle.Render(fmt.Sprint(m.counts.done)),
		highlightStyle.Render(fmt.Sprint(m.counts.pending)),
		errorStyle.Render(fmt.Sprint(m.counts.overdue)),
		warningStyle.Render(fmt.Sprint(m.counts.dueToday)),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", m.chart.View(), "", summary),
	)
}

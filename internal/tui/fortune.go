package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/daybook/internal/clock"
	"github.com/sadopc/daybook/internal/duedate"
	"github.com/sadopc/daybook/internal/fortune"
)

type fortuneModel struct {
	clock  clock.Clock
	width  int
	height int

	revealed bool
	day      string // date the cached result belongs to
	result   fortune.Result
}

func newFortuneModel(clk clock.Clock) fortuneModel {
	f := fortuneModel{clock: clk}
	return f.sync()
}

func (f *fortuneModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

// sync recomputes the cached fortune when the calendar day has changed.
// A new day hides the card again.
func (f fortuneModel) sync() fortuneModel {
	now := f.clock.Now()
	day := duedate.String(now)
	if day == f.day {
		return f
	}
	f.day = day
	f.result = fortune.Generate(now)
	f.revealed = false
	return f
}

func (f fortuneModel) update(msg tea.Msg) (fortuneModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return f.sync(), nil

	case tea.KeyMsg:
		f = f.sync()
		switch {
		case key.Matches(msg, keys.Reveal):
			f.revealed = true
		case key.Matches(msg, keys.Reset):
			f.revealed = false
		}
	}
	return f, nil
}

func (f fortuneModel) view() string {
	w := f.width - 4
	title := titleStyle.Render("Today's Fortune")
	date := mutedStyle.Render(duedate.Display(f.day))

	var body string
	if !f.revealed {
		card := mysteryCardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			"🔮",
			"",
			"What does today hold?",
		))
		body = lipgloss.JoinVertical(lipgloss.Left,
			card,
			"",
			mutedStyle.Render("  enter: reveal"),
		)
	} else {
		body = f.renderResult()
	}

	disclaimer := mutedStyle.Render("For entertainment only.")
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, date, "", body, "", disclaimer),
	)
}

func (f fortuneModel) renderResult() string {
	r := f.result
	color := lipgloss.Color(r.Color)
	badge := badgeStyle.Background(color).Render(r.Fortune)
	name := lipgloss.NewStyle().Bold(true).Foreground(color).Render(r.Name)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, badge, "  ", name),
		"",
		r.Description,
		"",
		fmt.Sprintf("Lucky item 1: %s", r.LuckyItems[0]),
		fmt.Sprintf("Lucky item 2: %s", r.LuckyItems[1]),
		"",
		mutedStyle.Render("  r: hide again"),
	)
}

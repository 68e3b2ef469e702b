package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odefit/internal/compare"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	waitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// UnitDoneMsg reports one completed fit unit. Index positions the unit in
// the batch; labels alone are not unique when the same dataset repeats.
type UnitDoneMsg struct {
	Index int
	Unit  compare.Unit
}

// AllDoneMsg reports batch completion.
type AllDoneMsg struct{}

// Model renders live progress of a batch of fits: one line per unit as it
// completes, with an ascii plot of the most recent successful curve.
type Model struct {
	title  string
	labels []string
	done   map[int]compare.Unit
	last   *compare.Unit
	fin    bool
}

func NewModel(title string, labels []string) Model {
	return Model{
		title:  title,
		labels: labels,
		done:   make(map[int]compare.Unit),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case UnitDoneMsg:
		m.done[msg.Index] = msg.Unit
		if msg.Unit.OK() {
			u := msg.Unit
			m.last = &u
		}
	case AllDoneMsg:
		m.fin = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	for i, label := range m.labels {
		u, ok := m.done[i]
		switch {
		case !ok:
			b.WriteString(waitStyle.Render(fmt.Sprintf("  … %s", label)))
		case u.OK():
			b.WriteString(doneStyle.Render(fmt.Sprintf("  ✓ %s  BIC %.4f  SSR %.4g", label, u.Result.BIC, u.Result.SSR)))
		default:
			b.WriteString(failStyle.Render(fmt.Sprintf("  ✗ %s  %v", label, u.Err)))
		}
		b.WriteString("\n")
	}

	if m.last != nil && len(m.last.Result.Curve) > 0 {
		ys := make([]float64, len(m.last.Result.Curve))
		for i, pt := range m.last.Result.Curve {
			ys[i] = pt.Y
		}
		graph := asciigraph.Plot(ys,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(m.last.Label),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	if !m.fin {
		b.WriteString(helpStyle.Render("q: quit"))
	}
	return b.String()
}

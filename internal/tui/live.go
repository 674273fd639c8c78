// Package tui runs a solid-stress-reserve sweep with a live terminal view:
// one solve per frame, a running table and a sparkline of the nest OD.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coilworks/coilnest/internal/nest"
	"github.com/coilworks/coilnest/internal/sweep"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2)
)

type solveMsg struct {
	point sweep.Point
}

// Model steps through the sweep one solve per bubbletea command.
type Model struct {
	cfg      nest.Config
	reserves []float64
	points   []sweep.Point
	next     int
	done     bool
}

func NewModel(cfg nest.Config, reserves []float64) Model {
	return Model{
		cfg:      cfg,
		reserves: reserves,
		points:   make([]sweep.Point, 0, len(reserves)),
	}
}

// Points returns the results gathered so far.
func (m Model) Points() []sweep.Point { return m.points }

func (m Model) Init() tea.Cmd {
	return m.solveNext()
}

func (m Model) solveNext() tea.Cmd {
	if m.next >= len(m.reserves) {
		return nil
	}
	cfg, reserve := m.cfg, m.reserves[m.next]
	return func() tea.Msg {
		return solveMsg{point: sweep.Run(cfg, []float64{reserve})[0]}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case solveMsg:
		m.points = append(m.points, msg.point)
		m.next++
		if cmd := m.solveNext(); cmd != nil {
			return m, cmd
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("solid stress reserve sweep"))
	b.WriteString("\n\n")

	for _, p := range m.points {
		if p.Solved() {
			b.WriteString(okStyle.Render(fmt.Sprintf(
				"%7.1f MPa   OD %7.2f mm   L0 delta %7.2f mm",
				p.SolidStressReserve, p.OD(), p.FreeLengthDelta())))
		} else {
			b.WriteString(failStyle.Render(fmt.Sprintf(
				"%7.1f MPa   no solution", p.SolidStressReserve)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sparkline(m.points, 40))
	b.WriteString("\n\n")
	if m.done {
		b.WriteString(dimStyle.Render("done"))
	} else {
		b.WriteString(dimStyle.Render(fmt.Sprintf(
			"solving %d/%d ... press q to stop", m.next+1, len(m.reserves))))
	}
	return frameStyle.Render(b.String())
}

// sparkline renders the solved nest ODs as a one-line bar chart.
func sparkline(points []sweep.Point, width int) string {
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	data := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Solved() {
			data = append(data, p.OD())
		}
	}
	if len(data) == 0 {
		return dimStyle.Render(strings.Repeat("─", width))
	}

	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range data {
		idx := int((v - min) / span * float64(len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return okStyle.Render(b.String())
}

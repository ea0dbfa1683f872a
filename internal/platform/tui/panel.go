package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tama/internal/input"
)

// Panel layout constants
const (
	panelWidth    = 36 // Inner width of the side panel
	panelLogLines = 8  // Log entries shown
	stackRows     = 4  // Scene stack rows shown
)

// newStackTable creates the scene stack table, top of the stack first.
func newStackTable(r *lipgloss.Renderer) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Scene", Width: panelWidth - 8},
		}),
		table.WithFocused(false),
		table.WithHeight(stackRows+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = r.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	t.SetStyles(s)
	return t
}

func stackRowsOf(names []string) []table.Row {
	rows := make([]table.Row, 0, len(names))
	for i, name := range slices.Backward(names) {
		rows = append(rows, table.Row{fmt.Sprintf("%d", i), name})
	}
	return rows
}

// heldButtons lists the buttons down in the last tick.
func heldButtons(in input.Snapshot) string {
	var held []string
	for _, b := range input.Buttons {
		if in.IsDown(b) {
			held = append(held, b.String())
		}
	}
	if len(held) == 0 {
		return "-"
	}
	return strings.Join(held, " ")
}

// panelView renders the side panel: stack, input, sound, logs and help.
func (m Model) panelView() string {
	r := m.lg
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle := r.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle := r.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(panelWidth).
		Padding(0, 1)

	eng := m.session.Engine

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d  %s %d  %s 1/%d\n",
		labelStyle.Render("tick"), eng.TickCount(),
		labelStyle.Render("seed"), m.session.Env.Seed,
		labelStyle.Render("scale"), m.downscale)

	m.stack.SetRows(stackRowsOf(eng.SceneNames()))
	b.WriteString(m.stack.View())
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("input"), heldButtons(eng.Snapshot()))
	if m.tones != nil {
		if last, n := m.tones.Last(); n > 0 {
			fmt.Fprintf(&b, "%s %s (%d)\n", labelStyle.Render("tone "), last, n)
		}
	}
	if m.status != "" {
		b.WriteString(labelStyle.Render(truncateLine(m.status, panelWidth-2)))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render(strings.Repeat("-", panelWidth-2)))
	b.WriteString("\n")
	for _, e := range m.session.Env.RecentLogs(panelLogLines) {
		b.WriteString(truncateLine(e.String(), panelWidth-2))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.bindings)))
	return boxStyle.Render(b.String())
}

func truncateLine(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "~"
}

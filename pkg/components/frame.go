package components

import (
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/dayboard/pkg/theme"
)

// Panel draws body inside a rounded border of exactly width x height cells
// with title in the top row.
func Panel(th theme.Theme, title, body string, width, height int, focused bool) string {
	if width < 4 || height < 3 {
		return Block("", width, height)
	}
	innerW, innerH := width-2, height-2

	content := body
	if title != "" {
		heading := th.Heading(focused).Render(FitLine(title, innerW))
		content = heading + "\n" + body
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderColor(focused)).
		Width(innerW).
		Height(innerH).
		MaxHeight(height).
		Render(Block(content, innerW, innerH))
}

// Button renders label as a clickable button, e.g. "[hide]".
func Button(th theme.Theme, label string, focused bool) string {
	st := th.Button()
	if !focused {
		st = st.Background(lipgloss.Color(th.Border)).Foreground(lipgloss.Color(th.Foreground))
	}
	return st.Render("[" + label + "]")
}

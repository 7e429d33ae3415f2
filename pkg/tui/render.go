package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/dayboard/pkg/app"
	"gitlab.com/tinyland/lab/dayboard/pkg/collectors"
	"gitlab.com/tinyland/lab/dayboard/pkg/components"
	"gitlab.com/tinyland/lab/dayboard/pkg/layout"
	"gitlab.com/tinyland/lab/dayboard/pkg/theme"
)

const statusHints = "Tab:focus  Enter:expand  ?:help  /:search  q:quit"

// tuiCell is one placed widget.
type tuiCell struct {
	Widget  app.Widget
	Index   int
	X, Y    int
	W, H    int
	Focused bool
}

// tuiComputeGrid places the visible widgets in the area above the status
// bar. Rows from the layout are used when given; widgets the layout does not
// mention are appended in an extra row. Without a layout the widgets are
// spread over a near-square grid.
func tuiComputeGrid(widgets []app.Widget, rows []layout.Row, width, height int, visible []int, focused int) []tuiCell {
	if len(visible) == 0 || width <= 0 || height <= 1 {
		return nil
	}
	area := layout.Rect{Width: width, Height: height - 1}

	byID := make(map[string]int, len(visible))
	for _, idx := range visible {
		byID[widgets[idx].ID()] = idx
	}

	var placed []layout.Row
	used := map[string]bool{}
	for _, r := range rows {
		row := layout.Row{Weight: r.Weight}
		for _, c := range r.Cells {
			if _, ok := byID[c.ID]; ok && !used[c.ID] {
				used[c.ID] = true
				row.Cells = append(row.Cells, c)
			}
		}
		if len(row.Cells) > 0 {
			placed = append(placed, row)
		}
	}

	var rest []layout.Cell
	for _, idx := range visible {
		if id := widgets[idx].ID(); !used[id] {
			rest = append(rest, layout.Cell{ID: id, Weight: 1})
		}
	}
	if len(placed) == 0 {
		placed = tuiAutoRows(rest)
	} else if len(rest) > 0 {
		placed = append(placed, layout.Row{Weight: 1, Cells: rest})
	}

	rects := layout.Grid(area, placed)
	cells := make([]tuiCell, 0, len(visible))
	for _, idx := range visible {
		r, ok := rects[widgets[idx].ID()]
		if !ok || r.Empty() {
			continue
		}
		cells = append(cells, tuiCell{
			Widget:  widgets[idx],
			Index:   idx,
			X:       r.X,
			Y:       r.Y,
			W:       r.Width,
			H:       r.Height,
			Focused: idx == focused,
		})
	}
	return cells
}

// tuiAutoRows chunks cells into ceil(sqrt(n)) columns.
func tuiAutoRows(cells []layout.Cell) []layout.Row {
	if len(cells) == 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(len(cells)))))
	var rows []layout.Row
	for start := 0; start < len(cells); start += cols {
		end := min(start+cols, len(cells))
		rows = append(rows, layout.Row{Weight: 1, Cells: cells[start:end]})
	}
	return rows
}

// tuiRenderGrid renders all cells into a width x height string. Each widget
// is wrapped in a bordered panel with its title; the focused one gets the
// highlighted border.
func tuiRenderGrid(th theme.Theme, cells []tuiCell, width, height int) string {
	if len(cells) == 0 || width <= 0 || height <= 0 {
		return components.Block("", width, height)
	}

	sorted := append([]tuiCell(nil), cells...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows []string
	for start := 0; start < len(sorted); {
		end := start
		for end < len(sorted) && sorted[end].Y == sorted[start].Y {
			end++
		}
		panels := make([]string, 0, end-start)
		for _, c := range sorted[start:end] {
			panels = append(panels, tuiRenderPanel(th, c.Widget, c.W, c.H, c.Focused))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, panels...))
		start = end
	}
	return components.Block(lipgloss.JoinVertical(lipgloss.Left, rows...), width, height)
}

// tuiRenderPanel frames one widget. The title takes the first inner row.
func tuiRenderPanel(th theme.Theme, w app.Widget, width, height int, focused bool) string {
	innerW := max(width-2, 1)
	innerH := max(height-3, 1)
	return components.Panel(th, w.Title(), w.View(innerW, innerH), width, height, focused)
}

// tuiRenderExpanded renders a single widget at full size, always with the
// focus border.
func tuiRenderExpanded(th theme.Theme, widget app.Widget, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return tuiRenderPanel(th, widget, width, height, true)
}

// tuiStatusSummary condenses the registry into "name:state latency" pairs.
func tuiStatusSummary(th theme.Theme, reg *collectors.Registry) string {
	if reg == nil {
		return ""
	}
	var parts []string
	for _, st := range reg.AllStatus() {
		s := st.Name + ":" + st.State()
		if st.RunCount > 0 {
			s += fmt.Sprintf(" %dms", st.LastLatency.Milliseconds())
		}
		parts = append(parts, th.Status(st.State()).Render(s))
	}
	return strings.Join(parts, "  ")
}

// tuiRenderStatusBar renders the one-line bar at the bottom of the terminal
// with key hints, padded or truncated to exactly width cells.
func tuiRenderStatusBar(th theme.Theme, msg string, width int) string {
	if width <= 0 {
		return ""
	}
	hints := th.Muted().Render(statusHints)
	if msg != "" {
		hints = msg + th.Muted().Render("  |  ") + hints
	}
	return components.FitLine(hints, width)
}

// tuiRenderHelp renders the key reference as a bordered panel centered in
// a width x height area.
func tuiRenderHelp(th theme.Theme, keys keyMap, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	h := help.New()
	h.ShowAll = true
	h.Width = max(width-6, 10)

	body := th.Heading(true).Render("Keys") + "\n\n" + h.View(keys)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderColor(true)).
		Padding(0, 2).
		Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

// Package components holds the rendering helpers the widgets share: ANSI
// aware line fitting and themed panel frames.
package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Width returns the visible width of s in cells. Escape sequences do not
// count and wide runes count twice.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// FitLine truncates s to width cells, marking the cut with "…", and pads it
// with spaces to exactly width.
func FitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	if pad := width - Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// Center pads s on both sides to width. The odd cell goes on the right.
func Center(s string, width int) string {
	vis := Width(s)
	if vis >= width {
		return FitLine(s, width)
	}
	left := (width - vis) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-vis-left)
}

// Block fits s into a width x height rectangle: every line is fitted with
// FitLine, extra lines are dropped and missing ones are blank.
func Block(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, height)
	for i := range out {
		var l string
		if i < len(lines) {
			l = lines[i]
		}
		out[i] = FitLine(l, width)
	}
	return strings.Join(out, "\n")
}

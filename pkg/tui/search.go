package tui

import (
	"strings"

	"gitlab.com/tinyland/lab/dayboard/pkg/app"
	"gitlab.com/tinyland/lab/dayboard/pkg/components"
	"gitlab.com/tinyland/lab/dayboard/pkg/theme"
)

// tuiRenderSearchBar renders the filter input that replaces the status bar
// while search mode is active.
func tuiRenderSearchBar(th theme.Theme, query string, width int) string {
	if width <= 0 {
		return ""
	}
	return th.Text().Render(components.FitLine("/"+query+"_", width))
}

// tuiFilterWidgets returns the indices of widgets whose ID or Title
// contains query, ignoring case. An empty query returns all indices.
func tuiFilterWidgets(widgets []app.Widget, query string) []int {
	if query == "" {
		indices := make([]int, len(widgets))
		for i := range widgets {
			indices[i] = i
		}
		return indices
	}

	lower := strings.ToLower(query)
	var result []int
	for i, w := range widgets {
		if strings.Contains(strings.ToLower(w.ID()), lower) ||
			strings.Contains(strings.ToLower(w.Title()), lower) {
			result = append(result, i)
		}
	}
	return result
}

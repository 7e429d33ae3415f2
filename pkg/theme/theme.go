// Package theme holds the dashboard colour palettes.
package theme

import (
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultName is the palette used when none is configured.
const DefaultName = "default"

// Theme is a named palette of hex colours.
type Theme struct {
	Name string

	Foreground string
	Dim        string
	Accent     string

	Border      string
	BorderFocus string
	Title       string

	StatusOK    string
	StatusWarn  string
	StatusError string

	ButtonFg string
	ButtonBg string
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	for _, t := range builtins() {
		Register(t)
	}
}

// Register adds t under its lowercase name, replacing any existing entry.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}

// Lookup returns the named theme.
func Lookup(name string) (Theme, bool) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := registry[strings.ToLower(name)]
	return t, ok
}

// Get returns the named theme or the default one.
func Get(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	t, _ := Lookup(DefaultName)
	return t
}

// Names returns the registered names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Next returns the theme after name in Names order, wrapping around.
func Next(name string) Theme {
	names := Names()
	for i, n := range names {
		if n == strings.ToLower(name) {
			return Get(names[(i+1)%len(names)])
		}
	}
	return Get(DefaultName)
}

// Text returns a foreground style in the theme's text colour.
func (t Theme) Text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Foreground))
}

// Muted returns a style for secondary text.
func (t Theme) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))
}

// Heading returns a bold style for panel titles.
func (t Theme) Heading(focused bool) lipgloss.Style {
	c := t.Title
	if focused {
		c = t.Accent
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c))
}

// BorderColor returns the panel border colour.
func (t Theme) BorderColor(focused bool) lipgloss.Color {
	if focused {
		return lipgloss.Color(t.BorderFocus)
	}
	return lipgloss.Color(t.Border)
}

// Status returns a style for a collector state: "ok", "error" or anything
// else for unknown.
func (t Theme) Status(state string) lipgloss.Style {
	c := t.Dim
	switch state {
	case "ok":
		c = t.StatusOK
	case "warn":
		c = t.StatusWarn
	case "error":
		c = t.StatusError
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// Button returns the style for clickable buttons.
func (t Theme) Button() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.ButtonFg)).
		Background(lipgloss.Color(t.ButtonBg)).
		Padding(0, 1)
}

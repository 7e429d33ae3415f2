// Package widgets provides the concrete panels of the dayboard TUI. Each
// widget implements app.Widget and receives data via the Elm-architecture
// Update loop. Widgets render their content only; the root model draws the
// frame and title.
package widgets

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/dayboard/pkg/components"
	"gitlab.com/tinyland/lab/dayboard/pkg/theme"
)

// Shared is the state every widget needs from the host: the palette, the
// click-zone manager and a logger. Zones may be nil, which disables mouse
// support.
type Shared struct {
	Theme  theme.Theme
	Zones  *zone.Manager
	Logger *slog.Logger
}

func (s Shared) withDefaults() Shared {
	if s.Theme.Name == "" {
		s.Theme = theme.Get(theme.DefaultName)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// newPrefix reserves a zone prefix so two widgets of the same kind never
// share click targets.
func (s Shared) newPrefix() string {
	if s.Zones == nil {
		return ""
	}
	return s.Zones.NewPrefix()
}

// mark wraps a rendered region in a click zone when mouse support is on.
func (s Shared) mark(id, rendered string) string {
	if s.Zones == nil {
		return rendered
	}
	return s.Zones.Mark(id, rendered)
}

// clicked reports whether msg is a left click released inside zone id.
func (s Shared) clicked(id string, msg tea.MouseMsg) bool {
	if s.Zones == nil {
		return false
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return false
	}
	z := s.Zones.Get(id)
	if z == nil {
		return false
	}
	return z.InBounds(msg)
}

// placeholder renders a dim centered message in an otherwise blank area.
func placeholder(th theme.Theme, msg string, width, height int) string {
	return components.Block(th.Muted().Render(components.Center(msg, width)), width, height)
}

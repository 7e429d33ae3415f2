package app

import tea "github.com/charmbracelet/bubbletea"

// Widget is a single dashboard panel. The root model owns the widgets,
// broadcasts every message to Update and forwards key presses to the
// focused widget only. View must return exactly height lines, each at most
// width cells wide.
type Widget interface {
	ID() string
	Title() string
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	MinSize() (int, int)
	HandleKey(key tea.KeyMsg) tea.Cmd
}

// Initializer is implemented by widgets that need to start work when the
// program mounts (initial fetch, timer subscription).
type Initializer interface {
	Init() tea.Cmd
}

// MouseHandler is implemented by widgets with clickable regions.
type MouseHandler interface {
	HandleMouse(msg tea.MouseMsg) tea.Cmd
}

// Stopper is implemented by widgets that hold subscriptions which must be
// released when the program exits.
type Stopper interface {
	Stop()
}

// Package tui implements the root bubbletea model of the dashboard. It lays
// out the widgets, owns focus, expand, help and search state, and routes
// messages: every message is broadcast to all widgets, key presses go to
// the focused widget only, and mouse events go to widgets with click zones.
package tui

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/dayboard/pkg/app"
	"gitlab.com/tinyland/lab/dayboard/pkg/collectors"
	"gitlab.com/tinyland/lab/dayboard/pkg/layout"
	"gitlab.com/tinyland/lab/dayboard/pkg/theme"
)

const statusRefresh = time.Second

// Option configures a Model.
type Option func(*Model)

// WithRegistry shows the registry's fetch status in the status bar.
func WithRegistry(r *collectors.Registry) Option {
	return func(m *Model) { m.registry = r }
}

// WithTheme sets the initial palette.
func WithTheme(t theme.Theme) Option {
	return func(m *Model) { m.theme = t }
}

// WithZones enables mouse routing through z. View scans its output with z.
func WithZones(z *zone.Manager) Option {
	return func(m *Model) { m.zones = z }
}

// WithLayout arranges widgets by row; cell IDs are widget IDs.
func WithLayout(rows []layout.Row) Option {
	return func(m *Model) { m.rows = rows }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// Model is the root tea.Model.
type Model struct {
	widgets []app.Widget
	rows    []layout.Row

	registry *collectors.Registry
	theme    theme.Theme
	zones    *zone.Manager
	keys     keyMap
	logger   *slog.Logger

	focused  int
	expanded int

	showHelp    bool
	searchMode  bool
	searchQuery string
	visible     []int

	ready         bool
	width, height int
}

// New returns a Model for widgets. Focus starts on the first widget.
func New(widgets []app.Widget, opts ...Option) Model {
	m := Model{
		widgets:  widgets,
		theme:    theme.Get(theme.DefaultName),
		keys:     defaultKeyMap(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		expanded: -1,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.visible = tuiFilterWidgets(widgets, "")
	return m
}

func (m Model) Focused() int          { return m.focused }
func (m Model) Expanded() int         { return m.expanded }
func (m Model) ShowHelp() bool        { return m.showHelp }
func (m Model) SearchMode() bool      { return m.searchMode }
func (m Model) SearchQuery() string   { return m.searchQuery }
func (m Model) Ready() bool           { return m.ready }
func (m Model) Width() int            { return m.width }
func (m Model) Height() int           { return m.height }
func (m Model) Theme() theme.Theme    { return m.theme }
func (m Model) Widgets() []app.Widget { return m.widgets }

// Init starts every widget that needs startup work and, with a registry,
// the status bar refresh tick.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, w := range m.widgets {
		if in, ok := w.(app.Initializer); ok {
			cmds = append(cmds, in.Init())
		}
	}
	if m.registry != nil {
		cmds = append(cmds, app.TickCmd(statusRefresh))
	}
	return tea.Batch(cmds...)
}

// Close releases widget subscriptions. Call it once the program has exited.
func (m Model) Close() {
	for _, w := range m.widgets {
		if s, ok := w.(app.Stopper); ok {
			s.Stop()
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case app.TickEvent:
		if m.registry == nil {
			return m, nil
		}
		return m, tea.Batch(m.broadcast(msg), app.TickCmd(statusRefresh))

	case app.WidgetFocusEvent:
		for i, w := range m.widgets {
			if w.ID() == msg.WidgetID {
				m.focused = i
				break
			}
		}
		return m, nil

	case app.ThemeChangeEvent:
		m.theme = theme.Get(msg.Theme)
		return m, m.broadcast(msg)
	}

	return m, m.broadcast(msg)
}

func (m Model) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, w := range m.widgets {
		if cmd := w.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQ) {
		return m, tea.Quit
	}

	if m.searchMode {
		return m.handleSearchKey(msg)
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Collapse), key.Matches(msg, m.keys.Help):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Expand):
		if m.expanded == m.focused {
			m.expanded = -1
		} else if len(m.widgets) > 0 {
			m.expanded = m.focused
		}
	case key.Matches(msg, m.keys.Collapse):
		m.expanded = -1
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchQuery = ""
	case key.Matches(msg, m.keys.Theme):
		next := theme.Next(m.theme.Name)
		m.logger.Debug("theme change", "theme", next.Name)
		ev := app.ThemeChangeEvent{Theme: next.Name}
		m.theme = next
		return m, m.broadcast(ev)
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	default:
		if m.focused >= 0 && m.focused < len(m.widgets) {
			return m, m.widgets[m.focused].HandleKey(msg)
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.searchQuery = ""
	case tea.KeyEnter:
		m.searchMode = false
	case tea.KeyBackspace:
		if r := []rune(m.searchQuery); len(r) > 0 {
			m.searchQuery = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.searchQuery += string(msg.Runes)
	}
	m.visible = tuiFilterWidgets(m.widgets, m.searchQuery)
	if len(m.visible) > 0 && !m.isVisible(m.focused) {
		m.focused = m.visible[0]
	}
	return m, nil
}

func (m Model) isVisible(idx int) bool {
	for _, v := range m.visible {
		if v == idx {
			return true
		}
	}
	return false
}

// cycleFocus moves focus by delta among the visible widgets, wrapping.
func (m *Model) cycleFocus(delta int) {
	n := len(m.visible)
	if n == 0 {
		return
	}
	pos := 0
	for i, v := range m.visible {
		if v == m.focused {
			pos = i
			break
		}
	}
	pos = ((pos+delta)%n + n) % n
	m.focused = m.visible[pos]
}

// handleMouse focuses the clicked panel and offers the event to every
// widget with click zones.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft && m.expanded < 0 {
		for _, c := range m.cells() {
			if (layout.Rect{X: c.X, Y: c.Y, Width: c.W, Height: c.H}).Contains(msg.X, msg.Y) {
				m.focused = c.Index
				break
			}
		}
	}

	var cmds []tea.Cmd
	for _, w := range m.widgets {
		if mh, ok := w.(app.MouseHandler); ok {
			if cmd := mh.HandleMouse(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) cells() []tuiCell {
	return tuiComputeGrid(m.widgets, m.rows, m.width, m.height, m.visible, m.focused)
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	bodyH := max(m.height-1, 0)

	var body string
	switch {
	case m.showHelp:
		body = tuiRenderHelp(m.theme, m.keys, m.width, bodyH)
	case m.expanded >= 0 && m.expanded < len(m.widgets):
		body = tuiRenderExpanded(m.theme, m.widgets[m.expanded], m.width, bodyH)
	default:
		body = tuiRenderGrid(m.theme, m.cells(), m.width, bodyH)
	}

	bar := tuiRenderStatusBar(m.theme, tuiStatusSummary(m.theme, m.registry), m.width)
	if m.searchMode {
		bar = tuiRenderSearchBar(m.theme, m.searchQuery, m.width)
	}

	out := lipgloss.JoinVertical(lipgloss.Left, body, bar)
	if m.zones != nil {
		return m.zones.Scan(out)
	}
	return out
}

package widgets

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/dayboard/pkg/app"
	"gitlab.com/tinyland/lab/dayboard/pkg/clock"
	"gitlab.com/tinyland/lab/dayboard/pkg/components"
	"gitlab.com/tinyland/lab/dayboard/pkg/theme"
)

// ClockWidget shows a live clock and a hide/show button.
type ClockWidget struct {
	clock  *clock.Clock
	shared Shared
	toggle key.Binding
	zoneID string
}

// NewClockWidget wraps c.
func NewClockWidget(c *clock.Clock, shared Shared) *ClockWidget {
	shared = shared.withDefaults()
	return &ClockWidget{
		clock:  c,
		shared: shared,
		toggle: key.NewBinding(
			key.WithKeys("t", " ", "space"),
			key.WithHelp("t/space", "hide/show"),
		),
		zoneID: shared.newPrefix() + "clock-toggle",
	}
}

func (w *ClockWidget) ID() string          { return "clock" }
func (w *ClockWidget) Title() string       { return "Clock" }
func (w *ClockWidget) MinSize() (int, int) { return 24, 2 }

// Clock returns the underlying clock.
func (w *ClockWidget) Clock() *clock.Clock { return w.clock }

// Init starts the tick subscription.
func (w *ClockWidget) Init() tea.Cmd { return w.clock.Init() }

// Stop releases the tick subscription.
func (w *ClockWidget) Stop() { w.clock.Stop() }

func (w *ClockWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case clock.TickMsg:
		return w.clock.Update(msg)
	case app.ThemeChangeEvent:
		w.shared.Theme = theme.Get(msg.Theme)
	}
	return nil
}

// HandleKey toggles the clock on t or space.
func (w *ClockWidget) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, w.toggle) {
		return w.clock.Toggle()
	}
	return nil
}

// HandleMouse toggles the clock when the button is clicked.
func (w *ClockWidget) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	if w.shared.clicked(w.zoneID, msg) {
		return w.clock.Toggle()
	}
	return nil
}

// View renders the button and, while visible, the current time.
func (w *ClockWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	label := "hide"
	if !w.clock.Visible() {
		label = "show"
	}
	lines := []string{w.shared.mark(w.zoneID, components.Button(w.shared.Theme, label, true))}
	if w.clock.Visible() {
		lines = append(lines, w.shared.Theme.Text().Render("Current Time :"+w.clock.Current()))
	}
	return components.Block(strings.Join(lines, "\n"), width, height)
}

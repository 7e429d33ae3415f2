// Package clock provides a timer-driven time source for the bubbletea loop.
//
// A Clock is a two-state machine. While Running, one tick subscription
// fires every interval and each tick republishes the formatted current
// time. While Stopped, no gated tick fires and the last value stays frozen.
// Toggle moves between the two states.
//
// Subscriptions are tagged with a generation number. Leaving Running bumps
// the generation, so a tick already in flight is dropped on arrival and is
// never rescheduled. That gives exactly one live subscription per Running
// period without any cancellation primitive in bubbletea.
//
// WithLegacyTicker(true) reproduces an extra ticker that is started once at
// Init, ignores the toggle and is never cancelled until Stop. It exists for
// behavioral parity only; two tick sources then run concurrently while the
// clock is visible.
package clock

import (
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Defaults.
const (
	DefaultInterval = time.Second
	DefaultLayout   = "3:04:05 PM"
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// TickMsg is delivered once per tick. ID routes it to its clock, Gen
// identifies the subscription it belongs to.
type TickMsg struct {
	ID     int
	Gen    int
	Legacy bool
	Time   time.Time
}

// Option configures a Clock.
type Option func(*Clock)

// WithInterval sets the tick interval. Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithFormat sets the time layout used for the published value.
func WithFormat(layout string) Option {
	return func(c *Clock) {
		if layout != "" {
			c.layout = layout
		}
	}
}

// WithNow overrides the time source. Tests use it for deterministic output.
func WithNow(fn func() time.Time) Option {
	return func(c *Clock) {
		if fn != nil {
			c.now = fn
		}
	}
}

// WithVisible sets the initial visibility. The default is visible.
func WithVisible(v bool) Option {
	return func(c *Clock) { c.visible = v }
}

// WithLegacyTicker enables the unconditional second ticker.
func WithLegacyTicker(v bool) Option {
	return func(c *Clock) { c.legacy = v }
}

// WithLogger sets the logger used for per-tick debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Clock) {
		if l != nil {
			c.logger = l
		}
	}
}

// Clock owns the display state {current, visible} for one clock panel.
type Clock struct {
	id       int
	gen      int
	interval time.Duration
	layout   string
	now      func() time.Time
	logger   *slog.Logger

	current string
	visible bool
	ticks   int

	legacy        bool
	legacyStarted bool
	stopped       bool
}

// New creates a Clock whose current value is already populated.
func New(opts ...Option) *Clock {
	c := &Clock{
		id:       nextID(),
		interval: DefaultInterval,
		layout:   DefaultLayout,
		now:      time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		visible:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.current = c.now().Format(c.layout)
	return c
}

// ID returns the identifier that routes TickMsg values to this clock.
func (c *Clock) ID() int { return c.id }

// Current returns the last published time string.
func (c *Clock) Current() string { return c.current }

// Visible reports whether the clock is shown.
func (c *Clock) Visible() bool { return c.visible }

// Running reports whether the gated subscription is live.
func (c *Clock) Running() bool { return c.visible && !c.stopped }

// Ticks returns how many times the value has been republished.
func (c *Clock) Ticks() int { return c.ticks }

// Interval returns the tick interval.
func (c *Clock) Interval() time.Duration { return c.interval }

// Init starts the gated subscription when visible and, in legacy mode, the
// unconditional ticker.
func (c *Clock) Init() tea.Cmd {
	if c.stopped {
		return nil
	}
	var cmds []tea.Cmd
	if c.visible {
		cmds = append(cmds, c.tick())
	}
	if c.legacy && !c.legacyStarted {
		c.legacyStarted = true
		cmds = append(cmds, c.legacyTick())
	}
	return tea.Batch(cmds...)
}

// Toggle flips visibility. Entering Running returns a fresh subscription;
// leaving it invalidates the one in flight.
func (c *Clock) Toggle() tea.Cmd {
	c.visible = !c.visible
	c.gen++
	if c.visible && !c.stopped {
		return c.tick()
	}
	return nil
}

// Update handles TickMsg values addressed to this clock.
func (c *Clock) Update(msg tea.Msg) tea.Cmd {
	t, ok := msg.(TickMsg)
	if !ok || t.ID != c.id || c.stopped {
		return nil
	}

	if t.Legacy {
		c.publish("legacy")
		return c.legacyTick()
	}

	if !c.visible || t.Gen != c.gen {
		return nil
	}
	c.publish("gated")
	return c.tick()
}

// Stop releases every subscription. The clock never ticks again.
func (c *Clock) Stop() {
	c.stopped = true
	c.gen++
}

func (c *Clock) publish(source string) {
	c.current = c.now().Format(c.layout)
	c.ticks++
	c.logger.Debug("clock tick", "clock", c.id, "source", source, "time", c.current)
}

func (c *Clock) tick() tea.Cmd {
	id, gen := c.id, c.gen
	return tea.Tick(c.interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Gen: gen, Time: t}
	})
}

func (c *Clock) legacyTick() tea.Cmd {
	id := c.id
	return tea.Tick(c.interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Legacy: true, Time: t}
	})
}

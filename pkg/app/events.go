// Package app provides the core Bubbletea application contract for
// dayboard. It defines the event types, the widget interface and the Cmd
// helpers that every panel shares. The root model lives in pkg/tui.
//
// This package is designed against bubbletea v1.3.x.
package app

import "time"

// DataUpdateEvent carries the result of a background fetch back into the
// bubbletea update loop. Receivers type-assert Data based on Source.
//
// Events are delivered in completion order, not request order: two fetches
// started back to back may arrive reversed.
type DataUpdateEvent struct {
	Source    string      // Producer name (e.g., "github-users", "avatars")
	Data      interface{} // Type-asserted by the receiver
	Err       error       // Non-nil if the fetch failed
	Started   time.Time
	Timestamp time.Time
}

// Latency returns how long the fetch behind this event took.
func (e DataUpdateEvent) Latency() time.Duration {
	if e.Started.IsZero() || e.Timestamp.IsZero() {
		return 0
	}
	return e.Timestamp.Sub(e.Started)
}

// TickEvent is sent periodically by the status ticker so the root model can
// refresh relative timestamps in the status bar.
type TickEvent struct {
	Time time.Time
}

// WidgetFocusEvent requests that focus move to a specific widget.
type WidgetFocusEvent struct {
	WidgetID string
}

// ThemeChangeEvent switches the active color theme.
type ThemeChangeEvent struct {
	Theme string
}

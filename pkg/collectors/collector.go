// Package collectors defines the data-source interface and the registry that
// tracks per-source fetch status for the dashboard's status bar.
package collectors

import (
	"context"
	"time"
)

// Collector is a named data source. Implementations live in sub-packages
// (pkg/collectors/github) and are registered with a Registry at startup.
type Collector interface {
	// Name returns a unique identifier, e.g. "github-users".
	Name() string

	// Collect performs one fetch. Consumers type-assert the result based on
	// the collector name.
	Collect(ctx context.Context) (interface{}, error)

	// Interval is the polling period. Zero means on-demand only.
	Interval() time.Duration

	// Healthy reports whether the last fetch succeeded. A collector that has
	// never run is healthy.
	Healthy() bool
}

// CollectorStatus is the runtime record the registry keeps per collector.
type CollectorStatus struct {
	Name        string
	Healthy     bool
	LastRun     time.Time
	LastError   error
	RunCount    int64
	ErrorCount  int64
	LastLatency time.Duration
}

// State returns a one-word summary used by the status bar.
func (s CollectorStatus) State() string {
	switch {
	case s.RunCount == 0:
		return "idle"
	case s.LastError != nil:
		return "error"
	default:
		return "ok"
	}
}

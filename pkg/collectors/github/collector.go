package github

import (
	"context"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/dayboard/pkg/collectors"
)

// Name is the registry key of the users collector.
const Name = "github-users"

// UsersFetchedMsg reports the outcome of one FetchCmd. Seq is the sequence
// number of the count change that triggered it.
type UsersFetchedMsg struct {
	Count   int
	Seq     int
	Users   []User
	Err     error
	Latency time.Duration
}

// Collector adapts a Client to collectors.Collector. It fetches on demand
// only; Collect uses the most recently set count.
type Collector struct {
	client   *Client
	registry *collectors.Registry
	count    atomic.Int64
	failed   atomic.Bool
}

var _ collectors.Collector = (*Collector)(nil)

// NewCollector wraps client. A non-nil registry receives a status record for
// every FetchCmd.
func NewCollector(client *Client, registry *collectors.Registry, count int) *Collector {
	c := &Collector{client: client, registry: registry}
	c.count.Store(int64(count))
	return c
}

func (c *Collector) Name() string            { return Name }
func (c *Collector) Interval() time.Duration { return 0 }
func (c *Collector) Healthy() bool           { return !c.failed.Load() }

// SetCount changes the count used by Collect.
func (c *Collector) SetCount(n int) { c.count.Store(int64(n)) }

// Count returns the count used by Collect.
func (c *Collector) Count() int { return int(c.count.Load()) }

// Collect fetches with the current count.
func (c *Collector) Collect(ctx context.Context) (interface{}, error) {
	return c.fetch(ctx, c.Count())
}

// FetchCmd performs one fetch for count off the update loop. There is no
// cancellation: responses arrive in completion order, so a slow response for
// an older count can land after a newer one.
func (c *Collector) FetchCmd(ctx context.Context, count, seq int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		users, err := c.fetch(ctx, count)
		latency := time.Since(start)
		if c.registry != nil {
			c.registry.Record(Name, latency, err)
		}
		return UsersFetchedMsg{Count: count, Seq: seq, Users: users, Err: err, Latency: latency}
	}
}

func (c *Collector) fetch(ctx context.Context, count int) ([]User, error) {
	users, err := c.client.ListUsers(ctx, count)
	c.failed.Store(err != nil)
	if err != nil {
		return nil, err
	}
	return users, nil
}

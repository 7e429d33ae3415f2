package collectors

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MockCollector is a configurable Collector for tests.
type MockCollector struct {
	name     string
	interval time.Duration

	mu      sync.RWMutex
	data    interface{}
	err     error
	healthy bool

	calls atomic.Int64

	// CollectFunc, if set, replaces the canned data and error.
	CollectFunc func(ctx context.Context) (interface{}, error)
}

// MockOption configures a MockCollector.
type MockOption func(*MockCollector)

// WithData sets the data Collect returns.
func WithData(data interface{}) MockOption {
	return func(m *MockCollector) { m.data = data }
}

// WithError sets the error Collect returns.
func WithError(err error) MockOption {
	return func(m *MockCollector) { m.err = err }
}

// WithCollectFunc sets a custom Collect implementation.
func WithCollectFunc(fn func(ctx context.Context) (interface{}, error)) MockOption {
	return func(m *MockCollector) { m.CollectFunc = fn }
}

// NewMockCollector returns a healthy mock with the given name and interval.
func NewMockCollector(name string, interval time.Duration, opts ...MockOption) *MockCollector {
	m := &MockCollector{name: name, interval: interval, healthy: true}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockCollector) Name() string            { return m.name }
func (m *MockCollector) Interval() time.Duration { return m.interval }

func (m *MockCollector) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy
}

// SetError changes the error returned by later calls.
func (m *MockCollector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Collect returns the canned result and updates Healthy accordingly.
func (m *MockCollector) Collect(ctx context.Context) (interface{}, error) {
	m.calls.Add(1)

	var (
		data interface{}
		err  error
	)
	if m.CollectFunc != nil {
		data, err = m.CollectFunc(ctx)
	} else {
		m.mu.RLock()
		data, err = m.data, m.err
		m.mu.RUnlock()
	}

	m.mu.Lock()
	m.healthy = err == nil
	m.mu.Unlock()
	return data, err
}

// CallCount returns how many times Collect ran.
func (m *MockCollector) CallCount() int64 { return m.calls.Load() }

package collectors

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Registry holds named collectors and their status. It is safe for
// concurrent use; fetch goroutines record results while the UI reads.
type Registry struct {
	mu         sync.RWMutex
	collectors map[string]Collector
	statuses   map[string]*CollectorStatus
	now        func() time.Time
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		collectors: make(map[string]Collector),
		statuses:   make(map[string]*CollectorStatus),
		now:        time.Now,
	}
}

// Register adds a collector. Names must be unique.
func (r *Registry) Register(c Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.collectors[name]; exists {
		return fmt.Errorf("collector %q already registered", name)
	}
	r.collectors[name] = c
	r.statuses[name] = &CollectorStatus{Name: name, Healthy: true}
	return nil
}

// Unregister removes a collector. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.collectors, name)
	delete(r.statuses, name)
}

// Get returns the named collector.
func (r *Registry) Get(name string) (Collector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.collectors[name]
	return c, ok
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.collectors))
	for name := range r.collectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Status returns a copy of the named collector's status.
func (r *Registry) Status(name string) (CollectorStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.statuses[name]
	if !ok {
		return CollectorStatus{}, false
	}
	return *s, true
}

// AllStatus returns copies of every status, sorted by name.
func (r *Registry) AllStatus() []CollectorStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]CollectorStatus, 0, len(r.statuses))
	for _, s := range r.statuses {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Run performs one Collect on the named collector and records the outcome.
func (r *Registry) Run(ctx context.Context, name string) (interface{}, error) {
	c, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("collector %q not registered", name)
	}
	start := r.now()
	data, err := c.Collect(ctx)
	r.Record(name, r.now().Sub(start), err)
	return data, err
}

// Record stores the result of a fetch that ran outside Run, such as a
// parameterized call made directly on a client.
func (r *Registry) Record(name string, latency time.Duration, err error) {
	r.updateStatus(name, func(s *CollectorStatus) {
		s.RunCount++
		s.LastRun = r.now()
		s.LastLatency = latency
		s.LastError = err
		s.Healthy = err == nil
		if err != nil {
			s.ErrorCount++
		}
	})
}

// updateStatus applies fn to the named status under the write lock.
func (r *Registry) updateStatus(name string, fn func(s *CollectorStatus)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.statuses[name]; ok {
		fn(s)
	}
}

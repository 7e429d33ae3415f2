package collectors

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewMockCollector("test", 0)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	got, ok := r.Get("test")
	if !ok {
		t.Fatal("Get returned false for registered collector")
	}
	if got.Name() != "test" {
		t.Errorf("Name = %q, want %q", got.Name(), "test")
	}
}

func TestRegistryDuplicateNameError(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewMockCollector("dup", 0)); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := r.Register(NewMockCollector("dup", 0)); err == nil {
		t.Fatal("duplicate Register should fail")
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewMockCollector("gone", 0))
	r.Unregister("gone")
	r.Unregister("never-there")

	if _, ok := r.Get("gone"); ok {
		t.Fatal("Get returned true after Unregister")
	}
	if _, ok := r.Status("gone"); ok {
		t.Fatal("Status returned true after Unregister")
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"charlie", "alpha", "bravo"} {
		_ = r.Register(NewMockCollector(n, 0))
	}
	want := []string{"alpha", "bravo", "charlie"}
	got := r.List()
	if len(got) != len(want) {
		t.Fatalf("List returned %d names, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	statuses := r.AllStatus()
	if statuses[0].Name != "alpha" || statuses[2].Name != "charlie" {
		t.Errorf("AllStatus not sorted: %+v", statuses)
	}
}

func TestRegistryRunRecordsSuccess(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewMockCollector("users", 0, WithData([]string{"a"})))

	data, err := r.Run(context.Background(), "users")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data.([]string); len(got) != 1 {
		t.Errorf("data = %v", got)
	}

	s, _ := r.Status("users")
	if s.RunCount != 1 || s.ErrorCount != 0 || !s.Healthy {
		t.Errorf("unexpected status %+v", s)
	}
	if s.State() != "ok" {
		t.Errorf("State() = %q, want ok", s.State())
	}
	if s.LastRun.IsZero() {
		t.Error("LastRun not set")
	}
}

func TestRegistryRunRecordsError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	m := NewMockCollector("users", 0, WithError(boom))
	_ = r.Register(m)

	if _, err := r.Run(context.Background(), "users"); !errors.Is(err, boom) {
		t.Fatalf("Run err = %v, want %v", err, boom)
	}
	s, _ := r.Status("users")
	if s.Healthy || s.ErrorCount != 1 || !errors.Is(s.LastError, boom) {
		t.Errorf("unexpected status %+v", s)
	}
	if s.State() != "error" {
		t.Errorf("State() = %q, want error", s.State())
	}
	if m.Healthy() {
		t.Error("mock should report unhealthy after failure")
	}

	m.SetError(nil)
	if _, err := r.Run(context.Background(), "users"); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	s, _ = r.Status("users")
	if !s.Healthy || s.RunCount != 2 || s.ErrorCount != 1 {
		t.Errorf("status after recovery %+v", s)
	}
}

func TestRegistryRunUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Run(context.Background(), "missing"); err == nil {
		t.Fatal("Run on unknown collector should fail")
	}
}

func TestRegistryRecordUnknownIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Record("missing", time.Second, nil)
	if len(r.AllStatus()) != 0 {
		t.Error("Record created a status for an unregistered name")
	}
}

func TestStatusStateIdle(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewMockCollector("users", 0))
	s, _ := r.Status("users")
	if s.State() != "idle" {
		t.Errorf("State() = %q, want idle", s.State())
	}
}

func TestMockCollectFunc(t *testing.T) {
	var n int
	m := NewMockCollector("fn", time.Second, WithCollectFunc(func(ctx context.Context) (interface{}, error) {
		n++
		return n, nil
	}))
	for i := 1; i <= 3; i++ {
		got, _ := m.Collect(context.Background())
		if got != i {
			t.Errorf("call %d returned %v", i, got)
		}
	}
	if m.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3", m.CallCount())
	}
	if m.Interval() != time.Second {
		t.Errorf("Interval() = %v", m.Interval())
	}
}

func TestRegistryConcurrentRecord(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 4; i++ {
		_ = r.Register(NewMockCollector(fmt.Sprintf("c%d", i), 0))
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		name := fmt.Sprintf("c%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = r.Run(context.Background(), name)
				_ = r.AllStatus()
			}
		}()
	}
	wg.Wait()

	for _, s := range r.AllStatus() {
		if s.RunCount != 50 {
			t.Errorf("%s RunCount = %d, want 50", s.Name, s.RunCount)
		}
	}
}

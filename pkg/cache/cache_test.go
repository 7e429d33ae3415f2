package cache

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T, opts ...func(*Config)) (*Store, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	cfg := Config{Dir: t.TempDir(), MaxSizeMB: 1, TTL: time.Hour, Now: clk.Now}
	for _, o := range opts {
		o(&cfg)
	}
	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, clk
}

func TestPutGet(t *testing.T) {
	s, _ := newTestStore(t)
	data := []byte{0x89, 'P', 'N', 'G'}
	if err := s.Put("https://avatars.example/u/1", data); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := s.Get("https://avatars.example/u/1")
	if !ok {
		t.Fatal("expected hit")
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get = %v, want %v", got, data)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("expected miss")
	}

	st := s.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Entries != 1 || st.Bytes != 4 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestOverwriteUpdatesSize(t *testing.T) {
	s, _ := newTestStore(t)
	_ = s.Put("k", []byte("short"))
	_ = s.Put("k", []byte("much longer value"))
	if st := s.Stats(); st.Entries != 1 || st.Bytes != int64(len("much longer value")) {
		t.Errorf("Stats = %+v", st)
	}
}

func TestTTLExpiry(t *testing.T) {
	s, clk := newTestStore(t)
	_ = s.Put("k", []byte("v"))
	_ = s.PutTTL("forever", []byte("v"), 0)

	clk.Advance(59 * time.Minute)
	if !s.Has("k") {
		t.Fatal("entry expired early")
	}
	clk.Advance(2 * time.Minute)
	if s.Has("k") {
		t.Error("Has reported an expired entry")
	}
	if _, ok := s.Get("k"); ok {
		t.Error("Get returned an expired entry")
	}
	if _, ok := s.Get("forever"); !ok {
		t.Error("zero-TTL entry expired")
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), hashKey("k")+blobExt)); !os.IsNotExist(err) {
		t.Error("expired blob left on disk")
	}
}

func TestLRUEviction(t *testing.T) {
	s, clk := newTestStore(t)
	chunk := bytes.Repeat([]byte("x"), 400<<10)

	_ = s.Put("a", chunk)
	clk.Advance(time.Second)
	_ = s.Put("b", chunk)
	clk.Advance(time.Second)
	s.Get("a") // a becomes most recent
	_ = s.Put("c", chunk)

	if s.Has("b") {
		t.Error("least recently used entry b survived")
	}
	if !s.Has("a") || !s.Has("c") {
		t.Error("recent entries evicted")
	}
	if st := s.Stats(); st.Evictions != 1 || st.Bytes > 1<<20 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestOversizedEntryKept(t *testing.T) {
	s, _ := newTestStore(t)
	_ = s.Put("small", []byte("x"))
	_ = s.Put("huge", bytes.Repeat([]byte("x"), 2<<20))
	if !s.Has("huge") {
		t.Error("newest entry must be kept")
	}
	if s.Has("small") {
		t.Error("older entry should be evicted")
	}
}

func TestReopenRestoresIndex(t *testing.T) {
	dir := t.TempDir()
	clk := &fakeClock{now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	s, err := Open(Config{Dir: dir, TTL: time.Hour, Now: clk.Now})
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Put("old", []byte("1"))
	clk.Advance(time.Minute)
	_ = s.Put("new", []byte("22"))
	_ = s.PutTTL("short", []byte("3"), time.Second)
	_ = s.Close()

	clk.Advance(time.Minute)
	// Leftovers from an interrupted write.
	_ = os.WriteFile(filepath.Join(dir, ".tmp-123"), []byte("junk"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "deadbeefdeadbeef"+metaExt), []byte("{bad"), 0o644)

	s2, err := Open(Config{Dir: dir, TTL: time.Hour, Now: clk.Now})
	if err != nil {
		t.Fatal(err)
	}
	keys := s2.Keys()
	if strings.Join(keys, ",") != "new,old" {
		t.Errorf("Keys() = %v, want [new old]", keys)
	}
	if st := s2.Stats(); st.Bytes != 3 {
		t.Errorf("Bytes = %d, want 3", st.Bytes)
	}
	if _, err := os.Stat(filepath.Join(dir, ".tmp-123")); !os.IsNotExist(err) {
		t.Error("temp file not cleaned")
	}
}

func TestReopenDropsTruncatedBlob(t *testing.T) {
	dir := t.TempDir()
	s, _ := Open(Config{Dir: dir})
	_ = s.Put("k", []byte("complete"))
	_ = os.WriteFile(filepath.Join(dir, hashKey("k")+blobExt), []byte("comp"), 0o644)

	s2, err := Open(Config{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if s2.Has("k") {
		t.Error("entry with truncated blob was indexed")
	}
}

func TestDeleteAndClear(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 3; i++ {
		_ = s.Put(fmt.Sprintf("k%d", i), []byte("v"))
	}
	s.Delete("k0")
	s.Delete("never")
	if s.Has("k0") {
		t.Error("deleted key still present")
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if st := s.Stats(); st.Entries != 0 || st.Bytes != 0 {
		t.Errorf("Stats after Clear = %+v", st)
	}
	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 0 {
		t.Errorf("%d files left after Clear", len(entries))
	}
}

func TestPutAfterClose(t *testing.T) {
	s, _ := newTestStore(t)
	_ = s.Close()
	if err := s.Put("k", []byte("v")); err == nil {
		t.Error("Put after Close should fail")
	}
}

func TestOpenEmptyDir(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Error("Open with empty Dir should fail")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s, _ := newTestStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%3)
			for j := 0; j < 20; j++ {
				_ = s.Put(key, []byte("value"))
				s.Get(key)
			}
		}(i)
	}
	wg.Wait()
	if st := s.Stats(); st.Entries != 3 {
		t.Errorf("Entries = %d, want 3", st.Entries)
	}
}

func TestHashKeyStable(t *testing.T) {
	a := hashKey("https://avatars.githubusercontent.com/u/1?v=4")
	if len(a) != 16 {
		t.Errorf("len = %d, want 16", len(a))
	}
	if a != hashKey("https://avatars.githubusercontent.com/u/1?v=4") {
		t.Error("hash not deterministic")
	}
	if a == hashKey("https://avatars.githubusercontent.com/u/2?v=4") {
		t.Error("distinct keys collided")
	}
}

// Package cache is a small disk-backed byte cache with LRU eviction and
// per-entry TTL. The dashboard keeps downloaded avatar images here so that
// re-fetching the same users does not re-download every picture.
//
// Each entry is two files in Dir: {hash}.blob holds the bytes and
// {hash}.meta holds a JSON header. Both are written through a temp file and
// renamed into place.
package cache

import (
	"container/list"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	blobExt = ".blob"
	metaExt = ".meta"
	tmpGlob = ".tmp-*"
)

// Config configures a Store.
type Config struct {
	// Dir holds the cache files. It is created if missing.
	Dir string

	// MaxSizeMB bounds the total blob size. Default 20.
	MaxSizeMB int

	// TTL is the default entry lifetime. Zero means no expiry.
	TTL time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Stats is a snapshot of store counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Bytes     int64
	Entries   int
}

type header struct {
	Key     string `json:"key"`
	Created int64  `json:"created"`
	Expires int64  `json:"expires,omitempty"`
	Size    int64  `json:"size"`
}

type entry struct {
	hash string
	header
}

func (e *entry) expired(now time.Time) bool {
	return e.Expires != 0 && now.UnixNano() > e.Expires
}

// Store is safe for concurrent use by the avatar download pool.
type Store struct {
	cfg Config

	mu     sync.Mutex
	order  *list.List // front = most recently used
	index  map[string]*list.Element
	bytes  int64
	stats  Stats
	closed bool
}

// Open creates Dir if needed and indexes the entries already on disk.
// Expired or half-written entries are removed.
func Open(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("cache: empty directory")
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 20
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create %s: %w", cfg.Dir, err)
	}

	s := &Store{
		cfg:   cfg,
		order: list.New(),
		index: make(map[string]*list.Element),
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("cache: load %s: %w", cfg.Dir, err)
	}
	return s, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.cfg.Dir }

// Get returns the bytes stored under key. A hit promotes the entry.
func (s *Store) Get(key string) ([]byte, bool) {
	h := hashKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.index[h]
	if !ok {
		s.stats.Misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if e.expired(s.cfg.Now()) {
		s.drop(el)
		s.stats.Misses++
		return nil, false
	}
	data, err := os.ReadFile(s.path(h, blobExt))
	if err != nil {
		s.drop(el)
		s.stats.Misses++
		return nil, false
	}
	s.order.MoveToFront(el)
	s.stats.Hits++
	return data, true
}

// Has reports whether a live entry exists, without promoting it.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.index[hashKey(key)]
	return ok && !el.Value.(*entry).expired(s.cfg.Now())
}

// Put stores value with the default TTL.
func (s *Store) Put(key string, value []byte) error {
	return s.PutTTL(key, value, s.cfg.TTL)
}

// PutTTL stores value with the given TTL. Zero means no expiry.
func (s *Store) PutTTL(key string, value []byte, ttl time.Duration) error {
	h := hashKey(key)
	now := s.cfg.Now()
	hd := header{Key: key, Created: now.UnixNano(), Size: int64(len(value))}
	if ttl > 0 {
		hd.Expires = now.Add(ttl).UnixNano()
	}
	meta, err := json.Marshal(hd)
	if err != nil {
		return fmt.Errorf("cache: encode header for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("cache: store closed")
	}
	if err := writeFile(s.cfg.Dir, s.path(h, blobExt), value); err != nil {
		return fmt.Errorf("cache: write %q: %w", key, err)
	}
	if err := writeFile(s.cfg.Dir, s.path(h, metaExt), meta); err != nil {
		_ = os.Remove(s.path(h, blobExt))
		return fmt.Errorf("cache: write header for %q: %w", key, err)
	}

	if el, ok := s.index[h]; ok {
		e := el.Value.(*entry)
		s.bytes -= e.Size
		e.header = hd
		s.order.MoveToFront(el)
	} else {
		s.index[h] = s.order.PushFront(&entry{hash: h, header: hd})
	}
	s.bytes += hd.Size
	s.evict()
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.index[hashKey(key)]; ok {
		s.drop(el)
	}
}

// Keys returns the live keys, most recently used first.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.cfg.Now()
	keys := make([]string, 0, s.order.Len())
	for el := s.order.Front(); el != nil; el = el.Next() {
		if e := el.Value.(*entry); !e.expired(now) {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Clear removes every entry.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for el := s.order.Front(); el != nil; {
		next := el.Next()
		s.drop(el)
		el = next
	}
	tmps, err := filepath.Glob(filepath.Join(s.cfg.Dir, tmpGlob))
	if err != nil {
		return fmt.Errorf("cache: clear: %w", err)
	}
	for _, t := range tmps {
		_ = os.Remove(t)
	}
	return nil
}

// Stats returns current counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats
	st.Bytes = s.bytes
	st.Entries = s.order.Len()
	return st
}

// Close marks the store closed. Later writes fail; reads still work.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) path(hash, ext string) string {
	return filepath.Join(s.cfg.Dir, hash+ext)
}

// drop removes an entry from the index and disk. Caller holds mu.
func (s *Store) drop(el *list.Element) {
	e := el.Value.(*entry)
	s.order.Remove(el)
	delete(s.index, e.hash)
	s.bytes -= e.Size
	_ = os.Remove(s.path(e.hash, blobExt))
	_ = os.Remove(s.path(e.hash, metaExt))
}

// evict drops expired entries, then least recently used ones, until the
// store fits MaxSizeMB. The most recent entry is always kept. Caller holds mu.
func (s *Store) evict() {
	limit := int64(s.cfg.MaxSizeMB) << 20
	if s.bytes <= limit {
		return
	}
	now := s.cfg.Now()
	for el := s.order.Back(); el != nil && s.bytes > limit; {
		prev := el.Prev()
		if el.Value.(*entry).expired(now) {
			s.drop(el)
			s.stats.Evictions++
		}
		el = prev
	}
	for s.bytes > limit && s.order.Len() > 1 {
		s.drop(s.order.Back())
		s.stats.Evictions++
	}
}

// load indexes existing headers, newest first.
func (s *Store) load() error {
	des, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return err
	}
	now := s.cfg.Now()
	var found []*entry
	for _, de := range des {
		name := de.Name()
		if de.IsDir() {
			continue
		}
		if strings.HasPrefix(name, ".tmp-") {
			_ = os.Remove(filepath.Join(s.cfg.Dir, name))
			continue
		}
		if !strings.HasSuffix(name, metaExt) {
			continue
		}
		h := strings.TrimSuffix(name, metaExt)
		e, ok := s.readHeader(h)
		if !ok || e.expired(now) {
			_ = os.Remove(s.path(h, metaExt))
			_ = os.Remove(s.path(h, blobExt))
			continue
		}
		found = append(found, e)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Created < found[j].Created })
	for _, e := range found {
		s.index[e.hash] = s.order.PushFront(e)
		s.bytes += e.Size
	}
	return nil
}

func (s *Store) readHeader(hash string) (*entry, bool) {
	raw, err := os.ReadFile(s.path(hash, metaExt))
	if err != nil {
		return nil, false
	}
	var hd header
	if err := json.Unmarshal(raw, &hd); err != nil || hashKey(hd.Key) != hash {
		return nil, false
	}
	info, err := os.Stat(s.path(hash, blobExt))
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.Size() != hd.Size) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	return &entry{hash: hash, header: hd}, true
}

// writeFile writes data through a temp file in dir and renames it to path.
func writeFile(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, tmpGlob)
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}

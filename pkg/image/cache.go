package image

import (
	"container/list"
	"fmt"
	"sync"
)

// Key identifies one rendered tile.
type Key struct {
	Source   string
	Protocol string
	Cols     int
	Rows     int
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%dx%d:%s", k.Protocol, k.Cols, k.Rows, k.Source)
}

type cached struct {
	key Key
	out string
}

// Cache is an LRU of rendered escape strings bounded by total bytes.
type Cache struct {
	mu     sync.Mutex
	order  *list.List
	items  map[Key]*list.Element
	used   int64
	limit  int64
	hits   uint64
	misses uint64
}

// NewCache returns a cache bounded to maxMB megabytes. Non-positive values
// select 8 MB.
func NewCache(maxMB int) *Cache {
	if maxMB <= 0 {
		maxMB = 8
	}
	return &Cache{
		order: list.New(),
		items: make(map[Key]*list.Element),
		limit: int64(maxMB) << 20,
	}
}

// Get returns the rendering stored under k.
func (c *Cache) Get(k Key) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[k]
	if !ok {
		c.misses++
		return "", false
	}
	c.order.MoveToFront(el)
	c.hits++
	return el.Value.(*cached).out, true
}

// Put stores out under k, evicting least recently used entries as needed.
// Entries larger than the whole cache are not stored.
func (c *Cache) Put(k Key, out string) {
	size := int64(len(out))
	if size > c.limit {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[k]; ok {
		e := el.Value.(*cached)
		c.used += size - int64(len(e.out))
		e.out = out
		c.order.MoveToFront(el)
	} else {
		c.items[k] = c.order.PushFront(&cached{key: k, out: out})
		c.used += size
	}
	for c.used > c.limit {
		back := c.order.Back()
		e := back.Value.(*cached)
		c.order.Remove(back)
		delete(c.items, e.key)
		c.used -= int64(len(e.out))
	}
}

// Len returns the number of cached renderings.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Counters returns hit and miss totals.
func (c *Cache) Counters() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

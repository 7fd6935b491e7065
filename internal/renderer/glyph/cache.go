package glyph

import (
	"container/list"
	"math"
)

// DefaultCapacity is the number of glyphs a cache holds by default.
const DefaultCapacity = 4096

type key struct {
	r    rune
	size uint32
}

type entry struct {
	key   key
	glyph Glyph

	// err is set for runes the rasterizer could not draw, so a missing
	// glyph is not rasterized again every frame.
	err error
}

// Stats reports cache activity.
type Stats struct {
	Hits, Misses, Evictions uint64
	Len                     int
}

// Cache memoizes rasterized glyphs keyed by rune and pixel size, evicting
// the least recently used glyph once it is full. It belongs to one
// renderer and is not safe for concurrent use.
type Cache struct {
	rast     Rasterizer
	capacity int
	entries  map[key]*list.Element
	order    *list.List
	stats    Stats
}

// Option configures a Cache.
type Option func(*Cache)

// WithCapacity bounds the cache. Zero means unbounded.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		c.capacity = max(n, 0)
	}
}

// NewCache creates a cache that rasterizes misses with rast.
func NewCache(rast Rasterizer, opts ...Option) *Cache {
	c := &Cache{
		rast:     rast,
		capacity: DefaultCapacity,
		entries:  make(map[key]*list.Element),
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrRasterize returns the glyph for r at size, rasterizing it on a
// miss. A rasterization failure is cached too and returned on later
// lookups until the entry is evicted. The returned glyph must not be
// modified.
func (c *Cache) GetOrRasterize(r rune, size float32) (*Glyph, error) {
	k := key{r: r, size: math.Float32bits(size)}
	if el, ok := c.entries[k]; ok {
		c.stats.Hits++
		c.order.MoveToFront(el)
		return el.Value.(*entry).result()
	}

	c.stats.Misses++
	g, err := c.rast.Rasterize(r, size)
	e := &entry{key: k, glyph: g, err: err}
	if err != nil {
		e.glyph = Glyph{}
	}
	c.entries[k] = c.order.PushFront(e)
	c.evict()
	return e.result()
}

func (e *entry) result() (*Glyph, error) {
	if e.err != nil {
		return nil, e.err
	}
	return &e.glyph, nil
}

func (c *Cache) evict() {
	if c.capacity == 0 {
		return
	}
	for c.order.Len() > c.capacity {
		last := c.order.Back()
		c.order.Remove(last)
		delete(c.entries, last.Value.(*entry).key)
		c.stats.Evictions++
	}
}

// Metrics returns the rasterizer's font metrics at size.
func (c *Cache) Metrics(size float32) Metrics {
	return c.rast.Metrics(size)
}

// Len returns the number of cached glyphs.
func (c *Cache) Len() int {
	return c.order.Len()
}

// Stats returns hit, miss and eviction counts.
func (c *Cache) Stats() Stats {
	s := c.stats
	s.Len = c.order.Len()
	return s
}

// Clear drops every cached glyph, as after a font change.
func (c *Cache) Clear() {
	clear(c.entries)
	c.order.Init()
}

package footprint

import (
	"sync"

	"chosenoffset.com/sightline/internal/core/geometry"
)

type cacheKey struct {
	ID    string
	Scale float64
}

// Cache memoizes constrained footprints per target. Entries live until the host
// calls Invalidate; the cache never checks whether a target has moved.
type Cache struct {
	builder *Builder
	entries map[cacheKey]geometry.Shape
	mutex   sync.RWMutex
}

// NewCache wraps builder with a per-target cache.
func NewCache(builder *Builder) *Cache {
	return &Cache{
		builder: builder,
		entries: make(map[cacheKey]geometry.Shape),
	}
}

// Get returns the cached footprint for id at scale, building it from boundary on
// first use.
func (c *Cache) Get(id string, boundary geometry.Rect, scale float64) geometry.Shape {
	key := cacheKey{ID: id, Scale: scale}

	c.mutex.RLock()
	shape, ok := c.entries[key]
	c.mutex.RUnlock()
	if ok {
		return shape
	}

	shape = c.builder.Build(boundary, scale)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = shape
	return shape
}

// Cached reports whether a footprint for id is held at any scale.
func (c *Cache) Cached(id string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	for k := range c.entries {
		if k.ID == id {
			return true
		}
	}
	return false
}

// Invalidate drops every footprint held for id.
func (c *Cache) Invalidate(id string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for k := range c.entries {
		if k.ID == id {
			delete(c.entries, k)
		}
	}
}

// Reset drops every entry, e.g. after the wall layout changes.
func (c *Cache) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	clear(c.entries)
}

package cache

import (
	"sync"

	"github.com/zsiec/moqt/wire"
)

// RingBufferObjectCache is an ObjectCache bounded to a fixed capacity.
// After every Add, while the cache holds more than Capacity objects the
// lowest-Location element is dropped — eviction is by sort order, not by
// arrival time. A producer relying on "oldest inserted" eviction semantics
// will observe the wrong element evicted if insertions arrive out of
// Location order; see DESIGN.md.
type RingBufferObjectCache struct {
	mu       sync.RWMutex
	s        sortedObjects
	capacity int
}

// NewRingBufferObjectCache returns an empty cache bounded to capacity
// objects. A non-positive capacity means every Add immediately evicts.
func NewRingBufferObjectCache(capacity int) *RingBufferObjectCache {
	if capacity < 0 {
		capacity = 0
	}
	return &RingBufferObjectCache{capacity: capacity}
}

// Add inserts obj in sorted position, then evicts from the low end until
// Size() <= Capacity().
func (c *RingBufferObjectCache) Add(obj wire.Object) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.add(obj)
	for len(c.s.items) > c.capacity {
		c.s.items = c.s.items[1:]
	}
}

// GetRange returns the objects with start <= Location < end.
func (c *RingBufferObjectCache) GetRange(start, end *wire.Location) []wire.Object {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.s.getRange(start, end)
}

// GetByLocation returns the object at loc and true, or false if absent.
func (c *RingBufferObjectCache) GetByLocation(loc wire.Location) (wire.Object, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.s.getByLocation(loc)
}

// Size returns the number of cached objects; always <= Capacity().
func (c *RingBufferObjectCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.s.size()
}

// Capacity returns the configured maximum size.
func (c *RingBufferObjectCache) Capacity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.capacity
}

// Clear empties the cache.
func (c *RingBufferObjectCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.clear()
}

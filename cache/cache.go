package cache

import (
	"sync"

	"github.com/zsiec/moqt/wire"
)

// ObjectCache is an unbounded, ordered multiset of wire.Object keyed by
// Location. Iterating GetRange(nil, nil) always yields a non-decreasing
// sequence by (Group, Object), independent of arrival order.
type ObjectCache struct {
	mu sync.RWMutex
	s  sortedObjects
}

// NewObjectCache returns an empty ObjectCache.
func NewObjectCache() *ObjectCache {
	return &ObjectCache{}
}

// Add inserts obj in sorted position. Duplicate-key insertions are stable:
// the new object lands after any existing object with an equal Location.
func (c *ObjectCache) Add(obj wire.Object) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.add(obj)
}

// GetRange returns the objects with start <= Location < end. A nil start
// means "from the beginning of the cache"; a nil end means "to the end".
func (c *ObjectCache) GetRange(start, end *wire.Location) []wire.Object {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.s.getRange(start, end)
}

// GetByLocation returns the object at loc and true, or the zero Object and
// false if no object with that exact Location is cached.
func (c *ObjectCache) GetByLocation(loc wire.Location) (wire.Object, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.s.getByLocation(loc)
}

// Size returns the number of cached objects.
func (c *ObjectCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.s.size()
}

// Clear empties the cache.
func (c *ObjectCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.clear()
}

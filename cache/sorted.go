package cache

import (
	"sort"

	"github.com/zsiec/moqt/wire"
)

// sortedObjects is the shared binary-search-indexed core for both
// ObjectCache and RingBufferObjectCache. Not safe for concurrent use on its
// own; callers provide the locking.
type sortedObjects struct {
	items []wire.Object
}

// add inserts obj at the first index whose existing key compares strictly
// greater, so duplicate-key insertions land after all existing equal-key
// elements: stable by arrival within a key.
func (s *sortedObjects) add(obj wire.Object) {
	i := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].Location.Compare(obj.Location) > 0
	})
	s.items = append(s.items, wire.Object{})
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = obj
}

// getRange returns the half-open slice [start, end) by Location. A nil
// start means "from the beginning"; a nil end means "to the end". If the
// resolved lower bound is past the upper bound, the result is empty.
func (s *sortedObjects) getRange(start, end *wire.Location) []wire.Object {
	lo := 0
	if start != nil {
		lo = sort.Search(len(s.items), func(i int) bool {
			return s.items[i].Location.Compare(*start) >= 0
		})
	}
	hi := len(s.items)
	if end != nil {
		hi = sort.Search(len(s.items), func(i int) bool {
			return s.items[i].Location.Compare(*end) >= 0
		})
	}
	if lo > hi {
		return nil
	}
	out := make([]wire.Object, hi-lo)
	copy(out, s.items[lo:hi])
	return out
}

// getByLocation returns the object at loc, if present.
func (s *sortedObjects) getByLocation(loc wire.Location) (wire.Object, bool) {
	i := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].Location.Compare(loc) >= 0
	})
	if i < len(s.items) && s.items[i].Location.Equal(loc) {
		return s.items[i], true
	}
	return wire.Object{}, false
}

func (s *sortedObjects) size() int { return len(s.items) }

func (s *sortedObjects) clear() { s.items = nil }

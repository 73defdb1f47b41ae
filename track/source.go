package track

import (
	"errors"

	"github.com/zsiec/moqt/wire"
)

// ErrNoFacet is returned by NewTrackSource when neither a past nor a live
// facet is supplied.
var ErrNoFacet = errors.New("track: source must have a past facet, a live facet, or both")

// PastObjectSource serves replay of previously-arrived objects. Both
// *cache.ObjectCache and *cache.RingBufferObjectCache satisfy this
// interface.
type PastObjectSource interface {
	GetRange(start, end *wire.Location) []wire.Object
	GetByLocation(loc wire.Location) (wire.Object, bool)
}

// LiveObjectSource serves fan-out of newly-arriving objects. *LiveTrackSource
// satisfies this interface.
type LiveObjectSource interface {
	OnNewObject(listener func(wire.Object)) (unsubscribe func())
	OnDone(listener func()) (unsubscribe func())
	LargestLocation() (wire.Location, bool)
}

// Cache is the subset of a cache's surface HybridTrackSource needs: a
// PastObjectSource that can also accept new arrivals.
type Cache interface {
	PastObjectSource
	Add(obj wire.Object)
}

// TrackSource composes a track's content facets. At least one of Past or
// Live must be present.
type TrackSource struct {
	Past PastObjectSource
	Live LiveObjectSource
}

// NewTrackSource returns a TrackSource over past and live, either of which
// may be nil, provided at least one is non-nil.
func NewTrackSource(past PastObjectSource, live LiveObjectSource) (*TrackSource, error) {
	if past == nil && live == nil {
		return nil, ErrNoFacet
	}
	return &TrackSource{Past: past, Live: live}, nil
}

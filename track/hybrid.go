package track

import (
	"context"

	"github.com/zsiec/moqt/wire"
)

// HybridTrackSource owns a cache-backed past facet and a LiveTrackSource.
// Every live arrival is inserted into the cache before it is fanned out to
// live subscribers, so a subscriber joining mid-stream can always be
// caught up from Past() before it starts receiving Live() events, with no
// gap at the boundary beyond what the cache's own eviction policy permits
// (see cache.RingBufferObjectCache). An arrival cached just before the
// subscriber registers can be seen both in Past() and on Live().
type HybridTrackSource struct {
	cache Cache
	live  *LiveTrackSource
}

// NewHybridTrackSource returns a HybridTrackSource over cache and live.
// Neither may be nil.
func NewHybridTrackSource(cache Cache, live *LiveTrackSource) *HybridTrackSource {
	return &HybridTrackSource{cache: cache, live: live}
}

// Start mirrors every object read from objects into the cache before
// handing it to the underlying LiveTrackSource's ingest loop.
func (h *HybridTrackSource) Start(ctx context.Context, objects <-chan wire.Object) {
	mirrored := make(chan wire.Object)
	go func() {
		defer close(mirrored)
		for {
			select {
			case <-ctx.Done():
				return
			case obj, ok := <-objects:
				if !ok {
					return
				}
				h.cache.Add(obj)
				select {
				case mirrored <- obj:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	h.live.Start(ctx, mirrored)
}

// Stop releases the underlying live reader.
func (h *HybridTrackSource) Stop() {
	h.live.Stop()
}

// Past returns the cache-backed replay facet.
func (h *HybridTrackSource) Past() PastObjectSource {
	return h.cache
}

// Live returns the fan-out facet.
func (h *HybridTrackSource) Live() *LiveTrackSource {
	return h.live
}

// TrackSource returns a *TrackSource exposing both facets, suitable for
// embedding in a Track.
func (h *HybridTrackSource) TrackSource() *TrackSource {
	return &TrackSource{Past: h.cache, Live: h.live}
}

// Package track models a subscribable MoQT track: its identity
// (FullTrackName, forwarding preference, publisher priority) and the
// content source behind it. A TrackSource composes an optional
// PastObjectSource (replay, typically cache-backed) with an optional
// LiveObjectSource (fan-out of new arrivals); HybridTrackSource wires the
// two together so every live arrival is cached before it is delivered to
// subscribers.
package track

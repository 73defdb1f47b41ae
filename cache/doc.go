// Package cache implements the two ObjectCache shapes: an unbounded sorted
// index and a capacity-bounded ring variant. Both keep objects ordered by
// wire.Location and support logarithmic range and point lookup via binary
// search, grounded on the same slice-plus-mutex shape the teacher uses for
// its GOP and audio replay caches (distribution.Relay).
package cache

package varint

import "errors"

// ErrNotEnoughBytes is returned by any Get* method that cannot be satisfied
// with the bytes currently available. It is recoverable: the caller is
// expected to fetch more input and retry. The buffer's read offset is left
// unchanged when this error is returned.
var ErrNotEnoughBytes = errors.New("varint: not enough bytes")

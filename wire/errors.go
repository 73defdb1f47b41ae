package wire

import (
	"errors"
	"fmt"
)

// ErrInvalidType indicates a KeyValuePair or Header type tag that does not
// match the expected parity, or a Header tag the codec does not recognize.
var ErrInvalidType = errors.New("wire: invalid type")

// ParseError wraps a failure to parse a specific field of a wire value,
// recording which field was being read when the underlying error occurred.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("wire: parse %s: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

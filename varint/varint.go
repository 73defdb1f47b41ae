package varint

import "github.com/quic-go/quic-go/quicvarint"

// MaxValue is the largest value representable by a QUIC variable-length
// integer: the two length bits of the first byte are reserved, leaving 62
// significant bits.
const MaxValue = (1 << 62) - 1

// Append encodes v as a QUIC variable-length integer and appends it to buf,
// choosing the shortest of the four encodings (1/2/4/8 bytes) that fits.
// It panics if v exceeds MaxValue, matching quicvarint.Append.
func Append(buf []byte, v uint64) []byte {
	return quicvarint.Append(buf, v)
}

// Len returns the number of bytes Append(nil, v) would produce.
func Len(v uint64) int {
	return quicvarint.Len(v)
}

// Decode reads a single variable-length integer from the front of b,
// returning the decoded value and the number of bytes consumed. It respects
// the length hint carried by the first byte even when a shorter encoding
// would have sufficed, so non-canonical encodings still round-trip.
func Decode(b []byte) (value uint64, n int, err error) {
	if len(b) == 0 {
		return 0, 0, ErrNotEnoughBytes
	}
	v, n, err := quicvarint.Parse(b)
	if err != nil {
		return 0, 0, ErrNotEnoughBytes
	}
	return v, n, nil
}

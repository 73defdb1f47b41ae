package wire

import "github.com/zsiec/moqt/varint"

// KeyValuePair is a typed TLV element whose value shape is determined by
// the parity of its type tag: an even Type carries a VarInt value, an odd
// Type carries a length-prefixed byte string. Exactly one of VarIntValue /
// BytesValue is meaningful, selected by Type's parity.
type KeyValuePair struct {
	Type        uint64
	VarIntValue uint64
	BytesValue  []byte
}

// IsVarInt reports whether p carries a VarInt value (even Type).
func (p KeyValuePair) IsVarInt() bool { return p.Type%2 == 0 }

// NewVarInt constructs a KeyValuePair carrying a VarInt value. It fails
// with ErrInvalidType if typ is odd.
func NewVarInt(typ uint64, value uint64) (KeyValuePair, error) {
	if typ%2 != 0 {
		return KeyValuePair{}, &ParseError{Field: "type", Err: ErrInvalidType}
	}
	return KeyValuePair{Type: typ, VarIntValue: value}, nil
}

// NewBytes constructs a KeyValuePair carrying a length-prefixed byte
// string. It fails with ErrInvalidType if typ is even.
func NewBytes(typ uint64, value []byte) (KeyValuePair, error) {
	if typ%2 == 0 {
		return KeyValuePair{}, &ParseError{Field: "type", Err: ErrInvalidType}
	}
	return KeyValuePair{Type: typ, BytesValue: value}, nil
}

// Encode appends the wire encoding of p to buf:
// VarInt(Type) || (even ? VarInt(VarIntValue) : VarInt(len) || BytesValue).
func (p KeyValuePair) Encode(buf *varint.Buffer) {
	buf.PutVarInt(p.Type)
	if p.IsVarInt() {
		buf.PutVarInt(p.VarIntValue)
	} else {
		buf.PutLenPrefixedBytes(p.BytesValue)
	}
}

// DecodeKeyValuePair reads a type tag from buf, then branches on its parity
// to read the value.
func DecodeKeyValuePair(buf *varint.FrozenBuffer) (KeyValuePair, error) {
	typ, err := buf.GetVarInt()
	if err != nil {
		return KeyValuePair{}, &ParseError{Field: "type", Err: err}
	}
	if typ%2 == 0 {
		v, err := buf.GetVarInt()
		if err != nil {
			return KeyValuePair{}, &ParseError{Field: "value", Err: err}
		}
		return KeyValuePair{Type: typ, VarIntValue: v}, nil
	}
	v, err := buf.GetLenPrefixedBytes()
	if err != nil {
		return KeyValuePair{}, &ParseError{Field: "value", Err: err}
	}
	return KeyValuePair{Type: typ, BytesValue: v}, nil
}

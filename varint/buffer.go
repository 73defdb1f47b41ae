package varint

import "encoding/binary"

// cursor is the read-side engine shared by Buffer and FrozenBuffer: a
// position into data plus a stack of saved positions for checkpoint/
// restore/commit. Checkpoint/restore/commit express "try to parse, then
// rewind on failure" without copying the underlying slice.
type cursor struct {
	data        []byte
	pos         int
	checkpoints []int
}

// Len returns the number of unread bytes remaining.
func (c *cursor) Len() int { return len(c.data) - c.pos }

// Pos returns the current read offset from the start of the underlying
// data, for callers that need to measure how many bytes a sequence of Get
// calls consumed.
func (c *cursor) Pos() int { return c.pos }

// Checkpoint pushes the current read offset onto the checkpoint stack.
func (c *cursor) Checkpoint() { c.checkpoints = append(c.checkpoints, c.pos) }

// Restore rewinds the read offset to the most recently pushed checkpoint
// without popping it, so the same checkpoint can be restored to more than
// once.
func (c *cursor) Restore() {
	if n := len(c.checkpoints); n > 0 {
		c.pos = c.checkpoints[n-1]
	}
}

// Commit discards the most recently pushed checkpoint, keeping the current
// read offset.
func (c *cursor) Commit() {
	if n := len(c.checkpoints); n > 0 {
		c.checkpoints = c.checkpoints[:n-1]
	}
}

// GetBytes returns the next n bytes and advances the read offset. On
// failure the offset is left unchanged.
func (c *cursor) GetBytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.data) {
		return nil, ErrNotEnoughBytes
	}
	out := c.data[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

// GetU8 reads a single byte.
func (c *cursor) GetU8() (uint8, error) {
	b, err := c.GetBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// GetU16 reads a big-endian uint16.
func (c *cursor) GetU16() (uint16, error) {
	b, err := c.GetBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// GetU32 reads a big-endian uint32.
func (c *cursor) GetU32() (uint32, error) {
	b, err := c.GetBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// GetU64 reads a big-endian uint64.
func (c *cursor) GetU64() (uint64, error) {
	b, err := c.GetBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// GetVarInt reads a single QUIC variable-length integer.
func (c *cursor) GetVarInt() (uint64, error) {
	v, n, err := Decode(c.data[c.pos:])
	if err != nil {
		return 0, err
	}
	c.pos += n
	return v, nil
}

// GetLenPrefixedBytes reads a VarInt length followed by that many bytes.
// The read is atomic: if the byte string doesn't fully fit, the offset is
// restored to where it was before the length was read.
func (c *cursor) GetLenPrefixedBytes() ([]byte, error) {
	start := c.pos
	length, err := c.GetVarInt()
	if err != nil {
		return nil, err
	}
	b, err := c.GetBytes(int(length))
	if err != nil {
		c.pos = start
		return nil, err
	}
	return b, nil
}

// Buffer is a growable, append/read byte buffer used while building or
// parsing wire messages. Put* methods append to the buffer; Get* methods
// read from the current offset, independent of how much has been written
// since. It is not safe for concurrent use.
type Buffer struct {
	cursor
}

// NewBuffer returns an empty, growable Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferFrom returns a Buffer whose backing data is data, positioned at
// the start for reading. Put calls append after the existing data.
func NewBufferFrom(data []byte) *Buffer {
	return &Buffer{cursor{data: data}}
}

// PutBytes appends raw bytes.
func (b *Buffer) PutBytes(p []byte) { b.data = append(b.data, p...) }

// PutU8 appends a single byte.
func (b *Buffer) PutU8(v uint8) { b.data = append(b.data, v) }

// PutU16 appends a big-endian uint16.
func (b *Buffer) PutU16(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	b.data = append(b.data, buf[:]...)
}

// PutU32 appends a big-endian uint32.
func (b *Buffer) PutU32(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	b.data = append(b.data, buf[:]...)
}

// PutU64 appends a big-endian uint64.
func (b *Buffer) PutU64(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	b.data = append(b.data, buf[:]...)
}

// PutVarInt appends v as a QUIC variable-length integer.
func (b *Buffer) PutVarInt(v uint64) { b.data = Append(b.data, v) }

// PutLenPrefixedBytes appends a VarInt length followed by p.
func (b *Buffer) PutLenPrefixedBytes(p []byte) {
	b.PutVarInt(uint64(len(p)))
	b.PutBytes(p)
}

// Bytes returns the buffer's full backing slice, written bytes included,
// regardless of the current read offset.
func (b *Buffer) Bytes() []byte { return b.data }

// Compact drops the already-read prefix of the buffer, so a Buffer used as
// a growing receive window for streamed input doesn't retain consumed
// bytes forever. Bytes an outstanding checkpoint can still rewind to are
// kept, and the checkpoints are shifted to stay valid.
func (b *Buffer) Compact() {
	cut := b.pos
	for _, cp := range b.checkpoints {
		if cp < cut {
			cut = cp
		}
	}
	if cut == 0 {
		return
	}
	n := len(b.data) - cut
	data := make([]byte, n)
	copy(data, b.data[cut:])
	b.data = data
	for i := range b.checkpoints {
		b.checkpoints[i] -= cut
	}
	b.pos -= cut
}

// Freeze copies the buffer's data into a read-only FrozenBuffer positioned
// at the start. Use this to hand a completed serialization off for
// immutable re-parsing without exposing Put methods to the reader.
func (b *Buffer) Freeze() *FrozenBuffer {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &FrozenBuffer{cursor{data: data}}
}

// FrozenBuffer is a read-only view over a completed byte sequence. It
// exposes the same Get*/checkpoint surface as Buffer but no Put methods.
type FrozenBuffer struct {
	cursor
}

// NewFrozenBuffer returns a read-only view over data.
func NewFrozenBuffer(data []byte) *FrozenBuffer {
	return &FrozenBuffer{cursor{data: data}}
}

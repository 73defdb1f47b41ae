package varint

import (
	"bytes"
	"testing"
)

func TestBufferPutGetPrimitives(t *testing.T) {
	t.Parallel()
	b := NewBuffer()
	b.PutU8(0xAB)
	b.PutU16(0x1234)
	b.PutU32(0xDEADBEEF)
	b.PutU64(0x0102030405060708)
	b.PutVarInt(300)
	b.PutLenPrefixedBytes([]byte("hello"))

	r := NewFrozenBuffer(b.Bytes())

	if v, err := r.GetU8(); err != nil || v != 0xAB {
		t.Fatalf("GetU8 = %#x, %v", v, err)
	}
	if v, err := r.GetU16(); err != nil || v != 0x1234 {
		t.Fatalf("GetU16 = %#x, %v", v, err)
	}
	if v, err := r.GetU32(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("GetU32 = %#x, %v", v, err)
	}
	if v, err := r.GetU64(); err != nil || v != 0x0102030405060708 {
		t.Fatalf("GetU64 = %#x, %v", v, err)
	}
	if v, err := r.GetVarInt(); err != nil || v != 300 {
		t.Fatalf("GetVarInt = %d, %v", v, err)
	}
	if v, err := r.GetLenPrefixedBytes(); err != nil || !bytes.Equal(v, []byte("hello")) {
		t.Fatalf("GetLenPrefixedBytes = %q, %v", v, err)
	}
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
}

func TestBufferGetNotEnoughBytesLeavesOffset(t *testing.T) {
	t.Parallel()
	b := NewBufferFrom([]byte{0x01, 0x02})
	if _, err := b.GetU32(); err != ErrNotEnoughBytes {
		t.Fatalf("err = %v, want ErrNotEnoughBytes", err)
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (offset must not move on failure)", b.Len())
	}
	// A satisfiable read afterward should still work.
	if v, err := b.GetU8(); err != nil || v != 0x01 {
		t.Fatalf("GetU8 = %#x, %v", v, err)
	}
}

func TestBufferLenPrefixedBytesAtomicOnShortBody(t *testing.T) {
	t.Parallel()
	// VarInt(5) followed by only 2 bytes of a claimed 5-byte string.
	b := NewBufferFrom(Append([]byte{}, 5))
	b.PutBytes([]byte("ab"))

	if _, err := b.GetLenPrefixedBytes(); err != ErrNotEnoughBytes {
		t.Fatalf("err = %v, want ErrNotEnoughBytes", err)
	}
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (offset restored)", b.Len())
	}
}

func TestBufferCheckpointRestoreCommit(t *testing.T) {
	t.Parallel()
	b := NewBufferFrom([]byte{1, 2, 3, 4, 5})

	b.Checkpoint()
	_, _ = b.GetU8()
	_, _ = b.GetU8()

	b.Checkpoint() // nested
	_, _ = b.GetU8()
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}

	b.Restore() // back to inner checkpoint (offset 2)
	if b.Len() != 3 {
		t.Fatalf("Len() after inner Restore = %d, want 3", b.Len())
	}
	b.Commit() // discard inner checkpoint, keep offset

	b.Restore() // back to outer checkpoint (offset 0)
	if b.Len() != 5 {
		t.Fatalf("Len() after outer Restore = %d, want 5", b.Len())
	}
	b.Commit()
}

func TestBufferCompactShiftsCheckpointsAndPreservesUnread(t *testing.T) {
	t.Parallel()
	b := NewBufferFrom([]byte{1, 2, 3, 4, 5})
	_, _ = b.GetU8()
	_, _ = b.GetU8()

	b.Checkpoint()
	_, _ = b.GetU8() // consumes byte 3, checkpoint still points at it
	b.Compact()

	if b.Len() != 2 {
		t.Fatalf("Len() after Compact = %d, want 2", b.Len())
	}
	b.Restore()
	if v, err := b.GetU8(); err != nil || v != 3 {
		t.Fatalf("GetU8 after Restore+Compact = %#x, %v, want 3", v, err)
	}
}

func TestBufferFreezeIsIndependentOfSource(t *testing.T) {
	t.Parallel()
	b := NewBuffer()
	b.PutU8(1)
	frozen := b.Freeze()
	b.PutU8(2)

	if frozen.Len() != 1 {
		t.Fatalf("frozen.Len() = %d, want 1 (mutation after Freeze must not leak)", frozen.Len())
	}
}

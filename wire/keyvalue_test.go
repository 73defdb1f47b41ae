package wire

import (
	"bytes"
	"testing"

	"github.com/zsiec/moqt/varint"
)

func TestKeyValuePairParity(t *testing.T) {
	t.Parallel()
	if _, err := NewVarInt(3, 1); err == nil {
		t.Fatal("NewVarInt(odd type) should fail")
	}
	if _, err := NewVarInt(2, 1); err != nil {
		t.Fatalf("NewVarInt(even type): %v", err)
	}
	if _, err := NewBytes(2, nil); err == nil {
		t.Fatal("NewBytes(even type) should fail")
	}
	if _, err := NewBytes(3, []byte("x")); err != nil {
		t.Fatalf("NewBytes(odd type): %v", err)
	}
}

func TestKeyValuePairRoundTripVarInt(t *testing.T) {
	t.Parallel()
	kv, err := NewVarInt(8, 123456)
	if err != nil {
		t.Fatal(err)
	}
	var buf varint.Buffer
	kv.Encode(&buf)

	got, err := DecodeKeyValuePair(varint.NewFrozenBuffer(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != kv.Type || got.VarIntValue != kv.VarIntValue || !bytes.Equal(got.BytesValue, kv.BytesValue) {
		t.Fatalf("got %+v, want %+v", got, kv)
	}
}

func TestKeyValuePairRoundTripBytes(t *testing.T) {
	t.Parallel()
	kv, err := NewBytes(9, []byte("codec config"))
	if err != nil {
		t.Fatal(err)
	}
	var buf varint.Buffer
	kv.Encode(&buf)

	got, err := DecodeKeyValuePair(varint.NewFrozenBuffer(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != kv.Type || !bytes.Equal(got.BytesValue, kv.BytesValue) {
		t.Fatalf("got %+v, want %+v", got, kv)
	}
}

package varint

import "testing"

func TestVarIntRoundTrip(t *testing.T) {
	t.Parallel()
	values := []uint64{
		0, 1, 63, 64, 16383, 16384, 1073741823, 1073741824, MaxValue,
	}
	for _, v := range values {
		buf := Append(nil, v)
		got, n, err := Decode(buf)
		if err != nil {
			t.Fatalf("Decode(%d): %v", v, err)
		}
		if n != len(buf) {
			t.Errorf("Decode(%d) consumed %d bytes, want %d", v, n, len(buf))
		}
		if got != v {
			t.Errorf("Decode(Append(%d)) = %d", v, got)
		}
	}
}

func TestVarIntShortestEncoding(t *testing.T) {
	t.Parallel()
	cases := []struct {
		v    uint64
		want int
	}{
		{0, 1},
		{63, 1},
		{64, 2},
		{16383, 2},
		{16384, 4},
		{1073741823, 4},
		{1073741824, 8},
	}
	for _, c := range cases {
		if got := Len(c.v); got != c.want {
			t.Errorf("Len(%d) = %d, want %d", c.v, got, c.want)
		}
		if got := len(Append(nil, c.v)); got != c.want {
			t.Errorf("len(Append(nil, %d)) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestVarIntNonCanonicalRoundTrips(t *testing.T) {
	t.Parallel()
	// 2-byte encoding of 0: high two bits = 01, remaining 14 bits = 0.
	nonCanonical := []byte{0x40, 0x00}
	got, n, err := Decode(nonCanonical)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("consumed %d bytes, want 2", n)
	}
	if got != 0 {
		t.Errorf("decoded %d, want 0", got)
	}
}

func TestDecodeNotEnoughBytes(t *testing.T) {
	t.Parallel()
	// First byte claims an 8-byte encoding but only 3 bytes are present.
	truncated := []byte{0xC0, 0x01, 0x02}
	if _, _, err := Decode(truncated); err != ErrNotEnoughBytes {
		t.Fatalf("err = %v, want ErrNotEnoughBytes", err)
	}
	if _, _, err := Decode(nil); err != ErrNotEnoughBytes {
		t.Fatalf("err = %v, want ErrNotEnoughBytes", err)
	}
}

func FuzzVarIntRoundTrip(f *testing.F) {
	for _, v := range []uint64{0, 1, 64, 16384, 1073741824, MaxValue} {
		f.Add(v)
	}
	f.Fuzz(func(t *testing.T, v uint64) {
		v &= MaxValue
		buf := Append(nil, v)
		got, n, err := Decode(buf)
		if err != nil {
			t.Fatalf("Decode(%d): %v", v, err)
		}
		if n != len(buf) || got != v {
			t.Fatalf("round trip failed for %d: got=%d n=%d len=%d", v, got, n, len(buf))
		}
	})
}

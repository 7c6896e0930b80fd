package ddsview

import "testing"

func TestByteReaderDegradesToZero(t *testing.T) {
	r := byteReader{rest: []byte{0x44, 0x44, 0x53, 0x20, 0xaa, 0xbb}}

	if got := r.u32(); got != Magic {
		t.Fatalf("first read = %#x, want %#x", got, Magic)
	}
	if r.remaining() != 2 {
		t.Fatalf("remaining = %d, want 2", r.remaining())
	}

	for i := range 3 {
		if got := r.u32(); got != 0 {
			t.Fatalf("read %d past end = %#x, want 0", i, got)
		}
		if r.remaining() != 0 {
			t.Fatalf("remaining after short read = %d, want 0", r.remaining())
		}
	}
}

func TestReadHeaderFieldOrder(t *testing.T) {
	want := mustHeader(t, FormatDXT5, 256, 128, 9)
	want.Reserved1[1] = 0x31464e45
	want.Caps2 = 0x1234
	want.Reserved2 = 7

	raw, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(raw) != HeaderSize {
		t.Fatalf("header length = %d, want %d", len(raw), HeaderSize)
	}

	r := byteReader{rest: raw}
	if got := readHeader(&r); got != want {
		t.Fatalf("readHeader mismatch:\n got %+v\nwant %+v", got, want)
	}
	if r.remaining() != 0 {
		t.Fatalf("%d bytes left after header", r.remaining())
	}
}

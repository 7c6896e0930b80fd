package ddsview

import "encoding/binary"

// byteReader decodes little-endian header words from a slice. Once fewer than
// four bytes remain it yields zero for every further read and reports nothing
// left, so the validator always fails on its own length checks instead of a
// short read.
type byteReader struct {
	rest []byte
}

func (r *byteReader) u32() uint32 {
	if len(r.rest) < 4 {
		r.rest = r.rest[len(r.rest):]
		return 0
	}

	v := binary.LittleEndian.Uint32(r.rest)
	r.rest = r.rest[4:]
	return v
}

func (r *byteReader) remaining() int {
	return len(r.rest)
}

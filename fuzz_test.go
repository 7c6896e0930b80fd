package ddsview

import (
	"errors"
	"hash/crc32"
	"testing"
)

func FuzzParse(f *testing.F) {
	seed := func(hdr Header, err error, payload int) {
		if err != nil {
			f.Fatalf("seed header: %v", err)
		}
		f.Add(buildDDS(f, hdr, make([]byte, payload)))
	}

	hdr, err := NewHeader(FormatDXT1, 4, 4, 1)
	seed(hdr, err, 8)
	hdr, err = NewHeader(FormatDXT5, 16, 8, 5)
	seed(hdr, err, 256)
	hdr, err = NewHeader(FormatBGR, 7, 3, 3)
	seed(hdr, err, 100)
	hdr, err = NewHeader(FormatLuminanceAlpha, 1, 9, 0)
	seed(hdr, err, 64)
	hdr, err = NewCubeHeader(FormatDXT3, 8, 4)
	seed(hdr, err, 6*112)
	f.Add([]byte("DDS"))
	f.Add([]byte("DDS \x7c"))

	f.Fuzz(func(t *testing.T, buf []byte) {
		tex, err := Parse(buf)
		if err != nil {
			if !errors.Is(err, ErrRejected) {
				t.Fatalf("error %v does not wrap ErrRejected", err)
			}
			if tex != nil {
				t.Fatalf("rejected parse returned a texture")
			}
			return
		}

		if !IsDDS(buf) {
			t.Fatalf("accepted buffer without magic")
		}
		if tex.Offset != DataOffset || tex.Offset+len(tex.Data) > len(buf) {
			t.Fatalf("view [%d,%d) outside %d bytes", tex.Offset, tex.Offset+len(tex.Data), len(buf))
		}
		if tex.MipLevels < 1 || tex.MipLevels > MaxMipLevels(tex.Width, tex.Height) {
			t.Fatalf("MipLevels %d for %dx%d", tex.MipLevels, tex.Width, tex.Height)
		}

		// Touch every byte of every surface so an out-of-bounds view panics here.
		var sum uint32
		for s := range tex.Surfaces() {
			if s.Offset < 0 || s.Offset+len(s.Data) > len(tex.Data) {
				t.Fatalf("surface %s/%d [%d,%d) outside %d bytes",
					s.Face, s.Level, s.Offset, s.Offset+len(s.Data), len(tex.Data))
			}
			if cap(s.Data) != len(s.Data) {
				t.Fatalf("surface %s/%d cap %d > len %d", s.Face, s.Level, cap(s.Data), len(s.Data))
			}
			sum = crc32.Update(sum, crc32.IEEETable, s.Data)
		}
		_ = sum
	})
}

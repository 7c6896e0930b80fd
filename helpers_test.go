package ddsview

import (
	"bytes"
	"testing"

	"github.com/woozymasta/bcn"
)

// buildDDS serialises magic, hdr and payload into one buffer.
func buildDDS(tb testing.TB, hdr Header, payload []byte) []byte {
	tb.Helper()

	var magic bytes.Buffer
	if err := bcn.WriteDDSMagic(&magic); err != nil {
		tb.Fatalf("WriteDDSMagic: %v", err)
	}
	buf, err := hdr.AppendBinary(magic.Bytes())
	if err != nil {
		tb.Fatalf("AppendBinary: %v", err)
	}
	return append(buf, payload...)
}

// mustHeader wraps NewHeader for fixtures.
func mustHeader(tb testing.TB, format Format, width, height, levels uint32) Header {
	tb.Helper()

	hdr, err := NewHeader(format, width, height, levels)
	if err != nil {
		tb.Fatalf("NewHeader(%s, %d, %d, %d): %v", format, width, height, levels, err)
	}
	return hdr
}

// chainPayload fills every level of a width x height chain with its own
// marker byte (level+1 + 16*face) so views can be checked for position.
func chainPayload(tb testing.TB, format Format, width, height, levels uint32, faces int) []byte {
	tb.Helper()

	var out []byte
	for face := range faces {
		for level := range levels {
			size, err := LevelSize(format, mipDimension(width, level), mipDimension(height, level))
			if err != nil {
				tb.Fatalf("LevelSize: %v", err)
			}
			marker := byte(face*16) + byte(level) + 1
			for range size {
				out = append(out, marker)
			}
		}
	}
	return out
}

package edds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/woozymasta/bcn"

	"github.com/woozymasta/ddsview"
)

// IsEDDS reports whether buf looks like an EDDS container: DDS magic with a
// COPY or LZ4 block magic right after the header.
func IsEDDS(buf []byte) bool {
	if !ddsview.IsDDS(buf) || len(buf) < ddsview.DataOffset+4 {
		return false
	}

	magic := string(buf[ddsview.DataOffset : ddsview.DataOffset+4])
	return magic == magicCOPY || magic == magicLZ4
}

// Flatten inflates an EDDS container into a plain DDS buffer with the same
// header and the levels stored largest first. The result still has to go
// through ddsview.Parse before use.
func Flatten(buf []byte) ([]byte, error) {
	hdr, body, err := ddsview.ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	if kind := hdr.Kind(); kind != ddsview.KindPlane {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	if !IsEDDS(buf) {
		return nil, ErrNotEDDS
	}

	format, err := ddsview.ClassifyPixelFormat(hdr.PixelFormat)
	if err != nil {
		return nil, err
	}

	levels := hdr.MipLevels()
	if levels == 0 {
		levels = 1
	}
	if limit := ddsview.MaxMipLevels(hdr.Width, hdr.Height); levels > limit {
		return nil, fmt.Errorf("%w: %d levels, %dx%d allows %d", ddsview.ErrMipCount, levels, hdr.Width, hdr.Height, limit)
	}

	blocks, err := splitBlocks(body, levels)
	if err != nil {
		return nil, err
	}

	// Parse reads a zero count as a full chain.
	hdr.MipMapCount = levels
	if levels > 1 {
		hdr.Flags |= uint32(bcn.DDSFlagMipmapCount)
		hdr.Caps |= uint32(bcn.DDSCapsComplex | bcn.DDSCapsMipmap)
	}

	var head bytes.Buffer
	head.Grow(ddsview.DataOffset + len(body))
	if err := writeHeader(&head, &hdr); err != nil {
		return nil, err
	}
	out := head.Bytes()

	// Blocks run smallest to largest; DDS wants level 0 first.
	for level := range levels {
		w := max(hdr.Width>>level, 1)
		h := max(hdr.Height>>level, 1)
		size, err := ddsview.LevelSize(format, w, h)
		if err != nil {
			return nil, err
		}

		out, err = inflate(out, blocks[levels-1-level], int(size))
		if err != nil {
			return nil, fmt.Errorf("%w: mipmap %d: %w", ErrInflateBlock, level, err)
		}
	}

	return out, nil
}

// Pack converts a plain 2D DDS buffer into an EDDS container. With compress
// false every level is stored as a COPY block.
func Pack(dds []byte, compress bool) ([]byte, error) {
	tex, err := ddsview.Parse(dds)
	if err != nil {
		return nil, err
	}
	if tex.Kind != ddsview.KindPlane {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, tex.Kind)
	}

	blocks := make([]block, tex.MipLevels)
	for s := range tex.Surfaces() {
		b := block{magic: magicCOPY, body: s.Data}
		if compress {
			if b, err = deflate(s.Data); err != nil {
				return nil, fmt.Errorf("%w: mipmap %d: %w", ErrPackBlock, s.Level, err)
			}
		}
		blocks[s.Level] = b
	}

	hdr := tex.Header
	hdr.MipMapCount = tex.MipLevels
	hdr.Reserved1 = enfusionReserved1()

	var out bytes.Buffer
	if err := writeHeader(&out, &hdr); err != nil {
		return nil, err
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		size, err := i32FromInt(len(blocks[i].body))
		if err != nil {
			return nil, fmt.Errorf("%w: mipmap %d: %w", ErrPackBlock, i, err)
		}
		out.WriteString(blocks[i].magic)
		_ = binary.Write(&out, binary.LittleEndian, size)
	}
	for i := len(blocks) - 1; i >= 0; i-- {
		out.Write(blocks[i].body)
	}

	return out.Bytes(), nil
}

// writeHeader writes the DDS magic and hdr.
func writeHeader(w io.Writer, hdr *ddsview.Header) error {
	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: %v", ddsview.ErrWriteDDSMagic, err)
	}
	if err := bcn.WriteDDSHeader(w, (*bcn.DDSHeader)(hdr)); err != nil {
		return fmt.Errorf("%w: %v", ddsview.ErrWriteDDSHeader, err)
	}

	return nil
}

func enfusionReserved1() [11]uint32 {
	return [11]uint32{
		0,
		0x31464e45, // "ENF1"
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
}

/*
Package edds converts between plain DDS buffers and Arma/DayZ EDDS (Enfusion
DDS) containers.

EDDS stores the DDS header followed by a block table and block bodies per
mipmap level, smallest level first. Blocks are either uncompressed (COPY) or
an LZ4 chunk stream with a rolling 64KB dictionary. Flatten turns such a
buffer into a plain DDS image (largest level first) that ddsview.Parse
accepts; Pack does the opposite.
*/
package edds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/pierrec/lz4/v4"
)

const (
	magicCOPY = "COPY"
	magicLZ4  = "LZ4 "

	// chunkSize is the Enfusion chunk size for LZ4 streams, and also the
	// dictionary window.
	chunkSize = 64 * 1024

	// Blocks smaller than this are never compressed.
	minCompressSize = 1024
	// Compression must save at least 15% or the block is stored as COPY.
	maxCompressRatio = 0.85
	// LZ4 cannot expand input by more than this factor.
	maxLZ4Expansion = 255

	chunkLast  = 0x80
	tableEntry = 8
)

// block is one mip level as stored in the container.
type block struct {
	magic string
	body  []byte
}

// splitBlocks reads levels table entries from buf and slices each body out
// of the bytes following the table. Bodies alias buf.
func splitBlocks(buf []byte, levels uint32) ([]block, error) {
	tableLen := uint64(levels) * tableEntry
	if tableLen > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: %d entries, %d bytes", ErrBlockTableTruncated, levels, len(buf))
	}

	table, bodies := buf[:tableLen], buf[tableLen:]
	blocks := make([]block, levels)
	for i := range blocks {
		entry := table[i*tableEntry : (i+1)*tableEntry]
		magic := string(entry[:4])
		size := int32(binary.LittleEndian.Uint32(entry[4:])) //nolint:gosec // sign is checked

		if magic != magicCOPY && magic != magicLZ4 {
			return nil, fmt.Errorf("%w: %d: %q", ErrUnknownBlockMagic, i, magic)
		}
		if size < 0 {
			return nil, fmt.Errorf("%w: %d: %d", ErrBlockTableInvalidSize, i, size)
		}
		if int(size) > len(bodies) {
			return nil, fmt.Errorf("%w: %d: %d of %d bytes", ErrBlockBodyTruncated, i, size, len(bodies))
		}

		blocks[i] = block{magic: magic, body: bodies[:size:size]}
		bodies = bodies[size:]
	}

	return blocks, nil
}

// inflate appends the decoded contents of b, which must be exactly expected
// bytes long, to dst.
func inflate(dst []byte, b block, expected int) ([]byte, error) {
	switch b.magic {
	case magicCOPY:
		if len(b.body) != expected {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, expected, len(b.body))
		}
		return append(dst, b.body...), nil
	case magicLZ4:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockMagic, b.magic)
	}

	data := b.body
	if len(data) >= 8 {
		// Optional uncompressed-size prefix ahead of the first chunk header.
		peek := int(binary.LittleEndian.Uint32(data[:4]))
		c0 := int(data[4]) | int(data[5])<<8 | int(data[6])<<16
		if peek == expected && c0 > 0 && c0 < 1<<20 {
			data = data[4:]
		}
	}
	if expected <= 0 || expected/maxLZ4Expansion > len(data) {
		return nil, fmt.Errorf("%w: %d from %d compressed bytes", ErrInvalidTargetSize, expected, len(data))
	}

	start := len(dst)
	dst = slices.Grow(dst, expected)[:start+expected]
	target := dst[start:]
	outIdx := 0

	for {
		if len(data) < 4 {
			return nil, fmt.Errorf("%w: need 4 bytes header, have %d", ErrChunkStreamTruncated, len(data))
		}

		cSize := int(data[0]) | int(data[1])<<8 | int(data[2])<<16
		flags := data[3]
		data = data[4:]
		if flags&^chunkLast != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if cSize <= 0 || cSize > len(data) {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, cSize, len(data))
		}

		remaining := expected - outIdx
		if remaining <= 0 {
			return nil, ErrDecodeOverrun
		}
		want := min(chunkSize, remaining)

		// The output is contiguous, so the last 64KB already decoded is the
		// rolling dictionary.
		dict := target[max(0, outIdx-chunkSize):outIdx]
		n, err := lz4.UncompressBlockWithDict(data[:cSize], target[outIdx:outIdx+want], dict)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}
		outIdx += n
		data = data[cSize:]

		if flags&chunkLast != 0 {
			break
		}
	}

	if outIdx != expected {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, expected, outIdx)
	}
	if len(data) != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, len(data))
	}

	return dst, nil
}

// deflate packs raw level data into an LZ4 chunk-stream block, falling back
// to COPY when the data is small or does not compress well.
func deflate(data []byte) (block, error) {
	if _, err := i32FromInt(len(data)); err != nil {
		return block{}, err
	}
	if len(data) < minCompressSize {
		return block{magic: magicCOPY, body: data}, nil
	}

	var stream bytes.Buffer
	stream.Grow(4 + len(data))
	_ = binary.Write(&stream, binary.LittleEndian, uint32(len(data))) //nolint:gosec // checked above

	compressBuf := make([]byte, lz4.CompressBlockBound(chunkSize))
	for i := 0; i < len(data); i += chunkSize {
		end := min(i+chunkSize, len(data))
		src := data[i:end]

		cn, err := lz4.CompressBlockHC(src, compressBuf, 0, nil, nil)
		if err != nil {
			return block{}, fmt.Errorf("%w: %v", ErrLZ4Compress, err)
		}
		if cn == 0 || float64(cn) > float64(len(src))*maxCompressRatio {
			return block{magic: magicCOPY, body: data}, nil
		}
		if cn > 0x7FFFFF {
			return block{}, fmt.Errorf("%w: %d", ErrChunkTooLarge, cn)
		}

		flags := byte(0)
		if end == len(data) {
			flags = chunkLast
		}
		stream.Write([]byte{byte(cn), byte(cn >> 8), byte(cn >> 16), flags})
		stream.Write(compressBuf[:cn])
	}

	if _, err := i32FromInt(stream.Len()); err != nil {
		return block{}, err
	}
	if float64(stream.Len()) > float64(len(data))*maxCompressRatio {
		return block{magic: magicCOPY, body: data}, nil
	}

	return block{magic: magicLZ4, body: stream.Bytes()}, nil
}

// i32FromInt converts an int to an int32.
func i32FromInt(n int) (int32, error) {
	if n < 0 || n > int(^uint32(0)>>1) {
		return 0, fmt.Errorf("%w: %d bytes", ErrSizeOverflow, n)
	}

	return int32(n), nil
}

package edds

import "errors"

// Container errors.
var (
	// ErrNotEDDS indicates no COPY/LZ4 block table follows the DDS header.
	ErrNotEDDS = errors.New("not an EDDS container")
	// ErrUnsupportedKind indicates a cube or volume texture.
	ErrUnsupportedKind = errors.New("only 2D EDDS textures are supported")
	// ErrSizeOverflow indicates a block does not fit the int32 size field.
	ErrSizeOverflow = errors.New("block size overflow")
	// ErrBlockTableTruncated indicates the table runs past the buffer.
	ErrBlockTableTruncated = errors.New("block table truncated")
	// ErrBlockTableInvalidSize indicates a negative size in a table entry.
	ErrBlockTableInvalidSize = errors.New("negative block size in table")
	// ErrBlockBodyTruncated indicates a block body runs past the buffer.
	ErrBlockBodyTruncated = errors.New("block body truncated")
	// ErrUnknownBlockMagic indicates an entry that is neither COPY nor LZ4.
	ErrUnknownBlockMagic = errors.New("unknown block magic")
	// ErrInflateBlock wraps the failure of one mip level in Flatten.
	ErrInflateBlock = errors.New("inflate block failed")
	// ErrPackBlock wraps the failure of one mip level in Pack.
	ErrPackBlock = errors.New("pack block failed")
)

// Block codec errors.
var (
	// ErrCopySizeMismatch indicates a COPY body whose length is not the level size.
	ErrCopySizeMismatch = errors.New("COPY block length differs from level size")
	// ErrLZ4Compress indicates the LZ4 encoder failed.
	ErrLZ4Compress = errors.New("LZ4 compression failed")
	// ErrLZ4Decode indicates the LZ4 decoder failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrChunkTooLarge indicates a compressed chunk above the 24-bit size field.
	ErrChunkTooLarge = errors.New("compressed chunk exceeds 24-bit size")
	// ErrInvalidTargetSize indicates a level size implausible for the
	// amount of compressed input.
	ErrInvalidTargetSize = errors.New("implausible decoded size")
	// ErrChunkStreamTruncated indicates a chunk header cut short.
	ErrChunkStreamTruncated = errors.New("chunk stream truncated")
	// ErrUnknownLZ4Flags indicates chunk flags other than the last-chunk bit.
	ErrUnknownLZ4Flags = errors.New("unknown chunk flags")
	// ErrInvalidChunkSize indicates a zero chunk size or one past the block.
	ErrInvalidChunkSize = errors.New("invalid chunk size")
	// ErrDecodeOverrun indicates more chunks than the level size needs.
	ErrDecodeOverrun = errors.New("chunk stream overruns level size")
	// ErrDecodedSizeMismatch indicates the stream ended short of the level size.
	ErrDecodedSizeMismatch = errors.New("decoded length differs from level size")
	// ErrBlockLengthMismatch indicates bytes left after the last chunk.
	ErrBlockLengthMismatch = errors.New("trailing bytes after last chunk")
)

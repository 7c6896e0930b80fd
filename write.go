package ddsview

import (
	"fmt"
	"image"
	"io"

	"github.com/woozymasta/bcn"
)

// EncodeOptions configures Encode. The zero value writes BGRA with a full
// mip chain.
type EncodeOptions struct {
	// Format defaults to FormatBGRA. BGR and luminance/alpha cannot be
	// produced from an image.
	Format Format
	// MaxMipMaps limits the chain length; 0 means full chain.
	MaxMipMaps int
	// EncodeOptions are passed to the BCn encoder (e.g. QualityLevel, Workers).
	EncodeOptions *bcn.EncodeOptions
}

// Encode writes img as a DDS file, generating mipmaps and block-encoding
// each level with bcn.
func Encode(w io.Writer, img image.Image, opts *EncodeOptions) error {
	format := FormatBGRA
	maxMipMaps := 0
	var encOpts *bcn.EncodeOptions
	if opts != nil {
		if opts.Format != 0 {
			format = opts.Format
		}
		maxMipMaps = opts.MaxMipMaps
		encOpts = opts.EncodeOptions
	}

	codec := format.BCn()
	if codec == bcn.FormatUnknown {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}

	bounds := img.Bounds()
	w32, err := u32FromInt(bounds.Dx())
	if err != nil {
		return err
	}
	h32, err := u32FromInt(bounds.Dy())
	if err != nil {
		return err
	}

	count := int(MaxMipLevels(w32, h32))
	if maxMipMaps > 0 && maxMipMaps < count {
		count = maxMipMaps
	}
	if count < 1 {
		count = 1
	}

	mips := bcn.GenerateMipmaps(img, false)
	if len(mips) > count {
		mips = mips[:count]
	}

	payloads := make([][]byte, len(mips))
	for i, mip := range mips {
		data, _, _, err := bcn.EncodeImageWithOptions(mip, codec, encOpts)
		if err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrEncodeMipmap, i, err)
		}
		payloads[i] = data
	}

	return EncodeLevels(w, format, bounds.Dx(), bounds.Dy(), payloads)
}

// EncodeLevels writes a DDS file from pre-encoded levels.
// The levels slice must be ordered from largest to smallest.
func EncodeLevels(w io.Writer, format Format, width, height int, levels [][]byte) error {
	w32, h32, count, err := checkLevels(format, width, height, levels)
	if err != nil {
		return err
	}

	hdr, err := NewHeader(format, w32, h32, count)
	if err != nil {
		return err
	}

	return writeContainer(w, &hdr, levels)
}

// EncodeCube writes a cube map from pre-encoded face chains, each ordered
// from largest to smallest and all of the same length.
func EncodeCube(w io.Writer, format Format, size int, faces [NumFaces][][]byte) error {
	var count uint32
	var s32 uint32
	all := make([][]byte, 0, NumFaces*len(faces[0]))
	for i, levels := range faces {
		w32, _, n, err := checkLevels(format, size, size, levels)
		if err != nil {
			return fmt.Errorf("face %s: %w", Face(i), err)
		}
		if i > 0 && n != count {
			return fmt.Errorf("%w: face %s has %d levels, want %d", ErrMipmapSizeMismatch, Face(i), n, count)
		}
		count, s32 = n, w32
		all = append(all, levels...)
	}

	hdr, err := NewCubeHeader(format, s32, count)
	if err != nil {
		return err
	}

	return writeContainer(w, &hdr, all)
}

// checkLevels validates each level length against LevelSize.
func checkLevels(format Format, width, height int, levels [][]byte) (uint32, uint32, uint32, error) {
	if len(levels) == 0 {
		return 0, 0, 0, ErrEmptyMipmaps
	}
	if _, size := format.blockInfo(); size == 0 {
		return 0, 0, 0, ErrInvalidFormat
	}

	w32, err := u32FromInt(width)
	if err != nil {
		return 0, 0, 0, err
	}
	h32, err := u32FromInt(height)
	if err != nil {
		return 0, 0, 0, err
	}
	count, err := u32FromInt(len(levels))
	if err != nil {
		return 0, 0, 0, err
	}
	if limit := MaxMipLevels(w32, h32); count > limit {
		return 0, 0, 0, fmt.Errorf("%w: %d levels, %dx%d allows %d", ErrMipCount, count, w32, h32, limit)
	}

	for i, level := range levels {
		// #nosec G115 -- i < count, which fits uint32.
		l := uint32(i)
		expected, err := LevelSize(format, mipDimension(w32, l), mipDimension(h32, l))
		if err != nil {
			return 0, 0, 0, err
		}
		if uint64(len(level)) != uint64(expected) {
			return 0, 0, 0, fmt.Errorf("%w: mipmap %d: expected %d, got %d", ErrMipmapSizeMismatch, i, expected, len(level))
		}
	}

	return w32, h32, count, nil
}

func writeContainer(w io.Writer, hdr *Header, chunks [][]byte) error {
	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSMagic, err)
	}

	if err := bcn.WriteDDSHeader(w, (*bcn.DDSHeader)(hdr)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSHeader, err)
	}

	for i, chunk := range chunks {
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("%w: chunk %d: %v", ErrWriteLevel, i, err)
		}
	}

	return nil
}

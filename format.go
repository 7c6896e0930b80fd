package ddsview

import (
	"fmt"
	"strings"

	"github.com/woozymasta/bcn"
)

// Format identifies the pixel encoding of a texture. The values are the
// matching OpenGL format enums so they can be passed to an upload call as is.
type Format uint32

const (
	FormatDXT1           Format = 0x83F1 // GL_COMPRESSED_RGBA_S3TC_DXT1_EXT
	FormatDXT3           Format = 0x83F2 // GL_COMPRESSED_RGBA_S3TC_DXT3_EXT
	FormatDXT5           Format = 0x83F3 // GL_COMPRESSED_RGBA_S3TC_DXT5_EXT
	FormatBGR            Format = 0x80E0 // GL_BGR
	FormatBGRA           Format = 0x80E1 // GL_BGRA
	FormatLuminanceAlpha Format = 0x190A // GL_LUMINANCE_ALPHA
)

var (
	fourCCDXT1 = makeFourCC('D', 'X', 'T', '1')
	fourCCDXT3 = makeFourCC('D', 'X', 'T', '3')
	fourCCDXT5 = makeFourCC('D', 'X', 'T', '5')
)

func (f Format) String() string {
	switch f {
	case FormatDXT1:
		return "DXT1"
	case FormatDXT3:
		return "DXT3"
	case FormatDXT5:
		return "DXT5"
	case FormatBGR:
		return "BGR"
	case FormatBGRA:
		return "BGRA"
	case FormatLuminanceAlpha:
		return "LUMINANCE_ALPHA"
	default:
		return fmt.Sprintf("Format(0x%x)", uint32(f))
	}
}

// blockInfo is the single source of block geometry: edge length in pixels
// and bytes per block. Both validation and level lookup go through it.
func (f Format) blockInfo() (dim, size uint32) {
	switch f {
	case FormatDXT1:
		return 4, 8
	case FormatDXT3, FormatDXT5:
		return 4, 16
	case FormatBGR:
		return 1, 3
	case FormatBGRA:
		return 1, 4
	case FormatLuminanceAlpha:
		return 1, 2
	default:
		return 0, 0
	}
}

// Compressed reports whether f is a block-compressed format.
func (f Format) Compressed() bool {
	dim, _ := f.blockInfo()
	return dim > 1
}

// BlockSize returns the bytes per block (per pixel for uncompressed formats).
func (f Format) BlockSize() uint32 {
	_, size := f.blockInfo()
	return size
}

// BCn maps f to the bcn codec format. BGR and luminance/alpha have no direct
// counterpart and map to bcn.FormatUnknown.
func (f Format) BCn() bcn.Format {
	switch f {
	case FormatDXT1:
		return bcn.FormatDXT1
	case FormatDXT3:
		return bcn.FormatDXT3
	case FormatDXT5:
		return bcn.FormatDXT5
	case FormatBGRA:
		return bcn.FormatBGRA8
	default:
		return bcn.FormatUnknown
	}
}

func (f Format) fourCC() uint32 {
	switch f {
	case FormatDXT1:
		return fourCCDXT1
	case FormatDXT3:
		return fourCCDXT3
	case FormatDXT5:
		return fourCCDXT5
	default:
		return 0
	}
}

// ParseFormat resolves a format name as printed by Format.String, ignoring
// case. "la" is accepted for luminance/alpha.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "dxt1":
		return FormatDXT1, nil
	case "dxt3":
		return FormatDXT3, nil
	case "dxt5":
		return FormatDXT5, nil
	case "bgr":
		return FormatBGR, nil
	case "bgra":
		return FormatBGRA, nil
	case "la", "luminance_alpha":
		return FormatLuminanceAlpha, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
	}
}

// ClassifyPixelFormat picks the Format described by pf. Only DXT1/3/5
// FourCCs, exact-mask 24-bit BGR and 32-bit BGRA, and luminance/alpha are
// recognised; every other descriptor is ErrUnsupportedFormat.
func ClassifyPixelFormat(pf PixelFormat) (Format, error) {
	switch {
	case pf.Flags&pfFourCC != 0:
		switch pf.FourCC {
		case fourCCDXT1:
			return FormatDXT1, nil
		case fourCCDXT3:
			return FormatDXT3, nil
		case fourCCDXT5:
			return FormatDXT5, nil
		default:
			// DXT2/DXT4 are premultiplied, DX10 needs the extended header.
			return 0, fmt.Errorf("%w: FourCC %q", ErrUnsupportedFormat, fourCCString(pf.FourCC))
		}

	case pf.Flags&pfRGB != 0:
		if pf.RBitMask != 0x00ff0000 || pf.GBitMask != 0x0000ff00 || pf.BBitMask != 0x000000ff {
			return 0, fmt.Errorf("%w: RGB masks %08x/%08x/%08x",
				ErrUnsupportedFormat, pf.RBitMask, pf.GBitMask, pf.BBitMask)
		}
		if pf.Flags&pfAlphaPixels != 0 {
			if pf.RGBBitCount != 32 || pf.ABitMask != 0xff000000 {
				return 0, fmt.Errorf("%w: RGBA %d bits, alpha mask %08x",
					ErrUnsupportedFormat, pf.RGBBitCount, pf.ABitMask)
			}
			return FormatBGRA, nil
		}
		if pf.RGBBitCount != 24 {
			return 0, fmt.Errorf("%w: RGB %d bits", ErrUnsupportedFormat, pf.RGBBitCount)
		}
		return FormatBGR, nil

	case pf.Flags&(pfLuminance|pfAlpha) != 0:
		return FormatLuminanceAlpha, nil

	default:
		return 0, fmt.Errorf("%w: flags 0x%x", ErrUnsupportedFormat, pf.Flags)
	}
}

// LevelSize returns the byte length of one width x height image in format f:
// whole blocks in each direction times the block size, never less than one
// block.
func LevelSize(f Format, width, height uint32) (uint32, error) {
	dim, size := f.blockInfo()
	if dim == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	blocks, err := mulU32(ceilDiv(width, dim), ceilDiv(height, dim))
	if err != nil {
		return 0, err
	}
	n, err := mulU32(blocks, size)
	if err != nil {
		return 0, err
	}
	if n < size {
		n = size
	}

	return n, nil
}

// rowPitch returns the bytes per row of an uncompressed level.
func rowPitch(f Format, width uint32) (uint32, error) {
	_, size := f.blockInfo()
	if size == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	return mulU32(width, size)
}

func fourCCString(value uint32) string {
	return string([]byte{
		byte(value & 0xff),
		byte((value >> 8) & 0xff),
		byte((value >> 16) & 0xff),
		byte((value >> 24) & 0xff),
	})
}

func makeFourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

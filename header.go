package ddsview

import (
	"bytes"
	"fmt"

	"github.com/woozymasta/bcn"
)

const (
	// Magic is "DDS " read as a little-endian uint32.
	Magic = 0x20534444
	// HeaderSize is the fixed header length following the magic.
	HeaderSize = 124
	// PixelFormatSize is the fixed size of the embedded pixel format.
	PixelFormatSize = 32
	// DataOffset is where the payload starts in a plain DDS file.
	DataOffset = 4 + HeaderSize
)

// Header flags.
const (
	flagCaps        = uint32(bcn.DDSFlagCaps)
	flagHeight      = uint32(bcn.DDSFlagHeight)
	flagWidth       = uint32(bcn.DDSFlagWidth)
	flagPitch       = uint32(bcn.DDSFlagPitch)
	flagPixelFormat = uint32(bcn.DDSFlagPixelFormat)
	flagMipmapCount = uint32(bcn.DDSFlagMipmapCount)
	flagLinearSize  = uint32(bcn.DDSFlagLinearSize)

	flagsRequired  = flagCaps | flagHeight | flagWidth | flagPixelFormat
	pitchAndLinear = flagPitch | flagLinearSize
)

// Pixel format flags.
const (
	pfAlphaPixels = uint32(bcn.DDSPFAlphaPixels)
	pfAlpha       = uint32(bcn.DDSPFAlpha)
	pfFourCC      = uint32(bcn.DDSPFFourCC)
	pfRGB         = uint32(bcn.DDSPFRGB)
	pfLuminance   = uint32(bcn.DDSPFLuminance)
)

// Capability bits.
const (
	capsAlpha   = uint32(0x2)
	capsComplex = uint32(bcn.DDSCapsComplex)
	capsTexture = uint32(bcn.DDSCapsTexture)
	capsMipmap  = uint32(bcn.DDSCapsMipmap)

	caps2Cubemap   = uint32(bcn.DDSCaps2Cubemap)
	caps2CubeFaces = uint32(0xFC00) // +X, -X, +Y, -Y, +Z, -Z
	caps2Volume    = uint32(0x200000)
)

// PixelFormat is the 32-byte pixel format descriptor embedded in the header.
type PixelFormat = bcn.DDSPixelFormat

// Header is the fixed 124-byte DDS header. It shares its layout with
// bcn.DDSHeader so it can be written by bcn.WriteDDSHeader.
type Header bcn.DDSHeader

// Kind is the texture type derived from the capability bits.
type Kind uint8

const (
	KindNone Kind = iota
	KindPlane
	KindCube
	KindVolume
)

func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "2D"
	case KindCube:
		return "cube"
	case KindVolume:
		return "volume"
	default:
		return "none"
	}
}

// Kind reports the texture type. A cube map needs the cubemap bit and all
// six face bits; anything else carrying the volume bit is a volume.
func (h *Header) Kind() Kind {
	switch {
	case h.Caps2&caps2Cubemap != 0 && h.Caps2&caps2CubeFaces == caps2CubeFaces:
		return KindCube
	case h.Caps2&caps2Volume != 0:
		return KindVolume
	default:
		return KindPlane
	}
}

// MipLevels reports the level count the header declares, before any
// validation: one unless the mipmap capability is set.
func (h *Header) MipLevels() uint32 {
	if h.Caps&capsMipmap == 0 {
		return 1
	}

	return h.MipMapCount
}

// readHeader pulls the header words in file order.
func readHeader(r *byteReader) Header {
	var h Header
	h.Size = r.u32()
	h.Flags = r.u32()
	h.Height = r.u32()
	h.Width = r.u32()
	h.PitchOrLinearSize = r.u32()
	h.Depth = r.u32()
	h.MipMapCount = r.u32()
	for i := range h.Reserved1 {
		h.Reserved1[i] = r.u32()
	}
	h.PixelFormat.Size = r.u32()
	h.PixelFormat.Flags = r.u32()
	h.PixelFormat.FourCC = r.u32()
	h.PixelFormat.RGBBitCount = r.u32()
	h.PixelFormat.RBitMask = r.u32()
	h.PixelFormat.GBitMask = r.u32()
	h.PixelFormat.BBitMask = r.u32()
	h.PixelFormat.ABitMask = r.u32()
	h.Caps = r.u32()
	h.Caps2 = r.u32()
	h.Caps3 = r.u32()
	h.Caps4 = r.u32()
	h.Reserved2 = r.u32()
	return h
}

// ParseHeader checks the magic and reads the raw header without validating
// it. The returned payload aliases buf.
func ParseHeader(buf []byte) (Header, []byte, error) {
	r := byteReader{rest: buf}
	if r.u32() != Magic {
		return Header{}, nil, reject(ErrNotDDS, "")
	}
	if r.remaining() < HeaderSize {
		return Header{}, nil, reject(ErrTruncatedHeader, "%d bytes after magic", r.remaining())
	}

	h := readHeader(&r)
	return h, r.rest, nil
}

// AppendBinary appends the 124 header bytes to b.
func (h *Header) AppendBinary(b []byte) ([]byte, error) {
	raw, err := h.MarshalBinary()
	if err != nil {
		return nil, err
	}

	return append(b, raw...), nil
}

// MarshalBinary returns the 124 header bytes.
func (h *Header) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderSize)
	if err := bcn.WriteDDSHeader(&buf, (*bcn.DDSHeader)(h)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteDDSHeader, err)
	}

	return buf.Bytes(), nil
}

// NewHeader builds a header for a plain texture of the given format and
// level count, with the pitch or linear size filled in.
func NewHeader(format Format, width, height, mipMapCount uint32) (Header, error) {
	flags := flagsRequired
	caps := capsTexture
	if mipMapCount > 1 {
		flags |= flagMipmapCount
		caps |= capsComplex | capsMipmap
	}

	hdr := Header{
		Size:        HeaderSize,
		Flags:       flags,
		Height:      height,
		Width:       width,
		Depth:       1,
		MipMapCount: mipMapCount,
		Caps:        caps,
	}
	hdr.PixelFormat.Size = PixelFormatSize

	pf := &hdr.PixelFormat
	switch format {
	case FormatDXT1, FormatDXT3, FormatDXT5:
		size, err := LevelSize(format, width, height)
		if err != nil {
			return Header{}, err
		}
		hdr.Flags |= flagLinearSize
		hdr.PitchOrLinearSize = size
		pf.Flags = pfFourCC
		pf.FourCC = format.fourCC()
	case FormatBGR:
		pf.Flags = pfRGB
		pf.RGBBitCount = 24
		pf.RBitMask, pf.GBitMask, pf.BBitMask = 0x00ff0000, 0x0000ff00, 0x000000ff
	case FormatBGRA:
		pf.Flags = pfRGB | pfAlphaPixels
		pf.RGBBitCount = 32
		pf.RBitMask, pf.GBitMask, pf.BBitMask = 0x00ff0000, 0x0000ff00, 0x000000ff
		pf.ABitMask = 0xff000000
	case FormatLuminanceAlpha:
		pf.Flags = pfLuminance | pfAlphaPixels
		pf.RGBBitCount = 16
		pf.RBitMask = 0x00ff
		pf.ABitMask = 0xff00
	default:
		return Header{}, ErrInvalidFormat
	}

	if !format.Compressed() {
		pitch, err := rowPitch(format, width)
		if err != nil {
			return Header{}, err
		}
		hdr.Flags |= flagPitch
		hdr.PitchOrLinearSize = pitch
	}

	return hdr, nil
}

// NewCubeHeader builds a header for a six-face cube map with square faces.
func NewCubeHeader(format Format, size, mipMapCount uint32) (Header, error) {
	hdr, err := NewHeader(format, size, size, mipMapCount)
	if err != nil {
		return Header{}, err
	}

	hdr.Caps |= capsComplex
	hdr.Caps2 = caps2Cubemap | caps2CubeFaces
	return hdr, nil
}

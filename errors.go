package ddsview

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected is wrapped by every Parse failure. Malformed and merely
	// unsupported files are both reported through it.
	ErrRejected = errors.New("not a valid or supported DDS container")

	// ErrNotDDS indicates the magic value is missing.
	ErrNotDDS = errors.New("missing DDS magic")
	// ErrTruncatedHeader indicates fewer than 124 header bytes follow the magic.
	ErrTruncatedHeader = errors.New("truncated DDS header")
	// ErrHeaderSize indicates a wrong header or pixel format size field.
	ErrHeaderSize = errors.New("unexpected header size field")
	// ErrMissingFlags indicates caps/height/width/pixel-format flags are not all set.
	ErrMissingFlags = errors.New("required header flags missing")
	// ErrDimensions indicates zero or overflowing dimensions.
	ErrDimensions = errors.New("invalid dimensions")
	// ErrNotTexture indicates the texture capability bit is not set.
	ErrNotTexture = errors.New("texture capability missing")
	// ErrPitchAndLinear indicates both pitch and linear size flags are set.
	ErrPitchAndLinear = errors.New("both pitch and linear size specified")
	// ErrUnsupportedFormat indicates a pixel format outside the supported set.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
	// ErrMipCount indicates more mip levels than the dimensions allow.
	ErrMipCount = errors.New("mip level count exceeds maximum")
	// ErrCubeNotSquare indicates a cube map with width != height.
	ErrCubeNotSquare = errors.New("cube map faces are not square")
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrTruncatedPayload indicates the buffer is shorter than the mip chain.
	ErrTruncatedPayload = errors.New("payload shorter than mip chain")
	// ErrPitchOrLinearSize indicates pitch or linear size larger than the payload.
	ErrPitchOrLinearSize = errors.New("pitch or linear size exceeds payload")

	// ErrLevelOutOfRange indicates a mip level beyond the chain or the view.
	ErrLevelOutOfRange = errors.New("mip level out of range")
	// ErrFaceOutOfRange indicates a cube face ordinal outside +X..-Z or past the view.
	ErrFaceOutOfRange = errors.New("cube face out of range")
	// ErrNotCube indicates a cube face request on a non-cube texture.
	ErrNotCube = errors.New("texture is not a cube map")
	// ErrNotPlane indicates a plain mip request on a cube map.
	ErrNotPlane = errors.New("texture is a cube map, select a face")
	// ErrVolumeUnsupported indicates access to a volume texture payload.
	ErrVolumeUnsupported = errors.New("volume texture payload access unsupported")

	// ErrInvalidFormat indicates a format the writer cannot produce.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrEmptyMipmaps indicates missing mipmap data.
	ErrEmptyMipmaps = errors.New("empty mipmaps")
	// ErrMipmapSizeMismatch indicates mipmap payload size mismatch.
	ErrMipmapSizeMismatch = errors.New("mipmap size mismatch")
	// ErrEncodeMipmap indicates block encoding of a mip level failed.
	ErrEncodeMipmap = errors.New("encode mipmap failed")
	// ErrWriteDDSMagic indicates DDS magic write failed.
	ErrWriteDDSMagic = errors.New("writing DDS magic failed")
	// ErrWriteDDSHeader indicates DDS header write failed.
	ErrWriteDDSHeader = errors.New("writing DDS header failed")
	// ErrWriteLevel indicates a level payload write failed.
	ErrWriteLevel = errors.New("writing level data failed")
	// ErrDecodeImage indicates image decode failed.
	ErrDecodeImage = errors.New("decode image failed")
)

// reject wraps reason into an ErrRejected failure.
func reject(reason error, format string, args ...any) error {
	if format == "" {
		return fmt.Errorf("%w: %w", ErrRejected, reason)
	}

	return fmt.Errorf("%w: %w: %s", ErrRejected, reason, fmt.Sprintf(format, args...))
}

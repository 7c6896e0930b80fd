package ddsview

import (
	"fmt"
	"image"

	"github.com/woozymasta/bcn"
)

// Image decodes the surface into an image. DXT and BGRA go straight to the
// bcn decoder; BGR and luminance/alpha are first widened to BGRA8.
// Nil opts uses default decoding.
func (s Surface) Image(opts *bcn.DecodeOptions) (image.Image, error) {
	data := s.Data
	format := s.Format.BCn()

	switch s.Format {
	case FormatBGR:
		data = widenBGR(s.Data)
		format = bcn.FormatBGRA8
	case FormatLuminanceAlpha:
		data = widenLuminanceAlpha(s.Data)
		format = bcn.FormatBGRA8
	}
	if format == bcn.FormatUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.Format)
	}

	img, err := bcn.DecodeImageWithOptions(data, int(s.Width), int(s.Height), format, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %dx%d: %v", ErrDecodeImage, s.Format, s.Width, s.Height, err)
	}

	return img, nil
}

// widenBGR appends an opaque alpha byte to every pixel.
func widenBGR(src []byte) []byte {
	out := make([]byte, 0, len(src)/3*4)
	for i := 0; i+3 <= len(src); i += 3 {
		out = append(out, src[i], src[i+1], src[i+2], 0xff)
	}

	return out
}

// widenLuminanceAlpha expands L8A8 pixels into grey BGRA8.
func widenLuminanceAlpha(src []byte) []byte {
	out := make([]byte, 0, len(src)*2)
	for i := 0; i+2 <= len(src); i += 2 {
		l, a := src[i], src[i+1]
		out = append(out, l, l, l, a)
	}

	return out
}

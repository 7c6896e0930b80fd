package ddsview

import (
	"errors"
	"image/color"
	"testing"
)

func nrgbaAt(t *testing.T, s Surface, x, y int) color.NRGBA {
	t.Helper()

	img, err := s.Image(nil)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != int(s.Width) || b.Dy() != int(s.Height) {
		t.Fatalf("bounds %v, want %dx%d", b, s.Width, s.Height)
	}
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestImageBGR(t *testing.T) {
	t.Parallel()

	s := Surface{Data: []byte{10, 20, 30, 40, 50, 60}, Width: 2, Height: 1, Format: FormatBGR}

	if got, want := nrgbaAt(t, s, 0, 0), (color.NRGBA{R: 30, G: 20, B: 10, A: 255}); got != want {
		t.Fatalf("pixel 0 = %v, want %v", got, want)
	}
	if got, want := nrgbaAt(t, s, 1, 0), (color.NRGBA{R: 60, G: 50, B: 40, A: 255}); got != want {
		t.Fatalf("pixel 1 = %v, want %v", got, want)
	}
}

func TestImageLuminanceAlpha(t *testing.T) {
	t.Parallel()

	s := Surface{Data: []byte{200, 255, 7, 255}, Width: 1, Height: 2, Format: FormatLuminanceAlpha}

	if got, want := nrgbaAt(t, s, 0, 0), (color.NRGBA{R: 200, G: 200, B: 200, A: 255}); got != want {
		t.Fatalf("pixel 0 = %v, want %v", got, want)
	}
	if got, want := nrgbaAt(t, s, 0, 1), (color.NRGBA{R: 7, G: 7, B: 7, A: 255}); got != want {
		t.Fatalf("pixel 1 = %v, want %v", got, want)
	}
}

func TestImageDXT1SolidRed(t *testing.T) {
	t.Parallel()

	// color0 = pure red in RGB565, color1 = black, all indices 0.
	block := []byte{0x00, 0xF8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	s := Surface{Data: block, Width: 4, Height: 4, Format: FormatDXT1}

	for _, p := range [][2]int{{0, 0}, {3, 3}, {1, 2}} {
		got := nrgbaAt(t, s, p[0], p[1])
		if got.R < 250 || got.G > 4 || got.B > 4 || got.A != 255 {
			t.Fatalf("pixel %v = %v, want opaque red", p, got)
		}
	}
}

func TestImageFromParsedChain(t *testing.T) {
	t.Parallel()

	tex := parseChain(t, FormatBGR, 4, 4, 3)
	s, err := tex.MipLevel(2)
	if err != nil {
		t.Fatalf("MipLevel: %v", err)
	}

	// Level 2 is 1x1 filled with marker 3.
	if got, want := nrgbaAt(t, s, 0, 0), (color.NRGBA{R: 3, G: 3, B: 3, A: 255}); got != want {
		t.Fatalf("pixel = %v, want %v", got, want)
	}
}

func TestImageUnsupportedFormat(t *testing.T) {
	t.Parallel()

	s := Surface{Data: make([]byte, 4), Width: 1, Height: 1, Format: Format(0x1234)}
	if _, err := s.Image(nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

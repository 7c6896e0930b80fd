package ddsview

import (
	"errors"
	"math"
	"testing"
)

func parseChain(t *testing.T, format Format, w, h, levels uint32) *Texture {
	t.Helper()

	hdr := mustHeader(t, format, w, h, levels)
	tex, err := Parse(buildDDS(t, hdr, chainPayload(t, format, w, h, levels, 1)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tex
}

func parseCube(t *testing.T, format Format, size, levels uint32) *Texture {
	t.Helper()

	hdr, err := NewCubeHeader(format, size, levels)
	if err != nil {
		t.Fatalf("NewCubeHeader: %v", err)
	}
	tex, err := Parse(buildDDS(t, hdr, chainPayload(t, format, size, size, levels, NumFaces)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tex
}

func TestMipLevelChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
		w, h   uint32
	}{
		{name: "dxt1-npot", format: FormatDXT1, w: 20, h: 6},
		{name: "dxt5-square", format: FormatDXT5, w: 32, h: 32},
		{name: "bgr-wide", format: FormatBGR, w: 13, h: 1},
		{name: "la-tall", format: FormatLuminanceAlpha, w: 3, h: 17},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			levels := MaxMipLevels(tc.w, tc.h)
			tex := parseChain(t, tc.format, tc.w, tc.h, levels)

			next := 0
			prevW, prevH := tc.w, tc.h
			for level := range levels {
				s, err := tex.MipLevel(level)
				if err != nil {
					t.Fatalf("MipLevel(%d): %v", level, err)
				}
				if s.Offset != next {
					t.Fatalf("level %d offset = %d, want %d", level, s.Offset, next)
				}
				if cap(s.Data) != len(s.Data) {
					t.Fatalf("level %d cap %d exceeds len %d", level, cap(s.Data), len(s.Data))
				}
				if s.Width > prevW || s.Height > prevH || s.Width < 1 || s.Height < 1 {
					t.Fatalf("level %d size %dx%d after %dx%d", level, s.Width, s.Height, prevW, prevH)
				}
				for i, b := range s.Data {
					if b != byte(level)+1 {
						t.Fatalf("level %d byte %d = %d, want %d", level, i, b, level+1)
					}
				}
				next += len(s.Data)
				prevW, prevH = s.Width, s.Height
			}

			if next != len(tex.Data) {
				t.Fatalf("chain covers %d of %d bytes", next, len(tex.Data))
			}
			if prevW != 1 || prevH != 1 {
				t.Fatalf("last level is %dx%d, want 1x1", prevW, prevH)
			}
		})
	}
}

func TestMipLevelOutOfRange(t *testing.T) {
	t.Parallel()

	tex := parseChain(t, FormatDXT1, 8, 8, 2)

	for _, level := range []uint32{2, 3, 31, 32, math.MaxUint32} {
		if _, err := tex.MipLevel(level); !errors.Is(err, ErrLevelOutOfRange) {
			t.Fatalf("MipLevel(%d): expected ErrLevelOutOfRange, got %v", level, err)
		}
	}
	if _, err := tex.CubeFace(FacePositiveX, 0); !errors.Is(err, ErrNotCube) {
		t.Fatalf("CubeFace on 2D: expected ErrNotCube, got %v", err)
	}
}

func TestFreeMipLevelBoundsChecks(t *testing.T) {
	t.Parallel()

	// 16x16 DXT1 level 0 is 128 bytes; a base shorter than that has no level 0.
	if _, err := MipLevel(make([]byte, 127), FormatDXT1, 16, 16, 0); !errors.Is(err, ErrLevelOutOfRange) {
		t.Fatalf("expected ErrLevelOutOfRange, got %v", err)
	}

	// A huge level on a tiny base stops at the first level past the end.
	if _, err := MipLevel(make([]byte, 8), FormatDXT1, 4, 4, math.MaxUint32); !errors.Is(err, ErrLevelOutOfRange) {
		t.Fatalf("expected ErrLevelOutOfRange, got %v", err)
	}

	s, err := MipLevel(make([]byte, 40), FormatDXT1, 8, 4, 3)
	if err != nil {
		t.Fatalf("MipLevel: %v", err)
	}
	if s.Offset != 32 || len(s.Data) != 8 || s.Width != 1 || s.Height != 1 {
		t.Fatalf("unexpected surface %+v", s)
	}
}

func TestCubeFaces(t *testing.T) {
	t.Parallel()

	const levels = 3
	tex := parseCube(t, FormatDXT1, 16, levels)

	// 128 + 32 + 8 bytes per face.
	if tex.FaceLength != 168 {
		t.Fatalf("FaceLength = %d, want 168", tex.FaceLength)
	}

	type span struct{ start, end int }
	var seen []span
	for face := range Face(NumFaces) {
		for level := range uint32(levels) {
			s, err := tex.CubeFace(face, level)
			if err != nil {
				t.Fatalf("CubeFace(%s, %d): %v", face, level, err)
			}
			if s.Face != face || s.Level != level {
				t.Fatalf("got face %s level %d, want %s %d", s.Face, s.Level, face, level)
			}
			if s.Offset < int(face)*int(tex.FaceLength) || s.Offset+len(s.Data) > int(face+1)*int(tex.FaceLength) {
				t.Fatalf("%s level %d [%d,%d) leaves its face", face, level, s.Offset, s.Offset+len(s.Data))
			}
			want := byte(face)*16 + byte(level) + 1
			for i, b := range s.Data {
				if b != want {
					t.Fatalf("%s level %d byte %d = %d, want %d", face, level, i, b, want)
				}
			}

			cur := span{s.Offset, s.Offset + len(s.Data)}
			for _, other := range seen {
				if cur.start < other.end && other.start < cur.end {
					t.Fatalf("%s level %d [%d,%d) overlaps [%d,%d)", face, level, cur.start, cur.end, other.start, other.end)
				}
			}
			seen = append(seen, cur)
		}
	}
}

func TestCubeFaceErrors(t *testing.T) {
	t.Parallel()

	tex := parseCube(t, FormatDXT5, 4, 1)

	if _, err := tex.CubeFace(Face(NumFaces), 0); !errors.Is(err, ErrFaceOutOfRange) {
		t.Fatalf("expected ErrFaceOutOfRange, got %v", err)
	}
	if _, err := tex.CubeFace(FaceNegativeZ, 1); !errors.Is(err, ErrLevelOutOfRange) {
		t.Fatalf("expected ErrLevelOutOfRange, got %v", err)
	}
	if _, err := tex.MipLevel(0); !errors.Is(err, ErrNotPlane) {
		t.Fatalf("MipLevel on cube: expected ErrNotPlane, got %v", err)
	}

	// Free form: a base holding five faces has no sixth.
	if _, err := CubeFace(FaceNegativeZ, 0, FormatDXT5, make([]byte, 5*16), 16, 4, 4); !errors.Is(err, ErrFaceOutOfRange) {
		t.Fatalf("expected ErrFaceOutOfRange for short base, got %v", err)
	}
}

func TestFaceOrdinals(t *testing.T) {
	t.Parallel()

	want := []struct {
		face Face
		n    uint8
		name string
	}{
		{FacePositiveX, 0, "+X"},
		{FaceNegativeX, 1, "-X"},
		{FacePositiveY, 2, "+Y"},
		{FaceNegativeY, 3, "-Y"},
		{FacePositiveZ, 4, "+Z"},
		{FaceNegativeZ, 5, "-Z"},
	}
	for _, tc := range want {
		if uint8(tc.face) != tc.n || tc.face.String() != tc.name || !tc.face.Valid() {
			t.Fatalf("face %d: got ordinal %d name %q", tc.n, uint8(tc.face), tc.face.String())
		}
	}
	if Face(6).Valid() || Face(6).String() != "Face(6)" {
		t.Fatalf("Face(6) treated as valid: %q", Face(6).String())
	}
}

func TestSurfaces(t *testing.T) {
	t.Parallel()

	t.Run("plane", func(t *testing.T) {
		t.Parallel()

		tex := parseChain(t, FormatBGRA, 8, 8, 4)
		var n uint32
		for s := range tex.Surfaces() {
			if s.Level != n || s.Face != FacePositiveX {
				t.Fatalf("surface %d has level %d face %s", n, s.Level, s.Face)
			}
			n++
		}
		if n != 4 {
			t.Fatalf("yielded %d surfaces, want 4", n)
		}
	})

	t.Run("cube", func(t *testing.T) {
		t.Parallel()

		tex := parseCube(t, FormatDXT1, 8, 4)
		n := 0
		for s := range tex.Surfaces() {
			if want := Face(n / 4); s.Face != want || s.Level != uint32(n%4) {
				t.Fatalf("surface %d is %s/%d, want %s/%d", n, s.Face, s.Level, want, n%4)
			}
			n++
		}
		if n != NumFaces*4 {
			t.Fatalf("yielded %d surfaces, want %d", n, NumFaces*4)
		}
	})

	t.Run("early-break", func(t *testing.T) {
		t.Parallel()

		tex := parseCube(t, FormatDXT1, 8, 4)
		n := 0
		for range tex.Surfaces() {
			n++
			if n == 5 {
				break
			}
		}
		if n != 5 {
			t.Fatalf("counted %d, want 5", n)
		}
	})
}

func TestSurfacesStopsOnHandBuiltTexture(t *testing.T) {
	t.Parallel()

	// Claims three DXT1 levels of 8x8 (32 + 8 + 8) but holds only the first two.
	tex := &Texture{
		Data:      make([]byte, 40),
		Width:     8,
		Height:    8,
		Format:    FormatDXT1,
		MipLevels: 3,
		Kind:      KindPlane,
	}

	var levels []uint32
	for s := range tex.Surfaces() {
		levels = append(levels, s.Level)
	}
	if len(levels) != 2 || levels[0] != 0 || levels[1] != 1 {
		t.Fatalf("yielded levels %v, want [0 1]", levels)
	}
	if _, err := tex.MipLevel(2); !errors.Is(err, ErrLevelOutOfRange) {
		t.Fatalf("MipLevel(2): expected ErrLevelOutOfRange, got %v", err)
	}
}

package ddsview

import (
	"fmt"
	"iter"
)

// Face selects one side of a cube map.
//
// The ordinals follow the GL_TEXTURE_CUBE_MAP_POSITIVE_X + n convention and
// the order faces are stored in the file, so a Face can be added to the GL
// target base without a lookup table. Do not reorder.
type Face uint8

const (
	FacePositiveX Face = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ

	// NumFaces is the number of faces of a cube map.
	NumFaces = 6
)

var faceNames = [NumFaces]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

func (f Face) String() string {
	if f.Valid() {
		return faceNames[f]
	}

	return fmt.Sprintf("Face(%d)", uint8(f))
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f < NumFaces
}

// Surface is one (face, level) image inside a texture.
type Surface struct {
	// Data aliases the texture payload; its capacity ends at the surface.
	Data []byte
	// Offset is the position of Data within the base view it was cut from.
	Offset int

	Width  uint32
	Height uint32
	Level  uint32
	Face   Face
	Format Format
}

// MipLevel locates level inside base, the level-0-first chain of a
// width x height image in format. Offsets are re-derived with LevelSize, the
// same table Parse sums, and the result is bounds-checked against base.
func MipLevel(base []byte, format Format, width, height, level uint32) (Surface, error) {
	return locate(base, 0, format, width, height, level)
}

// CubeFace locates level of face inside base, six consecutive chains of
// faceLength bytes each.
func CubeFace(face Face, level uint32, format Format, base []byte, faceLength, width, height uint32) (Surface, error) {
	if !face.Valid() {
		return Surface{}, fmt.Errorf("%w: %s", ErrFaceOutOfRange, face)
	}

	start := uint64(face) * uint64(faceLength)
	end := start + uint64(faceLength)
	if end > uint64(len(base)) {
		return Surface{}, fmt.Errorf("%w: %s ends at %d, view has %d", ErrFaceOutOfRange, face, end, len(base))
	}

	s, err := locate(base[start:end:end], int(start), format, width, height, level)
	if err != nil {
		return Surface{}, err
	}
	s.Face = face

	return s, nil
}

func locate(base []byte, origin int, format Format, width, height, level uint32) (Surface, error) {
	avail := uint64(len(base))
	var off uint64
	w, h := width, height
	for i := uint32(0); i < level; i++ {
		size, err := LevelSize(format, w, h)
		if err != nil {
			return Surface{}, err
		}
		off += uint64(size)
		if off >= avail {
			return Surface{}, fmt.Errorf("%w: level %d starts past %d bytes", ErrLevelOutOfRange, level, avail)
		}
		w, h = mipDimension(w, 1), mipDimension(h, 1)
	}

	size, err := LevelSize(format, w, h)
	if err != nil {
		return Surface{}, err
	}
	end := off + uint64(size)
	if end > avail {
		return Surface{}, fmt.Errorf("%w: level %d ends at %d, view has %d", ErrLevelOutOfRange, level, end, avail)
	}

	return Surface{
		Data:   base[off:end:end],
		Offset: origin + int(off),
		Width:  w,
		Height: h,
		Level:  level,
		Format: format,
	}, nil
}

// MipLevel returns level of a 2D texture.
func (t *Texture) MipLevel(level uint32) (Surface, error) {
	switch t.Kind {
	case KindVolume:
		return Surface{}, ErrVolumeUnsupported
	case KindCube:
		return Surface{}, ErrNotPlane
	}
	if level >= t.MipLevels {
		return Surface{}, fmt.Errorf("%w: %d of %d", ErrLevelOutOfRange, level, t.MipLevels)
	}

	return MipLevel(t.Data, t.Format, t.Width, t.Height, level)
}

// CubeFace returns level of face of a cube map.
func (t *Texture) CubeFace(face Face, level uint32) (Surface, error) {
	switch t.Kind {
	case KindVolume:
		return Surface{}, ErrVolumeUnsupported
	case KindCube:
	default:
		return Surface{}, ErrNotCube
	}
	if level >= t.MipLevels {
		return Surface{}, fmt.Errorf("%w: %d of %d", ErrLevelOutOfRange, level, t.MipLevels)
	}

	return CubeFace(face, level, t.Format, t.Data, t.FaceLength, t.Width, t.Height)
}

// Surfaces yields every addressable surface: each level of a 2D texture, or
// each level of each face in file order for a cube map. Volume textures
// yield nothing. Only pairs Parse validated are produced, so ranging over it
// cannot ask for an invalid level or face.
//
// The sequence stops at the first surface that cannot be located, which only
// happens for a Texture not returned by Parse (e.g. one built by hand with a
// short Data). Call MipLevel or CubeFace directly to get the error.
func (t *Texture) Surfaces() iter.Seq[Surface] {
	return func(yield func(Surface) bool) {
		faces := 0
		switch t.Kind {
		case KindPlane:
			faces = 1
		case KindCube:
			faces = NumFaces
		}

		for f := range faces {
			for level := range t.MipLevels {
				var (
					s   Surface
					err error
				)
				if t.Kind == KindCube {
					s, err = t.CubeFace(Face(f), level)
				} else {
					s, err = t.MipLevel(level)
				}
				if err != nil || !yield(s) {
					return
				}
			}
		}
	}
}

package ddsview

// Texture is a validated DDS container. Data aliases the caller's buffer and
// is never copied.
type Texture struct {
	// Data is the payload view: the whole mip chain for a 2D texture, six
	// consecutive face chains for a cube map, and everything after the
	// header for a volume texture.
	Data []byte
	// Offset is the position of Data within the parsed buffer.
	Offset int

	Width     uint32
	Height    uint32
	Format    Format
	MipLevels uint32
	// FaceLength is the byte length of one face chain; zero unless Kind is KindCube.
	FaceLength uint32
	Kind       Kind

	// Header is the parsed header with the pitch or linear size filled in
	// when the file omitted both.
	Header Header
}

// IsDDS reports whether buf starts with the DDS magic. It looks at nothing
// else; a true result still needs Parse to be trusted.
func IsDDS(buf []byte) bool {
	r := byteReader{rest: buf}
	return r.u32() == Magic
}

// Parse validates buf as a DDS container and returns the base view and its
// metadata. Any failure wraps ErrRejected and no Texture is returned.
//
// Every size is recomputed from the dimensions and format and checked
// against len(buf); the header's own pitch, linear size and mip count are
// never trusted to locate data.
func Parse(buf []byte) (*Texture, error) {
	h, payload, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	h.Caps &^= capsAlpha // taken from the pixel format instead

	if h.Size != HeaderSize || h.PixelFormat.Size != PixelFormatSize {
		return nil, reject(ErrHeaderSize, "header %d, pixel format %d", h.Size, h.PixelFormat.Size)
	}
	if h.Flags&flagsRequired != flagsRequired {
		return nil, reject(ErrMissingFlags, "flags 0x%x", h.Flags)
	}

	width, height := h.Width, h.Height
	if width == 0 || height == 0 {
		return nil, reject(ErrDimensions, "%dx%d", width, height)
	}
	if _, err := mulU32(width, height); err != nil {
		return nil, reject(ErrDimensions, "%dx%d overflows", width, height)
	}
	if h.Caps&capsTexture == 0 {
		return nil, reject(ErrNotTexture, "caps 0x%x", h.Caps)
	}
	if h.Flags&pitchAndLinear == pitchAndLinear {
		return nil, reject(ErrPitchAndLinear, "")
	}

	format, err := ClassifyPixelFormat(h.PixelFormat)
	if err != nil {
		return nil, reject(err, "")
	}

	levels := h.MipLevels()
	maxLevels := MaxMipLevels(width, height)
	switch {
	case levels == 0:
		levels = maxLevels
	case levels > maxLevels:
		return nil, reject(ErrMipCount, "%d levels declared, %dx%d allows %d", levels, width, height, maxLevels)
	}

	kind := h.Kind()
	if kind == KindCube && width != height {
		return nil, reject(ErrCubeNotSquare, "%dx%d", width, height)
	}

	calcSize, err := LevelSize(format, width, height)
	if err != nil {
		return nil, reject(err, "level 0")
	}
	if h.Flags&pitchAndLinear == 0 {
		if format.Compressed() {
			h.PitchOrLinearSize = calcSize
			h.Flags |= flagLinearSize
		} else {
			pitch, err := rowPitch(format, width)
			if err != nil {
				return nil, reject(err, "row pitch")
			}
			h.PitchOrLinearSize = pitch
			h.Flags |= flagPitch
		}
	}

	chain, err := chainLength(format, width, height, levels)
	if err != nil {
		return nil, reject(err, "%d levels of %dx%d %s", levels, width, height, format)
	}

	var faceLength uint32
	need := chain
	if kind == KindCube {
		faceLength = chain
		if need, err = mulU32(chain, 6); err != nil {
			return nil, reject(err, "six faces of %d bytes", chain)
		}
	}

	avail := uint64(len(payload))
	if uint64(need) > avail {
		return nil, reject(ErrTruncatedPayload, "need %d bytes, have %d", need, avail)
	}
	if uint64(h.PitchOrLinearSize) > avail || uint64(calcSize) > avail {
		return nil, reject(ErrPitchOrLinearSize, "declared %d, computed %d, have %d",
			h.PitchOrLinearSize, calcSize, avail)
	}

	data := payload
	if kind != KindVolume {
		data = payload[:need:need]
	}

	return &Texture{
		Data:       data,
		Offset:     len(buf) - len(payload),
		Width:      width,
		Height:     height,
		Format:     format,
		MipLevels:  levels,
		FaceLength: faceLength,
		Kind:       kind,
		Header:     h,
	}, nil
}

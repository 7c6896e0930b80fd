package ddsview

import "math/bits"

// MaxMipLevels returns floor(log2(max(width, height))) + 1, the length of a
// full chain down to 1x1. It is zero for a 0x0 image.
func MaxMipLevels(width, height uint32) uint32 {
	return uint32(bits.Len32(max(width, height)))
}

// mipDimension calculates the dimension of a mipmap level.
func mipDimension(base, level uint32) uint32 {
	if level >= 32 {
		return 1
	}

	result := base >> level
	if result < 1 {
		return 1
	}

	return result
}

// chainLength sums LevelSize over levels 0..levels-1, failing on overflow.
func chainLength(f Format, width, height, levels uint32) (uint32, error) {
	var total uint32
	for level := uint32(0); level < levels; level++ {
		size, err := LevelSize(f, mipDimension(width, level), mipDimension(height, level))
		if err != nil {
			return 0, err
		}
		if total, err = addU32(total, size); err != nil {
			return 0, err
		}
	}

	return total, nil
}

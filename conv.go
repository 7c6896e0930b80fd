// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ddsview

package ddsview

import "math/bits"

const maxUint32 = uint64(^uint32(0))

// u32FromInt converts an int to a uint32.
func u32FromInt(n int) (uint32, error) {
	if n < 0 || uint64(n) > maxUint32 {
		return 0, ErrSizeOverflow
	}

	// #nosec G115 -- bounds checked above.
	return uint32(n), nil
}

// mulU32 multiplies two uint32 values, failing when the product does not fit.
func mulU32(a, b uint32) (uint32, error) {
	hi, lo := bits.Mul32(a, b)
	if hi != 0 {
		return 0, ErrSizeOverflow
	}

	return lo, nil
}

// addU32 adds two uint32 values, failing on carry.
func addU32(a, b uint32) (uint32, error) {
	sum, carry := bits.Add32(a, b, 0)
	if carry != 0 {
		return 0, ErrSizeOverflow
	}

	return sum, nil
}

// ceilDiv divides rounding up without overflowing on n near the uint32 limit.
func ceilDiv(n, d uint32) uint32 {
	q := n / d
	if n%d != 0 {
		q++
	}

	return q
}

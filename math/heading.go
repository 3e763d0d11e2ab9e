// math/heading.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// headings and directions

// Reduces it to [0,360).
func NormalizeHeading(h float32) float32 {
	if h < 0 {
		h = 360 - NormalizeHeading(-h)
		if h >= 360 {
			// -h was tiny (or a multiple of 360)
			return 0
		}
		return h
	}
	return Mod(h, 360)
}

func OppositeHeading(h float32) float32 {
	return NormalizeHeading(h + 180)
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float32, b float32) float32 {
	var d float32
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	d = Mod(d, 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// HeadingSignedTurn returns the signed angle to turn from cur to target,
// in the range [-180,180]; positive values are clockwise (right) turns.
func HeadingSignedTurn(cur, target float32) float32 {
	// Rotate the target so that it's aligned with 180 degrees, which lets
	// us not worry about the wrap around at 0/360.
	rot := NormalizeHeading(180 - target)
	return 180 - NormalizeHeading(cur+rot)
}

// IsHeadingBetween returns true if h lies in the clockwise sector from h1
// to h2 (inclusive).
func IsHeadingBetween(h, h1, h2 float32) bool {
	h, h1, h2 = NormalizeHeading(h), NormalizeHeading(h1), NormalizeHeading(h2)
	if h1 <= h2 {
		return h >= h1 && h <= h2
	}
	return h >= h1 || h <= h2
}

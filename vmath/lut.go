package vmath

import (
	"math"
)

// Table resolution: one full turn is split in LUTSize steps, interpolated linearly
const (
	LUTBits = 12
	LUTSize = 1 << LUTBits
	LUTMask = LUTSize - 1

	lutFracBits = Shift - LUTBits
	lutFracMask = (1 << lutFracBits) - 1

	atanLUTSize = 1024
)

func init() {
	// Sin LUT over one turn, extra entry closes the interpolation at 2π
	for i := 0; i <= LUTSize; i++ {
		rad := 2.0 * math.Pi * float64(i) / LUTSize
		sinLUT[i] = FromFloat(math.Sin(rad))
	}

	// Atan LUT: ratio [0,1] -> angle [0, π/4] in Q32.32 radians
	for i := 0; i <= atanLUTSize; i++ {
		ratio := float64(i) / atanLUTSize
		atanLUT[i] = FromFloat(math.Atan(ratio))
	}
}

// Tables are filled once at init and read-only afterwards
var (
	sinLUT  [LUTSize + 1]int64
	atanLUT [atanLUTSize + 1]int64
)

// Sin returns sine of an angle in Q32.32 radians
func Sin(rad int64) int64 {
	// Fraction of a full turn, wrapped to [0, 1) by masking the integer part
	turn := uint64(Mul(rad, InvTwoPi)) & Mask
	idx := turn >> lutFracBits
	frac := int64(turn & lutFracMask)

	v0 := sinLUT[idx]
	v1 := sinLUT[idx+1]
	return v0 + ((v1-v0)*frac)>>lutFracBits
}

// Cos returns cosine of an angle in Q32.32 radians
func Cos(rad int64) int64 {
	return Sin(rad + HalfPi)
}

// atanUnit returns atan(num/den) for 0 <= num <= den, den > 0
func atanUnit(num, den int64) int64 {
	scaled := MulDiv(num, atanLUTSize<<lutFracBits, den)
	idx := scaled >> lutFracBits
	if idx >= atanLUTSize {
		return atanLUT[atanLUTSize]
	}
	frac := scaled & lutFracMask
	v0 := atanLUT[idx]
	v1 := atanLUT[idx+1]
	return v0 + ((v1-v0)*frac)>>lutFracBits
}

// Atan2 returns angle in (-π, π] for (dy, dx)
// Zero vector returns 0
func Atan2(dy, dx int64) int64 {
	if dx == 0 && dy == 0 {
		return 0
	}

	adx, ady := Abs(dx), Abs(dy)

	// First octant angle, mirrored across the diagonal when |dy| > |dx|
	var base int64
	if adx >= ady {
		base = atanUnit(ady, adx)
	} else {
		base = HalfPi - atanUnit(adx, ady)
	}

	switch {
	case dx >= 0 && dy >= 0:
		return base
	case dx < 0 && dy >= 0:
		return Pi - base
	case dx < 0:
		return base - Pi
	default:
		return -base
	}
}

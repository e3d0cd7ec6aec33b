package vmath

import (
	"math"
	"math/bits"
)

// MulSat is Mul with saturation instead of wrap-around on overflow
// Used where one operand may be a saturated reciprocal (near-axis ray directions)
func MulSat(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(absU(a), absU(b))

	// Result needs more than 63 bits after the 32-bit shift
	if hi >= 1<<31 {
		if negative {
			return math.MinInt64
		}
		return math.MaxInt64
	}

	result := int64((hi << 32) | (lo >> 32))
	if negative {
		return -result
	}
	return result
}

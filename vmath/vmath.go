package vmath

import (
	"math"
	"math/bits"
)

// Q32.32 Fixed Point constants
const (
	Shift = 32
	Scale = 1 << Shift
	Mask  = Scale - 1
	Half  = 1 << (Shift - 1)

	ScaleF = float64(Scale)
)

// Angular constants in Q32.32 radians
const (
	Pi       int64 = 13493037705 // π * 2^32
	TwoPi    int64 = 26986075409
	HalfPi   int64 = 6746518852
	InvTwoPi int64 = 683565276 // 2^32 / 2π
)

// MaxValue and MinValue bound every Q32.32 quantity, used as open interval sentinels
const (
	MaxValue int64 = math.MaxInt64
	MinValue int64 = math.MinInt64
)

// --- Arithmetic ---

func FromInt(i int) int64       { return int64(i) << Shift }
func ToInt(f int64) int         { return int(f >> Shift) }
func FromFloat(f float64) int64 { return int64(math.Round(f * ScaleF)) }
func ToFloat(f int64) float64   { return float64(f) / ScaleF }

// FromRatio returns num/den in Q32.32 without passing through float
func FromRatio(num, den int) int64 {
	return Div(FromInt(num), FromInt(den))
}

func Mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	ua, ub := absU(a), absU(b)

	hi, lo := bits.Mul64(ua, ub)
	// Q32.32 * Q32.32 = Q64.64, shift right 32 for Q32.32
	result := int64((hi << 32) | (lo >> 32))

	if negative {
		return -result
	}
	return result
}

// Div returns a/b, saturating on overflow. Division by zero yields 0
func Div(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	ua, ub := absU(a), absU(b)

	// a << 32 as 128-bit: hi = a >> 32, lo = a << 32
	hi := ua >> 32
	lo := ua << 32

	// Quotient would not fit in 64 bits
	if hi >= ub {
		if negative {
			return math.MinInt64
		}
		return math.MaxInt64
	}

	quo, _ := bits.Div64(hi, lo, ub)
	if quo > math.MaxInt64 {
		if negative {
			return math.MinInt64
		}
		return math.MaxInt64
	}

	if negative {
		return -int64(quo)
	}
	return int64(quo)
}

// MulDiv computes (a * b) / c with 128-bit intermediate
// Useful for ratio calculations without precision loss
func MulDiv(a, b, c int64) int64 {
	if c == 0 {
		return 0
	}
	neg := ((a < 0) != (b < 0)) != (c < 0)
	ua, ub, uc := absU(a), absU(b), absU(c)
	hi, lo := bits.Mul64(ua, ub)
	if hi >= uc {
		if neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	q, _ := bits.Div64(hi, lo, uc)
	r := int64(q)
	if neg {
		return -r
	}
	return r
}

func absU(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}

// Abs returns absolute value
func Abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -Scale, 0, or Scale
func Sign(x int64) int64 {
	if x < 0 {
		return -Scale
	}
	if x > 0 {
		return Scale
	}
	return 0
}

func Min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi int64) int64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Square returns a*a
func Square(a int64) int64 {
	return Mul(a, a)
}

// Sqrt returns the Q32.32 square root, exact to the last bit (floor)
// Bit-by-bit over the 128-bit value x << 32, no float on this path
func Sqrt(x int64) int64 {
	if x <= 0 {
		return 0
	}

	// x << 32 as 128-bit
	nHi := uint64(x) >> 32
	nLo := uint64(x) << 32

	// x < 2^63 so root < 2^48
	var root uint64
	for b := 47; b >= 0; b-- {
		trial := root | (1 << uint(b))
		hi, lo := bits.Mul64(trial, trial)
		if hi < nHi || (hi == nHi && lo <= nLo) {
			root = trial
		}
	}
	return int64(root)
}

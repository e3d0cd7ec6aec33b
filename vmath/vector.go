package vmath

// Vec2 is a 2D vector in Q32.32 fixed-point
// Every simulation quantity with a direction flows through this type
type Vec2 struct {
	X, Y int64
}

// V2Zero is the zero vector
var V2Zero = Vec2{}

func V2(x, y int64) Vec2 {
	return Vec2{X: x, Y: y}
}

// V2FromFloat converts at IO boundaries only
func V2FromFloat(x, y float64) Vec2 {
	return Vec2{FromFloat(x), FromFloat(y)}
}

func V2ToFloat(v Vec2) (x, y float64) {
	return ToFloat(v.X), ToFloat(v.Y)
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Neg(v Vec2) Vec2 {
	return Vec2{-v.X, -v.Y}
}

func V2Scale(v Vec2, s int64) Vec2 {
	return Vec2{Mul(v.X, s), Mul(v.Y, s)}
}

// V2AddScaled returns a + b*s
func V2AddScaled(a, b Vec2, s int64) Vec2 {
	return Vec2{a.X + Mul(b.X, s), a.Y + Mul(b.Y, s)}
}

func V2Dot(a, b Vec2) int64 {
	return Mul(a.X, b.X) + Mul(a.Y, b.Y)
}

// V2Cross returns the z component of the 3D cross product a × b
func V2Cross(a, b Vec2) int64 {
	return Mul(a.X, b.Y) - Mul(a.Y, b.X)
}

// V2Left returns vector rotated 90° counter-clockwise
func V2Left(v Vec2) Vec2 {
	return Vec2{-v.Y, v.X}
}

// V2Right returns vector rotated 90° clockwise
func V2Right(v Vec2) Vec2 {
	return Vec2{v.Y, -v.X}
}

// V2Rotate rotates v by the unit facing vector b (cos, sin)
func V2Rotate(v, b Vec2) Vec2 {
	return Vec2{
		Mul(v.X, b.X) - Mul(v.Y, b.Y),
		Mul(v.Y, b.X) + Mul(v.X, b.Y),
	}
}

// V2InvRotate rotates v by the inverse of the unit facing vector b
func V2InvRotate(v, b Vec2) Vec2 {
	return Vec2{
		Mul(v.X, b.X) + Mul(v.Y, b.Y),
		Mul(v.Y, b.X) - Mul(v.X, b.Y),
	}
}

// V2MagSq returns squared magnitude without sqrt
func V2MagSq(v Vec2) int64 {
	return Square(v.X) + Square(v.Y)
}

// V2Mag returns exact Euclidean length
func V2Mag(v Vec2) int64 {
	return Sqrt(V2MagSq(v))
}

// V2Normalize returns unit vector, zero-safe
func V2Normalize(v Vec2) Vec2 {
	mag := V2Mag(v)
	if mag == 0 {
		return Vec2{}
	}
	return Vec2{Div(v.X, mag), Div(v.Y, mag)}
}

// V2Polar returns the unit facing vector for an angle in radians
func V2Polar(rad int64) Vec2 {
	return Vec2{Cos(rad), Sin(rad)}
}

// V2Equal reports exact equality
func V2Equal(a, b Vec2) bool {
	return a.X == b.X && a.Y == b.Y
}

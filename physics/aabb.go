package physics

import (
	"github.com/lixenwraith/volt/vmath"
)

// AABB is an axis-aligned bounding box value, never mutated after construction
// Constructors keep top >= bottom and right >= left; malformed input is propagated as-is
type AABB struct {
	top    int64
	bottom int64
	left   int64
	right  int64
}

// NewAABB builds a box from explicit edges
func NewAABB(top, bottom, left, right int64) AABB {
	return AABB{top: top, bottom: bottom, left: left, right: right}
}

// NewAABBFromExtents builds a box from its center and half-size
func NewAABBFromExtents(center, extents vmath.Vec2) AABB {
	topRight := vmath.V2Add(center, extents)
	bottomLeft := vmath.V2Sub(center, extents)
	return AABB{
		top:    topRight.Y,
		right:  topRight.X,
		bottom: bottomLeft.Y,
		left:   bottomLeft.X,
	}
}

// NewAABBFromRadius builds the square box enclosing a circle
func NewAABBFromRadius(center vmath.Vec2, radius int64) AABB {
	return NewAABBFromExtents(center, vmath.V2(radius, radius))
}

// CreateExpanded pads every edge outward by amount
func CreateExpanded(a AABB, amount int64) AABB {
	return AABB{
		top:    a.top + amount,
		bottom: a.bottom - amount,
		left:   a.left - amount,
		right:  a.right + amount,
	}
}

// CreateMerged returns the union of two boxes
func CreateMerged(a, b AABB) AABB {
	return AABB{
		top:    vmath.Max(a.top, b.top),
		bottom: vmath.Min(a.bottom, b.bottom),
		left:   vmath.Min(a.left, b.left),
		right:  vmath.Max(a.right, b.right),
	}
}

// CreateSwept extends the box only in the direction of travel
func CreateSwept(a AABB, motion vmath.Vec2) AABB {
	swept := a
	if motion.X < 0 {
		swept.left += motion.X
	} else {
		swept.right += motion.X
	}
	if motion.Y < 0 {
		swept.bottom += motion.Y
	} else {
		swept.top += motion.Y
	}
	return swept
}

func (a AABB) Top() int64    { return a.top }
func (a AABB) Bottom() int64 { return a.bottom }
func (a AABB) Left() int64   { return a.left }
func (a AABB) Right() int64  { return a.right }

func (a AABB) TopLeft() vmath.Vec2     { return vmath.V2(a.left, a.top) }
func (a AABB) TopRight() vmath.Vec2    { return vmath.V2(a.right, a.top) }
func (a AABB) BottomLeft() vmath.Vec2  { return vmath.V2(a.left, a.bottom) }
func (a AABB) BottomRight() vmath.Vec2 { return vmath.V2(a.right, a.bottom) }

func (a AABB) Width() int64  { return a.right - a.left }
func (a AABB) Height() int64 { return a.top - a.bottom }

func (a AABB) Area() int64 {
	return vmath.Mul(a.Width(), a.Height())
}

func (a AABB) Perimeter() int64 {
	return 2 * (a.Width() + a.Height())
}

func (a AABB) Center() vmath.Vec2 {
	return vmath.V2(a.left+a.Width()/2, a.bottom+a.Height()/2)
}

// Extent returns the half-size
func (a AABB) Extent() vmath.Vec2 {
	return vmath.V2(a.Width()/2, a.Height()/2)
}

// Quadrant sub-boxes split at center

func (a AABB) ComputeTopLeft(center vmath.Vec2) AABB {
	return AABB{top: a.top, bottom: center.Y, left: a.left, right: center.X}
}

func (a AABB) ComputeTopRight(center vmath.Vec2) AABB {
	return AABB{top: a.top, bottom: center.Y, left: center.X, right: a.right}
}

func (a AABB) ComputeBottomLeft(center vmath.Vec2) AABB {
	return AABB{top: center.Y, bottom: a.bottom, left: a.left, right: center.X}
}

func (a AABB) ComputeBottomRight(center vmath.Vec2) AABB {
	return AABB{top: center.Y, bottom: a.bottom, left: center.X, right: a.right}
}

// --- Tests ---

// QueryPoint reports whether the point lies inside or on the box
func (a AABB) QueryPoint(p vmath.Vec2) bool {
	return a.left <= p.X &&
		a.right >= p.X &&
		a.bottom <= p.Y &&
		a.top >= p.Y
}

// QueryCircleApprox tests against the box grown by radius on every side
// Rounded corners are not modelled: circles near a corner may report a false positive
func (a AABB) QueryCircleApprox(origin vmath.Vec2, radius int64) bool {
	return (a.left-radius) <= origin.X &&
		(a.right+radius) >= origin.X &&
		(a.bottom-radius) <= origin.Y &&
		(a.top+radius) >= origin.Y
}

// RayCast reports whether the ray enters the box within its length
func (a AABB) RayCast(ray *RayCast) bool {
	_, _, ok := rayCastSlab(ray, a.top, a.bottom, a.left, a.right)
	return ok
}

// RayCastDistance returns the entry distance and the normal of the entered face
// A ray starting inside the box reports distance 0 and a zero normal
func (a AABB) RayCastDistance(ray *RayCast) (dist int64, normal vmath.Vec2, ok bool) {
	dist, normal, ok = rayCastSlab(ray, a.top, a.bottom, a.left, a.right)
	if !ok {
		return 0, vmath.V2Zero, false
	}
	if dist < 0 {
		return 0, vmath.V2Zero, true
	}
	return dist, normal, true
}

// CircleCastApprox sweeps a circle against the box grown by radius
// Rounded corners are not modelled, same approximation as QueryCircleApprox
func (a AABB) CircleCastApprox(ray *RayCast, radius int64) bool {
	_, _, ok := rayCastSlab(ray, a.top+radius, a.bottom-radius, a.left-radius, a.right+radius)
	return ok
}

// Intersect is a four-edge separating axis test; touching edges do not intersect
func (a AABB) Intersect(other AABB) bool {
	outside := a.right <= other.left ||
		a.left >= other.right ||
		a.bottom >= other.top ||
		a.top <= other.bottom
	return !outside
}

// Contains reports whether other lies entirely within a (shared edges allowed)
func (a AABB) Contains(other AABB) bool {
	return a.top >= other.top &&
		a.bottom <= other.bottom &&
		a.right >= other.right &&
		a.left <= other.left
}

// rayCastSlab intersects the ray with per-axis slabs using the precomputed inverse direction
// Returns the entry parameter (negative when starting inside) and the entry face normal
func rayCastSlab(ray *RayCast, top, bottom, left, right int64) (int64, vmath.Vec2, bool) {
	txMin, txMax, nx, ok := slab(ray.Origin.X, ray.Direction.X, ray.InvDirection.X, ray.SignX, left, right)
	if !ok {
		return 0, vmath.V2Zero, false
	}
	tyMin, tyMax, ny, ok := slab(ray.Origin.Y, ray.Direction.Y, ray.InvDirection.Y, ray.SignY, bottom, top)
	if !ok {
		return 0, vmath.V2Zero, false
	}

	if txMin > tyMax || tyMin > txMax {
		return 0, vmath.V2Zero, false
	}

	tEnter, normal := txMin, vmath.V2(nx, 0)
	if tyMin > txMin {
		tEnter, normal = tyMin, vmath.V2(0, ny)
	}
	tExit := vmath.Min(txMax, tyMax)

	if tExit > 0 && tEnter < ray.Distance {
		return tEnter, normal, true
	}
	return 0, vmath.V2Zero, false
}

// slab returns the parametric interval spent between lo and hi along one axis
// A zero direction component never crosses the slab: the interval is unbounded or empty
func slab(origin, dir, inv int64, negative bool, lo, hi int64) (tMin, tMax, normal int64, ok bool) {
	if dir == 0 {
		if origin < lo || origin > hi {
			return 0, 0, 0, false
		}
		return vmath.MinValue, vmath.MaxValue, 0, true
	}

	near, far := lo, hi
	normal = -vmath.Scale
	if negative {
		near, far = hi, lo
		normal = vmath.Scale
	}
	return vmath.MulSat(near-origin, inv), vmath.MulSat(far-origin, inv), normal, true
}

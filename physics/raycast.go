package physics

import (
	"github.com/lixenwraith/volt/vmath"
)

// RayCast is a bounded ray with the values the slab test needs precomputed
type RayCast struct {
	Origin       vmath.Vec2
	Direction    vmath.Vec2 // Unit length
	InvDirection vmath.Vec2 // Per-axis 1/Direction, 0 for a zero component
	SignX        bool       // Direction.X < 0
	SignY        bool       // Direction.Y < 0
	Distance     int64
}

// NewRayCast builds a ray from origin to destination
func NewRayCast(origin, destination vmath.Vec2) RayCast {
	delta := vmath.V2Sub(destination, origin)
	return NewRayCastDirection(origin, delta, vmath.V2Mag(delta))
}

// NewRayCastDirection builds a ray along direction (normalized here) bounded by distance
func NewRayCastDirection(origin, direction vmath.Vec2, distance int64) RayCast {
	dir := vmath.V2Normalize(direction)
	return RayCast{
		Origin:    origin,
		Direction: dir,
		InvDirection: vmath.V2(
			vmath.Div(vmath.Scale, dir.X),
			vmath.Div(vmath.Scale, dir.Y),
		),
		SignX:    dir.X < 0,
		SignY:    dir.Y < 0,
		Distance: distance,
	}
}

// RayResult keeps the closest hit seen across any number of casts
type RayResult struct {
	Shape     Shape
	Distance  int64
	Normal    vmath.Vec2
	Contained bool // The cast started inside Shape
}

func (r *RayResult) IsValid() bool {
	return r.Shape != nil
}

func (r *RayResult) IsContained() bool {
	return r.IsValid() && r.Contained
}

// Set records a surface hit if it is closer than the current one
func (r *RayResult) Set(shape Shape, distance int64, normal vmath.Vec2) {
	if r.Contained {
		return
	}
	if !r.IsValid() || distance < r.Distance {
		r.Shape = shape
		r.Distance = distance
		r.Normal = normal
	}
}

// SetContained records that the cast origin lies inside shape
func (r *RayResult) SetContained(shape Shape) {
	r.Shape = shape
	r.Distance = 0
	r.Normal = vmath.V2Zero
	r.Contained = true
}

// ComputePoint returns the world hit point along ray
func (r *RayResult) ComputePoint(ray *RayCast) vmath.Vec2 {
	return vmath.V2AddScaled(ray.Origin, ray.Direction, r.Distance)
}

func (r *RayResult) Reset() {
	*r = RayResult{}
}

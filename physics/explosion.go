package physics

import (
	"github.com/lixenwraith/volt/parameter"
	"github.com/lixenwraith/volt/vmath"
)

// ExplosionCallback receives each ray hit on a target body; weight is 1/rayCount
type ExplosionCallback func(ray *RayCast, result *RayResult, weight int64)

// PerformExplosion casts rayCount evenly spaced rays of length radius from origin
// Per ray, targets hit no further than the nearest occluder (plus slop) are reported to callback
// Ray i points at angle 2*pi*i/rayCount
func (w *World) PerformExplosion(
	origin vmath.Vec2,
	radius int64,
	rayCount int,
	callback ExplosionCallback,
	targetFilter BodyFilter,
	occlusionFilter BodyFilter,
) {
	if rayCount <= 0 || callback == nil {
		return
	}

	targets := w.QueryCircle(origin, radius, targetFilter, nil)
	occluders := w.QueryCircle(origin, radius, occlusionFilter, nil)
	if len(targets) == 0 {
		return
	}

	weight := vmath.FromRatio(1, rayCount)
	angleIncrement := vmath.Mul(vmath.TwoPi, weight)

	for i := 0; i < rayCount; i++ {
		direction := vmath.V2Polar(angleIncrement * int64(i))
		ray := NewRayCastDirection(origin, direction, radius)

		minDistance := occludingDistance(&ray, occluders) + parameter.ExplosionOccluderSlop

		for _, b := range targets {
			var result RayResult
			if b.RayCast(&ray, &result) && result.Distance < minDistance {
				callback(&ray, &result, weight)
			}
		}
	}
}

// occludingDistance is the nearest occluder hit along ray, or the ray length
func occludingDistance(ray *RayCast, occluders []*Body) int64 {
	var result RayResult
	for _, b := range occluders {
		b.RayCast(ray, &result)
	}
	if result.IsValid() {
		return result.Distance
	}
	return ray.Distance
}

// ExplosionImpulse returns a callback pushing each hit body along the ray
// Impulse per hit is forceMax * (1 - distance/radius) * weight, applied at the hit point
func ExplosionImpulse(forceMax int64) ExplosionCallback {
	return func(ray *RayCast, result *RayResult, weight int64) {
		body := result.Shape.Body()
		if body.IsStatic() {
			return
		}

		falloff := vmath.Scale - vmath.Div(result.Distance, ray.Distance)
		magnitude := vmath.Mul(vmath.Mul(forceMax, falloff), weight)
		impulse := vmath.V2Scale(ray.Direction, magnitude)

		if result.IsContained() {
			body.AddImpulse(impulse)
			return
		}
		body.AddImpulseAt(impulse, result.ComputePoint(ray))
	}
}

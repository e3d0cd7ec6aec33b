package physics

import (
	"github.com/lixenwraith/volt/vmath"
)

// BodyType selects whether the solver may move a body
type BodyType uint8

const (
	BodyDynamic BodyType = iota
	BodyStatic
)

func (t BodyType) String() string {
	if t == BodyStatic {
		return "static"
	}
	return "dynamic"
}

// Body is a rigid body owning one or more shapes
// Fields are exported for the solver and the stepping loop; use Set to move a body
type Body struct {
	id   int
	Type BodyType

	Position vmath.Vec2
	Angle    int64      // Radians (Q32.32)
	Facing   vmath.Vec2 // Unit (cos, sin) of Angle

	LinearVelocity  vmath.Vec2
	AngularVelocity int64

	// Solver-only positional correction channel, zeroed every step
	BiasVelocity vmath.Vec2
	BiasRotation int64

	Force  vmath.Vec2
	Torque int64

	Mass       int64
	Inertia    int64
	InvMass    int64 // Zero for static or massless bodies
	InvInertia int64

	aabb   AABB
	shapes []Shape
}

// NewBody creates a body at position and angle with no shapes
func NewBody(bodyType BodyType, position vmath.Vec2, angle int64) *Body {
	b := &Body{Type: bodyType}
	b.setTransform(position, angle)
	return b
}

func (b *Body) ID() int         { return b.id }
func (b *Body) IsStatic() bool  { return b.Type == BodyStatic }
func (b *Body) AABB() AABB      { return b.aabb }
func (b *Body) Shapes() []Shape { return b.shapes }
func (b *Body) ShapeCount() int { return len(b.shapes) }

// AddShape binds shapes to the body, computes their metrics and refreshes mass
// World-space shapes are converted using the body's current transform
func (b *Body) AddShape(cfg *Config, shapes ...Shape) {
	for _, s := range shapes {
		s.base().body = b
		s.ComputeMetrics(cfg)
		s.ApplyBodyPosition()
		b.shapes = append(b.shapes, s)
	}
	b.ComputeMass()
	b.updateAABB()
}

// ComputeMass aggregates shape mass and inertia
func (b *Body) ComputeMass() {
	if b.IsStatic() {
		b.Mass, b.Inertia = 0, 0
		b.InvMass, b.InvInertia = 0, 0
		return
	}

	var mass, inertia int64
	for _, s := range b.shapes {
		mass += s.Mass()
		inertia += vmath.Mul(s.Mass(), s.Inertia())
	}
	b.Mass = mass
	b.Inertia = inertia

	b.InvMass = 0
	if mass > 0 {
		b.InvMass = vmath.Div(vmath.Scale, mass)
	}
	b.InvInertia = 0
	if inertia > 0 {
		b.InvInertia = vmath.Div(vmath.Scale, inertia)
	}
}

// Set teleports the body and refreshes shape world geometry
func (b *Body) Set(position vmath.Vec2, angle int64) {
	b.setTransform(position, angle)
	b.OnPositionUpdated()
}

// OnPositionUpdated pushes the current transform into every shape
func (b *Body) OnPositionUpdated() {
	for _, s := range b.shapes {
		s.ApplyBodyPosition()
	}
	b.updateAABB()
}

func (b *Body) setTransform(position vmath.Vec2, angle int64) {
	b.Position = position
	b.Angle = angle
	b.Facing = vmath.V2Polar(angle)
}

func (b *Body) updateAABB() {
	if len(b.shapes) == 0 {
		b.aabb = NewAABBFromRadius(b.Position, 0)
		return
	}
	aabb := b.shapes[0].AABB()
	for _, s := range b.shapes[1:] {
		aabb = CreateMerged(aabb, s.AABB())
	}
	b.aabb = aabb
}

// --- Forces and impulses ---

// AddForce accumulates a force applied at the center until the next step
func (b *Body) AddForce(force vmath.Vec2) {
	b.Force = vmath.V2Add(b.Force, force)
}

// AddForceAt accumulates a force applied at a world point
func (b *Body) AddForceAt(force, point vmath.Vec2) {
	b.Force = vmath.V2Add(b.Force, force)
	b.Torque += vmath.V2Cross(vmath.V2Sub(point, b.Position), force)
}

func (b *Body) AddTorque(torque int64) {
	b.Torque += torque
}

// AddImpulse changes linear velocity immediately
func (b *Body) AddImpulse(impulse vmath.Vec2) {
	b.LinearVelocity = vmath.V2AddScaled(b.LinearVelocity, impulse, b.InvMass)
}

// AddImpulseAt applies an impulse at a world point
func (b *Body) AddImpulseAt(impulse, point vmath.Vec2) {
	b.ApplyImpulse(impulse, vmath.V2Sub(point, b.Position))
}

// ApplyImpulse applies an impulse at offset r from the body position
func (b *Body) ApplyImpulse(impulse, r vmath.Vec2) {
	b.LinearVelocity = vmath.V2AddScaled(b.LinearVelocity, impulse, b.InvMass)
	b.AngularVelocity += vmath.Mul(b.InvInertia, vmath.V2Cross(r, impulse))
}

// ApplyBias is ApplyImpulse on the positional correction channel
func (b *Body) ApplyBias(impulse, r vmath.Vec2) {
	b.BiasVelocity = vmath.V2AddScaled(b.BiasVelocity, impulse, b.InvMass)
	b.BiasRotation += vmath.Mul(b.InvInertia, vmath.V2Cross(r, impulse))
}

// --- Coordinate transforms ---

func (b *Body) WorldToBodyPoint(v vmath.Vec2) vmath.Vec2 {
	return vmath.V2InvRotate(vmath.V2Sub(v, b.Position), b.Facing)
}

func (b *Body) BodyToWorldPoint(v vmath.Vec2) vmath.Vec2 {
	return vmath.V2Add(vmath.V2Rotate(v, b.Facing), b.Position)
}

func (b *Body) WorldToBodyDirection(v vmath.Vec2) vmath.Vec2 {
	return vmath.V2InvRotate(v, b.Facing)
}

func (b *Body) BodyToWorldDirection(v vmath.Vec2) vmath.Vec2 {
	return vmath.V2Rotate(v, b.Facing)
}

// BodyToWorldAxis rotates the normal and shifts the width by the body position
func (b *Body) BodyToWorldAxis(axis Axis) Axis {
	normal := vmath.V2Rotate(axis.Normal, b.Facing)
	return Axis{Normal: normal, Width: vmath.V2Dot(normal, b.Position) + axis.Width}
}

// WorldToBodyRay expresses ray in body space, distance is preserved
func (b *Body) WorldToBodyRay(ray *RayCast) RayCast {
	return NewRayCastDirection(
		b.WorldToBodyPoint(ray.Origin),
		b.WorldToBodyDirection(ray.Direction),
		ray.Distance)
}

// --- Queries (world space) ---

// QueryPoint reports whether any shape contains the world point
func (b *Body) QueryPoint(point vmath.Vec2) bool {
	if !b.aabb.QueryPoint(point) {
		return false
	}
	bodyPoint := b.WorldToBodyPoint(point)
	for _, s := range b.shapes {
		if s.QueryPoint(bodyPoint) {
			return true
		}
	}
	return false
}

// QueryCircle reports whether any shape overlaps the world circle
func (b *Body) QueryCircle(origin vmath.Vec2, radius int64) bool {
	if !b.aabb.QueryCircleApprox(origin, radius) {
		return false
	}
	bodyOrigin := b.WorldToBodyPoint(origin)
	for _, s := range b.shapes {
		if s.QueryCircle(bodyOrigin, radius) {
			return true
		}
	}
	return false
}

// RayCast casts a world ray against every shape, merging the closest hit into result
func (b *Body) RayCast(ray *RayCast, result *RayResult) bool {
	if !b.aabb.RayCast(ray) {
		return false
	}
	bodyRay := b.WorldToBodyRay(ray)

	var local RayResult
	for _, s := range b.shapes {
		s.RayCast(&bodyRay, &local)
		if local.IsContained() {
			break
		}
	}
	return b.mergeResult(&local, result)
}

// CircleCast sweeps a world circle against every shape, merging the closest hit into result
func (b *Body) CircleCast(ray *RayCast, radius int64, result *RayResult) bool {
	if !b.aabb.CircleCastApprox(ray, radius) {
		return false
	}
	bodyRay := b.WorldToBodyRay(ray)

	var local RayResult
	for _, s := range b.shapes {
		s.CircleCast(&bodyRay, radius, &local)
		if local.IsContained() {
			break
		}
	}
	return b.mergeResult(&local, result)
}

// mergeResult converts a body-space hit to world space and keeps it if closer
func (b *Body) mergeResult(local, result *RayResult) bool {
	if !local.IsValid() {
		return false
	}
	if local.IsContained() {
		result.SetContained(local.Shape)
		return true
	}
	if result.IsValid() && local.Distance >= result.Distance {
		return false
	}
	result.Set(local.Shape, local.Distance, b.BodyToWorldDirection(local.Normal))
	return !result.IsContained()
}

package physics

import (
	"github.com/lixenwraith/volt/vmath"
)

// Circle is a disc shape; its body-space origin is fixed once metrics are computed
type Circle struct {
	shapeBase

	worldOrigin vmath.Vec2
	radius      int64
	sqrRadius   int64

	bodyOrigin vmath.Vec2
	// bodySpace marks origin supplied in body space, skipping the world->body derivation
	bodySpace bool
}

// NewCircleFromWorldSpace creates a circle whose origin is given in world space
func NewCircleFromWorldSpace(origin vmath.Vec2, radius, density, friction, restitution int64) *Circle {
	c := &Circle{}
	c.InitializeFromWorldSpace(origin, radius, density, friction, restitution)
	return c
}

// NewCircleFromBodySpace creates a circle whose origin is relative to its future body
func NewCircleFromBodySpace(origin vmath.Vec2, radius, density, friction, restitution int64) *Circle {
	c := &Circle{}
	c.InitializeFromBodySpace(origin, radius, density, friction, restitution)
	return c
}

func (c *Circle) InitializeFromWorldSpace(origin vmath.Vec2, radius, density, friction, restitution int64) {
	c.initialize(density, friction, restitution)

	c.worldOrigin = origin
	c.radius = radius
	c.sqrRadius = vmath.Square(radius)
	c.worldAABB = NewAABBFromRadius(origin, radius)

	c.bodyOrigin = vmath.V2Zero
	c.bodySpace = false
}

func (c *Circle) InitializeFromBodySpace(origin vmath.Vec2, radius, density, friction, restitution int64) {
	c.initialize(density, friction, restitution)

	c.radius = radius
	c.sqrRadius = vmath.Square(radius)

	// World origin is computed on position update
	c.bodyOrigin = origin
	c.bodySpace = true
	c.bodyAABB = NewAABBFromRadius(origin, radius)
}

func (c *Circle) Kind() ShapeKind { return ShapeCircle }

// Origin returns the world-space center
func (c *Circle) Origin() vmath.Vec2 { return c.worldOrigin }

// BodyOrigin returns the body-space center
func (c *Circle) BodyOrigin() vmath.Vec2 { return c.bodyOrigin }

func (c *Circle) Radius() int64 { return c.radius }

func (c *Circle) ComputeMetrics(cfg *Config) {
	if !c.bodySpace {
		c.bodyOrigin = c.body.WorldToBodyPoint(c.worldOrigin)
		c.bodySpace = true
	}
	c.bodyAABB = NewAABBFromRadius(c.bodyOrigin, c.radius)

	c.area = vmath.Mul(c.sqrRadius, vmath.Pi)
	c.mass = c.massFromArea(cfg)
	c.inertia = c.sqrRadius/2 + vmath.V2MagSq(c.bodyOrigin)
}

func (c *Circle) ApplyBodyPosition() {
	c.worldOrigin = c.body.BodyToWorldPoint(c.bodyOrigin)
	c.worldAABB = NewAABBFromRadius(c.worldOrigin, c.radius)
}

// --- Queries (body space) ---

func (c *Circle) QueryPoint(bodySpacePoint vmath.Vec2) bool {
	if !c.bodyAABB.QueryPoint(bodySpacePoint) {
		return false
	}
	return TestPointCircleSimple(c.bodyOrigin, bodySpacePoint, c.radius)
}

func (c *Circle) QueryCircle(bodySpaceOrigin vmath.Vec2, radius int64) bool {
	if !c.bodyAABB.QueryCircleApprox(bodySpaceOrigin, radius) {
		return false
	}
	return TestCircleCircleSimple(c.bodyOrigin, bodySpaceOrigin, c.radius, radius)
}

func (c *Circle) RayCast(bodySpaceRay *RayCast, result *RayResult) bool {
	if !c.bodyAABB.RayCast(bodySpaceRay) {
		return false
	}
	return CircleRayCast(c, c.bodyOrigin, c.sqrRadius, bodySpaceRay, result)
}

func (c *Circle) CircleCast(bodySpaceRay *RayCast, radius int64, result *RayResult) bool {
	if !c.bodyAABB.CircleCastApprox(bodySpaceRay, radius) {
		return false
	}
	totalRadius := c.radius + radius
	return CircleRayCast(c, c.bodyOrigin, vmath.Square(totalRadius), bodySpaceRay, result)
}

package physics

import (
	"github.com/lixenwraith/volt/vmath"
)

// ShapeKind is the closed set of shape variants, also the collision table index
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapePolygon

	numShapeKinds
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is the geometry contract shared by every variant
// Query inputs are in the owning body's space; the body converts world queries
type Shape interface {
	Kind() ShapeKind
	ID() int
	Body() *Body

	// AABB is world space, BodyAABB is body space
	AABB() AABB
	BodyAABB() AABB

	Density() int64
	Friction() int64
	Restitution() int64
	Area() int64
	Mass() int64
	Inertia() int64

	// ComputeMetrics runs once after the body is assigned
	ComputeMetrics(cfg *Config)
	// ApplyBodyPosition runs every time the body transform changes
	ApplyBodyPosition()

	QueryPoint(bodySpacePoint vmath.Vec2) bool
	QueryCircle(bodySpaceOrigin vmath.Vec2, radius int64) bool
	RayCast(bodySpaceRay *RayCast, result *RayResult) bool
	CircleCast(bodySpaceRay *RayCast, radius int64, result *RayResult) bool

	base() *shapeBase
}

// shapeBase holds the attributes common to all variants
type shapeBase struct {
	id   int
	body *Body

	density     int64
	friction    int64
	restitution int64

	area    int64
	mass    int64
	inertia int64

	worldAABB AABB
	bodyAABB  AABB
}

func (s *shapeBase) initialize(density, friction, restitution int64) {
	*s = shapeBase{
		density:     density,
		friction:    friction,
		restitution: restitution,
	}
}

func (s *shapeBase) ID() int            { return s.id }
func (s *shapeBase) Body() *Body        { return s.body }
func (s *shapeBase) AABB() AABB         { return s.worldAABB }
func (s *shapeBase) BodyAABB() AABB     { return s.bodyAABB }
func (s *shapeBase) Density() int64     { return s.density }
func (s *shapeBase) Friction() int64    { return s.friction }
func (s *shapeBase) Restitution() int64 { return s.restitution }
func (s *shapeBase) Area() int64        { return s.area }
func (s *shapeBase) Mass() int64        { return s.mass }
func (s *shapeBase) Inertia() int64     { return s.inertia }

func (s *shapeBase) base() *shapeBase { return s }

// massFromArea applies the configured area-to-mass constant
func (s *shapeBase) massFromArea(cfg *Config) int64 {
	return vmath.Mul(vmath.Mul(s.area, s.density), cfg.AreaMassRatio)
}

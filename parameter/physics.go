package parameter

import "github.com/lixenwraith/volt/vmath"

// Pre-computed Q32.32 solver constants, initialized once to avoid repeated float calculation

// Positional correction
var (
	ResolveRate = vmath.FromFloat(ResolveRateFloat)
	ResolveSlop = vmath.FromFloat(ResolveSlopFloat)
)

// Mass derivation and restitution scaling
var (
	AreaMassRatio = vmath.FromFloat(AreaMassRatioFloat)
	Elasticity    = vmath.FromFloat(ElasticityFloat)
)

// Integration
var (
	Damping   = vmath.FromFloat(DampingFloat)
	DeltaTime = vmath.FromFloat(DeltaTimeFloat)
)

// Explosion queries
var (
	// ExplosionOccluderSlop lets targets just behind an occluder's surface still be hit
	ExplosionOccluderSlop = vmath.FromFloat(0.05)

	ExplosionRadius   = vmath.FromInt(6)
	ExplosionForceMax = vmath.FromInt(400)
)

// Viewer thrust, scaled by the grabbed body's mass and inertia
var (
	ThrustAccel = vmath.FromInt(30)
	SpinAccel   = vmath.FromInt(20)
)

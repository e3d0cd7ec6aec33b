package parameter

import "time"

// Simulation defaults in float form, converted once in physics.go
const (
	// ResolveRateFloat is the Baumgarte factor: fraction of penetration corrected per step
	ResolveRateFloat = 0.1

	// ResolveSlopFloat is the tolerated steady-state overlap before correction starts
	ResolveSlopFloat = 0.01

	// AreaMassRatioFloat converts shape area × density into mass
	AreaMassRatioFloat = 0.01

	// ElasticityFloat scales every manifold's restitution (1 = as authored)
	ElasticityFloat = 1.0

	// DampingFloat is the per-step velocity retention factor
	DampingFloat = 0.999

	// DeltaTimeFloat is the fixed step length in seconds
	DeltaTimeFloat = 0.02

	// SolverIterations is the number of full Solve passes per step
	SolverIterations = 20
)

// Narrow phase limits
const (
	// MaxContacts is the inline contact capacity of a manifold
	MaxContacts = 3

	// ManifoldPoolSize is the initial number of pooled manifolds
	ManifoldPoolSize = 64
)

// Viewer timing
const (
	// StepInterval matches DeltaTimeFloat in wall-clock time
	StepInterval = 20 * time.Millisecond

	// ExplosionRays is the ray count used by the viewer's explosion key
	ExplosionRays = 32
)

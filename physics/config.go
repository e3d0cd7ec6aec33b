package physics

import (
	"log"

	"github.com/lixenwraith/volt/parameter"
	"github.com/lixenwraith/volt/vmath"
)

// Config carries every tunable consumed by shapes, contacts and the world
// A world copies it at construction; independent worlds never share mutable state
type Config struct {
	ResolveRate   int64 // Baumgarte factor (Q32.32)
	ResolveSlop   int64 // Allowed overlap before correction (Q32.32)
	AreaMassRatio int64 // Mass per unit area per unit density (Q32.32)
	Elasticity    int64 // Global restitution multiplier (Q32.32, Scale = as authored)
	Damping       int64 // Per-step velocity retention (Q32.32)
	DeltaTime     int64 // Step length in seconds (Q32.32)
	Iterations    int   // Solve passes per step
	Gravity       vmath.Vec2

	// WarmStart seeds re-detected contacts with the previous step's accumulated impulses
	WarmStart bool
	// CheckWinding logs polygons whose signed area is not positive
	CheckWinding bool
	// Logger receives diagnostics, nil discards them
	Logger *log.Logger
}

// DefaultConfig returns the tunables from the parameter package
func DefaultConfig() Config {
	return Config{
		ResolveRate:   parameter.ResolveRate,
		ResolveSlop:   parameter.ResolveSlop,
		AreaMassRatio: parameter.AreaMassRatio,
		Elasticity:    parameter.Elasticity,
		Damping:       parameter.Damping,
		DeltaTime:     parameter.DeltaTime,
		Iterations:    parameter.SolverIterations,
		WarmStart:     true,
	}
}

func (c *Config) logf(format string, args ...any) {
	if c == nil || c.Logger == nil {
		return
	}
	c.Logger.Printf(format, args...)
}

// biasDist maps a signed penetration to the Baumgarte target velocity
// Only overlap beyond the slop produces a (negative) target, separation never does
func (c *Config) biasDist(dist int64) int64 {
	return vmath.Mul(c.ResolveRate, vmath.Min(0, dist+c.ResolveSlop))
}

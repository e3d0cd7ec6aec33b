package physics

import (
	"github.com/lixenwraith/volt/vmath"
)

// IntegrateForces damps velocity, then applies gravity and accumulated force/torque: v = v*damping + a*dt
// Static bodies are skipped
func IntegrateForces(b *Body, cfg *Config) {
	if b.IsStatic() {
		return
	}
	dt := cfg.DeltaTime

	b.LinearVelocity = vmath.V2Scale(b.LinearVelocity, cfg.Damping)
	b.AngularVelocity = vmath.Mul(b.AngularVelocity, cfg.Damping)

	accel := vmath.V2AddScaled(cfg.Gravity, b.Force, b.InvMass)
	b.LinearVelocity = vmath.V2AddScaled(b.LinearVelocity, accel, dt)
	b.AngularVelocity += vmath.Mul(vmath.Mul(b.Torque, b.InvInertia), dt)
}

// IntegratePosition advances the transform and clears per-step state: p = p + v*dt + bias
// The bias channel holds a positional correction, not a velocity, so it is not scaled by dt
func IntegratePosition(b *Body, cfg *Config) {
	dt := cfg.DeltaTime

	if !b.IsStatic() {
		b.Position = vmath.V2Add(vmath.V2AddScaled(b.Position, b.LinearVelocity, dt), b.BiasVelocity)
		b.Angle += vmath.Mul(b.AngularVelocity, dt) + b.BiasRotation
		b.Facing = vmath.V2Polar(b.Angle)
	}

	b.BiasVelocity = vmath.V2Zero
	b.BiasRotation = 0
	b.Force = vmath.V2Zero
	b.Torque = 0

	b.OnPositionUpdated()
}

// Update runs both integration halves, for bodies stepped outside a World
func Update(b *Body, cfg *Config) {
	IntegrateForces(b, cfg)
	IntegratePosition(b, cfg)
}

// KineticEnergy returns 0.5*m*|v|^2 + 0.5*I*w^2, used by diagnostics and tests
func KineticEnergy(b *Body) int64 {
	linear := vmath.Mul(b.Mass, vmath.V2MagSq(b.LinearVelocity))
	angular := vmath.Mul(b.Inertia, vmath.Square(b.AngularVelocity))
	return (linear + angular) / 2
}

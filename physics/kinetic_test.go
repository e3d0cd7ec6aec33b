package physics

import (
	"testing"

	"github.com/lixenwraith/volt/vmath"
)

// newUnitBody returns a dynamic circle body with mass and inertia forced to one, no damping
func newUnitBody(t *testing.T) (*Body, *Config) {
	t.Helper()
	cfg := testConfig()
	cfg.Damping = vmath.Scale
	b, _ := newCircleBody(&cfg, BodyDynamic, vmath.V2Zero, vmath.Scale, 0, 0)
	setUnitMass(b)
	b.Inertia = vmath.Scale
	b.InvInertia = vmath.Scale
	return b, &cfg
}

// TestAddForceIntegratesAndResets verifies dv = F*invMass*dt and that the force lasts one step
func TestAddForceIntegratesAndResets(t *testing.T) {
	b, cfg := newUnitBody(t)

	b.AddForce(v2(2, 0))
	IntegrateForces(b, cfg)
	assertVecNear(t, "velocity after force", b.LinearVelocity, 0.04, 0, 1e-6)
	if b.AngularVelocity != 0 {
		t.Errorf("Expected no spin from a centered force, got %f", vmath.ToFloat(b.AngularVelocity))
	}

	IntegratePosition(b, cfg)
	if b.Force != vmath.V2Zero {
		t.Errorf("Expected force cleared after the step, got (%f, %f)", vmath.ToFloat(b.Force.X), vmath.ToFloat(b.Force.Y))
	}

	IntegrateForces(b, cfg)
	assertVecNear(t, "velocity one step later", b.LinearVelocity, 0.04, 0, 1e-6)
}

// TestAddTorqueIntegrates verifies dw = torque*invInertia*dt
func TestAddTorqueIntegrates(t *testing.T) {
	b, cfg := newUnitBody(t)

	b.AddTorque(fx(3))
	IntegrateForces(b, cfg)
	assertNear(t, "angular velocity", b.AngularVelocity, 0.06, 1e-6)
	assertVecNear(t, "linear velocity", b.LinearVelocity, 0, 0, 1e-9)

	IntegratePosition(b, cfg)
	if b.Torque != 0 {
		t.Errorf("Expected torque cleared, got %f", vmath.ToFloat(b.Torque))
	}
}

// TestAddForceAtProducesTorque verifies an off-center force adds r x F torque
func TestAddForceAtProducesTorque(t *testing.T) {
	tests := []struct {
		name      string
		point     vmath.Vec2
		force     vmath.Vec2
		wantOmega float64
	}{
		{"Up at right edge spins counter-clockwise", v2(1, 0), v2(0, 1), 0.02},
		{"Up at left edge spins clockwise", v2(-1, 0), v2(0, 1), -0.02},
		{"Through the center does not spin", v2(0, 1), v2(0, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, cfg := newUnitBody(t)
			b.AddForceAt(tt.force, tt.point)
			IntegrateForces(b, cfg)

			assertNear(t, "angular velocity", b.AngularVelocity, tt.wantOmega, 1e-6)
			assertVecNear(t, "linear velocity", b.LinearVelocity, 0, 0.02, 1e-6)
		})
	}
}

// TestUpdateAdvancesStandaloneBody verifies Update integrates forces then position
func TestUpdateAdvancesStandaloneBody(t *testing.T) {
	b, cfg := newUnitBody(t)

	b.AddForce(v2(1, 0))
	Update(b, cfg)

	assertVecNear(t, "velocity", b.LinearVelocity, 0.02, 0, 1e-6)
	assertVecNear(t, "position", b.Position, 0.0004, 0, 1e-6)
	if b.Force != vmath.V2Zero {
		t.Error("Expected force cleared by Update")
	}

	// Shapes follow the body
	assertNear(t, "AABB left", b.AABB().Left(), -1+0.0004, 1e-6)
}

// TestStaticBodyIgnoresForces verifies forces never move a static body
func TestStaticBodyIgnoresForces(t *testing.T) {
	cfg := testConfig()
	b, _ := newCircleBody(&cfg, BodyStatic, vmath.V2Zero, vmath.Scale, 0, 0)

	b.AddForce(v2(5, 5))
	b.AddTorque(fx(5))
	Update(b, &cfg)

	if b.LinearVelocity != vmath.V2Zero || b.AngularVelocity != 0 || b.Position != vmath.V2Zero {
		t.Error("Expected static body unchanged")
	}
}

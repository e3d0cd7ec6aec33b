package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/volt/vmath"
)

// testConfig returns defaults without gravity
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Gravity = vmath.V2Zero
	return cfg
}

func fx(f float64) int64 { return vmath.FromFloat(f) }

func v2(x, y float64) vmath.Vec2 { return vmath.V2FromFloat(x, y) }

// newCircleBody creates a standalone body with one circle centered on it
func newCircleBody(cfg *Config, bodyType BodyType, position vmath.Vec2, radius, friction, restitution int64) (*Body, *Circle) {
	b := NewBody(bodyType, position, 0)
	c := NewCircleFromBodySpace(vmath.V2Zero, radius, vmath.Scale, friction, restitution)
	b.AddShape(cfg, c)
	return b, c
}

// newBoxBody creates a standalone body with one centered box
func newBoxBody(cfg *Config, bodyType BodyType, position vmath.Vec2, halfWidth, halfHeight int64) (*Body, *Polygon) {
	b := NewBody(bodyType, position, 0)
	p := NewPolygonFromBodyVertices(NewBoxBodyVertices(halfWidth, halfHeight), vmath.Scale, fx(0.5), 0)
	b.AddShape(cfg, p)
	return b, p
}

// setUnitMass makes a body's mass exactly one so impulses map to velocity without rounding
func setUnitMass(b *Body) {
	b.Mass = vmath.Scale
	b.InvMass = vmath.Scale
}

func assertNear(t *testing.T, name string, got int64, want, tolerance float64) {
	t.Helper()
	if diff := math.Abs(vmath.ToFloat(got) - want); diff > tolerance {
		t.Errorf("Expected %s = %f, got %f", name, want, vmath.ToFloat(got))
	}
}

func assertVecNear(t *testing.T, name string, got vmath.Vec2, wantX, wantY, tolerance float64) {
	t.Helper()
	gx, gy := vmath.V2ToFloat(got)
	if math.Abs(gx-wantX) > tolerance || math.Abs(gy-wantY) > tolerance {
		t.Errorf("Expected %s = (%f, %f), got (%f, %f)", name, wantX, wantY, gx, gy)
	}
}

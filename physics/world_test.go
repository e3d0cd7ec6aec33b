package physics

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/lixenwraith/volt/vmath"
)

// gravityConfig returns defaults with downward gravity
func gravityConfig() Config {
	cfg := DefaultConfig()
	cfg.Gravity = v2(0, -10)
	return cfg
}

// addFloor adds a static slab whose top face lies on y = 0
func addFloor(w *World) *Body {
	floor := NewPolygonFromWorldVertices([]vmath.Vec2{
		v2(-20, -1), v2(20, -1), v2(20, 0), v2(-20, 0),
	}, vmath.Scale, fx(0.6), 0)
	return w.CreateStaticBody(vmath.V2Zero, 0, floor)
}

// newPileWorld builds a floor with a mixed pile of circles and boxes dropped onto it
func newPileWorld(cfg Config) *World {
	w := NewWorld(cfg)
	addFloor(w)

	for i := 0; i < 4; i++ {
		x := fx(-3 + 2*float64(i))
		circle := NewCircleFromBodySpace(vmath.V2Zero, fx(0.5), vmath.Scale, fx(0.4), fx(0.2))
		w.CreateDynamicBody(vmath.V2(x, fx(1)), 0, circle)

		box := NewPolygonFromBodyVertices(NewBoxBodyVertices(fx(0.5), fx(0.5)), vmath.Scale, fx(0.5), 0)
		w.CreateDynamicBody(vmath.V2(x+fx(0.3), fx(2.5)), fx(0.3*float64(i)), box)
	}
	return w
}

// trace records every body's raw fixed-point state, one line per body per sampled step
func trace(w *World, steps, every int) string {
	var sb strings.Builder
	for i := 1; i <= steps; i++ {
		w.Step()
		if i%every != 0 {
			continue
		}
		fmt.Fprintf(&sb, "step %d hash %016x\n", w.StepCount(), w.StateHash())
		for _, b := range w.Bodies() {
			fmt.Fprintf(&sb, "  body %d pos %d %d angle %d vel %d %d spin %d\n",
				b.ID(), b.Position.X, b.Position.Y, b.Angle,
				b.LinearVelocity.X, b.LinearVelocity.Y, b.AngularVelocity)
		}
	}
	return sb.String()
}

// TestWorldDeterministicTrace verifies two independently built worlds produce identical state
func TestWorldDeterministicTrace(t *testing.T) {
	expected := trace(newPileWorld(gravityConfig()), 120, 10)
	output := trace(newPileWorld(gravityConfig()), 120, 10)

	if expected != output {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(expected),
			B:        difflib.SplitLines(output),
			FromFile: "first",
			ToFile:   "second",
			Context:  1,
		}
		text, _ := difflib.GetUnifiedDiffString(diff)
		t.Errorf("Traces diverged:\n%s", text)
	}
}

// TestWorldSnapshotRestore verifies re-simulation from a snapshot reproduces the same hash
func TestWorldSnapshotRestore(t *testing.T) {
	w := newPileWorld(gravityConfig())
	for i := 0; i < 30; i++ {
		w.Step()
	}

	snap, err := w.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	hashAtSnapshot := w.StateHash()

	for i := 0; i < 30; i++ {
		w.Step()
	}
	first := w.StateHash()

	if err := w.Restore(snap); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if w.StepCount() != 30 {
		t.Errorf("Expected step count 30 after restore, got %d", w.StepCount())
	}
	if w.StateHash() != hashAtSnapshot {
		t.Errorf("Expected restored hash %016x, got %016x", hashAtSnapshot, w.StateHash())
	}

	for i := 0; i < 30; i++ {
		w.Step()
	}
	if second := w.StateHash(); second != first {
		t.Errorf("Expected re-simulated hash %016x, got %016x", first, second)
	}
}

// TestWorldRestoreMismatch verifies snapshots are rejected by worlds with a different body set
func TestWorldRestoreMismatch(t *testing.T) {
	w := newPileWorld(gravityConfig())
	snap, err := w.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	other := NewWorld(gravityConfig())
	addFloor(other)
	if err := other.Restore(snap); !errors.Is(err, ErrSnapshotMismatch) {
		t.Errorf("Expected ErrSnapshotMismatch, got %v", err)
	}

	w.RemoveBody(w.Bodies()[1])
	w.CreateDynamicBody(v2(0, 5), 0, NewCircleFromBodySpace(vmath.V2Zero, fx(0.5), vmath.Scale, 0, 0))
	if err := w.Restore(snap); !errors.Is(err, ErrSnapshotMismatch) {
		t.Errorf("Expected ErrSnapshotMismatch for reordered ids, got %v", err)
	}
}

// TestWorldCircleComesToRest verifies a dropped circle settles on the floor
func TestWorldCircleComesToRest(t *testing.T) {
	w := NewWorld(gravityConfig())
	addFloor(w)
	ball := w.CreateDynamicBody(v2(0, 1.5), 0,
		NewCircleFromBodySpace(vmath.V2Zero, vmath.FromInt(1), vmath.Scale, fx(0.5), 0))

	for i := 0; i < 300; i++ {
		w.Step()
	}

	y := vmath.ToFloat(ball.Position.Y)
	if y < 0.8 || y > 1.1 {
		t.Errorf("Expected resting height near 1, got %f", y)
	}
	if vy := vmath.ToFloat(ball.LinearVelocity.Y); vy < -0.5 || vy > 0.5 {
		t.Errorf("Expected near-zero vertical velocity, got %f", vy)
	}
}

// TestWorldStaticPairsSkipped verifies overlapping static bodies never produce manifolds
func TestWorldStaticPairsSkipped(t *testing.T) {
	w := NewWorld(testConfig())
	box := func() Shape {
		return NewPolygonFromBodyVertices(NewBoxBodyVertices(vmath.FromInt(1), vmath.FromInt(1)), vmath.Scale, 0, 0)
	}
	w.CreateStaticBody(vmath.V2Zero, 0, box())
	w.CreateStaticBody(v2(0.5, 0), 0, box())

	w.Step()
	if n := len(w.Manifolds()); n != 0 {
		t.Errorf("Expected no manifolds between static bodies, got %d", n)
	}
}

// TestWorldWarmCache verifies the impulse cache follows the WarmStart flag
func TestWorldWarmCache(t *testing.T) {
	tests := []struct {
		name      string
		warmStart bool
		wantCache bool
	}{
		{"Enabled", true, true},
		{"Disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := gravityConfig()
			cfg.WarmStart = tt.warmStart
			w := NewWorld(cfg)
			addFloor(w)
			w.CreateDynamicBody(v2(0, 0.95), 0,
				NewCircleFromBodySpace(vmath.V2Zero, vmath.FromInt(1), vmath.Scale, fx(0.5), 0))

			for i := 0; i < 5; i++ {
				w.Step()
			}
			if len(w.Manifolds()) == 0 {
				t.Fatal("Expected a resting contact")
			}
			if got := len(w.warm) > 0; got != tt.wantCache {
				t.Errorf("Expected cache populated=%v, got %v", tt.wantCache, got)
			}
		})
	}
}

// TestWorldRemoveBody verifies removal drops the body, its shapes and its cached contacts
func TestWorldRemoveBody(t *testing.T) {
	w := NewWorld(gravityConfig())
	addFloor(w)
	ball := w.CreateDynamicBody(v2(0, 0.95), 0,
		NewCircleFromBodySpace(vmath.V2Zero, vmath.FromInt(1), vmath.Scale, fx(0.5), 0))
	w.Step()

	if !w.RemoveBody(ball) {
		t.Fatal("Expected first removal to succeed")
	}
	if w.RemoveBody(ball) {
		t.Error("Expected second removal to fail")
	}
	if w.Body(ball.ID()) != nil {
		t.Error("Expected removed body lookup to return nil")
	}
	if len(w.Bodies()) != 1 || len(w.Shapes()) != 1 {
		t.Errorf("Expected 1 body and 1 shape, got %d and %d", len(w.Bodies()), len(w.Shapes()))
	}
	if len(w.warm) != 0 {
		t.Errorf("Expected cached contacts of removed body dropped, got %d", len(w.warm))
	}
}

// TestWorldQueries verifies point, circle, ray and circle-cast queries with filters
func TestWorldQueries(t *testing.T) {
	w := NewWorld(testConfig())
	floor := addFloor(w)
	crate := w.CreateDynamicBody(v2(0, 5), 0,
		NewPolygonFromBodyVertices(NewBoxBodyVertices(vmath.FromInt(1), vmath.FromInt(1)), vmath.Scale, 0, 0))
	dynamicOnly := func(b *Body) bool { return !b.IsStatic() }

	if hits := w.QueryPoint(v2(0.5, 5.5), nil, nil); len(hits) != 1 || hits[0] != crate {
		t.Errorf("Expected point query to find the crate, got %d hits", len(hits))
	}
	if hits := w.QueryPoint(v2(0, -0.5), dynamicOnly, nil); len(hits) != 0 {
		t.Errorf("Expected filtered point query to skip the floor, got %d hits", len(hits))
	}
	if hits := w.QueryCircle(v2(0, 2), fx(3.5), nil, nil); len(hits) != 2 {
		t.Errorf("Expected circle query to find both bodies, got %d", len(hits))
	}

	ray := NewRayCastDirection(v2(-20, 5), v2(1, 0), vmath.FromInt(40))
	var result RayResult
	if !w.RayCast(&ray, nil, &result) {
		t.Fatal("Expected ray to hit the crate")
	}
	if result.Shape.Body() != crate {
		t.Error("Expected hit shape to belong to the crate")
	}
	assertNear(t, "distance", result.Distance, 19, 1e-6)
	assertVecNear(t, "normal", result.Normal, -1, 0, 1e-6)

	var filtered RayResult
	if w.RayCast(&ray, func(b *Body) bool { return b != crate }, &filtered) {
		t.Error("Expected filtered ray to miss")
	}

	down := NewRayCastDirection(v2(3, 5), v2(0, -1), vmath.FromInt(10))
	var swept RayResult
	if !w.CircleCast(&down, fx(0.5), nil, &swept) {
		t.Fatal("Expected swept circle to hit the floor")
	}
	if swept.Shape.Body() != floor {
		t.Error("Expected swept circle to hit the floor first")
	}
	assertNear(t, "swept distance", swept.Distance, 4.5, 1e-6)
}

// TestWorldExplosion verifies blast impulses push exposed bodies away and respect occluders
func TestWorldExplosion(t *testing.T) {
	w := NewWorld(testConfig())
	crate := func() Shape {
		return NewPolygonFromBodyVertices(NewBoxBodyVertices(fx(0.5), fx(0.5)), vmath.Scale, 0, 0)
	}
	exposed := w.CreateDynamicBody(v2(-3, 0), 0, crate())
	w.CreateStaticBody(v2(2, 0), 0,
		NewPolygonFromBodyVertices(NewBoxBodyVertices(fx(0.25), vmath.FromInt(3)), vmath.Scale, 0, 0))
	hidden := w.CreateDynamicBody(v2(4, 0), 0, crate())

	dynamicOnly := func(b *Body) bool { return !b.IsStatic() }
	w.PerformExplosion(vmath.V2Zero, vmath.FromInt(6), 32, ExplosionImpulse(vmath.FromInt(400)), dynamicOnly, nil)

	if exposed.LinearVelocity.X >= 0 {
		t.Errorf("Expected exposed crate pushed along -x, got vx %f", vmath.ToFloat(exposed.LinearVelocity.X))
	}
	if !vmath.V2Equal(hidden.LinearVelocity, vmath.V2Zero) {
		t.Errorf("Expected occluded crate untouched, got (%f, %f)",
			vmath.ToFloat(hidden.LinearVelocity.X), vmath.ToFloat(hidden.LinearVelocity.Y))
	}
}

// TestWorldExplosionWeights verifies the callback sees 1/rayCount per hit
func TestWorldExplosionWeights(t *testing.T) {
	w := NewWorld(testConfig())
	w.CreateDynamicBody(v2(2, 0), 0, NewCircleFromBodySpace(vmath.V2Zero, fx(0.5), vmath.Scale, 0, 0))

	hits := 0
	w.PerformExplosion(vmath.V2Zero, vmath.FromInt(6), 8, func(ray *RayCast, result *RayResult, weight int64) {
		hits++
		if weight != vmath.FromRatio(1, 8) {
			t.Errorf("Expected weight 1/8, got %f", vmath.ToFloat(weight))
		}
	}, nil, nil)

	// Only the ray along +x reaches a circle of radius 0.5 at distance 2
	if hits != 1 {
		t.Errorf("Expected 1 hit, got %d", hits)
	}
}

func BenchmarkWorldStep(b *testing.B) {
	w := newPileWorld(gravityConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Step()
	}
}

package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/volt/physics"
	"github.com/lixenwraith/volt/vmath"
)

const twoBodyScene = `
config:
  gravity: [0, -9.5]
  iterations: 8
  warm_start: false
bodies:
  - name: ground
    static: true
    shapes:
      - type: box
        half_extents: [5, 0.5]
  - name: ball
    position: [0, 3]
    velocity: [1.5, 0]
    shapes:
      - type: circle
        radius: 0.5
        restitution: 0.25
`

// TestParseAndBuild verifies overrides, names and body state survive the round trip into a world
func TestParseAndBuild(t *testing.T) {
	f, err := Parse([]byte(twoBodyScene))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	s, err := Build(f, physics.DefaultConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	cfg := s.World.Config()
	if cfg.Iterations != 8 {
		t.Errorf("Expected 8 iterations, got %d", cfg.Iterations)
	}
	if cfg.WarmStart {
		t.Error("Expected warm start disabled")
	}
	if !vmath.V2Equal(cfg.Gravity, vmath.V2FromFloat(0, -9.5)) {
		t.Errorf("Expected gravity (0, -9.5)")
	}
	if cfg.Damping != physics.DefaultConfig().Damping {
		t.Error("Expected unspecified tunables to keep the base value")
	}

	if n := len(s.World.Bodies()); n != 2 {
		t.Fatalf("Expected 2 bodies, got %d", n)
	}
	ground, ball := s.Body("ground"), s.Body("ball")
	if ground == nil || ball == nil {
		t.Fatal("Expected named bodies")
	}
	if !ground.IsStatic() || ball.IsStatic() {
		t.Error("Expected static ground and dynamic ball")
	}
	if ball.LinearVelocity != vmath.V2FromFloat(1.5, 0) {
		t.Errorf("Expected ball velocity (1.5, 0)")
	}
	if ball.Shapes()[0].Restitution() != vmath.FromFloat(0.25) {
		t.Error("Expected authored restitution")
	}
	if ball.Shapes()[0].Friction() != vmath.FromFloat(DefaultFriction) {
		t.Error("Expected default friction")
	}
	if s.Body("missing") != nil {
		t.Error("Expected nil for unknown name")
	}
}

// TestParseErrors verifies validation failures map to sentinel errors
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "Empty document",
			doc:  "",
			want: ErrNoBodies,
		},
		{
			name: "No bodies",
			doc:  "config:\n  iterations: 4\n",
			want: ErrNoBodies,
		},
		{
			name: "Unknown shape",
			doc:  "bodies:\n  - shapes:\n      - type: capsule\n",
			want: ErrUnknownShape,
		},
		{
			name: "Zero radius",
			doc:  "bodies:\n  - shapes:\n      - type: circle\n        radius: 0\n",
			want: ErrDegenerateShape,
		},
		{
			name: "Two vertex polygon",
			doc:  "bodies:\n  - shapes:\n      - type: polygon\n        vertices: [[0, 0], [1, 0]]\n",
			want: ErrDegenerateShape,
		},
		{
			name: "Flat box",
			doc:  "bodies:\n  - shapes:\n      - type: box\n        half_extents: [1, 0]\n",
			want: ErrDegenerateShape,
		},
		{
			name: "Body without shapes",
			doc:  "bodies:\n  - name: empty\n",
			want: ErrDegenerateShape,
		},
		{
			name: "Duplicate names",
			doc:  "bodies:\n  - name: a\n    shapes: [{type: circle, radius: 1}]\n  - name: a\n    shapes: [{type: circle, radius: 1}]\n",
			want: ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestParseRejectsUnknownKeys verifies typos are reported instead of silently ignored
func TestParseRejectsUnknownKeys(t *testing.T) {
	doc := "bodies:\n  - shapes:\n      - type: circle\n        radius: 1\n        radious: 2\n"
	if _, err := Parse([]byte(doc)); err == nil {
		t.Error("Expected error for unknown key")
	}
}

// TestBuildWorldSpaceShapes verifies world-space geometry lands at the authored coordinates
func TestBuildWorldSpaceShapes(t *testing.T) {
	doc := `
bodies:
  - static: true
    position: [2, 1]
    shapes:
      - type: circle
        world: true
        center: [3, 1]
        radius: 1
      - type: box
        center: [-1, 0]
        half_extents: [0.5, 0.5]
`
	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	s, err := Build(f, physics.DefaultConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	body := s.World.Bodies()[0]
	circle := body.Shapes()[0].(*physics.Circle)
	if circle.BodyOrigin() != vmath.V2FromFloat(1, 0) {
		t.Errorf("Expected body-space origin (1, 0)")
	}
	if !body.QueryPoint(vmath.V2FromFloat(1, 1)) {
		t.Error("Expected the offset box to cover (1, 1)")
	}
	if body.QueryPoint(vmath.V2FromFloat(2, 1.5)) {
		t.Error("Expected the gap between shapes to be uncovered")
	}
}

// TestLoadFile verifies loading from disk and path context in errors
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte(twoBodyScene), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadWorld(good, physics.DefaultConfig())
	if err != nil {
		t.Fatalf("LoadWorld failed: %v", err)
	}
	if len(s.World.Bodies()) != 2 {
		t.Errorf("Expected 2 bodies, got %d", len(s.World.Bodies()))
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

// TestBundledScenes verifies every scene shipped in the repository loads and steps
func TestBundledScenes(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "scenes", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no bundled scenes")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadWorld(path, physics.DefaultConfig())
			if err != nil {
				t.Fatalf("LoadWorld failed: %v", err)
			}
			for i := 0; i < 50; i++ {
				s.World.Step()
			}
			if s.World.StepCount() != 50 {
				t.Errorf("Expected 50 steps, got %d", s.World.StepCount())
			}
		})
	}
}

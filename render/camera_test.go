package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/volt/physics"
	"github.com/lixenwraith/volt/vmath"
)

// TestCameraWorldToScreen verifies origin centering, y flip and cell aspect
func TestCameraWorldToScreen(t *testing.T) {
	cam := NewCamera(80, 24)

	tests := []struct {
		name     string
		x, y     float64
		col, row int
	}{
		{"Origin", 0, 0, 40, 12},
		{"Right", 1, 0, 44, 12},
		{"Up", 0, 1, 40, 10},
		{"Down left", -1, -1, 36, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := cam.WorldToScreen(vmath.V2FromFloat(tt.x, tt.y))
			if col != tt.col || row != tt.row {
				t.Errorf("Expected (%d, %d), got (%d, %d)", tt.col, tt.row, col, row)
			}
		})
	}
}

// TestCameraRoundTrip verifies ScreenToWorld inverts WorldToScreen within one cell
func TestCameraRoundTrip(t *testing.T) {
	cam := NewCamera(120, 40)
	cam.Center = mgl64.Vec2{3, -2}
	cam.ZoomBy(1.5)

	for _, p := range [][2]float64{{0, 0}, {3, -2}, {-7.25, 4.5}, {10, 10}} {
		col, row := cam.WorldToScreen(vmath.V2FromFloat(p[0], p[1]))
		x, y := vmath.V2ToFloat(cam.ScreenToWorld(col, row))

		if math.Abs(x-p[0]) > 1/cam.Zoom || math.Abs(y-p[1]) > CellAspect/cam.Zoom {
			t.Errorf("Round trip of (%f, %f) landed at (%f, %f)", p[0], p[1], x, y)
		}
	}
}

// TestCameraFit verifies the box is centered and fits the tighter axis
func TestCameraFit(t *testing.T) {
	cam := NewCamera(80, 24)
	cam.Fit(physics.NewAABB(vmath.FromInt(5), vmath.FromInt(-1), vmath.FromInt(-10), vmath.FromInt(10)))

	if cam.Center.X() != 0 || cam.Center.Y() != 2 {
		t.Errorf("Expected center (0, 2), got (%f, %f)", cam.Center.X(), cam.Center.Y())
	}
	// Width 20 over 80 columns binds before height 6 over 48 half-rows
	if math.Abs(cam.Zoom-3.8) > 1e-9 {
		t.Errorf("Expected zoom 3.8, got %f", cam.Zoom)
	}

	before := cam.Zoom
	cam.Fit(physics.NewAABB(0, 0, 0, 0))
	if cam.Zoom != before {
		t.Error("Expected degenerate box to keep zoom")
	}
}

// TestCameraZoomClamp verifies zoom stays within limits
func TestCameraZoomClamp(t *testing.T) {
	cam := NewCamera(80, 24)
	cam.ZoomBy(1000)
	if cam.Zoom != MaxZoom {
		t.Errorf("Expected zoom clamped to %f, got %f", MaxZoom, cam.Zoom)
	}
	cam.ZoomBy(1e-6)
	if cam.Zoom != MinZoom {
		t.Errorf("Expected zoom clamped to %f, got %f", MinZoom, cam.Zoom)
	}

	cam.Pan(2, -3)
	if cam.Center != (mgl64.Vec2{2, -3}) {
		t.Errorf("Expected center (2, -3), got %v", cam.Center)
	}
}

package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/volt/physics"
	"github.com/lixenwraith/volt/vmath"
)

// CellAspect is the height/width ratio of a terminal cell
const CellAspect = 2.0

// Zoom limits in cells per world unit (horizontal)
const (
	MinZoom = 0.25
	MaxZoom = 64.0
)

// Camera maps world coordinates (y up) to terminal cells (y down)
type Camera struct {
	Center mgl64.Vec2
	Zoom   float64 // Columns per world unit

	width  int
	height int
}

// NewCamera creates a camera for a width x height cell viewport
func NewCamera(width, height int) *Camera {
	return &Camera{Zoom: 4, width: width, height: height}
}

func (c *Camera) Resize(width, height int) {
	c.width, c.height = width, height
}

func (c *Camera) Size() (width, height int) { return c.width, c.height }

// Pan moves the view by a world-space offset
func (c *Camera) Pan(dx, dy float64) {
	c.Center = c.Center.Add(mgl64.Vec2{dx, dy})
}

// ZoomBy scales the zoom, clamped to [MinZoom, MaxZoom]
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom = mgl64.Clamp(c.Zoom*factor, MinZoom, MaxZoom)
}

// Fit centers the camera on box and zooms so it fills the viewport
func (c *Camera) Fit(box physics.AABB) {
	center := box.Center()
	c.Center = mgl64.Vec2{vmath.ToFloat(center.X), vmath.ToFloat(center.Y)}

	w, h := vmath.ToFloat(box.Width()), vmath.ToFloat(box.Height())
	if w <= 0 || h <= 0 || c.width <= 0 || c.height <= 0 {
		return
	}
	zx := float64(c.width) / w
	zy := float64(c.height) * CellAspect / h
	c.Zoom = mgl64.Clamp(math.Min(zx, zy)*0.95, MinZoom, MaxZoom)
}

// Matrix is the homogeneous world-to-screen transform
func (c *Camera) Matrix() mgl64.Mat3 {
	viewport := mgl64.Translate2D(float64(c.width)/2, float64(c.height)/2)
	scale := mgl64.Scale2D(c.Zoom, -c.Zoom/CellAspect)
	view := mgl64.Translate2D(-c.Center.X(), -c.Center.Y())
	return viewport.Mul3(scale).Mul3(view)
}

// Project maps a world point to fractional screen coordinates
func (c *Camera) Project(p mgl64.Vec2) mgl64.Vec2 {
	return c.Matrix().Mul3x1(p.Vec3(1)).Vec2()
}

// WorldToScreen maps a world point to the cell containing it
func (c *Camera) WorldToScreen(p vmath.Vec2) (col, row int) {
	s := c.Project(toVec(p))
	return int(math.Floor(s.X())), int(math.Floor(s.Y()))
}

// ScreenToWorld maps the center of a cell back to world space
func (c *Camera) ScreenToWorld(col, row int) vmath.Vec2 {
	s := mgl64.Vec3{float64(col) + 0.5, float64(row) + 0.5, 1}
	w := c.Matrix().Inv().Mul3x1(s)
	return vmath.V2FromFloat(w.X(), w.Y())
}

func toVec(p vmath.Vec2) mgl64.Vec2 {
	x, y := vmath.V2ToFloat(p)
	return mgl64.Vec2{x, y}
}

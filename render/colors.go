package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB colors for world elements
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbStatic     = tcell.NewRGBColor(120, 124, 150) // Muted gray-blue
	RgbAABB       = tcell.NewRGBColor(60, 62, 80)    // Dim outline
	RgbContact    = tcell.NewRGBColor(255, 80, 80)   // Red
	RgbNormal     = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbStatusBg   = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbBlast      = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
)

// bodyPalette colors dynamic bodies by id
var bodyPalette = []tcell.Color{
	tcell.NewRGBColor(100, 150, 255), // Blue
	tcell.NewRGBColor(0, 200, 0),     // Green
	tcell.NewRGBColor(255, 120, 120), // Red
	tcell.NewRGBColor(255, 255, 0),   // Yellow
	tcell.NewRGBColor(0, 200, 200),   // Cyan
	tcell.NewRGBColor(200, 120, 255), // Purple
}

// BodyColor returns the draw color for a body id; static bodies share one color
func BodyColor(id int, static bool) tcell.Color {
	if static {
		return RgbStatic
	}
	if id < 0 {
		id = -id
	}
	return bodyPalette[id%len(bodyPalette)]
}

// Lerp blends two colors, t is clamped to [0, 1]
func Lerp(a, b tcell.Color, t float64) tcell.Color {
	t = min(max(t, 0), 1)
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	mix := func(x, y int32) int32 {
		return x + int32(float64(y-x)*t)
	}
	return tcell.NewRGBColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}

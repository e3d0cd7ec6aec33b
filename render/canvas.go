package render

import (
	"github.com/gdamore/tcell/v2"
)

// Canvas is the drawing surface subset of tcell.Screen
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// setCell writes one cell, ignoring coordinates outside the canvas
func setCell(c Canvas, x, y int, ch rune, style tcell.Style) {
	w, h := c.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.SetContent(x, y, ch, nil, style)
}

// drawLine rasterizes a segment with Bresenham's algorithm
func drawLine(c Canvas, x0, y0, x1, y1 int, ch rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		setCell(c, x0, y0, ch, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawText writes s left to right, clipped to the canvas
func drawText(c Canvas, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		setCell(c, x, y, r, style)
		x++
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/volt/physics"
	"github.com/lixenwraith/volt/vmath"
)

// Overlay selects optional debug layers drawn over the bodies
type Overlay struct {
	ShowAABB     bool
	ShowContacts bool
	Status       string
	Blast        *Blast
}

// Blast is a fading explosion ring
type Blast struct {
	Origin vmath.Vec2
	Radius int64
	Fade   float64 // 0 = fresh, 1 = gone
}

// TerminalRenderer draws a world into a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	Camera *Camera
}

// NewTerminalRenderer creates a renderer with a camera sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{
		screen: screen,
		Camera: NewCamera(w, h),
	}
}

// RenderFrame clears the screen, draws the world and presents it
func (r *TerminalRenderer) RenderFrame(w *physics.World, o *Overlay) {
	width, height := r.screen.Size()
	r.Camera.Resize(width, height)

	r.screen.Fill(' ', tcell.StyleDefault.Background(RgbBackground))
	DrawWorld(r.screen, r.Camera, w, o)
	r.screen.Show()
}

// DrawWorld draws bodies and overlay layers onto c
func DrawWorld(c Canvas, cam *Camera, w *physics.World, o *Overlay) {
	if o == nil {
		o = &Overlay{}
	}
	base := tcell.StyleDefault.Background(RgbBackground)

	if o.ShowAABB {
		for _, b := range w.Bodies() {
			drawAABB(c, cam, b.AABB(), base.Foreground(RgbAABB))
		}
	}

	for _, b := range w.Bodies() {
		style := base.Foreground(BodyColor(b.ID(), b.IsStatic()))
		for _, s := range b.Shapes() {
			switch shape := s.(type) {
			case *physics.Circle:
				drawCircle(c, cam, shape, style)
			case *physics.Polygon:
				drawPolygon(c, cam, shape, style)
			}
		}
	}

	if o.ShowContacts {
		for _, m := range w.Manifolds() {
			for _, ct := range m.Contacts() {
				drawContact(c, cam, &ct, base)
			}
		}
	}

	if o.Blast != nil && o.Blast.Fade < 1 {
		color := Lerp(RgbBlast, RgbBackground, o.Blast.Fade)
		drawRing(c, cam, toVec(o.Blast.Origin), vmath.ToFloat(o.Blast.Radius), '∙', base.Foreground(color))
	}

	if o.Status != "" {
		_, height := c.Size()
		drawText(c, 0, height-1, o.Status, tcell.StyleDefault.Foreground(RgbStatusText).Background(RgbStatusBg))
	}
}

// StatusLine summarizes the world state for the bottom row
func StatusLine(w *physics.World, paused bool) string {
	state := "running"
	if paused {
		state = "paused"
	}
	contacts := 0
	for _, m := range w.Manifolds() {
		contacts += m.ContactCount()
	}
	return fmt.Sprintf(" step %d | bodies %d | contacts %d | hash %016x | %s ",
		w.StepCount(), len(w.Bodies()), contacts, w.StateHash(), state)
}

func drawCircle(c Canvas, cam *Camera, circle *physics.Circle, style tcell.Style) {
	center := toVec(circle.Origin())
	radius := vmath.ToFloat(circle.Radius())
	drawRing(c, cam, center, radius, '█', style)

	// Spoke shows rotation
	facing := toVec(circle.Body().Facing)
	drawSegment(c, cam, center, center.Add(facing.Mul(radius)), '·', style)
}

func drawPolygon(c Canvas, cam *Camera, p *physics.Polygon, style tcell.Style) {
	vertices := p.WorldVertices()
	for i := range vertices {
		a := toVec(vertices[i])
		b := toVec(vertices[(i+1)%len(vertices)])
		drawSegment(c, cam, a, b, '█', style)
	}
}

func drawAABB(c Canvas, cam *Camera, box physics.AABB, style tcell.Style) {
	corners := [4]mgl64.Vec2{
		toVec(box.BottomLeft()), toVec(box.BottomRight()),
		toVec(box.TopRight()), toVec(box.TopLeft()),
	}
	for i := range corners {
		drawSegment(c, cam, corners[i], corners[(i+1)%4], '·', style)
	}
}

func drawContact(c Canvas, cam *Camera, ct *physics.Contact, base tcell.Style) {
	p := toVec(ct.Position())
	n := toVec(ct.Normal())
	drawSegment(c, cam, p, p.Add(n.Mul(0.5)), '·', base.Foreground(RgbNormal))

	col, row := cam.WorldToScreen(ct.Position())
	setCell(c, col, row, '*', base.Foreground(RgbContact))
}

// drawRing approximates a circle outline with segments about one cell long
func drawRing(c Canvas, cam *Camera, center mgl64.Vec2, radius float64, ch rune, style tcell.Style) {
	segments := max(12, int(2*math.Pi*radius*cam.Zoom))
	prev := center.Add(mgl64.Vec2{radius, 0})
	for i := 1; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		next := center.Add(mgl64.Vec2{radius * math.Cos(theta), radius * math.Sin(theta)})
		drawSegment(c, cam, prev, next, ch, style)
		prev = next
	}
}

func drawSegment(c Canvas, cam *Camera, a, b mgl64.Vec2, ch rune, style tcell.Style) {
	sa, sb := cam.Project(a), cam.Project(b)
	drawLine(c,
		int(math.Floor(sa.X())), int(math.Floor(sa.Y())),
		int(math.Floor(sb.X())), int(math.Floor(sb.Y())),
		ch, style)
}

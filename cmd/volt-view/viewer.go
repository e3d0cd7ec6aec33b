package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/volt/audio"
	"github.com/lixenwraith/volt/parameter"
	"github.com/lixenwraith/volt/physics"
	"github.com/lixenwraith/volt/render"
	"github.com/lixenwraith/volt/vmath"
)

// blastFrames is how many frames an explosion ring stays visible
const blastFrames = 20

// Viewer owns the interactive loop: input, stepping, sound and drawing
type Viewer struct {
	screen   tcell.Screen
	world    *physics.World
	renderer *render.TerminalRenderer
	sound    *audio.SoundManager
	impacts  *audio.ImpactDetector

	initial *physics.Snapshot
	overlay render.Overlay
	paused  bool

	// Grabbed body and the body-space point thrust is applied at
	grabbed *physics.Body
	anchor  vmath.Vec2

	blastAge int
}

// NewViewer snapshots the world for reset and fits the camera to it
func NewViewer(screen tcell.Screen, w *physics.World, sound *audio.SoundManager) (*Viewer, error) {
	initial, err := w.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot initial state: %w", err)
	}

	v := &Viewer{
		screen:   screen,
		world:    w,
		renderer: render.NewTerminalRenderer(screen),
		sound:    sound,
		impacts:  audio.NewImpactDetector(),
		initial:  initial,
	}
	v.fit()
	return v, nil
}

// Run processes events and steps until the user quits
func (v *Viewer) Run() {
	v.screen.EnableMouse()
	v.screen.HideCursor()

	ticker := time.NewTicker(parameter.StepInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	v.draw()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleEvent(ev) {
				return
			}
			v.draw()

		case <-ticker.C:
			if !v.paused {
				v.step()
			}
			v.draw()
		}
	}
}

// handleEvent applies one input event, returns false to quit
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	cam := v.renderer.Camera
	pan := 4 / cam.Zoom

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			cam.Pan(-pan, 0)
		case tcell.KeyRight:
			cam.Pan(pan, 0)
		case tcell.KeyUp:
			cam.Pan(0, pan)
		case tcell.KeyDown:
			cam.Pan(0, -pan)
		case tcell.KeyRune:
			return v.handleRune(ev.Rune())
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			col, row := ev.Position()
			v.click(cam.ScreenToWorld(col, row))
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) handleRune(r rune) bool {
	cam := v.renderer.Camera
	switch r {
	case 'q':
		return false
	case ' ':
		v.paused = !v.paused
	case 's':
		if v.paused {
			v.step()
		}
	case 'a':
		v.overlay.ShowAABB = !v.overlay.ShowAABB
	case 'c':
		v.overlay.ShowContacts = !v.overlay.ShowContacts
	case '+', '=':
		cam.ZoomBy(1.25)
	case '-':
		cam.ZoomBy(0.8)
	case 'f':
		v.fit()
	case 'e':
		v.explode(vmath.V2FromFloat(cam.Center.X(), cam.Center.Y()))
	case 'r':
		v.reset()
	case 'i':
		v.thrust(0, 1)
	case 'k':
		v.thrust(0, -1)
	case 'j':
		v.thrust(-1, 0)
	case 'l':
		v.thrust(1, 0)
	case 'u':
		v.spin(1)
	case 'o':
		v.spin(-1)
	}
	return true
}

// click grabs the dynamic body under point, or detonates when there is none
func (v *Viewer) click(point vmath.Vec2) {
	hits := v.world.QueryPoint(point, func(b *physics.Body) bool { return !b.IsStatic() }, nil)
	if len(hits) == 0 {
		v.explode(point)
		return
	}
	v.grabbed = hits[0]
	v.anchor = v.grabbed.WorldToBodyPoint(point)
	log.Printf("grabbed body %d", v.grabbed.ID())
}

// thrust pushes the grabbed body at its anchor for the next step
func (v *Viewer) thrust(dx, dy int64) {
	if v.grabbed == nil {
		return
	}
	magnitude := vmath.Mul(v.grabbed.Mass, parameter.ThrustAccel)
	force := vmath.V2(dx*magnitude, dy*magnitude)
	v.grabbed.AddForceAt(force, v.grabbed.BodyToWorldPoint(v.anchor))
}

// spin applies torque to the grabbed body, positive is counter-clockwise
func (v *Viewer) spin(direction int64) {
	if v.grabbed == nil {
		return
	}
	v.grabbed.AddTorque(direction * vmath.Mul(v.grabbed.Inertia, parameter.SpinAccel))
}

func (v *Viewer) step() {
	v.world.Step()

	if strongest, count := v.impacts.Detect(v.world.Manifolds()); count > 0 {
		v.sound.PlayImpact(strongest)
	}
	if v.overlay.Blast != nil {
		v.blastAge++
		v.overlay.Blast.Fade = float64(v.blastAge) / blastFrames
		if v.blastAge >= blastFrames {
			v.overlay.Blast = nil
		}
	}
}

// explode pushes dynamic bodies away from origin; every body occludes
func (v *Viewer) explode(origin vmath.Vec2) {
	dynamicOnly := func(b *physics.Body) bool { return !b.IsStatic() }

	v.world.PerformExplosion(
		origin,
		parameter.ExplosionRadius,
		parameter.ExplosionRays,
		physics.ExplosionImpulse(parameter.ExplosionForceMax),
		dynamicOnly,
		nil,
	)
	v.sound.PlayExplosion()

	v.overlay.Blast = &render.Blast{Origin: origin, Radius: parameter.ExplosionRadius}
	v.blastAge = 0
	log.Printf("explosion at step %d", v.world.StepCount())
}

// reset rewinds to the state the scene was loaded in
func (v *Viewer) reset() {
	if err := v.world.Restore(v.initial); err != nil {
		log.Printf("reset failed: %v", err)
		return
	}
	v.impacts.Reset()
	v.overlay.Blast = nil
	v.grabbed = nil
}

func (v *Viewer) fit() {
	bodies := v.world.Bodies()
	if len(bodies) == 0 {
		return
	}
	box := bodies[0].AABB()
	for _, b := range bodies[1:] {
		box = physics.CreateMerged(box, b.AABB())
	}

	w, h := v.screen.Size()
	v.renderer.Camera.Resize(w, h-1) // Bottom row is the status line
	v.renderer.Camera.Fit(box)
}

func (v *Viewer) draw() {
	v.overlay.Status = render.StatusLine(v.world, v.paused) + "| space pause  s step  click grab/blast  ijkl push  u/o spin  e blast  r reset  a aabb  c contacts  q quit "
	v.renderer.RenderFrame(v.world, &v.overlay)
}

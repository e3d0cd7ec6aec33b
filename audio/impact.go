package audio

import (
	"github.com/lixenwraith/volt/physics"
	"github.com/lixenwraith/volt/vmath"
)

type contactID struct {
	shapeA  int
	shapeB  int
	feature int
}

// ImpactDetector finds contacts that began since the previous step
type ImpactDetector struct {
	previous map[contactID]struct{}
	current  map[contactID]struct{}
}

func NewImpactDetector() *ImpactDetector {
	return &ImpactDetector{
		previous: make(map[contactID]struct{}),
		current:  make(map[contactID]struct{}),
	}
}

// Detect returns the strongest accumulated normal impulse among new contacts and how many there were
// Call once per world step with the step's manifolds
func (d *ImpactDetector) Detect(manifolds []*physics.Manifold) (strongest float64, count int) {
	clear(d.current)

	for _, m := range manifolds {
		idA, idB := m.ShapeA().ID(), m.ShapeB().ID()
		for _, c := range m.Contacts() {
			id := contactID{idA, idB, c.Feature()}
			d.current[id] = struct{}{}

			if _, ok := d.previous[id]; ok {
				continue
			}
			count++
			if impulse := vmath.ToFloat(c.NormalImpulse()); impulse > strongest {
				strongest = impulse
			}
		}
	}

	d.previous, d.current = d.current, d.previous
	return strongest, count
}

// Reset forgets all contacts, the next Detect reports everything as new
func (d *ImpactDetector) Reset() {
	clear(d.previous)
}

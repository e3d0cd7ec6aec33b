package physics

import (
	"github.com/lixenwraith/volt/parameter"
	"github.com/lixenwraith/volt/vmath"
)

// Manifold is the contact set of one colliding shape pair for the current step
// Contacts live inline; generation order is solve order
type Manifold struct {
	cfg    *Config
	shapeA Shape
	shapeB Shape

	friction    int64
	restitution int64

	contacts [parameter.MaxContacts]Contact
	count    int
}

// Assign binds the pair, combines materials, and drops any previous contacts
func (m *Manifold) Assign(cfg *Config, shapeA, shapeB Shape) *Manifold {
	m.cfg = cfg
	m.shapeA = shapeA
	m.shapeB = shapeB

	m.friction = vmath.Sqrt(vmath.Mul(shapeA.Friction(), shapeB.Friction()))
	m.restitution = vmath.Sqrt(vmath.Mul(shapeA.Restitution(), shapeB.Restitution()))

	m.count = 0
	return m
}

// AddContact appends a contact point, returns false once capacity is reached
func (m *Manifold) AddContact(position, normal vmath.Vec2, penetration int64, feature int) bool {
	if m.count >= len(m.contacts) {
		return false
	}
	m.contacts[m.count].Assign(position, normal, penetration, feature)
	m.count++
	return true
}

func (m *Manifold) ShapeA() Shape          { return m.shapeA }
func (m *Manifold) ShapeB() Shape          { return m.shapeB }
func (m *Manifold) Friction() int64        { return m.friction }
func (m *Manifold) Restitution() int64     { return m.restitution }
func (m *Manifold) ContactCount() int      { return m.count }
func (m *Manifold) Contact(i int) *Contact { return &m.contacts[i] }

// Contacts returns the live contacts, valid until the manifold is reset
func (m *Manifold) Contacts() []Contact {
	return m.contacts[:m.count]
}

func (m *Manifold) PreStep() {
	for i := 0; i < m.count; i++ {
		m.contacts[i].PreStep(m)
	}
}

func (m *Manifold) SolveCached() {
	for i := 0; i < m.count; i++ {
		m.contacts[i].SolveCached(m)
	}
}

func (m *Manifold) Solve() {
	for i := 0; i < m.count; i++ {
		m.contacts[i].Solve(m)
	}
}

func (m *Manifold) Reset() {
	*m = Manifold{}
}

// manifoldPool recycles manifolds in LIFO order
type manifoldPool struct {
	free      []*Manifold
	allocated int
	cfg       *Config
}

func newManifoldPool(cfg *Config, size int) *manifoldPool {
	p := &manifoldPool{
		free: make([]*Manifold, 0, size),
		cfg:  cfg,
	}
	for i := 0; i < size; i++ {
		p.free = append(p.free, &Manifold{})
	}
	p.allocated = size
	return p
}

// Acquire returns a reset manifold, growing the pool when empty
func (p *manifoldPool) Acquire() *Manifold {
	n := len(p.free)
	if n == 0 {
		p.allocated++
		p.cfg.logf("physics: manifold pool grown to %d", p.allocated)
		return &Manifold{}
	}
	m := p.free[n-1]
	p.free = p.free[:n-1]
	return m
}

// Release resets m and returns it to the pool
func (p *manifoldPool) Release(m *Manifold) {
	if m == nil {
		return
	}
	m.Reset()
	p.free = append(p.free, m)
}

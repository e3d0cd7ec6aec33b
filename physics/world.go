package physics

import (
	"github.com/lixenwraith/volt/parameter"
	"github.com/lixenwraith/volt/vmath"
)

// BodyFilter selects bodies for queries, nil accepts all
type BodyFilter func(b *Body) bool

// contactKey identifies a contact across steps for warm starting
type contactKey struct {
	shapeA  int
	shapeB  int
	feature int
}

type cachedImpulse struct {
	normal  int64
	tangent int64
}

// World owns bodies and steps them deterministically
// Bodies and shapes are kept in creation order; maps are never iterated for results
type World struct {
	cfg Config

	bodies   []*Body
	shapes   []Shape
	bodyByID map[int]*Body

	nextBodyID  int
	nextShapeID int

	pool      *manifoldPool
	manifolds []*Manifold
	warm      map[contactKey]cachedImpulse

	stepCount uint64
}

// NewWorld creates an empty world that owns a copy of cfg
func NewWorld(cfg Config) *World {
	w := &World{
		cfg:      cfg,
		bodyByID: make(map[int]*Body),
		warm:     make(map[contactKey]cachedImpulse),
	}
	w.pool = newManifoldPool(&w.cfg, parameter.ManifoldPoolSize)
	w.manifolds = make([]*Manifold, 0, parameter.ManifoldPoolSize)
	return w
}

// Config returns the world's configuration, changes apply from the next step
func (w *World) Config() *Config { return &w.cfg }

func (w *World) Bodies() []*Body        { return w.bodies }
func (w *World) Shapes() []Shape        { return w.shapes }
func (w *World) Manifolds() []*Manifold { return w.manifolds }
func (w *World) StepCount() uint64      { return w.stepCount }
func (w *World) Body(id int) *Body      { return w.bodyByID[id] }

// CreateDynamicBody creates a movable body with the given shapes
func (w *World) CreateDynamicBody(position vmath.Vec2, angle int64, shapes ...Shape) *Body {
	return w.AddBody(NewBody(BodyDynamic, position, angle), shapes...)
}

// CreateStaticBody creates an immovable body with the given shapes
func (w *World) CreateStaticBody(position vmath.Vec2, angle int64, shapes ...Shape) *Body {
	return w.AddBody(NewBody(BodyStatic, position, angle), shapes...)
}

// AddBody registers b, assigns ids and attaches shapes
func (w *World) AddBody(b *Body, shapes ...Shape) *Body {
	w.nextBodyID++
	b.id = w.nextBodyID

	for _, s := range shapes {
		w.nextShapeID++
		s.base().id = w.nextShapeID
	}
	b.AddShape(&w.cfg, shapes...)

	w.bodies = append(w.bodies, b)
	w.shapes = append(w.shapes, shapes...)
	w.bodyByID[b.id] = b
	return b
}

// RemoveBody unregisters b, preserving the order of remaining bodies
func (w *World) RemoveBody(b *Body) bool {
	if w.bodyByID[b.id] != b {
		return false
	}
	delete(w.bodyByID, b.id)

	bodies := w.bodies[:0]
	for _, other := range w.bodies {
		if other != b {
			bodies = append(bodies, other)
		}
	}
	w.bodies = bodies

	shapes := w.shapes[:0]
	for _, s := range w.shapes {
		if s.Body() != b {
			shapes = append(shapes, s)
		}
	}
	w.shapes = shapes

	for key := range w.warm {
		for _, s := range b.shapes {
			if key.shapeA == s.ID() || key.shapeB == s.ID() {
				delete(w.warm, key)
				break
			}
		}
	}
	return true
}

// Step advances the simulation by one fixed time step
func (w *World) Step() {
	cfg := &w.cfg

	for _, b := range w.bodies {
		IntegrateForces(b, cfg)
	}

	w.releaseManifolds()
	w.narrowPhase()

	if cfg.WarmStart {
		w.seedWarmStart()
	}

	for _, m := range w.manifolds {
		m.PreStep()
	}
	if cfg.WarmStart {
		for _, m := range w.manifolds {
			m.SolveCached()
		}
	}
	for i := 0; i < cfg.Iterations; i++ {
		for _, m := range w.manifolds {
			m.Solve()
		}
	}

	if cfg.WarmStart {
		w.storeWarmStart()
	}

	for _, b := range w.bodies {
		IntegratePosition(b, cfg)
	}
	w.stepCount++
}

// narrowPhase tests every shape pair in creation order
func (w *World) narrowPhase() {
	cfg := &w.cfg
	for i, sa := range w.shapes {
		ba := sa.Body()
		for _, sb := range w.shapes[i+1:] {
			bb := sb.Body()
			if ba == bb || (ba.IsStatic() && bb.IsStatic()) {
				continue
			}
			if !sa.AABB().Intersect(sb.AABB()) {
				continue
			}

			m := w.pool.Acquire()
			if Collide(cfg, m, sa, sb) {
				w.manifolds = append(w.manifolds, m)
			} else {
				w.pool.Release(m)
			}
		}
	}
}

func (w *World) releaseManifolds() {
	for _, m := range w.manifolds {
		w.pool.Release(m)
	}
	w.manifolds = w.manifolds[:0]
}

// seedWarmStart restores accumulated impulses of re-detected contacts
func (w *World) seedWarmStart() {
	for _, m := range w.manifolds {
		idA, idB := m.shapeA.ID(), m.shapeB.ID()
		for i := 0; i < m.count; i++ {
			c := &m.contacts[i]
			if cached, ok := w.warm[contactKey{idA, idB, c.feature}]; ok {
				c.SetCachedImpulses(cached.normal, cached.tangent)
			}
		}
	}
}

// storeWarmStart replaces the cache with this step's accumulated impulses
func (w *World) storeWarmStart() {
	clear(w.warm)
	for _, m := range w.manifolds {
		idA, idB := m.shapeA.ID(), m.shapeB.ID()
		for i := 0; i < m.count; i++ {
			c := &m.contacts[i]
			w.warm[contactKey{idA, idB, c.feature}] = cachedImpulse{
				normal:  c.cachedNormalImpulse,
				tangent: c.cachedTangentImpulse,
			}
		}
	}
}

// --- Queries ---

// QueryPoint appends bodies containing point to dst
func (w *World) QueryPoint(point vmath.Vec2, filter BodyFilter, dst []*Body) []*Body {
	for _, b := range w.bodies {
		if filter != nil && !filter(b) {
			continue
		}
		if b.QueryPoint(point) {
			dst = append(dst, b)
		}
	}
	return dst
}

// QueryCircle appends bodies overlapping the circle to dst
func (w *World) QueryCircle(origin vmath.Vec2, radius int64, filter BodyFilter, dst []*Body) []*Body {
	for _, b := range w.bodies {
		if filter != nil && !filter(b) {
			continue
		}
		if b.QueryCircle(origin, radius) {
			dst = append(dst, b)
		}
	}
	return dst
}

// RayCast finds the closest body hit by ray, result holds the hit
func (w *World) RayCast(ray *RayCast, filter BodyFilter, result *RayResult) bool {
	for _, b := range w.bodies {
		if filter != nil && !filter(b) {
			continue
		}
		b.RayCast(ray, result)
		if result.IsContained() {
			return true
		}
	}
	return result.IsValid()
}

// CircleCast finds the closest body hit by a swept circle
func (w *World) CircleCast(ray *RayCast, radius int64, filter BodyFilter, result *RayResult) bool {
	for _, b := range w.bodies {
		if filter != nil && !filter(b) {
			continue
		}
		b.CircleCast(ray, radius, result)
		if result.IsContained() {
			return true
		}
	}
	return result.IsValid()
}

package physics

import (
	"github.com/lixenwraith/volt/vmath"
)

// Contact feature ids, stable across steps for warm starting
const (
	featureCircle       = 0
	featurePolyBVertex  = 0x100 // + vertex index on the second polygon
	featureCircleVertex = 0x200 // + vertex index on the polygon of a circle pair
)

// collideFunc fills m when the pair overlaps, a.Kind() <= b.Kind() is guaranteed
type collideFunc func(cfg *Config, m *Manifold, a, b Shape) bool

// collisionTable is indexed by [kindA][kindB], circle ordered first
var collisionTable = [numShapeKinds][numShapeKinds]collideFunc{
	ShapeCircle:  {ShapeCircle: collideCircleCircle, ShapePolygon: collideCirclePolygon},
	ShapePolygon: {ShapePolygon: collidePolygonPolygon},
}

// Collide runs the narrow phase for one shape pair, returns true if m holds at least one contact
// The pair is reordered by kind, so m's shape A may be b
func Collide(cfg *Config, m *Manifold, a, b Shape) bool {
	if a.Kind() > b.Kind() {
		a, b = b, a
	}
	return collisionTable[a.Kind()][b.Kind()](cfg, m, a, b)
}

// --- Simple tests ---

// TestPointCircleSimple reports whether point lies within radius of origin, boundary inclusive
func TestPointCircleSimple(origin, point vmath.Vec2, radius int64) bool {
	delta := vmath.V2Sub(origin, point)
	return vmath.V2MagSq(delta) <= vmath.Square(radius)
}

// TestCircleCircleSimple reports whether two circles overlap or touch
func TestCircleCircleSimple(originA, originB vmath.Vec2, radiusA, radiusB int64) bool {
	radiusTotal := radiusA + radiusB
	return vmath.V2MagSq(vmath.V2Sub(originA, originB)) <= vmath.Square(radiusTotal)
}

// CircleRayCast intersects ray with a circle given by origin and squared radius
// A ray starting inside reports contained; hits beyond ray.Distance are ignored
func CircleRayCast(shape Shape, origin vmath.Vec2, sqrRadius int64, ray *RayCast, result *RayResult) bool {
	toOrigin := vmath.V2Sub(origin, ray.Origin)
	toOriginSq := vmath.V2MagSq(toOrigin)

	if toOriginSq < sqrRadius {
		result.SetContained(shape)
		return true
	}

	slope := vmath.V2Dot(toOrigin, ray.Direction)
	if slope < 0 {
		return false
	}

	sqrSlope := vmath.Square(slope)
	d := sqrRadius + sqrSlope - toOriginSq
	if d < 0 {
		return false
	}

	dist := slope - vmath.Sqrt(d)
	if dist < 0 || dist > ray.Distance {
		return false
	}

	// The surface normal is from the circle center to the hit point
	normal := vmath.V2Normalize(vmath.V2Sub(vmath.V2Scale(ray.Direction, dist), toOrigin))
	result.Set(shape, dist, normal)
	return true
}

// FindAxisMaxPenetration returns the axis with the shallowest circle penetration
// Returns -1 when any axis separates the circle from the polygon
func FindAxisMaxPenetration(origin vmath.Vec2, radius int64, axes []Axis) (index int, penetration int64) {
	index = -1
	penetration = vmath.MinValue

	for i, axis := range axes {
		dist := vmath.V2Dot(axis.Normal, origin) - axis.Width - radius
		if dist > 0 {
			return -1, 0
		}
		if dist > penetration {
			penetration = dist
			index = i
		}
	}
	return index, penetration
}

// --- Pair handlers ---

func collideCircleCircle(cfg *Config, m *Manifold, a, b Shape) bool {
	circB := b.(*Circle)
	return testCircles(cfg, m, a.(*Circle), circB, circB.worldOrigin, circB.radius, featureCircle)
}

func collideCirclePolygon(cfg *Config, m *Manifold, a, b Shape) bool {
	circ := a.(*Circle)
	poly := b.(*Polygon)

	index, penetration := FindAxisMaxPenetration(circ.worldOrigin, circ.radius, poly.worldAxes)
	if index < 0 {
		return false
	}

	n := len(poly.worldVertices)
	next := (index + 1) % n
	va := poly.worldVertices[index]
	vb := poly.worldVertices[next]
	axis := poly.worldAxes[index]

	// Past an edge end the vertex acts as a zero-radius circle
	switch region(axis.Normal, circ.worldOrigin, va, vb) {
	case regionVertexA:
		return testCircles(cfg, m, circ, poly, va, 0, featureCircleVertex+index)
	case regionVertexB:
		return testCircles(cfg, m, circ, poly, vb, 0, featureCircleVertex+next)
	}

	m.Assign(cfg, circ, poly)
	pos := vmath.V2Sub(circ.worldOrigin, vmath.V2Scale(axis.Normal, circ.radius+penetration/2))
	m.AddContact(pos, vmath.V2Neg(axis.Normal), penetration, index)
	return true
}

func collidePolygonPolygon(cfg *Config, m *Manifold, a, b Shape) bool {
	polyA := a.(*Polygon)
	polyB := b.(*Polygon)

	axisA, ok := findMinSepAxis(polyA, polyB)
	if !ok {
		return false
	}
	axisB, ok := findMinSepAxis(polyB, polyA)
	if !ok {
		return false
	}

	// Resolve along the axis of least penetration, A owns it
	if axisB.Width > axisA.Width {
		polyA, polyB = polyB, polyA
		axisA = axisB
	}

	m.Assign(cfg, polyA, polyB)
	findVerts(m, polyA, polyB, axisA.Normal, axisA.Width)
	return m.count > 0
}

// testCircles builds a single-contact manifold for circle A against a circle centered at originB
// shapeB is either a circle or the polygon owning a vertex
func testCircles(cfg *Config, m *Manifold, circA *Circle, shapeB Shape, originB vmath.Vec2, radiusB int64, feature int) bool {
	r := vmath.V2Sub(originB, circA.worldOrigin)
	minDist := circA.radius + radiusB
	distSq := vmath.V2MagSq(r)

	if distSq >= vmath.Square(minDist) {
		return false
	}

	dist := vmath.Sqrt(distSq)
	// Concentric circles get an arbitrary but finite normal scale
	distInv := vmath.Div(vmath.Scale, vmath.Max(dist, minDist/100))

	t := vmath.Half + vmath.Mul(distInv, circA.radius-minDist/2)
	pos := vmath.V2Add(circA.worldOrigin, vmath.V2Scale(r, t))

	m.Assign(cfg, circA, shapeB)
	m.AddContact(pos, vmath.V2Scale(r, distInv), dist-minDist, feature)
	return true
}

// findMinSepAxis returns poly1's axis along which poly2 penetrates least
// ok is false when some axis separates the pair
func findMinSepAxis(poly1, poly2 *Polygon) (axis Axis, ok bool) {
	axis = Axis{Width: vmath.MinValue}

	for _, a := range poly1.worldAxes {
		// Deepest vertex of poly2 along the axis normal
		sep := vmath.MaxValue
		for _, v := range poly2.worldVertices {
			sep = vmath.Min(sep, vmath.V2Dot(a.Normal, v))
		}
		sep -= a.Width

		if sep > 0 {
			return Axis{}, false
		}
		if sep > axis.Width {
			axis = Axis{Normal: a.Normal, Width: sep}
		}
	}
	return axis, true
}

// findVerts adds every vertex of either polygon that lies inside the other
func findVerts(m *Manifold, poly1, poly2 *Polygon, normal vmath.Vec2, penetration int64) {
	found := false

	for i, v := range poly1.worldVertices {
		if poly2.ContainsPoint(v) {
			if !m.AddContact(v, normal, penetration, i) {
				return
			}
			found = true
		}
	}

	for i, v := range poly2.worldVertices {
		if poly1.ContainsPoint(v) {
			if !m.AddContact(v, normal, penetration, featurePolyBVertex+i) {
				return
			}
			found = true
		}
	}

	// No vertex is fully inside, e.g. two boxes crossing edge to edge
	if !found {
		findVertsFallback(m, poly1, poly2, normal, penetration)
	}
}

// findVertsFallback tests containment only against the faces turned towards the other polygon
func findVertsFallback(m *Manifold, poly1, poly2 *Polygon, normal vmath.Vec2, penetration int64) {
	reverse := vmath.V2Neg(normal)

	for i, v := range poly1.worldVertices {
		if poly2.ContainsPointPartial(v, reverse) {
			if !m.AddContact(v, normal, penetration, i) {
				return
			}
		}
	}

	for i, v := range poly2.worldVertices {
		if poly1.ContainsPointPartial(v, normal) {
			if !m.AddContact(v, normal, penetration, featurePolyBVertex+i) {
				return
			}
		}
	}
}

package physics

import (
	"github.com/lixenwraith/volt/vmath"
)

// Axis is an edge's outward unit normal plus the offset of its supporting line
type Axis struct {
	Normal vmath.Vec2
	Width  int64
}

// Polygon is a convex polygon wound counter-clockwise
// Axis i belongs to the edge from vertex i to vertex (i+1) mod n
type Polygon struct {
	shapeBase

	worldVertices []vmath.Vec2
	worldAxes     []Axis

	// Body-space cache, empty until ComputeMetrics when built from world vertices
	bodyVertices []vmath.Vec2
	bodyAxes     []Axis
}

// NewPolygonFromWorldVertices creates a polygon from world-space vertices
func NewPolygonFromWorldVertices(vertices []vmath.Vec2, density, friction, restitution int64) *Polygon {
	p := &Polygon{}
	p.InitializeFromWorldVertices(vertices, density, friction, restitution)
	return p
}

// NewPolygonFromBodyVertices creates a polygon from vertices relative to its future body
func NewPolygonFromBodyVertices(vertices []vmath.Vec2, density, friction, restitution int64) *Polygon {
	p := &Polygon{}
	p.InitializeFromBodyVertices(vertices, density, friction, restitution)
	return p
}

// NewBoxBodyVertices returns a centered box outline in body space, counter-clockwise
func NewBoxBodyVertices(halfWidth, halfHeight int64) []vmath.Vec2 {
	return []vmath.Vec2{
		vmath.V2(-halfWidth, -halfHeight),
		vmath.V2(halfWidth, -halfHeight),
		vmath.V2(halfWidth, halfHeight),
		vmath.V2(-halfWidth, halfHeight),
	}
}

func (p *Polygon) InitializeFromWorldVertices(vertices []vmath.Vec2, density, friction, restitution int64) {
	p.initialize(density, friction, restitution)
	p.updateArrays(len(vertices))

	p.worldVertices = append(p.worldVertices[:0], vertices...)
	p.worldAxes = computeAxes(p.worldVertices, p.worldAxes)
	p.worldAABB = computeBounds(p.worldVertices)

	// Body-space data is derived on metric compute
	p.bodyVertices = p.bodyVertices[:0]
	p.bodyAxes = p.bodyAxes[:0]
}

func (p *Polygon) InitializeFromBodyVertices(vertices []vmath.Vec2, density, friction, restitution int64) {
	p.initialize(density, friction, restitution)
	p.updateArrays(len(vertices))

	// World vertices are computed on position update
	p.worldVertices = p.worldVertices[:len(vertices)]
	p.worldAxes = p.worldAxes[:len(vertices)]

	p.bodyVertices = append(p.bodyVertices[:0], vertices...)
	p.bodyAxes = computeAxes(p.bodyVertices, p.bodyAxes)
	p.bodyAABB = computeBounds(p.bodyVertices)
}

func (p *Polygon) Kind() ShapeKind { return ShapePolygon }

// VertexCount returns the number of vertices
func (p *Polygon) VertexCount() int { return len(p.worldVertices) }

// WorldVertices returns the world-space vertex cache, callers must not modify it
func (p *Polygon) WorldVertices() []vmath.Vec2 { return p.worldVertices }

// BodyVertices returns the body-space vertex cache, callers must not modify it
func (p *Polygon) BodyVertices() []vmath.Vec2 { return p.bodyVertices }

// WorldAxis returns the world-space axis of edge index
func (p *Polygon) WorldAxis(index int) Axis { return p.worldAxes[index] }

// BodyAxes returns the body-space axes, callers must not modify them
func (p *Polygon) BodyAxes() []Axis { return p.bodyAxes }

// Edge returns the world-space endpoints of edge index
func (p *Polygon) Edge(index int) (a, b vmath.Vec2) {
	n := len(p.worldVertices)
	return p.worldVertices[index], p.worldVertices[(index+1)%n]
}

func (p *Polygon) ComputeMetrics(cfg *Config) {
	// Built from world points: derive body-space geometry once
	if len(p.bodyVertices) == 0 {
		p.bodyVertices = p.bodyVertices[:0]
		for _, v := range p.worldVertices {
			p.bodyVertices = append(p.bodyVertices, p.body.WorldToBodyPoint(v))
		}
		p.bodyAxes = computeAxes(p.bodyVertices, p.bodyAxes)
		p.bodyAABB = computeBounds(p.bodyVertices)
	}

	p.area = p.computeArea()
	p.mass = p.massFromArea(cfg)
	p.inertia = p.computeInertia()

	if cfg.CheckWinding && p.area <= 0 {
		cfg.logf("physics: polygon %d has non-positive signed area %.4f, vertices must wind counter-clockwise",
			p.id, vmath.ToFloat(p.area))
	}
}

func (p *Polygon) ApplyBodyPosition() {
	for i := range p.bodyVertices {
		p.worldVertices[i] = p.body.BodyToWorldPoint(p.bodyVertices[i])
		p.worldAxes[i] = p.body.BodyToWorldAxis(p.bodyAxes[i])
	}
	p.worldAABB = computeBounds(p.worldVertices)
}

// --- Queries (body space) ---

// QueryPoint is a single-point separating axis test
func (p *Polygon) QueryPoint(bodySpacePoint vmath.Vec2) bool {
	if !p.bodyAABB.QueryPoint(bodySpacePoint) {
		return false
	}
	for _, axis := range p.bodyAxes {
		if vmath.V2Dot(axis.Normal, bodySpacePoint) > axis.Width {
			return false
		}
	}
	return true
}

func (p *Polygon) QueryCircle(bodySpaceOrigin vmath.Vec2, radius int64) bool {
	if !p.bodyAABB.QueryCircleApprox(bodySpaceOrigin, radius) {
		return false
	}

	// Axis on the polygon closest to the circle's origin
	index, _ := FindAxisMaxPenetration(bodySpaceOrigin, radius, p.bodyAxes)
	if index < 0 {
		return false
	}

	n := len(p.bodyVertices)
	a := p.bodyVertices[index]
	b := p.bodyVertices[(index+1)%n]
	axis := p.bodyAxes[index]

	// Past either end of the edge: test against that vertex as a zero-radius circle
	switch region(axis.Normal, bodySpaceOrigin, a, b) {
	case regionVertexA:
		return TestPointCircleSimple(a, bodySpaceOrigin, radius)
	case regionVertexB:
		return TestPointCircleSimple(b, bodySpaceOrigin, radius)
	}
	return true
}

func (p *Polygon) RayCast(bodySpaceRay *RayCast, result *RayResult) bool {
	if !p.bodyAABB.RayCast(bodySpaceRay) {
		return false
	}

	foundIndex := -1
	inner := vmath.MaxValue
	outer := int64(0)
	couldBeContained := true

	for i, axis := range p.bodyAxes {
		// Signed distance from the ray origin to the edge line, positive outside
		proj := vmath.V2Dot(axis.Normal, bodySpaceRay.Origin) - axis.Width
		if proj > 0 {
			couldBeContained = false
		}

		// Closing speed towards the edge line
		slope := -vmath.V2Dot(axis.Normal, bodySpaceRay.Direction)
		if slope == 0 {
			// Parallel and outside can never enter
			if proj > 0 {
				return false
			}
			continue
		}
		dist := vmath.Div(proj, slope)

		if slope > 0 {
			// Entering through this edge
			if dist > inner {
				return false
			}
			if dist > outer {
				outer = dist
				foundIndex = i
			}
		} else {
			// Leaving through this edge
			if dist < outer {
				return false
			}
			if dist < inner {
				inner = dist
			}
		}
	}

	if couldBeContained {
		result.SetContained(p)
		return true
	}
	if foundIndex >= 0 && outer <= bodySpaceRay.Distance {
		result.Set(p, outer, p.bodyAxes[foundIndex].Normal)
		return true
	}
	return false
}

// CircleCast is the union of a vertex sweep and an offset-edge sweep
func (p *Polygon) CircleCast(bodySpaceRay *RayCast, radius int64, result *RayResult) bool {
	if !p.bodyAABB.CircleCastApprox(bodySpaceRay, radius) {
		return false
	}

	// Both run so the closest distance wins
	checkVertices := p.circleCastVertices(bodySpaceRay, radius, result)
	checkEdges := p.circleCastEdges(bodySpaceRay, radius, result)
	return checkVertices || checkEdges
}

// --- World-space helpers for the narrow phase ---

// ContainsPoint is a world-space point test
func (p *Polygon) ContainsPoint(worldSpacePoint vmath.Vec2) bool {
	for _, axis := range p.worldAxes {
		if vmath.V2Dot(axis.Normal, worldSpacePoint) > axis.Width {
			return false
		}
	}
	return true
}

// ContainsPointPartial ignores axes facing away from normal
func (p *Polygon) ContainsPointPartial(worldSpacePoint, worldSpaceNormal vmath.Vec2) bool {
	for _, axis := range p.worldAxes {
		if vmath.V2Dot(axis.Normal, worldSpaceNormal) < 0 {
			continue
		}
		if vmath.V2Dot(axis.Normal, worldSpacePoint) > axis.Width {
			return false
		}
	}
	return true
}

// --- Internals ---

func (p *Polygon) updateArrays(length int) {
	if cap(p.worldVertices) < length {
		p.worldVertices = make([]vmath.Vec2, 0, length)
		p.worldAxes = make([]Axis, 0, length)
	}
	if cap(p.bodyVertices) < length {
		p.bodyVertices = make([]vmath.Vec2, 0, length)
		p.bodyAxes = make([]Axis, 0, length)
	}
}

// computeArea is the shoelace sum over consecutive vertex triples, positive for counter-clockwise
func (p *Polygon) computeArea() int64 {
	var sum int64
	n := len(p.bodyVertices)
	for i := 0; i < n; i++ {
		v := p.bodyVertices[i]
		u := p.bodyVertices[(i+1)%n]
		w := p.bodyVertices[(i+2)%n]
		sum += vmath.Mul(u.X, w.Y-v.Y)
	}
	return sum / 2
}

// computeInertia returns rotational inertia per unit mass about the body origin
func (p *Polygon) computeInertia() int64 {
	var s1, s2 int64
	n := len(p.bodyVertices)
	for i := 0; i < n; i++ {
		v := p.bodyVertices[i]
		u := p.bodyVertices[(i+1)%n]

		a := vmath.V2Cross(v, u)
		b := vmath.V2MagSq(v) + vmath.V2MagSq(u) + vmath.V2Dot(v, u)
		s1 += vmath.Mul(a, b)
		s2 += a
	}
	return vmath.Div(s1, 6*s2)
}

func (p *Polygon) circleCastEdges(bodySpaceRay *RayCast, radius int64, result *RayResult) bool {
	foundIndex := -1
	couldBeContained := true

	shortestDist := vmath.MaxValue
	v3 := vmath.V2Left(bodySpaceRay.Direction)
	n := len(p.bodyVertices)

	// Unlike the ray cast, hits must stay within the ends of each edge segment
	for i, axis := range p.bodyAxes {
		// Push the edge out by the radius
		extension := vmath.V2Scale(axis.Normal, radius)
		a := vmath.V2Add(p.bodyVertices[i], extension)
		b := vmath.V2Add(p.bodyVertices[(i+1)%n], extension)

		if couldBeContained {
			proj := vmath.V2Dot(axis.Normal, bodySpaceRay.Origin) - axis.Width

			if proj > radius {
				// Outside the outer layer
				couldBeContained = false
			} else if proj > 0 {
				// Between the layers: only the edge's center region counts
				if region(axis.Normal, bodySpaceRay.Origin, a, b) != regionEdge {
					couldBeContained = false
				}
			}
		}

		// Only rays pointing towards the edge can hit it
		if vmath.V2Dot(axis.Normal, bodySpaceRay.Direction) >= 0 {
			continue
		}

		v1 := vmath.V2Sub(bodySpaceRay.Origin, a)
		v2 := vmath.V2Sub(b, a)

		denominator := vmath.V2Dot(v2, v3)
		if denominator == 0 {
			continue
		}
		t1 := vmath.Div(vmath.V2Cross(v2, v1), denominator)
		t2 := vmath.Div(vmath.V2Dot(v1, v3), denominator)

		if t2 >= 0 && t2 <= vmath.Scale && t1 > 0 && t1 < shortestDist {
			shortestDist = t1
			foundIndex = i
		}
	}

	if couldBeContained {
		result.SetContained(p)
		return true
	}
	if foundIndex >= 0 && shortestDist <= bodySpaceRay.Distance {
		result.Set(p, shortestDist, p.bodyAxes[foundIndex].Normal)
		return true
	}
	return false
}

func (p *Polygon) circleCastVertices(bodySpaceRay *RayCast, radius int64, result *RayResult) bool {
	sqrRadius := vmath.Square(radius)
	castHit := false

	for _, v := range p.bodyVertices {
		if CircleRayCast(p, v, sqrRadius, bodySpaceRay, result) {
			castHit = true
		}
		if result.IsContained() {
			return true
		}
	}
	return castHit
}

// Voronoi region of a point relative to an edge
type edgeRegion uint8

const (
	regionEdge edgeRegion = iota
	regionVertexA
	regionVertexB
)

// region classifies point against edge a->b with outward normal
// Cross with the outward normal measures position along the edge direction
func region(normal, point, a, b vmath.Vec2) edgeRegion {
	d := vmath.V2Cross(normal, point)
	if d < vmath.V2Cross(normal, a) {
		return regionVertexA
	}
	if d > vmath.V2Cross(normal, b) {
		return regionVertexB
	}
	return regionEdge
}

// computeAxes rebuilds dst with one outward axis per edge
func computeAxes(vertices []vmath.Vec2, dst []Axis) []Axis {
	dst = dst[:0]
	n := len(vertices)
	for i := 0; i < n; i++ {
		u := vertices[i]
		v := vertices[(i+1)%n]
		normal := vmath.V2Normalize(vmath.V2Right(vmath.V2Sub(v, u)))
		dst = append(dst, Axis{Normal: normal, Width: vmath.V2Dot(normal, u)})
	}
	return dst
}

func computeBounds(vertices []vmath.Vec2) AABB {
	if len(vertices) == 0 {
		return AABB{}
	}
	top, bottom := vertices[0].Y, vertices[0].Y
	left, right := vertices[0].X, vertices[0].X

	for _, v := range vertices[1:] {
		top = vmath.Max(top, v.Y)
		bottom = vmath.Min(bottom, v.Y)
		left = vmath.Min(left, v.X)
		right = vmath.Max(right, v.X)
	}
	return NewAABB(top, bottom, left, right)
}

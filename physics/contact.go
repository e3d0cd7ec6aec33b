package physics

import (
	"github.com/lixenwraith/volt/vmath"
)

// Contact is the solver state of one contact point
// Impulses accumulate across the iterations of a step and may be seeded from the previous step
type Contact struct {
	position    vmath.Vec2
	normal      vmath.Vec2 // Unit, pointing from shape A towards shape B
	penetration int64      // Negative while overlapping
	feature     int

	// PreStep cache
	toA     vmath.Vec2
	toB     vmath.Vec2
	toALeft vmath.Vec2
	toBLeft vmath.Vec2

	nMass       int64
	tMass       int64
	restitution int64
	bias        int64
	jBias       int64

	cachedNormalImpulse  int64
	cachedTangentImpulse int64
}

// Assign loads fresh geometry and clears all solver state
func (c *Contact) Assign(position, normal vmath.Vec2, penetration int64, feature int) {
	c.Reset()
	c.position = position
	c.normal = normal
	c.penetration = penetration
	c.feature = feature
}

func (c *Contact) Reset() {
	*c = Contact{}
}

func (c *Contact) Position() vmath.Vec2 { return c.position }
func (c *Contact) Normal() vmath.Vec2   { return c.normal }
func (c *Contact) Penetration() int64   { return c.penetration }
func (c *Contact) Feature() int         { return c.feature }

// NormalImpulse is the accumulated non-negative impulse along the normal
func (c *Contact) NormalImpulse() int64 { return c.cachedNormalImpulse }

// TangentImpulse is the accumulated friction impulse
func (c *Contact) TangentImpulse() int64 { return c.cachedTangentImpulse }

// SetCachedImpulses seeds the accumulators, used for warm starting across steps
func (c *Contact) SetCachedImpulses(normal, tangent int64) {
	c.cachedNormalImpulse = normal
	c.cachedTangentImpulse = tangent
}

// PreStep caches effective masses, the positional bias target and the restitution baseline
// Cached impulses are retained, the bias accumulator is zeroed
func (c *Contact) PreStep(m *Manifold) {
	bodyA := m.shapeA.Body()
	bodyB := m.shapeB.Body()

	c.toA = vmath.V2Sub(c.position, bodyA.Position)
	c.toB = vmath.V2Sub(c.position, bodyB.Position)
	c.toALeft = vmath.V2Left(c.toA)
	c.toBLeft = vmath.V2Left(c.toB)

	c.nMass = vmath.Div(vmath.Scale, c.kScalar(bodyA, bodyB, c.normal))
	c.tMass = vmath.Div(vmath.Scale, c.kScalar(bodyA, bodyB, vmath.V2Left(c.normal)))

	c.bias = m.cfg.biasDist(c.penetration)
	c.jBias = 0
	c.restitution = vmath.Mul(m.restitution, vmath.V2Dot(c.normal, c.relativeVelocity(bodyA, bodyB)))
}

// SolveCached reapplies the accumulated impulses without changing them
func (c *Contact) SolveCached(m *Manifold) {
	c.applyContactImpulse(m.shapeA.Body(), m.shapeB.Body(), c.cachedNormalImpulse, c.cachedTangentImpulse)
}

// Solve runs one bias pass and one velocity pass for this contact
func (c *Contact) Solve(m *Manifold) {
	bodyA := m.shapeA.Body()
	bodyB := m.shapeB.Body()

	// Positional correction on the bias channel
	vb := vmath.V2Sub(
		vmath.V2Add(bodyA.BiasVelocity, vmath.V2Scale(c.toALeft, bodyA.BiasRotation)),
		vmath.V2Add(bodyB.BiasVelocity, vmath.V2Scale(c.toBLeft, bodyB.BiasRotation)))
	vbn := vmath.V2Dot(vb, c.normal)

	jbn := vmath.Mul(c.nMass, vbn-c.bias)
	jbn = vmath.Max(-c.jBias, jbn)
	c.jBias += jbn

	biasImpulse := vmath.V2Scale(c.normal, jbn)
	bodyA.ApplyBias(vmath.V2Neg(biasImpulse), c.toA)
	bodyB.ApplyBias(biasImpulse, c.toB)

	// Normal impulse, accumulated value kept non-negative
	vr := c.relativeVelocity(bodyA, bodyB)
	vrn := vmath.V2Dot(vr, c.normal)

	jn := vmath.Mul(c.nMass, vrn+vmath.Mul(c.restitution, m.cfg.Elasticity))
	jn = vmath.Max(-c.cachedNormalImpulse, jn)
	c.cachedNormalImpulse += jn

	// Friction impulse, accumulated value kept inside the cone
	vrt := vmath.V2Dot(vr, vmath.V2Left(c.normal))
	jtMax := vmath.Mul(m.friction, c.cachedNormalImpulse)
	jt := vmath.Mul(vrt, c.tMass)
	result := vmath.Clamp(c.cachedTangentImpulse+jt, -jtMax, jtMax)
	jt = result - c.cachedTangentImpulse
	c.cachedTangentImpulse = result

	c.applyContactImpulse(bodyA, bodyB, jn, jt)
}

// relativeVelocity is the velocity of A's contact point relative to B's
func (c *Contact) relativeVelocity(bodyA, bodyB *Body) vmath.Vec2 {
	return vmath.V2Sub(
		vmath.V2Add(vmath.V2Scale(c.toALeft, bodyA.AngularVelocity), bodyA.LinearVelocity),
		vmath.V2Add(vmath.V2Scale(c.toBLeft, bodyB.AngularVelocity), bodyB.LinearVelocity))
}

// applyContactImpulse rotates (normal, tangent) components into world space and applies them
func (c *Contact) applyContactImpulse(bodyA, bodyB *Body, normalImpulse, tangentImpulse int64) {
	impulse := vmath.V2Rotate(vmath.V2(normalImpulse, tangentImpulse), c.normal)
	bodyA.ApplyImpulse(vmath.V2Neg(impulse), c.toA)
	bodyB.ApplyImpulse(impulse, c.toB)
}

// kScalar is the effective mass denominator along a unit direction
// Two infinite-mass bodies give zero, callers never generate such contacts
func (c *Contact) kScalar(bodyA, bodyB *Body, direction vmath.Vec2) int64 {
	crossA := vmath.V2Cross(c.toA, direction)
	crossB := vmath.V2Cross(c.toB, direction)
	return bodyA.InvMass + bodyB.InvMass +
		vmath.Mul(bodyA.InvInertia, vmath.Square(crossA)) +
		vmath.Mul(bodyB.InvInertia, vmath.Square(crossB))
}

package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// jointBaumgarte is the fraction of joint error corrected per step.
const jointBaumgarte = 0.2

// ConeTwistOptions configures a ConeTwist joint. Pivots and axes are in each body's local frame.
// Angle bounds the swing between the two axes; TwistAngle bounds rotation about them.
type ConeTwistOptions struct {
	PivotA, PivotB   mgl32.Vec3
	AxisA, AxisB     mgl32.Vec3
	Angle            float32
	TwistAngle       float32
	CollideConnected bool
}

// ConeTwist joins two bodies at a shared pivot point and limits swing (a cone around the
// joint axis) and twist independently.
type ConeTwist struct {
	A, B *Body
	ConeTwistOptions

	point pointRow
	cone  angleRow
	twist angleRow
}

// NewConeTwist links a and b. The twist reference is taken from the bodies' current poses,
// so the joint starts with zero twist.
func NewConeTwist(a, b *Body, opts ConeTwistOptions) *ConeTwist {
	opts.AxisA = opts.AxisA.Normalize()
	opts.AxisB = opts.AxisB.Normalize()
	twistA := perpendicular(opts.AxisA)
	twistB := b.Quaternion.Conjugate().Rotate(a.Quaternion.Rotate(twistA))
	return &ConeTwist{
		A:                a,
		B:                b,
		ConeTwistOptions: opts,
		cone:             angleRow{localA: opts.AxisA, localB: opts.AxisB, max: opts.Angle},
		twist:            angleRow{localA: twistA, localB: twistB, max: opts.TwistAngle},
	}
}

// Bodies returns the two linked bodies.
func (c *ConeTwist) Bodies() (*Body, *Body) {
	return c.A, c.B
}

// Collides reports whether the linked bodies still collide with each other.
func (c *ConeTwist) Collides() bool {
	return c.CollideConnected
}

// PivotError returns the world distance between the two pivot points.
func (c *ConeTwist) PivotError() float32 {
	return c.A.WorldPoint(c.PivotA).Sub(c.B.WorldPoint(c.PivotB)).Len()
}

// SwingAngle returns the current angle between the two joint axes in world space.
func (c *ConeTwist) SwingAngle() float32 {
	return vectorAngle(c.A.Quaternion.Rotate(c.AxisA), c.B.Quaternion.Rotate(c.AxisB))
}

func (c *ConeTwist) prepare(dt float32) {
	c.point.prepare(c.A, c.B, c.PivotA, c.PivotB, dt)
	c.cone.prepare(c.A, c.B, dt)
	c.twist.prepare(c.A, c.B, dt)
}

func (c *ConeTwist) solve() {
	c.point.solve(c.A, c.B)
	c.cone.solve(c.A, c.B)
	c.twist.solve(c.A, c.B)
}

// pointRow keeps two anchor points together (ball socket), solved as one 3x3 block.
type pointRow struct {
	ra, rb       mgl32.Vec3
	invIA, invIB mgl32.Mat3
	invK         mgl32.Mat3
	bias         mgl32.Vec3
}

func (p *pointRow) prepare(a, b *Body, pivotA, pivotB mgl32.Vec3, dt float32) {
	p.ra = a.Quaternion.Rotate(pivotA)
	p.rb = b.Quaternion.Rotate(pivotB)
	p.invIA = a.invInertiaWorld()
	p.invIB = b.invInertiaWorld()
	sa, sb := skew(p.ra), skew(p.rb)
	k := mgl32.Ident3().Mul(a.invMass + b.invMass)
	k = k.Sub(sa.Mul3(p.invIA).Mul3(sa))
	k = k.Sub(sb.Mul3(p.invIB).Mul3(sb))
	p.invK = k.Inv()
	errVec := a.Position.Add(p.ra).Sub(b.Position.Add(p.rb))
	p.bias = errVec.Mul(-jointBaumgarte / dt)
}

func (p *pointRow) solve(a, b *Body) {
	va := a.Velocity.Add(a.AngularVelocity.Cross(p.ra))
	vb := b.Velocity.Add(b.AngularVelocity.Cross(p.rb))
	lambda := p.invK.Mul3x1(p.bias.Sub(va.Sub(vb)))
	if !a.Static {
		a.Velocity = a.Velocity.Add(lambda.Mul(a.invMass))
		a.AngularVelocity = a.AngularVelocity.Add(p.invIA.Mul3x1(p.ra.Cross(lambda)))
	}
	if !b.Static {
		b.Velocity = b.Velocity.Sub(lambda.Mul(b.invMass))
		b.AngularVelocity = b.AngularVelocity.Sub(p.invIB.Mul3x1(p.rb.Cross(lambda)))
	}
}

// angleRow limits the angle between a vector fixed in A and a vector fixed in B.
// It only pushes when the limit is exceeded.
type angleRow struct {
	localA, localB mgl32.Vec3
	max            float32

	active       bool
	axis         mgl32.Vec3
	invIA, invIB mgl32.Mat3
	mass         float32
	bias         float32
	acc          float32
}

func (r *angleRow) prepare(a, b *Body, dt float32) {
	r.active = false
	r.acc = 0
	u := a.Quaternion.Rotate(r.localA)
	v := b.Quaternion.Rotate(r.localB)
	excess := vectorAngle(u, v) - r.max
	if excess <= 0 {
		return
	}
	n := u.Cross(v)
	if n.Len() < 1e-6 {
		return
	}
	// Rotating A about n (or B against it) closes the angle between u and v.
	r.axis = n.Normalize()
	r.invIA = a.invInertiaWorld()
	r.invIB = b.invInertiaWorld()
	k := r.axis.Dot(r.invIA.Mul3x1(r.axis)) + r.axis.Dot(r.invIB.Mul3x1(r.axis))
	if k <= 0 {
		return
	}
	r.mass = 1 / k
	r.bias = jointBaumgarte / dt * excess
	r.active = true
}

func (r *angleRow) solve(a, b *Body) {
	if !r.active {
		return
	}
	closing := a.AngularVelocity.Sub(b.AngularVelocity).Dot(r.axis)
	d := (r.bias - closing) * r.mass
	acc := math32.Max(r.acc+d, 0)
	d = acc - r.acc
	r.acc = acc
	impulse := r.axis.Mul(d)
	if !a.Static {
		a.AngularVelocity = a.AngularVelocity.Add(r.invIA.Mul3x1(impulse))
	}
	if !b.Static {
		b.AngularVelocity = b.AngularVelocity.Sub(r.invIB.Mul3x1(impulse))
	}
}

func vectorAngle(u, v mgl32.Vec3) float32 {
	return math32.Acos(clamp(u.Dot(v), -1, 1))
}

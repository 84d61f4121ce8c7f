package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	contactBaumgarte   = 0.2
	penetrationSlop    = 0.01
	restitutionMinimum = 1.0 // closing speed below which contacts do not bounce
)

// contact is one contact point between bodies a and b. normal points from b towards a,
// so a positive normal impulse pushes a along normal and b against it.
type contact struct {
	a, b   *Body
	normal mgl32.Vec3
	point  mgl32.Vec3
	depth  float32

	ra, rb       mgl32.Vec3
	invIA, invIB mgl32.Mat3
	tangents     [2]mgl32.Vec3
	normalMass   float32
	tangentMass  [2]float32
	bias         float32
	accNormal    float32
	accTangent   [2]float32
	friction     float32
}

// collide appends the contacts between a and b (if any) to dst.
func collide(dst []contact, a, b *Body) []contact {
	ka, kb := a.Shape.Kind, b.Shape.Kind
	switch {
	case kb == ShapePlane:
		return collidePlane(dst, a, b)
	case ka == ShapePlane:
		return collidePlane(dst, b, a)
	case ka == ShapeSphere && kb == ShapeSphere:
		return collideSpheres(dst, a, b)
	case ka == ShapeSphere && kb == ShapeBox:
		return collideSphereBox(dst, a, b)
	case ka == ShapeBox && kb == ShapeSphere:
		n := len(dst)
		dst = collideSphereBox(dst, b, a)
		for i := n; i < len(dst); i++ {
			dst[i].a, dst[i].b = a, b
			dst[i].normal = dst[i].normal.Mul(-1)
		}
		return dst
	case ka == ShapeBox && kb == ShapeBox:
		return collideBoxes(dst, a, b)
	}
	return dst
}

// collidePlane tests body a (sphere or box) against plane p.
func collidePlane(dst []contact, a, p *Body) []contact {
	n := p.Quaternion.Rotate(mgl32.Vec3{0, 1, 0})
	switch a.Shape.Kind {
	case ShapeSphere:
		d := a.Position.Sub(p.Position).Dot(n) - a.Shape.Radius
		if d < 0 {
			dst = append(dst, contact{a: a, b: p, normal: n, point: a.Position.Sub(n.Mul(a.Shape.Radius)), depth: -d})
		}
	case ShapeBox:
		for _, c := range boxCorners(a) {
			d := c.Sub(p.Position).Dot(n)
			if d < 0 {
				dst = append(dst, contact{a: a, b: p, normal: n, point: c, depth: -d})
			}
		}
	}
	return dst
}

func collideSpheres(dst []contact, a, b *Body) []contact {
	d := a.Position.Sub(b.Position)
	dist := d.Len()
	rsum := a.Shape.Radius + b.Shape.Radius
	if dist >= rsum {
		return dst
	}
	n := mgl32.Vec3{0, 1, 0}
	if dist > 1e-6 {
		n = d.Mul(1 / dist)
	}
	return append(dst, contact{a: a, b: b, normal: n, point: b.Position.Add(n.Mul(b.Shape.Radius)), depth: rsum - dist})
}

// collideSphereBox tests sphere s against box bx; the normal points from the box to the sphere.
func collideSphereBox(dst []contact, s, bx *Body) []contact {
	inv := bx.Quaternion.Conjugate()
	local := inv.Rotate(s.Position.Sub(bx.Position))
	h := bx.Shape.HalfExtents
	closest := mgl32.Vec3{
		clamp(local[0], -h[0], h[0]),
		clamp(local[1], -h[1], h[1]),
		clamp(local[2], -h[2], h[2]),
	}
	r := s.Shape.Radius
	diff := local.Sub(closest)
	dist := diff.Len()
	if dist > 1e-6 {
		if dist >= r {
			return dst
		}
		n := bx.Quaternion.Rotate(diff.Mul(1 / dist))
		return append(dst, contact{a: s, b: bx, normal: n, point: bx.WorldPoint(closest), depth: r - dist})
	}
	// Centre inside the box: push out through the nearest face.
	axis, pen := nearestFace(local, h)
	var nl mgl32.Vec3
	nl[axis] = sign(local[axis])
	face := local
	face[axis] = nl[axis] * h[axis]
	return append(dst, contact{a: s, b: bx, normal: bx.Quaternion.Rotate(nl), point: bx.WorldPoint(face), depth: r + pen})
}

// collideBoxes finds corners of each box that lie inside the other. Edge-edge contacts
// without a penetrating corner are not detected.
func collideBoxes(dst []contact, a, b *Body) []contact {
	for _, c := range boxCorners(a) {
		if n, depth, ok := cornerInBox(c, b); ok {
			dst = append(dst, contact{a: a, b: b, normal: n, point: c, depth: depth})
		}
	}
	for _, c := range boxCorners(b) {
		if n, depth, ok := cornerInBox(c, a); ok {
			dst = append(dst, contact{a: a, b: b, normal: n.Mul(-1), point: c, depth: depth})
		}
	}
	return dst
}

// cornerInBox reports whether world point c is inside box bx, returning the outward normal of
// the nearest face and the penetration depth.
func cornerInBox(c mgl32.Vec3, bx *Body) (mgl32.Vec3, float32, bool) {
	local := bx.Quaternion.Conjugate().Rotate(c.Sub(bx.Position))
	h := bx.Shape.HalfExtents
	for i := 0; i < 3; i++ {
		if abs(local[i]) > h[i] {
			return mgl32.Vec3{}, 0, false
		}
	}
	axis, pen := nearestFace(local, h)
	var nl mgl32.Vec3
	nl[axis] = sign(local[axis])
	return bx.Quaternion.Rotate(nl), pen, true
}

func nearestFace(local, h mgl32.Vec3) (axis int, pen float32) {
	pen = math32.Inf(1)
	for i := 0; i < 3; i++ {
		if p := h[i] - abs(local[i]); p < pen {
			pen, axis = p, i
		}
	}
	return axis, pen
}

func boxCorners(b *Body) [8]mgl32.Vec3 {
	h := b.Shape.HalfExtents
	var out [8]mgl32.Vec3
	i := 0
	for _, x := range [2]float32{-1, 1} {
		for _, y := range [2]float32{-1, 1} {
			for _, z := range [2]float32{-1, 1} {
				out[i] = b.WorldPoint(mgl32.Vec3{x * h[0], y * h[1], z * h[2]})
				i++
			}
		}
	}
	return out
}

func (c *contact) prepare(dt float32) {
	c.ra = c.point.Sub(c.a.Position)
	c.rb = c.point.Sub(c.b.Position)
	c.invIA = c.a.invInertiaWorld()
	c.invIB = c.b.invInertiaWorld()
	c.normalMass = c.effectiveMass(c.normal)
	c.tangents[0], c.tangents[1] = tangentBasis(c.normal)
	for i, t := range c.tangents {
		c.tangentMass[i] = c.effectiveMass(t)
	}
	c.friction = math32.Sqrt(c.a.Friction * c.b.Friction)

	c.bias = contactBaumgarte / dt * math32.Max(c.depth-penetrationSlop, 0)
	vn := c.relativeVelocity().Dot(c.normal)
	if vn < -restitutionMinimum {
		e := math32.Max(c.a.Restitution, c.b.Restitution)
		c.bias = math32.Max(c.bias, -e*vn)
	}
}

func (c *contact) effectiveMass(dir mgl32.Vec3) float32 {
	ran := c.ra.Cross(dir)
	rbn := c.rb.Cross(dir)
	k := c.a.invMass + c.b.invMass + ran.Dot(c.invIA.Mul3x1(ran)) + rbn.Dot(c.invIB.Mul3x1(rbn))
	if k <= 0 {
		return 0
	}
	return 1 / k
}

func (c *contact) relativeVelocity() mgl32.Vec3 {
	return c.a.PointVelocity(c.point).Sub(c.b.PointVelocity(c.point))
}

func (c *contact) apply(impulse mgl32.Vec3) {
	a, b := c.a, c.b
	if !a.Static {
		a.Velocity = a.Velocity.Add(impulse.Mul(a.invMass))
		a.AngularVelocity = a.AngularVelocity.Add(c.invIA.Mul3x1(c.ra.Cross(impulse)))
	}
	if !b.Static {
		b.Velocity = b.Velocity.Sub(impulse.Mul(b.invMass))
		b.AngularVelocity = b.AngularVelocity.Sub(c.invIB.Mul3x1(c.rb.Cross(impulse)))
	}
}

func (c *contact) solve() {
	if c.normalMass == 0 {
		return
	}
	vn := c.relativeVelocity().Dot(c.normal)
	d := (c.bias - vn) * c.normalMass
	acc := math32.Max(c.accNormal+d, 0)
	d = acc - c.accNormal
	c.accNormal = acc
	c.apply(c.normal.Mul(d))

	limit := c.friction * c.accNormal
	for i, t := range c.tangents {
		if c.tangentMass[i] == 0 {
			continue
		}
		vt := c.relativeVelocity().Dot(t)
		d := -vt * c.tangentMass[i]
		acc := clamp(c.accTangent[i]+d, -limit, limit)
		d = acc - c.accTangent[i]
		c.accTangent[i] = acc
		c.apply(t.Mul(d))
	}
}

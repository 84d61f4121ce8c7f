package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeKind identifies the collision geometry of a body.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapePlane
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapePlane:
		return "plane"
	}
	return "unknown"
}

// Shape is the collision geometry of a body in its local frame.
// Boxes use HalfExtents, spheres use Radius. A plane passes through the body position
// with its normal along the body's local +Y axis.
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl32.Vec3
	Radius      float32
}

// Box returns a box shape with the given half extents.
func Box(halfExtents mgl32.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

// Sphere returns a sphere shape.
func Sphere(radius float32) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// Plane returns an infinite plane shape (normal +Y in body space).
func Plane() Shape {
	return Shape{Kind: ShapePlane}
}

// Default damping and material values for new bodies.
const (
	DefaultLinearDamping  = 0.01
	DefaultAngularDamping = 0.01
	DefaultRestitution    = 0.3
	DefaultFriction       = 0.3
)

// Body is a 3D rigid body with position, orientation, velocities and accumulated force/torque.
// Static bodies have infinite mass: they never move and are not affected by gravity or impulses.
type Body struct {
	ID              int
	Shape           Shape
	Position        mgl32.Vec3
	Quaternion      mgl32.Quat
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Force           mgl32.Vec3
	Torque          mgl32.Vec3
	Mass            float32
	Static          bool

	LinearDamping  float32
	AngularDamping float32
	Restitution    float32
	Friction       float32

	invMass    float32
	invInertia mgl32.Vec3 // local principal axes
}

// NewBody returns a body with the given shape at position, identity orientation and zero velocity.
// mass is ignored for static bodies; a non-positive mass on a dynamic body is treated as 1.
// Planes are always static.
func NewBody(shape Shape, position mgl32.Vec3, mass float32, static bool) *Body {
	if shape.Kind == ShapePlane {
		static = true
	}
	b := &Body{
		Shape:          shape,
		Position:       position,
		Quaternion:     mgl32.QuatIdent(),
		Static:         static,
		LinearDamping:  DefaultLinearDamping,
		AngularDamping: DefaultAngularDamping,
		Restitution:    DefaultRestitution,
		Friction:       DefaultFriction,
	}
	if static {
		return b
	}
	if mass <= 0 {
		mass = 1
	}
	b.Mass = mass
	b.invMass = 1 / mass
	b.invInertia = inverseInertia(shape, mass)
	return b
}

// inverseInertia returns the inverse of the principal moments of inertia of a solid shape.
func inverseInertia(s Shape, mass float32) mgl32.Vec3 {
	switch s.Kind {
	case ShapeBox:
		h := s.HalfExtents
		ix := mass / 3 * (h[1]*h[1] + h[2]*h[2])
		iy := mass / 3 * (h[0]*h[0] + h[2]*h[2])
		iz := mass / 3 * (h[0]*h[0] + h[1]*h[1])
		return mgl32.Vec3{safeInv(ix), safeInv(iy), safeInv(iz)}
	case ShapeSphere:
		i := 2.0 / 5.0 * mass * s.Radius * s.Radius
		return mgl32.Vec3{safeInv(i), safeInv(i), safeInv(i)}
	}
	return mgl32.Vec3{}
}

func safeInv(v float32) float32 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

// InvMass returns 1/mass, or 0 for static bodies.
func (b *Body) InvMass() float32 {
	return b.invMass
}

// invInertiaWorld returns the inverse inertia tensor rotated into world space (R * I⁻¹ * Rᵀ).
func (b *Body) invInertiaWorld() mgl32.Mat3 {
	if b.Static {
		return mgl32.Mat3{}
	}
	r := b.Quaternion.Mat4().Mat3()
	return r.Mul3(mgl32.Diag3(b.invInertia)).Mul3(r.Transpose())
}

// ApplyImpulse changes the body's momentum instantly. worldPoint is where the impulse acts;
// passing the body position applies it at the centre of mass (no spin).
func (b *Body) ApplyImpulse(impulse, worldPoint mgl32.Vec3) {
	if b.Static {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Mul(b.invMass))
	r := worldPoint.Sub(b.Position)
	b.AngularVelocity = b.AngularVelocity.Add(b.invInertiaWorld().Mul3x1(r.Cross(impulse)))
}

// ApplyForce accumulates a force acting at worldPoint for the next Step. Accumulated force and
// torque are cleared after every step.
func (b *Body) ApplyForce(force, worldPoint mgl32.Vec3) {
	if b.Static {
		return
	}
	b.Force = b.Force.Add(force)
	r := worldPoint.Sub(b.Position)
	b.Torque = b.Torque.Add(r.Cross(force))
}

// ClearForces resets the force and torque accumulators.
func (b *Body) ClearForces() {
	b.Force = mgl32.Vec3{}
	b.Torque = mgl32.Vec3{}
}

// WorldPoint converts a point in body space to world space.
func (b *Body) WorldPoint(local mgl32.Vec3) mgl32.Vec3 {
	return b.Position.Add(b.Quaternion.Rotate(local))
}

// PointVelocity returns the velocity of the body material at a world point.
func (b *Body) PointVelocity(worldPoint mgl32.Vec3) mgl32.Vec3 {
	r := worldPoint.Sub(b.Position)
	return b.Velocity.Add(b.AngularVelocity.Cross(r))
}

// AABB returns the world-space bounding box of the body. Planes are unbounded.
func (b *Body) AABB() AABB {
	switch b.Shape.Kind {
	case ShapeSphere:
		r := b.Shape.Radius
		ext := mgl32.Vec3{r, r, r}
		return AABB{Min: b.Position.Sub(ext), Max: b.Position.Add(ext)}
	case ShapeBox:
		m := b.Quaternion.Mat4().Mat3()
		h := b.Shape.HalfExtents
		var ext mgl32.Vec3
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				ext[i] += abs(m.At(i, j)) * h[j]
			}
		}
		return AABB{Min: b.Position.Sub(ext), Max: b.Position.Add(ext)}
	}
	inf := float32(1e30)
	return AABB{Min: mgl32.Vec3{-inf, -inf, -inf}, Max: mgl32.Vec3{inf, inf, inf}}
}

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Overlaps reports whether the two boxes intersect (touching counts).
func (a AABB) Overlaps(o AABB) bool {
	return a.Min[0] <= o.Max[0] && a.Max[0] >= o.Min[0] &&
		a.Min[1] <= o.Max[1] && a.Max[1] >= o.Min[1] &&
		a.Min[2] <= o.Max[2] && a.Max[2] >= o.Min[2]
}

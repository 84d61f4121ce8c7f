package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultIterations is the number of velocity solver passes per step.
	DefaultIterations = 10
	// maxAngularMotion caps the rotation a body can make in one step (radians).
	maxAngularMotion = math32.Pi / 4
)

// Constraint couples two bodies. Implementations are solved with sequential impulses:
// prepare runs once per step, solve once per solver iteration.
type Constraint interface {
	Bodies() (a, b *Body)
	// Collides reports whether the two bodies should still generate contacts with each other.
	Collides() bool
	prepare(dt float32)
	solve()
}

type pairKey struct{ a, b int }

func makePairKey(a, b *Body) pairKey {
	if a.ID > b.ID {
		a, b = b, a
	}
	return pairKey{a.ID, b.ID}
}

// World holds bodies and constraints and advances them with a fixed-step impulse solver:
// forces and gravity, broadphase, contacts and joints, then position integration.
type World struct {
	Gravity     mgl32.Vec3
	Bodies      []*Body
	Constraints []Constraint
	Iterations  int

	nextID    int
	noCollide map[pairKey]int
	contacts  []contact
	sap       sweepAndPrune
}

// NewWorld returns a world with Y-up gravity (0, -9.82, 0) and DefaultIterations solver passes.
func NewWorld() *World {
	return &World{
		Gravity:    mgl32.Vec3{0, -9.82, 0},
		Iterations: DefaultIterations,
		noCollide:  make(map[pairKey]int),
	}
}

// SetGravity sets the gravity vector (e.g. [0, -9.82, 0] for down in -Y).
func (w *World) SetGravity(g mgl32.Vec3) {
	w.Gravity = g
}

// AddBody appends a body to the world and assigns its ID. Order is preserved.
func (w *World) AddBody(b *Body) {
	w.nextID++
	b.ID = w.nextID
	w.Bodies = append(w.Bodies, b)
}

// RemoveBody removes b from the world. Constraints referencing b are removed as well.
func (w *World) RemoveBody(b *Body) {
	for i, other := range w.Bodies {
		if other == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			break
		}
	}
	kept := w.Constraints[:0]
	for _, c := range w.Constraints {
		ca, cb := c.Bodies()
		if ca == b || cb == b {
			w.forgetPair(c)
			continue
		}
		kept = append(kept, c)
	}
	w.Constraints = kept
}

// AddConstraint registers a constraint. Unless it collides, the linked pair stops generating contacts.
func (w *World) AddConstraint(c Constraint) {
	w.Constraints = append(w.Constraints, c)
	if !c.Collides() {
		a, b := c.Bodies()
		w.noCollide[makePairKey(a, b)]++
	}
}

func (w *World) forgetPair(c Constraint) {
	if c.Collides() {
		return
	}
	a, b := c.Bodies()
	k := makePairKey(a, b)
	if w.noCollide[k] <= 1 {
		delete(w.noCollide, k)
		return
	}
	w.noCollide[k]--
}

// Contacts returns the number of contact points generated by the last step.
func (w *World) Contacts() int {
	return len(w.contacts)
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	// Forces, gravity and damping
	for _, b := range w.Bodies {
		if b.Static {
			continue
		}
		f := b.Force.Add(w.Gravity.Mul(b.Mass))
		b.Velocity = b.Velocity.Add(f.Mul(b.invMass * dt))
		b.AngularVelocity = b.AngularVelocity.Add(b.invInertiaWorld().Mul3x1(b.Torque).Mul(dt))
		b.Velocity = b.Velocity.Mul(math32.Pow(1-b.LinearDamping, dt))
		b.AngularVelocity = b.AngularVelocity.Mul(math32.Pow(1-b.AngularDamping, dt))
	}

	w.contacts = w.contacts[:0]
	for _, p := range w.sap.pairs(w.Bodies) {
		if _, skip := w.noCollide[makePairKey(p[0], p[1])]; skip {
			continue
		}
		w.contacts = collide(w.contacts, p[0], p[1])
	}

	for _, c := range w.Constraints {
		c.prepare(dt)
	}
	for i := range w.contacts {
		w.contacts[i].prepare(dt)
	}
	for it := 0; it < w.Iterations; it++ {
		for _, c := range w.Constraints {
			c.solve()
		}
		for i := range w.contacts {
			w.contacts[i].solve()
		}
	}

	for _, b := range w.Bodies {
		if b.Static {
			continue
		}
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		b.Quaternion = integrateRotation(b.Quaternion, b.AngularVelocity, dt)
		b.ClearForces()
	}
}

// integrateRotation rotates q by angular velocity w over dt, limiting the motion per step.
func integrateRotation(q mgl32.Quat, w mgl32.Vec3, dt float32) mgl32.Quat {
	ang := w.Len()
	if ang < 1e-6 {
		return q
	}
	angle := ang * dt
	if angle > maxAngularMotion {
		angle = maxAngularMotion
	}
	dq := mgl32.QuatRotate(angle, w.Mul(1/ang))
	return dq.Mul(q).Normalize()
}

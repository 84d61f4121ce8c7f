package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = float32(1.0 / 60.0)

func stepN(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Step(dt)
	}
}

func TestNewWorldDefaults(t *testing.T) {
	w := NewWorld()
	assert.Equal(t, mgl32.Vec3{0, -9.82, 0}, w.Gravity)
	assert.Equal(t, DefaultIterations, w.Iterations)
	assert.Empty(t, w.Bodies)
}

func TestAddBodyAssignsIDsInOrder(t *testing.T) {
	w := NewWorld()
	a := NewBody(Sphere(1), mgl32.Vec3{}, 1, false)
	b := NewBody(Sphere(1), mgl32.Vec3{}, 1, false)
	w.AddBody(a)
	w.AddBody(b)

	require.Len(t, w.Bodies, 2)
	assert.Same(t, a, w.Bodies[0])
	assert.Same(t, b, w.Bodies[1])
	assert.Less(t, a.ID, b.ID)
}

func TestStepFreeFall(t *testing.T) {
	w := NewWorld()
	b := NewBody(Sphere(0.5), mgl32.Vec3{0, 10, 0}, 1, false)
	b.LinearDamping = 0
	w.AddBody(b)

	w.Step(dt)

	assert.InDelta(t, -9.82*dt, b.Velocity[1], 1e-5)
	assert.InDelta(t, 10-9.82*dt*dt, b.Position[1], 1e-5)
	assert.Zero(t, w.Contacts())
}

func TestStepIgnoresNonPositiveDt(t *testing.T) {
	w := NewWorld()
	b := NewBody(Sphere(0.5), mgl32.Vec3{0, 10, 0}, 1, false)
	w.AddBody(b)
	w.Step(0)
	assert.Equal(t, mgl32.Vec3{0, 10, 0}, b.Position)
}

func TestForceLastsOneStep(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl32.Vec3{})
	b := NewBody(Sphere(0.5), mgl32.Vec3{}, 1, false)
	b.LinearDamping = 0
	w.AddBody(b)

	b.ApplyForce(mgl32.Vec3{6, 0, 0}, b.Position)
	w.Step(dt)
	assert.InDelta(t, 6*dt, b.Velocity[0], 1e-6)
	assert.Equal(t, mgl32.Vec3{}, b.Force)

	w.Step(dt)
	assert.InDelta(t, 6*dt, b.Velocity[0], 1e-6)
}

func TestDampingSlowsBodies(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl32.Vec3{})
	b := NewBody(Sphere(0.5), mgl32.Vec3{}, 1, false)
	b.LinearDamping = 0.5
	b.Velocity = mgl32.Vec3{1, 0, 0}
	w.AddBody(b)

	stepN(w, 60)
	assert.InDelta(t, 0.5, b.Velocity[0], 0.01)
}

func TestStaticBodyDoesNotMove(t *testing.T) {
	w := NewWorld()
	b := NewBody(Box(mgl32.Vec3{1, 1, 1}), mgl32.Vec3{0, 5, 0}, 1, true)
	w.AddBody(b)
	stepN(w, 30)
	assert.Equal(t, mgl32.Vec3{0, 5, 0}, b.Position)
}

func TestSphereComesToRestOnGround(t *testing.T) {
	w := NewWorld()
	w.AddBody(NewBody(Plane(), mgl32.Vec3{}, 0, true))
	ball := NewBody(Sphere(0.5), mgl32.Vec3{0, 3, 0}, 1, false)
	w.AddBody(ball)

	stepN(w, 300)

	assert.InDelta(t, 0.5, ball.Position[1], 0.05)
	assert.InDelta(t, 0, ball.Velocity[1], 0.1)
}

func TestBoxComesToRestOnGround(t *testing.T) {
	w := NewWorld()
	w.AddBody(NewBody(Plane(), mgl32.Vec3{}, 0, true))
	box := NewBody(Box(mgl32.Vec3{0.5, 0.5, 0.5}), mgl32.Vec3{0, 0.7, 0}, 1, false)
	w.AddBody(box)

	stepN(w, 240)

	assert.InDelta(t, 0.5, box.Position[1], 0.05)
	assert.InDelta(t, 0, box.Velocity.Len(), 0.1)
}

func TestSphereBouncesOffBox(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl32.Vec3{})
	box := NewBody(Box(mgl32.Vec3{1, 1, 1}), mgl32.Vec3{}, 1, true)
	ball := NewBody(Sphere(0.5), mgl32.Vec3{0, 1.45, 0}, 1, false)
	ball.Velocity = mgl32.Vec3{0, -3, 0}
	w.AddBody(box)
	w.AddBody(ball)

	w.Step(dt)

	assert.Greater(t, ball.Velocity[1], float32(0))
}

func TestBroadphasePairs(t *testing.T) {
	a := NewBody(Sphere(1), mgl32.Vec3{0, 5, 0}, 1, false)
	b := NewBody(Sphere(1), mgl32.Vec3{1, 5, 0}, 1, false)
	far := NewBody(Sphere(1), mgl32.Vec3{50, 5, 0}, 1, false)
	ground := NewBody(Plane(), mgl32.Vec3{}, 0, true)

	var sap sweepAndPrune
	pairs := sap.pairs([]*Body{a, b, far, ground})

	// Every dynamic body pairs with the plane, plus the one overlapping pair.
	assert.Len(t, pairs, 4)
	var found bool
	for _, p := range pairs {
		if (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a) {
			found = true
		}
		assert.False(t, (p[0] == far || p[1] == far) && p[1] != ground)
	}
	assert.True(t, found)
}

func TestBroadphaseSkipsStaticPairs(t *testing.T) {
	a := NewBody(Box(mgl32.Vec3{1, 1, 1}), mgl32.Vec3{}, 0, true)
	b := NewBody(Box(mgl32.Vec3{1, 1, 1}), mgl32.Vec3{0.5, 0, 0}, 0, true)
	var sap sweepAndPrune
	assert.Empty(t, sap.pairs([]*Body{a, b}))
}

func TestIntegrateRotation(t *testing.T) {
	q := integrateRotation(mgl32.QuatIdent(), mgl32.Vec3{0, 3.14159, 0}, 0.1)
	want := mgl32.QuatRotate(0.314159, mgl32.Vec3{0, 1, 0})
	assert.True(t, q.ApproxEqualThreshold(want, 1e-4), "got %v want %v", q, want)

	// Motion per step is capped.
	q = integrateRotation(mgl32.QuatIdent(), mgl32.Vec3{100, 0, 0}, 0.1)
	want = mgl32.QuatRotate(maxAngularMotion, mgl32.Vec3{1, 0, 0})
	assert.True(t, q.ApproxEqualThreshold(want, 1e-4), "got %v want %v", q, want)

	assert.Equal(t, mgl32.QuatIdent(), integrateRotation(mgl32.QuatIdent(), mgl32.Vec3{}, 0.1))
}

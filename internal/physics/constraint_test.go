package physics

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hangingPair returns a world with a dynamic box hanging from a static anchor by a cone-twist joint.
func hangingPair(t *testing.T) (*World, *Body, *ConeTwist) {
	t.Helper()
	w := NewWorld()
	anchor := NewBody(Box(mgl32.Vec3{0.5, 0.5, 0.5}), mgl32.Vec3{0, 5, 0}, 0, true)
	arm := NewBody(Box(mgl32.Vec3{0.1, 0.4, 0.1}), mgl32.Vec3{0, 4.1, 0}, 1, false)
	w.AddBody(anchor)
	w.AddBody(arm)
	joint := NewConeTwist(arm, anchor, ConeTwistOptions{
		PivotA:     mgl32.Vec3{0, 0.4, 0},
		PivotB:     mgl32.Vec3{0, -0.5, 0},
		AxisA:      mgl32.Vec3{0, 1, 0},
		AxisB:      mgl32.Vec3{0, 1, 0},
		Angle:      math32.Pi / 4,
		TwistAngle: math32.Pi / 4,
	})
	w.AddConstraint(joint)
	return w, arm, joint
}

func TestConeTwistHoldsPivotTogether(t *testing.T) {
	w, arm, joint := hangingPair(t)
	require.InDelta(t, 0, joint.PivotError(), 1e-5)

	arm.ApplyImpulse(mgl32.Vec3{2, 0, 1}, arm.Position)
	stepN(w, 120)

	assert.Less(t, joint.PivotError(), float32(0.05))
	// Still hanging below the anchor rather than falling away.
	assert.InDelta(t, 4.1, arm.Position[1], 0.3)
}

func TestConeTwistLimitsSwing(t *testing.T) {
	w, arm, joint := hangingPair(t)
	w.SetGravity(mgl32.Vec3{})
	arm.AngularVelocity = mgl32.Vec3{0, 0, 15}

	var worst float32
	for i := 0; i < 120; i++ {
		w.Step(dt)
		if a := joint.SwingAngle(); a > worst {
			worst = a
		}
	}
	assert.Less(t, worst, joint.Angle+0.5)
	assert.Less(t, joint.SwingAngle(), joint.Angle+0.15)
}

func TestConeTwistDisablesCollisionBetweenLinkedBodies(t *testing.T) {
	overlapping := func() (*World, *Body, *Body) {
		w := NewWorld()
		w.SetGravity(mgl32.Vec3{})
		a := NewBody(Box(mgl32.Vec3{0.5, 0.5, 0.5}), mgl32.Vec3{0, 0, 0}, 1, false)
		b := NewBody(Box(mgl32.Vec3{0.5, 0.5, 0.5}), mgl32.Vec3{0.6, 0, 0}, 1, false)
		w.AddBody(a)
		w.AddBody(b)
		return w, a, b
	}

	w, _, _ := overlapping()
	w.Step(dt)
	assert.NotZero(t, w.Contacts())

	w, a, b := overlapping()
	w.AddConstraint(NewConeTwist(a, b, ConeTwistOptions{
		PivotA: mgl32.Vec3{0.3, 0, 0},
		PivotB: mgl32.Vec3{-0.3, 0, 0},
		AxisA:  mgl32.Vec3{1, 0, 0},
		AxisB:  mgl32.Vec3{1, 0, 0},
		Angle:  math32.Pi / 2,
	}))
	w.Step(dt)
	assert.Zero(t, w.Contacts())
}

func TestRemoveBodyDropsItsConstraints(t *testing.T) {
	w, arm, _ := hangingPair(t)
	require.Len(t, w.Constraints, 1)

	w.RemoveBody(arm)

	assert.Len(t, w.Bodies, 1)
	assert.Empty(t, w.Constraints)
	assert.Empty(t, w.noCollide)
}

func TestNewConeTwistNormalizesAxes(t *testing.T) {
	a := NewBody(Sphere(0.5), mgl32.Vec3{}, 1, false)
	b := NewBody(Sphere(0.5), mgl32.Vec3{}, 1, false)
	c := NewConeTwist(a, b, ConeTwistOptions{AxisA: mgl32.Vec3{0, 2, 0}, AxisB: mgl32.Vec3{0, 0, 3}})
	assert.InDelta(t, 1, c.AxisA.Len(), 1e-6)
	assert.InDelta(t, 1, c.AxisB.Len(), 1e-6)
	assert.InDelta(t, math32.Pi/2, c.SwingAngle(), 1e-5)
}

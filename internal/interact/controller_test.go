package interact

import (
	"math/rand"
	"testing"

	"silly-billy/internal/logger"
	"silly-billy/internal/mesh"
	"silly-billy/internal/physics"
	"silly-billy/internal/ragdoll"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence returns its values in order, wrapping around.
type sequence struct {
	vals []float32
	i    int
}

func (s *sequence) Float32() float32 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// rayPicker ignores the screen point and casts a fixed ray.
type rayPicker struct {
	ray mesh.Ray
}

func (p rayPicker) Pick(_, _ float32, meshes []*mesh.Mesh) (*mesh.Mesh, bool) {
	hit, ok := mesh.Pick(p.ray, meshes)
	return hit.Mesh, ok
}

func setup(t *testing.T, random Random, picker Picker) (*Controller, *physics.World, *ragdoll.RagDoll) {
	t.Helper()
	w := physics.NewWorld()
	rd := ragdoll.Construct(w, mesh.NewGraph())
	return New(w, rd, picker, random, logger.NewAt("")), w, rd
}

func velocities(rd *ragdoll.RagDoll) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(rd.Parts))
	for i, p := range rd.Parts {
		out[i] = p.Body.Velocity
	}
	return out
}

func TestResetRestoresStance(t *testing.T) {
	c, w, rd := setup(t, &sequence{vals: []float32{0.9}}, nil)
	c.Throw()
	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60.0)
	}
	rd.Parts[ragdoll.Torso].Body.ApplyForce(mgl32.Vec3{1, 0, 0}, rd.Parts[ragdoll.Torso].Body.Position)

	c.Reset()

	for i, p := range rd.Parts {
		assert.Equal(t, ragdoll.Stance(i), p.Body.Position, p.Label)
		assert.Equal(t, mgl32.QuatIdent(), p.Body.Quaternion, p.Label)
		assert.Equal(t, mgl32.Vec3{}, p.Body.Velocity, p.Label)
		assert.Equal(t, mgl32.Vec3{}, p.Body.AngularVelocity, p.Label)
		assert.Equal(t, mgl32.Vec3{}, p.Body.Force, p.Label)
	}
}

func TestThrowSharesOneImpulse(t *testing.T) {
	c, _, rd := setup(t, &sequence{vals: []float32{0.75, 0.25}}, nil)
	c.Throw()
	for _, v := range velocities(rd) {
		assert.Equal(t, mgl32.Vec3{5, 15, -5}, v)
	}

	c, _, rd = setup(t, rand.New(rand.NewSource(7)), nil)
	c.Throw()
	vs := velocities(rd)
	for _, v := range vs[1:] {
		assert.Equal(t, vs[0], v)
	}
	assert.Equal(t, float32(15), vs[0][1])
	assert.LessOrEqual(t, vs[0][0], float32(10))
	assert.GreaterOrEqual(t, vs[0][0], float32(-10))
}

func TestPunchHitsHeadOnly(t *testing.T) {
	c, _, rd := setup(t, &sequence{vals: []float32{0.5}}, nil)
	c.Punch()
	for i, v := range velocities(rd) {
		if i == ragdoll.Head {
			assert.Equal(t, mgl32.Vec3{10, 5, 0}, v)
			continue
		}
		assert.Equal(t, mgl32.Vec3{}, v, rd.Parts[i].Label)
	}
	assert.Equal(t, mgl32.Vec3{}, rd.Parts[ragdoll.Head].Body.AngularVelocity)
}

func TestKickMovesLegsOnly(t *testing.T) {
	c, _, rd := setup(t, &sequence{vals: []float32{1, 0, 0.5, 0.5}}, nil)
	c.Kick()
	vs := velocities(rd)
	assert.Equal(t, mgl32.Vec3{7.5, 8, -7.5}, vs[ragdoll.LeftLeg])
	assert.Equal(t, mgl32.Vec3{0, 8, 0}, vs[ragdoll.RightLeg])
	for _, i := range []int{ragdoll.Head, ragdoll.Torso, ragdoll.LeftArm, ragdoll.RightArm} {
		assert.Equal(t, mgl32.Vec3{}, vs[i])
	}
}

func TestSqueezePushesEveryPartDown(t *testing.T) {
	c, _, rd := setup(t, &sequence{vals: []float32{0.5}}, nil)
	c.Squeeze()
	for _, v := range velocities(rd) {
		assert.Equal(t, mgl32.Vec3{0, -2, 0}, v)
	}
}

func TestTapHitsOnlyThePartUnderTheRay(t *testing.T) {
	// Straight down through the left arm, clear of every other part.
	down := rayPicker{ray: mesh.Ray{Origin: mgl32.Vec3{-1.2, 10, 0}, Direction: mgl32.Vec3{0, -1, 0}}}
	c, _, rd := setup(t, &sequence{vals: []float32{0.5}}, down)

	require.True(t, c.Tap(100, 100))

	for i, v := range velocities(rd) {
		if i == ragdoll.LeftArm {
			assert.Equal(t, mgl32.Vec3{0, 5, 0}, v)
			continue
		}
		assert.Equal(t, mgl32.Vec3{}, v, rd.Parts[i].Label)
	}
	part, ok := c.LastTapped()
	require.True(t, ok)
	assert.Equal(t, "leftArm", part.Label)
}

func TestTapMissDoesNothing(t *testing.T) {
	sky := rayPicker{ray: mesh.Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: mgl32.Vec3{0, 1, 0}}}
	c, _, rd := setup(t, &sequence{vals: []float32{0.9}}, sky)

	assert.False(t, c.Tap(1, 1))
	for _, v := range velocities(rd) {
		assert.Equal(t, mgl32.Vec3{}, v)
	}
	_, ok := c.LastTapped()
	assert.False(t, ok)
}

func TestTiltNeedsArming(t *testing.T) {
	c, _, rd := setup(t, &sequence{vals: []float32{0.5}}, nil)
	assert.Equal(t, TiltWaiting, c.TiltStatus())

	c.Tilt(30, 20)
	for _, p := range rd.Parts {
		assert.Equal(t, mgl32.Vec3{}, p.Body.Force)
	}

	c.ArmTilt()
	assert.True(t, c.TiltArmed())
	assert.Equal(t, TiltEnabled, c.TiltStatus())

	c.Tilt(30, 20)
	c.Tilt(30, 20)
	for _, p := range rd.Parts {
		// Applied per event, so two events double the force.
		assert.InDelta(t, 4, p.Body.Force[0], 1e-5)
		assert.InDelta(t, 0, p.Body.Force[1], 1e-5)
		assert.InDelta(t, -6, p.Body.Force[2], 1e-5)
	}
}

func TestApplyPreset(t *testing.T) {
	c, w, rd := setup(t, &sequence{vals: []float32{0.5}}, nil)
	assert.Equal(t, "normal", c.ActivePreset())

	require.NoError(t, c.ApplyPreset("bouncy"))
	assert.Equal(t, mgl32.Vec3{0, -5, 0}, w.Gravity)
	for _, p := range rd.Parts {
		assert.Equal(t, float32(0.005), p.Body.LinearDamping)
		assert.Equal(t, float32(0.005), p.Body.AngularDamping)
	}
	assert.Equal(t, "bouncy", c.ActivePreset())

	require.NoError(t, c.ApplyPreset("heavy"))
	assert.Equal(t, mgl32.Vec3{0, -15, 0}, w.Gravity)
	assert.Equal(t, float32(0.02), rd.Parts[0].Body.LinearDamping)

	assert.Error(t, c.ApplyPreset("floaty"))
	assert.Equal(t, "heavy", c.ActivePreset())
}

func TestSetPresetsOverridesTable(t *testing.T) {
	c, w, _ := setup(t, &sequence{vals: []float32{0.5}}, nil)
	c.SetPresets([]Preset{{Name: "moon", Gravity: -1.62, Damping: 0}})
	c.SetPresets(nil)
	require.Len(t, c.Presets(), 1)
	require.NoError(t, c.ApplyPreset("moon"))
	assert.Equal(t, mgl32.Vec3{0, -1.62, 0}, w.Gravity)
}

func TestActionsWithoutDollDoNothing(t *testing.T) {
	w := physics.NewWorld()
	ball := physics.NewBody(physics.Sphere(0.5), mgl32.Vec3{0, 5, 0}, 1, false)
	w.AddBody(ball)
	down := rayPicker{ray: mesh.Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: mgl32.Vec3{0, -1, 0}}}

	for _, doll := range []*ragdoll.RagDoll{nil, {}} {
		c := New(w, doll, down, &sequence{vals: []float32{0.9}}, nil)
		c.ArmTilt()
		assert.NotPanics(t, func() {
			c.Reset()
			c.Throw()
			c.Punch()
			c.Kick()
			c.Squeeze()
			c.Tilt(10, 10)
			assert.False(t, c.Tap(0, 0))
			assert.NoError(t, c.ApplyPreset("bouncy"))
		})
	}
	assert.Equal(t, mgl32.Vec3{}, ball.Velocity)
	assert.Equal(t, mgl32.Vec3{}, ball.Force)
}

func TestDo(t *testing.T) {
	c, _, rd := setup(t, &sequence{vals: []float32{0.5}}, nil)
	assert.Equal(t, []string{"kick", "punch", "reset", "squeeze", "throw"}, c.Actions())

	require.NoError(t, c.Do("punch"))
	assert.Equal(t, mgl32.Vec3{10, 5, 0}, rd.Parts[ragdoll.Head].Body.Velocity)
	assert.Error(t, c.Do("dance"))
}

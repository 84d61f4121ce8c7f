package scene

import (
	"testing"

	"silly-billy/internal/tuning"

	"github.com/stretchr/testify/assert"
)

func TestNewPlacesCamera(t *testing.T) {
	s := New(tuning.Default().Camera)
	assert.InDelta(t, 0, s.Camera.Position.X, 1e-4)
	assert.InDelta(t, 5, s.Camera.Position.Y, 1e-4)
	assert.InDelta(t, 10, s.Camera.Position.Z, 1e-4)
	assert.Equal(t, float32(75), s.Camera.Fovy)
	assert.False(t, s.GridVisible)
}

func TestApplyCameraClampsOnUpdate(t *testing.T) {
	s := New(tuning.Default().Camera)
	cam := tuning.Default().Camera
	cam.MaxDistance = 6
	s.ApplyCamera(cam)

	s.UpdateControls()

	assert.Equal(t, float32(6), s.Orbit.Distance)
	assert.Contains(t, s.ViewContext(), "6.0 units")
}

package primitives

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestMatrixKeepsTranslationColumn(t *testing.T) {
	m := Matrix(mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(4, 5, 6)))
	assert.Equal(t, float32(1), m.M12)
	assert.Equal(t, float32(2), m.M13)
	assert.Equal(t, float32(3), m.M14)
	assert.Equal(t, float32(4), m.M0)
	assert.Equal(t, float32(5), m.M5)
	assert.Equal(t, float32(6), m.M10)
	assert.Equal(t, float32(1), m.M15)
}

package mesh

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersect(t *testing.T) {
	turned := NewBox("turned", mgl32.Vec3{2, 0.5, 0.5}, grey)
	turned.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})

	tests := []struct {
		name    string
		mesh    *Mesh
		ray     Ray
		wantHit bool
		wantT   float32
	}{
		{"box straight on", NewBox("b", mgl32.Vec3{1, 1, 1}, grey), Ray{mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1}}, true, 9},
		{"box miss", NewBox("b", mgl32.Vec3{1, 1, 1}, grey), Ray{mgl32.Vec3{3, 0, 10}, mgl32.Vec3{0, 0, -1}}, false, 0},
		{"box behind origin", NewBox("b", mgl32.Vec3{1, 1, 1}, grey), Ray{mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 1}}, false, 0},
		{"inside box", NewBox("b", mgl32.Vec3{1, 1, 1}, grey), Ray{mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}}, true, 0},
		// Rotated a quarter turn about Y the long axis lies along Z.
		{"rotated box long side", turned, Ray{mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1}}, true, 8},
		{"rotated box narrow side", turned, Ray{mgl32.Vec3{1.5, 0, 10}, mgl32.Vec3{0, 0, -1}}, false, 0},
		{"sphere", NewSphere("s", 0.5, grey), Ray{mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, -1, 0}}, true, 4.5},
		{"sphere miss", NewSphere("s", 0.5, grey), Ray{mgl32.Vec3{1, 5, 0}, mgl32.Vec3{0, -1, 0}}, false, 0},
		{"sphere moving away", NewSphere("s", 0.5, grey), Ray{mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, 1, 0}}, false, 0},
		{"plane", NewPlane("g", 20, 20, grey), Ray{mgl32.Vec3{1, 5, 1}, mgl32.Vec3{0, -1, 0}}, true, 5},
		{"plane edge", NewPlane("g", 20, 20, grey), Ray{mgl32.Vec3{11, 5, 0}, mgl32.Vec3{0, -1, 0}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.mesh.Intersect(tt.ray)
			require.Equal(t, tt.wantHit, ok)
			if ok {
				assert.InDelta(t, tt.wantT, got, 1e-4)
			}
		})
	}
}

func TestPickReturnsNearest(t *testing.T) {
	far := NewBox("far", mgl32.Vec3{0.5, 0.5, 0.5}, grey)
	far.Position = mgl32.Vec3{0, 0, -5}
	near := NewBox("near", mgl32.Vec3{0.5, 0.5, 0.5}, grey)
	near.Position = mgl32.Vec3{0, 0, 2}

	r := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}
	hit, ok := Pick(r, []*Mesh{far, near})
	require.True(t, ok)
	assert.Same(t, near, hit.Mesh)
	assert.InDelta(t, 7.5, hit.Distance, 1e-5)
	assert.InDelta(t, 2.5, hit.Point[2], 1e-5)

	hits := Intersections(r, []*Mesh{far, near})
	require.Len(t, hits, 2)
	assert.Same(t, far, hits[1].Mesh)
}

func TestPickSingleMeshInRow(t *testing.T) {
	var meshes []*Mesh
	for i := 0; i < 6; i++ {
		m := NewBox(fmt.Sprintf("part%d", i), mgl32.Vec3{0.25, 0.25, 0.25}, grey)
		m.Position = mgl32.Vec3{float32(i) * 2, 0, 0}
		meshes = append(meshes, m)
	}
	r := Ray{Origin: mgl32.Vec3{4, 10, 0}, Direction: mgl32.Vec3{0, -1, 0}}

	hit, ok := Pick(r, meshes)
	require.True(t, ok)
	assert.Same(t, meshes[2], hit.Mesh)
	assert.Len(t, Intersections(r, meshes), 1)
}

func TestPickSkipsUnpickable(t *testing.T) {
	ground := NewPlane("ground", 20, 20, grey)
	ball := NewSphere("ball", 0.5, grey)
	ball.Position = mgl32.Vec3{5, 0.5, 5}

	_, ok := Pick(Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, -1, 0}}, []*Mesh{ground, ball, nil})
	assert.False(t, ok)

	hit, ok := Pick(Ray{Origin: mgl32.Vec3{5, 5, 5}, Direction: mgl32.Vec3{0, -1, 0}}, []*Mesh{ground, ball})
	require.True(t, ok)
	assert.Same(t, ball, hit.Mesh)
}

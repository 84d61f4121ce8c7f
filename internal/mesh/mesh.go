// Package mesh holds the visual side of the world: a flat scene graph of coloured primitives and
// ray queries against it. Meshes carry no physics; their transform is copied in from a body each frame.
package mesh

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind is the primitive a mesh is drawn as.
type Kind int

const (
	KindBox Kind = iota
	KindSphere
	KindPlane
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	}
	return "unknown"
}

// Mesh is one drawable primitive.
// For a box HalfExtents is half the size on each axis; for a plane only X and Z are used.
type Mesh struct {
	Label       string
	Kind        Kind
	HalfExtents mgl32.Vec3
	Radius      float32
	Color       color.RGBA
	Position    mgl32.Vec3
	Rotation    mgl32.Quat
	// Pickable meshes can be hit by Pick. The ground is drawn but not pickable.
	Pickable bool
}

// NewBox returns a pickable box with the given half extents.
func NewBox(label string, halfExtents mgl32.Vec3, c color.RGBA) *Mesh {
	return &Mesh{Label: label, Kind: KindBox, HalfExtents: halfExtents, Color: c, Rotation: mgl32.QuatIdent(), Pickable: true}
}

// NewSphere returns a pickable sphere.
func NewSphere(label string, radius float32, c color.RGBA) *Mesh {
	return &Mesh{Label: label, Kind: KindSphere, Radius: radius, Color: c, Rotation: mgl32.QuatIdent(), Pickable: true}
}

// NewPlane returns a flat width×depth rectangle lying in XZ. Planes are not pickable.
func NewPlane(label string, width, depth float32, c color.RGBA) *Mesh {
	return &Mesh{
		Label:       label,
		Kind:        KindPlane,
		HalfExtents: mgl32.Vec3{width / 2, 0, depth / 2},
		Color:       c,
		Rotation:    mgl32.QuatIdent(),
	}
}

// Size returns the full extents of the mesh along its local axes.
func (m *Mesh) Size() mgl32.Vec3 {
	if m.Kind == KindSphere {
		d := m.Radius * 2
		return mgl32.Vec3{d, d, d}
	}
	return m.HalfExtents.Mul(2)
}

// Transform returns the model matrix: scale to Size, then rotate, then translate.
func (m *Mesh) Transform() mgl32.Mat4 {
	s := m.Size()
	if m.Kind == KindPlane {
		s[1] = 1
	}
	return mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2]).
		Mul4(m.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

// Graph is the set of meshes to draw, in insertion order.
type Graph struct {
	meshes []*Mesh
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Add appends m. Adding a mesh already in the graph does nothing.
func (g *Graph) Add(m *Mesh) {
	if m == nil || g.index(m) >= 0 {
		return
	}
	g.meshes = append(g.meshes, m)
}

// Remove drops m from the graph and reports whether it was present.
func (g *Graph) Remove(m *Mesh) bool {
	i := g.index(m)
	if i < 0 {
		return false
	}
	g.meshes = append(g.meshes[:i], g.meshes[i+1:]...)
	return true
}

// Meshes returns the meshes in draw order. The slice must not be modified.
func (g *Graph) Meshes() []*Mesh {
	return g.meshes
}

// Len returns the number of meshes.
func (g *Graph) Len() int {
	return len(g.meshes)
}

func (g *Graph) index(m *Mesh) int {
	for i, other := range g.meshes {
		if other == m {
			return i
		}
	}
	return -1
}

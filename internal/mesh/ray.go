package mesh

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half line starting at Origin. Direction need not be normalised; hit distances are
// returned in units of Direction's length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit is one mesh crossed by a ray.
type Hit struct {
	Mesh     *Mesh
	Distance float32
	Point    mgl32.Vec3
}

// Intersect returns the distance along r to the first point of m, if r hits it.
// A ray starting inside a mesh hits it at distance 0.
func (m *Mesh) Intersect(r Ray) (float32, bool) {
	// Work in the mesh frame so boxes become axis aligned.
	inv := m.Rotation.Conjugate()
	local := Ray{
		Origin:    inv.Rotate(r.Origin.Sub(m.Position)),
		Direction: inv.Rotate(r.Direction),
	}
	switch m.Kind {
	case KindBox:
		return slab(local, m.HalfExtents)
	case KindSphere:
		return sphere(local, m.Radius)
	case KindPlane:
		return rect(local, m.HalfExtents)
	}
	return 0, false
}

func slab(r Ray, h mgl32.Vec3) (float32, bool) {
	tmin, tmax := float32(0), math32.Inf(1)
	for i := 0; i < 3; i++ {
		if math32.Abs(r.Direction[i]) < 1e-8 {
			if r.Origin[i] < -h[i] || r.Origin[i] > h[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Direction[i]
		t1 := (-h[i] - r.Origin[i]) * inv
		t2 := (h[i] - r.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

func sphere(r Ray, radius float32) (float32, bool) {
	a := r.Direction.Dot(r.Direction)
	if a == 0 {
		return 0, false
	}
	b := r.Origin.Dot(r.Direction)
	c := r.Origin.Dot(r.Origin) - radius*radius
	if c <= 0 {
		return 0, true
	}
	disc := b*b - a*c
	if disc < 0 || b > 0 {
		return 0, false
	}
	return (-b - math32.Sqrt(disc)) / a, true
}

func rect(r Ray, h mgl32.Vec3) (float32, bool) {
	if math32.Abs(r.Direction[1]) < 1e-8 {
		return 0, false
	}
	t := -r.Origin[1] / r.Direction[1]
	if t < 0 {
		return 0, false
	}
	p := r.At(t)
	if math32.Abs(p[0]) > h[0] || math32.Abs(p[2]) > h[2] {
		return 0, false
	}
	return t, true
}

// Intersections returns every pickable mesh r crosses, nearest first.
func Intersections(r Ray, meshes []*Mesh) []Hit {
	var hits []Hit
	for _, m := range meshes {
		if m == nil || !m.Pickable {
			continue
		}
		if t, ok := m.Intersect(r); ok {
			hits = append(hits, Hit{Mesh: m, Distance: t, Point: r.At(t)})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Pick returns the nearest pickable mesh hit by r.
func Pick(r Ray, meshes []*Mesh) (Hit, bool) {
	hits := Intersections(r, meshes)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

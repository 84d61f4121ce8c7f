package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func abs(v float32) float32 {
	return math32.Abs(v)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// perpendicular returns a unit vector orthogonal to v.
func perpendicular(v mgl32.Vec3) mgl32.Vec3 {
	ref := mgl32.Vec3{1, 0, 0}
	if abs(v.Normalize()[0]) > 0.9 {
		ref = mgl32.Vec3{0, 1, 0}
	}
	return v.Cross(ref).Normalize()
}

// tangentBasis returns two unit vectors orthogonal to n and to each other.
func tangentBasis(n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	t1 := perpendicular(n)
	return t1, n.Cross(t1).Normalize()
}

// skew returns the cross-product matrix of v, so skew(v)·u == v×u (column-major).
func skew(v mgl32.Vec3) mgl32.Mat3 {
	return mgl32.Mat3{
		0, v[2], -v[1],
		-v[2], 0, v[0],
		v[1], -v[0], 0,
	}
}

// Package orbit is a damped orbit camera: the eye sits on a sphere around a target, drags and
// wheel steps are queued as deltas and eased in over the following frames.
package orbit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultDamping     = 0.05
	DefaultMinDistance = 3
	DefaultMaxDistance = 20
	DefaultMaxPolar    = math32.Pi / 2
	// zoomStep is the distance factor per wheel step.
	zoomStep = 0.95
	// polarEpsilon keeps the eye off the poles where the view basis degenerates.
	polarEpsilon = 1e-4
)

// Orbit tracks the camera in spherical coordinates around Target.
// Polar is measured from +Y; Azimuth from +Z towards +X.
type Orbit struct {
	Target   mgl32.Vec3
	Azimuth  float32
	Polar    float32
	Distance float32

	Damping     float32
	MinDistance float32
	MaxDistance float32
	MaxPolar    float32

	deltaAzimuth float32
	deltaPolar   float32
	scale        float32
}

// New places the camera at eye looking at target with default limits.
func New(eye, target mgl32.Vec3) *Orbit {
	o := &Orbit{
		Target:      target,
		Damping:     DefaultDamping,
		MinDistance: DefaultMinDistance,
		MaxDistance: DefaultMaxDistance,
		MaxPolar:    DefaultMaxPolar,
		scale:       1,
	}
	off := eye.Sub(target)
	o.Distance = off.Len()
	if o.Distance > 0 {
		o.Polar = math32.Acos(mgl32.Clamp(off[1]/o.Distance, -1, 1))
		o.Azimuth = math32.Atan2(off[0], off[2])
	}
	return o
}

// Rotate queues an azimuth and polar change in radians.
func (o *Orbit) Rotate(azimuth, polar float32) {
	o.deltaAzimuth += azimuth
	o.deltaPolar += polar
}

// Drag queues a rotation for a pointer drag of (dx, dy) pixels in a viewport of the given height.
// A drag across the full height is one full turn.
func (o *Orbit) Drag(dx, dy, height float32) {
	if height <= 0 {
		return
	}
	o.Rotate(-2*math32.Pi*dx/height, -2*math32.Pi*dy/height)
}

// Zoom queues a distance change of steps wheel notches. Positive steps move closer.
func (o *Orbit) Zoom(steps float32) {
	o.scale *= math32.Pow(zoomStep, steps)
}

// Update eases queued rotation in by Damping, applies queued zoom and clamps to the limits.
// Call once per frame.
func (o *Orbit) Update() {
	d := o.Damping
	if d <= 0 || d > 1 {
		d = 1
	}
	o.Azimuth += o.deltaAzimuth * d
	o.Polar += o.deltaPolar * d
	o.deltaAzimuth *= 1 - d
	o.deltaPolar *= 1 - d

	maxPolar := o.MaxPolar
	if maxPolar <= 0 || maxPolar > math32.Pi-polarEpsilon {
		maxPolar = math32.Pi - polarEpsilon
	}
	o.Polar = mgl32.Clamp(o.Polar, polarEpsilon, maxPolar)

	o.Distance = mgl32.Clamp(o.Distance*o.scale, o.MinDistance, o.MaxDistance)
	o.scale = 1
}

// Eye returns the camera position.
func (o *Orbit) Eye() mgl32.Vec3 {
	sinP := math32.Sin(o.Polar)
	return o.Target.Add(mgl32.Vec3{
		o.Distance * sinP * math32.Sin(o.Azimuth),
		o.Distance * math32.Cos(o.Polar),
		o.Distance * sinP * math32.Cos(o.Azimuth),
	})
}

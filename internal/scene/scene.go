package scene

import (
	"fmt"
	"image/color"

	"silly-billy/internal/mesh"
	"silly-billy/internal/orbit"
	"silly-billy/internal/primitives"
	"silly-billy/internal/tuning"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	gridExtent     = 10
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	// gridLift keeps the grid from z-fighting with the ground mesh.
	gridLift = 0.01
	fovy     = 75
	// pinchZoom is the zoom in wheel steps per pinch gesture frame.
	pinchZoom = 0.5
)

// Sky is the background colour.
var Sky = color.RGBA{0x87, 0xCE, 0xEB, 0xFF}

var (
	eye    = mgl32.Vec3{0, 5, 10}
	target = mgl32.Vec3{0, 0, 0}
)

// Scene holds the raylib camera driven by a damped orbit, and draws a mesh graph.
// It implements sim.Renderer and interact.Picker.
type Scene struct {
	Camera      rl.Camera3D
	Orbit       *orbit.Orbit
	GridVisible bool
	prims       *primitives.Registry
}

// New returns a scene with a perspective camera at (0,5,10) looking at the origin, with the
// orbit limits from cam.
func New(cam tuning.Camera) *Scene {
	s := &Scene{
		Orbit: orbit.New(eye, target),
		prims: primitives.NewRegistry(),
	}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = fovy
	s.Camera.Projection = rl.CameraPerspective
	s.ApplyCamera(cam)
	s.syncCamera()
	return s
}

// ApplyCamera updates the orbit limits. The current view is clamped on the next update.
func (s *Scene) ApplyCamera(cam tuning.Camera) {
	s.Orbit.Damping = cam.Damping
	s.Orbit.MinDistance = cam.MinDistance
	s.Orbit.MaxDistance = cam.MaxDistance
	s.Orbit.MaxPolar = cam.MaxPolar
}

// SetGridVisible sets whether the helper grid is drawn over the ground.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// HandleInput feeds pointer input into the orbit: right-drag rotates, wheel and pinch zoom.
// Call once per frame while the console is closed.
func (s *Scene) HandleInput() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		s.Orbit.Drag(d.X, d.Y, float32(rl.GetScreenHeight()))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.Orbit.Zoom(wheel)
	}
	switch rl.GetGestureDetected() {
	case rl.GesturePinchOut:
		s.Orbit.Zoom(pinchZoom)
	case rl.GesturePinchIn:
		s.Orbit.Zoom(-pinchZoom)
	}
}

// UpdateControls eases the orbit towards its queued motion and moves the camera there.
func (s *Scene) UpdateControls() {
	s.Orbit.Update()
	s.syncCamera()
}

func (s *Scene) syncCamera() {
	e := s.Orbit.Eye()
	s.Camera.Position = rl.NewVector3(e[0], e[1], e[2])
	t := s.Orbit.Target
	s.Camera.Target = rl.NewVector3(t[0], t[1], t[2])
}

// Render draws every mesh in g. Call after ClearBackground and before the 2D overlay.
func (s *Scene) Render(g *mesh.Graph) {
	rl.BeginMode3D(s.Camera)
	for _, m := range g.Meshes() {
		s.prims.Draw(m)
	}
	if s.GridVisible {
		drawGrid()
	}
	rl.EndMode3D()
}

// Ray returns the world ray through screen point (x, y).
func (s *Scene) Ray(x, y float32) mesh.Ray {
	r := rl.GetScreenToWorldRay(rl.NewVector2(x, y), s.Camera)
	return mesh.Ray{
		Origin:    mgl32.Vec3{r.Position.X, r.Position.Y, r.Position.Z},
		Direction: mgl32.Vec3{r.Direction.X, r.Direction.Y, r.Direction.Z},
	}
}

// Pick returns the nearest of meshes under screen point (x, y).
func (s *Scene) Pick(x, y float32, meshes []*mesh.Mesh) (*mesh.Mesh, bool) {
	hit, ok := mesh.Pick(s.Ray(x, y), meshes)
	if !ok {
		return nil, false
	}
	return hit.Mesh, true
}

// ViewContext describes the camera for the natural-language director.
func (s *Scene) ViewContext() string {
	e := s.Orbit.Eye()
	return fmt.Sprintf("Camera at (%.1f, %.1f, %.1f) looking at the origin from %.1f units.", e[0], e[1], e[2], s.Orbit.Distance)
}

// Unload frees GPU resources. Call before the window closes.
func (s *Scene) Unload() {
	s.prims.Unload()
}

// drawGrid draws a grid on the ground with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid() {
	minor := rl.NewColor(60, 90, 60, gridMinorAlpha)
	major := rl.NewColor(40, 70, 40, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), gridLift, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), gridLift, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), gridLift, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), gridLift, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), gridLift*2, 0
	end.X, end.Y, end.Z = float32(gridExtent), gridLift*2, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, gridLift*2, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, gridLift*2, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}

// Package sim owns the simulated scene (physics world, mesh graph, rag doll, balls and ground) and
// advances it one fixed step per displayed frame.
package sim

import (
	"errors"
	"fmt"
	"image/color"

	"silly-billy/internal/entity"
	"silly-billy/internal/interact"
	"silly-billy/internal/logger"
	"silly-billy/internal/mesh"
	"silly-billy/internal/physics"
	"silly-billy/internal/ragdoll"
	"silly-billy/internal/tuning"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// TimeStep is the physics step per frame, independent of wall-clock time.
	TimeStep = float32(1.0 / 60.0)
	// queueSize bounds commands posted from other goroutines between two frames.
	queueSize = 64

	ballRadius = 0.5
	ballHeight = 5
	ballSpread = 10
	groundSize = 20
)

var groundColor = color.RGBA{0x90, 0xEE, 0x90, 0xFF}

// Renderer draws the graph. The host's raylib scene implements it.
type Renderer interface {
	// UpdateControls advances camera damping.
	UpdateControls()
	Render(graph *mesh.Graph)
}

// Command mutates the simulation on the frame goroutine.
type Command func(*Simulation)

// Options configures Load.
type Options struct {
	Random interact.Random
	Picker interact.Picker
	Log    *logger.Logger
	Tuning tuning.Tuning
	// Preset is applied after construction; empty means interact.DefaultPreset.
	Preset string
}

// Simulation is the whole simulated scene. All fields are touched only from the frame goroutine;
// other goroutines go through Post.
type Simulation struct {
	World      *physics.World
	Graph      *mesh.Graph
	Doll       *ragdoll.RagDoll
	Balls      []entity.Entity
	Ground     entity.Entity
	Controller *interact.Controller
	Tuning     tuning.Tuning

	random interact.Random
	log    *logger.Logger
	loaded bool
	frames uint64
	queue  chan Command
}

// New returns an empty simulation that renders nothing until Load succeeds.
func New() *Simulation {
	return &Simulation{queue: make(chan Command, queueSize)}
}

// Load builds the world, ground, doll and balls. On error the simulation is left unloaded and
// Load may be called again.
func (s *Simulation) Load(opts Options) error {
	if opts.Random == nil {
		return errors.New("load simulation: no random source")
	}
	if err := opts.Tuning.Validate(); err != nil {
		return fmt.Errorf("load simulation: %w", err)
	}

	world := physics.NewWorld()
	world.Iterations = opts.Tuning.Iterations
	graph := mesh.NewGraph()

	groundBody := physics.NewBody(physics.Plane(), mgl32.Vec3{}, 0, true)
	world.AddBody(groundBody)
	groundMesh := mesh.NewPlane("ground", groundSize, groundSize, groundColor)
	graph.Add(groundMesh)

	doll := ragdoll.Construct(world, graph)
	ctrl := interact.New(world, doll, opts.Picker, opts.Random, opts.Log)
	ctrl.SetPresets(opts.Tuning.Presets)
	preset := opts.Preset
	if preset == "" {
		preset = interact.DefaultPreset
	}
	if err := ctrl.ApplyPreset(preset); err != nil {
		return fmt.Errorf("load simulation: %w", err)
	}

	s.World = world
	s.Graph = graph
	s.Doll = doll
	s.Ground = entity.New("ground", groundBody, groundMesh)
	s.Controller = ctrl
	s.Tuning = opts.Tuning
	s.random = opts.Random
	s.log = opts.Log
	s.Balls = nil
	s.SpawnBalls(opts.Tuning.Balls)
	s.loaded = true
	s.log.Logf("loaded: %d parts, %d joints, %d balls", len(doll.Parts), len(doll.Joints), len(s.Balls))
	return nil
}

// Loaded reports whether Load has succeeded.
func (s *Simulation) Loaded() bool {
	return s.loaded
}

// Frames returns the number of frames stepped so far.
func (s *Simulation) Frames() uint64 {
	return s.frames
}

// Post queues cmd to run at the start of the next loaded frame. It is safe to call from any
// goroutine and reports false if the queue is full.
func (s *Simulation) Post(cmd Command) bool {
	select {
	case s.queue <- cmd:
		return true
	default:
		return false
	}
}

// Frame runs one iteration of the loop: drain queued commands, step physics by TimeStep, copy
// every body pose to its mesh, update camera controls, render. It does nothing until loaded.
func (s *Simulation) Frame(r Renderer) {
	if !s.loaded {
		return
	}
	s.drain()
	s.World.Step(TimeStep)
	s.frames++
	s.Doll.Sync()
	for _, b := range s.Balls {
		b.Sync()
	}
	r.UpdateControls()
	r.Render(s.Graph)
}

func (s *Simulation) drain() {
	for {
		select {
		case cmd := <-s.queue:
			cmd(s)
		default:
			return
		}
	}
}

// SpawnBalls replaces the free balls with n new ones dropped from above the ground.
func (s *Simulation) SpawnBalls(n int) {
	for _, b := range s.Balls {
		s.World.RemoveBody(b.Body)
		s.Graph.Remove(b.Mesh)
	}
	s.Balls = s.Balls[:0]
	for i := 0; i < n; i++ {
		c := s.randomColor()
		pos := mgl32.Vec3{
			(s.random.Float32() - 0.5) * ballSpread,
			ballHeight,
			(s.random.Float32() - 0.5) * ballSpread,
		}
		body := physics.NewBody(physics.Sphere(ballRadius), pos, 1, false)
		s.World.AddBody(body)
		m := mesh.NewSphere("", ballRadius, c)
		s.Graph.Add(m)
		s.Balls = append(s.Balls, entity.New(fmt.Sprintf("ball%d", i), body, m))
	}
}

func (s *Simulation) randomColor() color.RGBA {
	v := uint32(s.random.Float32() * 0xFFFFFF)
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

// ApplyTuning swaps in new tuning: presets, solver iterations and ball count. The active preset
// is re-applied so changed values take effect at once.
func (s *Simulation) ApplyTuning(t tuning.Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !s.loaded {
		s.Tuning = t
		return nil
	}
	s.World.Iterations = t.Iterations
	s.Controller.SetPresets(t.Presets)
	if _, ok := t.Preset(s.Controller.ActivePreset()); ok {
		if err := s.Controller.ApplyPreset(s.Controller.ActivePreset()); err != nil {
			return err
		}
	}
	if t.Balls != len(s.Balls) {
		s.SpawnBalls(t.Balls)
	}
	s.Tuning = t
	return nil
}

// Entities returns the doll parts followed by the balls.
func (s *Simulation) Entities() []entity.Entity {
	if !s.loaded {
		return nil
	}
	out := make([]entity.Entity, 0, len(s.Doll.Parts)+len(s.Balls))
	out = append(out, s.Doll.Parts...)
	return append(out, s.Balls...)
}

// Stats is a one-line summary of the world for the debug overlay.
func (s *Simulation) Stats() string {
	if !s.loaded {
		return "not loaded"
	}
	return fmt.Sprintf("Bodies: %d  Contacts: %d  Frame: %d", len(s.World.Bodies), s.World.Contacts(), s.frames)
}

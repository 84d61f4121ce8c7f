// Package interact turns user actions (buttons, taps, tilt, presets) into impulses and forces on
// the rag doll. Every action is synchronous and silently does nothing when there is no doll.
package interact

import (
	"fmt"
	"sort"

	"silly-billy/internal/entity"
	"silly-billy/internal/logger"
	"silly-billy/internal/mesh"
	"silly-billy/internal/physics"
	"silly-billy/internal/ragdoll"

	"github.com/go-gl/mathgl/mgl32"
)

// Random is the source of the random offsets in throw, kick, squeeze and tap. *rand.Rand satisfies it.
type Random interface {
	Float32() float32
}

// Picker finds the nearest mesh under a screen point. The render scene provides it.
type Picker interface {
	Pick(x, y float32, meshes []*mesh.Mesh) (*mesh.Mesh, bool)
}

// Tilt status texts shown on the HUD.
const (
	TiltWaiting = "Tilt: Waiting"
	TiltEnabled = "Tilt: Enabled"
)

// tiltScale converts tilt degrees into force.
const tiltScale = 0.1

// Controller applies actions to the doll in a world.
type Controller struct {
	world  *physics.World
	doll   *ragdoll.RagDoll
	picker Picker
	random Random
	log    *logger.Logger

	presets   []Preset
	active    string
	tiltArmed bool
	tapped    entity.Entity
	hasTapped bool
	actions   map[string]func()
}

// New returns a controller acting on doll in world. doll may be nil; picker may be nil, in which
// case taps never hit. log may be nil.
func New(world *physics.World, doll *ragdoll.RagDoll, picker Picker, random Random, log *logger.Logger) *Controller {
	c := &Controller{
		world:   world,
		doll:    doll,
		picker:  picker,
		random:  random,
		log:     log,
		presets: append([]Preset(nil), DefaultPresets...),
		active:  DefaultPreset,
	}
	c.actions = map[string]func(){
		"reset":   c.Reset,
		"throw":   c.Throw,
		"punch":   c.Punch,
		"kick":    c.Kick,
		"squeeze": c.Squeeze,
	}
	return c
}

// SetDoll replaces the doll the controller acts on. The last tapped part is forgotten.
func (c *Controller) SetDoll(doll *ragdoll.RagDoll) {
	c.doll = doll
	c.tapped, c.hasTapped = entity.Entity{}, false
}

// SetPresets replaces the preset table. The active preset name is kept even if it is no longer listed.
func (c *Controller) SetPresets(presets []Preset) {
	if len(presets) == 0 {
		return
	}
	c.presets = append([]Preset(nil), presets...)
}

// Presets returns the preset table in display order.
func (c *Controller) Presets() []Preset {
	return append([]Preset(nil), c.presets...)
}

// ActivePreset returns the name of the last applied preset.
func (c *Controller) ActivePreset() string {
	return c.active
}

// Actions returns the names accepted by Do, sorted.
func (c *Controller) Actions() []string {
	names := make([]string, 0, len(c.actions))
	for name := range c.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Do runs the named action.
func (c *Controller) Do(name string) error {
	fn, ok := c.actions[name]
	if !ok {
		return fmt.Errorf("unknown action %q", name)
	}
	fn()
	return nil
}

// Reset puts every part back in its stance with identity orientation, no motion and no pending force.
func (c *Controller) Reset() {
	if c.doll.Empty() {
		return
	}
	for i, p := range c.doll.Parts {
		b := p.Body
		b.Position = ragdoll.Stance(i)
		b.Quaternion = mgl32.QuatIdent()
		b.Velocity = mgl32.Vec3{}
		b.AngularVelocity = mgl32.Vec3{}
		b.ClearForces()
	}
	c.log.Log("reset")
}

// Throw launches the whole doll with one shared random impulse.
func (c *Controller) Throw() {
	if c.doll.Empty() {
		return
	}
	impulse := mgl32.Vec3{c.spread(20), 15, c.spread(20)}
	for _, p := range c.doll.Parts {
		p.Body.ApplyImpulse(impulse, p.Body.Position)
	}
	c.log.Logf("throw %v", impulse)
}

// Punch knocks the head sideways.
func (c *Controller) Punch() {
	head, ok := c.doll.Part(ragdoll.Head)
	if !ok {
		return
	}
	head.Body.ApplyImpulse(mgl32.Vec3{10, 5, 0}, head.Body.Position)
	c.log.Log("punch")
}

// Kick sends each leg off with its own random impulse.
func (c *Controller) Kick() {
	if c.doll.Empty() {
		return
	}
	for _, i := range []int{ragdoll.LeftLeg, ragdoll.RightLeg} {
		leg, ok := c.doll.Part(i)
		if !ok {
			continue
		}
		leg.Body.ApplyImpulse(mgl32.Vec3{c.spread(15), 8, c.spread(15)}, leg.Body.Position)
	}
	c.log.Log("kick")
}

// Squeeze pushes every part down with a small random sideways jitter.
func (c *Controller) Squeeze() {
	if c.doll.Empty() {
		return
	}
	for _, p := range c.doll.Parts {
		p.Body.ApplyImpulse(mgl32.Vec3{c.spread(5), -2, c.spread(5)}, p.Body.Position)
	}
	c.log.Log("squeeze")
}

// Tap flicks the nearest doll part under screen point (x, y). A miss does nothing.
func (c *Controller) Tap(x, y float32) bool {
	if c.doll.Empty() || c.picker == nil {
		return false
	}
	meshes := make([]*mesh.Mesh, len(c.doll.Parts))
	for i, p := range c.doll.Parts {
		meshes[i] = p.Mesh
	}
	m, ok := c.picker.Pick(x, y, meshes)
	if !ok {
		return false
	}
	part, ok := entity.Find(c.doll.Parts, m)
	if !ok {
		return false
	}
	part.Body.ApplyImpulse(mgl32.Vec3{c.spread(10), 5, c.spread(10)}, part.Body.Position)
	c.tapped, c.hasTapped = part, true
	c.log.Logf("tap %s", part.Label)
	return true
}

// LastTapped returns the most recently tapped part.
func (c *Controller) LastTapped() (entity.Entity, bool) {
	return c.tapped, c.hasTapped
}

// ArmTilt enables tilt input. The host calls it on the first click.
func (c *Controller) ArmTilt() {
	if c.tiltArmed {
		return
	}
	c.tiltArmed = true
	c.log.Log(TiltEnabled)
}

// TiltArmed reports whether tilt input is enabled.
func (c *Controller) TiltArmed() bool {
	return c.tiltArmed
}

// TiltStatus returns the HUD text for the tilt state.
func (c *Controller) TiltStatus() string {
	if c.tiltArmed {
		return TiltEnabled
	}
	return TiltWaiting
}

// Tilt applies a force (gamma, 0, -beta)·0.1 to every part, once per call. beta and gamma are in degrees.
// Calls before ArmTilt are ignored.
func (c *Controller) Tilt(beta, gamma float32) {
	if !c.tiltArmed || c.doll.Empty() {
		return
	}
	force := mgl32.Vec3{gamma * tiltScale, 0, -beta * tiltScale}
	for _, p := range c.doll.Parts {
		p.Body.ApplyForce(force, p.Body.Position)
	}
}

// ApplyPreset sets world gravity and the damping of every doll part from the named preset.
func (c *Controller) ApplyPreset(name string) error {
	p, err := findPreset(c.presets, name)
	if err != nil {
		return err
	}
	c.world.SetGravity(mgl32.Vec3{0, p.Gravity, 0})
	if !c.doll.Empty() {
		for _, part := range c.doll.Parts {
			part.Body.LinearDamping = p.Damping
			part.Body.AngularDamping = p.Damping
		}
	}
	c.active = p.Name
	c.log.Logf("preset %s (gravity %.2f, damping %.3f)", p.Name, p.Gravity, p.Damping)
	return nil
}

// spread returns a random value in [-scale/2, scale/2).
func (c *Controller) spread(scale float32) float32 {
	return (c.random.Float32() - 0.5) * scale
}

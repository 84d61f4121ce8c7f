// Package ragdoll builds the jointed humanoid: six boxes held together by five cone-twist joints,
// all hung off the torso.
package ragdoll

import (
	"image/color"

	"silly-billy/internal/entity"
	"silly-billy/internal/mesh"
	"silly-billy/internal/physics"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Part indices into RagDoll.Parts.
const (
	Head = iota
	Torso
	LeftArm
	RightArm
	LeftLeg
	RightLeg
)

var (
	pink  = color.RGBA{0xFF, 0xB6, 0xC1, 0xFF}
	sky   = color.RGBA{0x87, 0xCE, 0xEB, 0xFF}
	royal = color.RGBA{0x41, 0x69, 0xE1, 0xFF}
)

// BodyPart describes one box of the doll. Size is the full extent on each axis.
type BodyPart struct {
	Name     string
	Size     mgl32.Vec3
	Position mgl32.Vec3
	Color    color.RGBA
	Mass     float32
}

// HalfExtents returns half of Size.
func (p BodyPart) HalfExtents() mgl32.Vec3 {
	return p.Size.Mul(0.5)
}

// Parts lists the doll's boxes in index order.
var Parts = []BodyPart{
	{Name: "head", Size: mgl32.Vec3{0.5, 0.5, 0.5}, Position: mgl32.Vec3{0, 2.5, 0}, Color: pink, Mass: 1},
	{Name: "torso", Size: mgl32.Vec3{1, 1.5, 0.3}, Position: mgl32.Vec3{0, 1, 0}, Color: sky, Mass: 1},
	{Name: "leftArm", Size: mgl32.Vec3{0.2, 0.8, 0.2}, Position: mgl32.Vec3{-1.2, 1.5, 0}, Color: pink, Mass: 1},
	{Name: "rightArm", Size: mgl32.Vec3{0.2, 0.8, 0.2}, Position: mgl32.Vec3{1.2, 1.5, 0}, Color: pink, Mass: 1},
	{Name: "leftLeg", Size: mgl32.Vec3{0.3, 0.8, 0.3}, Position: mgl32.Vec3{-0.3, -0.5, 0}, Color: royal, Mass: 1},
	{Name: "rightLeg", Size: mgl32.Vec3{0.3, 0.8, 0.3}, Position: mgl32.Vec3{0.3, -0.5, 0}, Color: royal, Mass: 1},
}

// JointDef links part A to part B. Pivots and the axis are in each part's local frame.
type JointDef struct {
	Name       string
	A, B       int
	PivotA     mgl32.Vec3
	PivotB     mgl32.Vec3
	Axis       mgl32.Vec3
	Angle      float32
	TwistAngle float32
}

// Joints lists the doll's joints. The torso is B in every one.
var Joints = []JointDef{
	{Name: "neck", A: Head, B: Torso, PivotA: mgl32.Vec3{0, -0.25, 0}, PivotB: mgl32.Vec3{0, 0.75, 0}, Axis: mgl32.Vec3{0, 1, 0}, Angle: math32.Pi / 4, TwistAngle: math32.Pi / 4},
	{Name: "leftShoulder", A: LeftArm, B: Torso, PivotA: mgl32.Vec3{0, 0.4, 0}, PivotB: mgl32.Vec3{-0.5, 0.5, 0}, Axis: mgl32.Vec3{1, 0, 0}, Angle: math32.Pi / 2, TwistAngle: math32.Pi / 2},
	{Name: "rightShoulder", A: RightArm, B: Torso, PivotA: mgl32.Vec3{0, 0.4, 0}, PivotB: mgl32.Vec3{0.5, 0.5, 0}, Axis: mgl32.Vec3{-1, 0, 0}, Angle: math32.Pi / 2, TwistAngle: math32.Pi / 2},
	{Name: "leftHip", A: LeftLeg, B: Torso, PivotA: mgl32.Vec3{0, 0.4, 0}, PivotB: mgl32.Vec3{-0.3, -0.75, 0}, Axis: mgl32.Vec3{0, 1, 0}, Angle: math32.Pi / 4, TwistAngle: math32.Pi / 4},
	{Name: "rightHip", A: RightLeg, B: Torso, PivotA: mgl32.Vec3{0, 0.4, 0}, PivotB: mgl32.Vec3{0.3, -0.75, 0}, Axis: mgl32.Vec3{0, 1, 0}, Angle: math32.Pi / 4, TwistAngle: math32.Pi / 4},
}

// RagDoll is the assembled doll. Parts[i] is always Parts table entry i.
type RagDoll struct {
	Parts  []entity.Entity
	Joints []*physics.ConeTwist
}

// Construct builds the doll in its table pose and registers its bodies and joints with world and
// its meshes with graph.
func Construct(world *physics.World, graph *mesh.Graph) *RagDoll {
	rd := &RagDoll{}
	for _, p := range Parts {
		body := physics.NewBody(physics.Box(p.HalfExtents()), p.Position, p.Mass, false)
		world.AddBody(body)
		m := mesh.NewBox(p.Name, p.HalfExtents(), p.Color)
		graph.Add(m)
		rd.Parts = append(rd.Parts, entity.New(p.Name, body, m))
	}
	for _, j := range Joints {
		c := physics.NewConeTwist(rd.Parts[j.A].Body, rd.Parts[j.B].Body, physics.ConeTwistOptions{
			PivotA:     j.PivotA,
			PivotB:     j.PivotB,
			AxisA:      j.Axis,
			AxisB:      j.Axis,
			Angle:      j.Angle,
			TwistAngle: j.TwistAngle,
		})
		world.AddConstraint(c)
		rd.Joints = append(rd.Joints, c)
	}
	return rd
}

// Empty reports whether rd has no parts to act on. A nil doll is empty.
func (rd *RagDoll) Empty() bool {
	return rd == nil || len(rd.Parts) == 0
}

// Part returns the entity for index i, or false when out of range.
func (rd *RagDoll) Part(i int) (entity.Entity, bool) {
	if rd.Empty() || i < 0 || i >= len(rd.Parts) {
		return entity.Entity{}, false
	}
	return rd.Parts[i], true
}

// Stance returns where part i is placed on reset: stacked above the origin.
func Stance(i int) mgl32.Vec3 {
	return mgl32.Vec3{0, 2 + 0.5*float32(i), 0}
}

// Sync copies every part's body pose into its mesh.
func (rd *RagDoll) Sync() {
	if rd.Empty() {
		return
	}
	for _, p := range rd.Parts {
		p.Sync()
	}
}

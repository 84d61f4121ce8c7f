package ui

import "fmt"

// Inspector is a right-side panel that shows the last tapped part: name, position, velocity and mass.
// It owns its nodes and updates their text when AppendNodes is called with visible true.
type Inspector struct {
	panel    *Node
	title    *Node
	name     *Node
	position *Node
	velocity *Node
	mass     *Node
}

// NewInspector creates an Inspector with nodes styled by .inspector, .inspector-title and .inspector-line.
func NewInspector() *Inspector {
	return &Inspector{
		panel:    NewNode("panel", "inspector", "", ""),
		title:    NewNode("label", "inspector-title", "", "Last poked"),
		name:     NewNode("label", "inspector-line", "inspector-name", ""),
		position: NewNode("label", "inspector-line", "inspector-position", ""),
		velocity: NewNode("label", "inspector-line", "inspector-velocity", ""),
		mass:     NewNode("label", "inspector-line", "inspector-mass", ""),
	}
}

// Selection holds the data shown in the inspector.
// Pass this from the host; ui does not depend on the simulation.
type Selection struct {
	Name     string
	Position [3]float32
	Velocity [3]float32
	Mass     float32
}

// AppendNodes appends inspector nodes to dst when visible is true, after updating labels from sel.
// When visible is false, dst is returned unchanged. Call every frame so visibility and content stay in sync.
func (in *Inspector) AppendNodes(dst []*Node, visible bool, sel Selection) []*Node {
	if !visible {
		return dst
	}
	in.name.Text = "Part: " + sel.Name
	in.position.Text = fmt.Sprintf("Position: %.2f, %.2f, %.2f", sel.Position[0], sel.Position[1], sel.Position[2])
	in.velocity.Text = fmt.Sprintf("Velocity: %.2f, %.2f, %.2f", sel.Velocity[0], sel.Velocity[1], sel.Velocity[2])
	in.mass.Text = fmt.Sprintf("Mass: %.1f", sel.Mass)
	return append(dst, in.panel, in.title, in.name, in.position, in.velocity, in.mass)
}

package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label, button. It has optional classes and id for CSS matching,
// bounds (position and size), and optional text.
type Node struct {
	Type   string // "panel", "label", "button"
	Class  string // space-separated, e.g. "button active" matches .button and .active
	ID     string // e.g. "main" for #main
	Bounds rl.Rectangle
	Text   string
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{
		Type:  typ,
		Class: class,
		ID:    id,
		Text:  text,
	}
}

// HasClass reports whether class is one of the node's classes.
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// SetClass adds or removes class.
func (n *Node) SetClass(class string, on bool) {
	if n.HasClass(class) == on {
		return
	}
	if on {
		n.Class = strings.TrimSpace(n.Class + " " + class)
		return
	}
	fields := strings.Fields(n.Class)
	kept := fields[:0]
	for _, c := range fields {
		if c != class {
			kept = append(kept, c)
		}
	}
	n.Class = strings.Join(kept, " ")
}

// styleKey identifies the selectors a node can match.
func (n *Node) styleKey() string {
	return n.Class + "#" + n.ID
}

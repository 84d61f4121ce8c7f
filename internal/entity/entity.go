// Package entity pairs a physics body with the mesh that shows it.
package entity

import (
	"silly-billy/internal/mesh"
	"silly-billy/internal/physics"
)

// Entity is one simulated object. The body is authoritative; the mesh follows it.
type Entity struct {
	Label string
	Body  *physics.Body
	Mesh  *mesh.Mesh
}

// New returns an entity labelled label. The mesh label is set to match.
func New(label string, body *physics.Body, m *mesh.Mesh) Entity {
	m.Label = label
	e := Entity{Label: label, Body: body, Mesh: m}
	e.Sync()
	return e
}

// Sync copies the body's position and orientation into the mesh unchanged.
func (e Entity) Sync() {
	if e.Body == nil || e.Mesh == nil {
		return
	}
	e.Mesh.Position = e.Body.Position
	e.Mesh.Rotation = e.Body.Quaternion
}

// Find returns the entity whose mesh is m.
func Find(entities []Entity, m *mesh.Mesh) (Entity, bool) {
	for _, e := range entities {
		if e.Mesh == m {
			return e, true
		}
	}
	return Entity{}, false
}

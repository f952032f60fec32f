// Package components defines ECS components for the simulation.
//
// Entities in the ark world are the gameplay view of a body: the physics
// arena owns position and velocity, and these components carry what the
// renderer and gameplay systems need.
package components

import "github.com/pthm-cable/tickphys/physics"

// PhysicsBody links an entity to its body in the physics store.
type PhysicsBody struct {
	ID physics.BodyID
}

// Kind distinguishes spawned body roles.
type Kind uint8

const (
	KindSolid    Kind = iota // regular body, corrected and confined
	KindFloating             // pushes others, never corrected
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindFloating:
		return "floating"
	}
	return "unknown"
}

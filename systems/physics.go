// Package systems contains ECS systems that sit around the physics engine.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tickphys/components"
	"github.com/pthm-cable/tickphys/physics"
)

// TransformSyncSystem copies resolved body positions into render transforms.
// It is the only writer of Transform after spawn.
type TransformSyncSystem struct {
	filter *ecs.Filter2[components.PhysicsBody, components.Transform]
}

// NewTransformSyncSystem creates a new transform sync system.
func NewTransformSyncSystem(w *ecs.World) *TransformSyncSystem {
	return &TransformSyncSystem{
		filter: ecs.NewFilter2[components.PhysicsBody, components.Transform](w),
	}
}

// Update writes every transform whose body moved during the last tick and
// returns how many were written.
func (s *TransformSyncSystem) Update(store *physics.Store) int {
	written := 0
	query := s.filter.Query()
	for query.Next() {
		pb, tr := query.Get()

		if !store.Changed(pb.ID) {
			continue
		}
		b, ok := store.Get(pb.ID)
		if !ok {
			continue
		}
		tr.X = float32(b.Position.X)
		tr.Y = float32(b.Position.Y)
		written++
	}
	return written
}

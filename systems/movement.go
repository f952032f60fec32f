package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/tickphys/components"
	"github.com/pthm-cable/tickphys/physics"
)

// WanderSystem steers entities along a slowly drifting heading. It runs
// between ticks and is the only writer of body velocity.
type WanderSystem struct {
	filter *ecs.Filter2[components.PhysicsBody, components.Wander]
	rng    *rand.Rand
}

// NewWanderSystem creates a new wander system. All randomness comes from rng,
// so a seeded rng gives a reproducible run.
func NewWanderSystem(w *ecs.World, rng *rand.Rand) *WanderSystem {
	return &WanderSystem{
		filter: ecs.NewFilter2[components.PhysicsBody, components.Wander](w),
		rng:    rng,
	}
}

// Update jitters headings and writes the resulting velocities into store.
// With bounds set, a body touching an edge has its heading reflected away
// from that edge.
func (s *WanderSystem) Update(store *physics.Store, bounds *physics.MapBounds, dt float32) error {
	query := s.filter.Query()
	for query.Next() {
		pb, wander := query.Get()

		// Random walk on heading
		turn := (s.rng.Float32()*2 - 1) * wander.TurnRate * dt
		wander.Heading = wrapAngle(wander.Heading + turn)

		if bounds != nil {
			if b, ok := store.Get(pb.ID); ok {
				wander.Heading = reflectHeading(wander.Heading, b, bounds)
			}
		}

		v := r2.Vec{
			X: float64(wander.Speed) * math.Cos(float64(wander.Heading)),
			Y: float64(wander.Speed) * math.Sin(float64(wander.Heading)),
		}
		if err := store.SetVelocity(pb.ID, v); err != nil {
			query.Close()
			return err
		}
	}
	return nil
}

// reflectHeading mirrors the heading off any edge the body is touching while
// moving toward it.
func reflectHeading(h float32, b physics.Body, bounds *physics.MapBounds) float32 {
	cos := math.Cos(float64(h))
	sin := math.Sin(float64(h))

	if (b.Position.X-b.Radius <= bounds.XMin && cos < 0) || (b.Position.X+b.Radius >= bounds.XMax && cos > 0) {
		h = math.Pi - h
	}
	if (b.Position.Y-b.Radius <= bounds.YMin && sin < 0) || (b.Position.Y+b.Radius >= bounds.YMax && sin > 0) {
		h = -h
	}
	return wrapAngle(h)
}

// Package physics implements the fixed-timestep circle collision engine.
//
// Bodies live in an arena (Store) addressed by stable BodyIDs. Each tick runs
// one all-pairs detection pass, a fixed number of integrate+resolve substeps
// against that single collision list, and an optional per-axis boundary clamp.
package physics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Store errors.
var (
	ErrUnknownBody   = errors.New("unknown body")
	ErrInvalidRadius = errors.New("radius must be finite and >= 0")
	ErrInvalidVector = errors.New("vector must be finite")
)

// BodyID is a stable handle to a body. IDs are allocated in increasing order
// and never reused, so comparing two IDs gives a stable pair ordering.
type BodyID uint32

// Body is a simulated circle.
type Body struct {
	ID       BodyID
	Position r2.Vec
	Velocity r2.Vec
	Radius   float64

	// Floating bodies push others but are never moved by resolution or confinement.
	Floating bool
}

// BodySpec describes a body to spawn.
type BodySpec struct {
	Position r2.Vec
	Velocity r2.Vec
	Radius   float64
	Floating bool
}

// Store is a dense arena of bodies indexed by BodyID.
// Removal swaps the last body into the freed slot, so dense order depends only
// on the sequence of Spawn/Despawn calls.
type Store struct {
	bodies  []Body
	changed []bool
	index   map[BodyID]int
	nextID  BodyID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		index:  make(map[BodyID]int),
		nextID: 1,
	}
}

// Spawn adds a body and returns its handle.
func (s *Store) Spawn(spec BodySpec) (BodyID, error) {
	if math.IsNaN(spec.Radius) || math.IsInf(spec.Radius, 0) || spec.Radius < 0 {
		return 0, fmt.Errorf("spawn radius %v: %w", spec.Radius, ErrInvalidRadius)
	}
	if !finite(spec.Position) || !finite(spec.Velocity) {
		return 0, fmt.Errorf("spawn: %w", ErrInvalidVector)
	}

	id := s.nextID
	s.nextID++

	s.index[id] = len(s.bodies)
	s.bodies = append(s.bodies, Body{
		ID:       id,
		Position: spec.Position,
		Velocity: spec.Velocity,
		Radius:   spec.Radius,
		Floating: spec.Floating,
	})
	s.changed = append(s.changed, false)
	return id, nil
}

// Despawn removes a body.
func (s *Store) Despawn(id BodyID) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("despawn %d: %w", id, ErrUnknownBody)
	}

	last := len(s.bodies) - 1
	if i != last {
		s.bodies[i] = s.bodies[last]
		s.changed[i] = s.changed[last]
		s.index[s.bodies[i].ID] = i
	}
	s.bodies = s.bodies[:last]
	s.changed = s.changed[:last]
	delete(s.index, id)
	return nil
}

// Get returns a copy of the body with the given ID.
func (s *Store) Get(id BodyID) (Body, bool) {
	i, ok := s.index[id]
	if !ok {
		return Body{}, false
	}
	return s.bodies[i], true
}

// Has reports whether the body exists.
func (s *Store) Has(id BodyID) bool {
	_, ok := s.index[id]
	return ok
}

// SetVelocity sets a body's velocity. Gameplay code calls this between ticks.
func (s *Store) SetVelocity(id BodyID, v r2.Vec) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("set velocity %d: %w", id, ErrUnknownBody)
	}
	if !finite(v) {
		return fmt.Errorf("set velocity %d: %w", id, ErrInvalidVector)
	}
	s.bodies[i].Velocity = v
	return nil
}

// SetPosition teleports a body. Only spawn logic should use this, and never
// while a tick is running. A teleport does not mark the body as changed;
// callers own their render transform until the next tick moves the body.
func (s *Store) SetPosition(id BodyID, p r2.Vec) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("set position %d: %w", id, ErrUnknownBody)
	}
	if !finite(p) {
		return fmt.Errorf("set position %d: %w", id, ErrInvalidVector)
	}
	s.bodies[i].Position = p
	return nil
}

// SetFloating toggles the floating capability.
func (s *Store) SetFloating(id BodyID, floating bool) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("set floating %d: %w", id, ErrUnknownBody)
	}
	s.bodies[i].Floating = floating
	return nil
}

// Changed reports whether the body's position moved during the last tick.
func (s *Store) Changed(id BodyID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	return s.changed[i]
}

// Len returns the number of bodies.
func (s *Store) Len() int {
	return len(s.bodies)
}

// Each calls fn for every body in dense order.
func (s *Store) Each(fn func(b Body)) {
	for i := range s.bodies {
		fn(s.bodies[i])
	}
}

// IDs returns all body IDs in dense order.
func (s *Store) IDs() []BodyID {
	ids := make([]BodyID, len(s.bodies))
	for i := range s.bodies {
		ids[i] = s.bodies[i].ID
	}
	return ids
}

// Snapshot is an immutable struct-of-arrays copy of the store taken at the
// start of a tick. Detection reads only the snapshot.
type Snapshot struct {
	IDs        []BodyID
	Positions  []r2.Vec
	Velocities []r2.Vec
	Radii      []float64
}

// Len returns the number of bodies in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.IDs)
}

// snapshotInto copies the store into dst, reusing its slices.
func (s *Store) snapshotInto(dst *Snapshot) {
	n := len(s.bodies)
	dst.IDs = dst.IDs[:0]
	dst.Positions = dst.Positions[:0]
	dst.Velocities = dst.Velocities[:0]
	dst.Radii = dst.Radii[:0]
	for i := 0; i < n; i++ {
		b := &s.bodies[i]
		dst.IDs = append(dst.IDs, b.ID)
		dst.Positions = append(dst.Positions, b.Position)
		dst.Velocities = append(dst.Velocities, b.Velocity)
		dst.Radii = append(dst.Radii, b.Radius)
	}
}

// Snapshot returns a fresh snapshot of the store.
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot
	s.snapshotInto(&snap)
	return snap
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

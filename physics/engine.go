package physics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Phase names reported through the phase hook.
const (
	PhaseDetect    = "detect"
	PhaseIntegrate = "integrate"
	PhaseConfine   = "confine"
)

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("invalid physics settings")

// Settings are the fixed tick parameters.
type Settings struct {
	DT           float64 // seconds per tick
	Substeps     int     // integrate+resolve iterations per tick
	SafetyMargin float64 // k in the velocity margin, must be > 1
}

// Validate checks the settings.
func (s Settings) Validate() error {
	switch {
	case !(s.DT > 0) || math.IsInf(s.DT, 0):
		return fmt.Errorf("dt %v must be finite and > 0: %w", s.DT, ErrInvalidSettings)
	case s.Substeps < 1:
		return fmt.Errorf("substeps %d must be >= 1: %w", s.Substeps, ErrInvalidSettings)
	case !(s.SafetyMargin > 1) || math.IsInf(s.SafetyMargin, 0):
		return fmt.Errorf("safety margin %v must be finite and > 1: %w", s.SafetyMargin, ErrInvalidSettings)
	}
	return nil
}

// SubstepDT returns the duration of one substep.
func (s Settings) SubstepDT() float64 {
	return s.DT / float64(s.Substeps)
}

// TickResult describes one completed tick. Collisions and Moved are reused
// by the next Step; copy them if they must outlive it.
type TickResult struct {
	Tick       uint64
	Collisions []Collision
	Moved      []BodyID

	// Corrections counts pair corrections summed over all substeps.
	Corrections int
}

// Engine runs the fixed tick over a Store.
type Engine struct {
	store    *Store
	settings Settings
	bounds   *MapBounds
	tick     uint64

	onPhase func(phase string)

	// per-tick scratch
	snap       Snapshot
	collisions []Collision
	pairs      []pairIndex
	moved      []BodyID
}

// NewEngine creates an engine over store.
func NewEngine(store *Store, settings Settings) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Engine{store: store, settings: settings}, nil
}

// Store returns the body store.
func (e *Engine) Store() *Store { return e.store }

// Settings returns the tick parameters.
func (e *Engine) Settings() Settings { return e.settings }

// Tick returns the number of completed ticks.
func (e *Engine) Tick() uint64 { return e.tick }

// Bounds returns the active bounds, or nil.
func (e *Engine) Bounds() *MapBounds { return e.bounds }

// SetBounds sets or clears (nil) the confinement rectangle.
func (e *Engine) SetBounds(b *MapBounds) error {
	if b == nil {
		e.bounds = nil
		return nil
	}
	if err := b.Validate(); err != nil {
		return err
	}
	cp := *b
	e.bounds = &cp
	return nil
}

// SetSubsteps changes the substep count between ticks.
func (e *Engine) SetSubsteps(n int) error {
	s := e.settings
	s.Substeps = n
	if err := s.Validate(); err != nil {
		return err
	}
	e.settings = s
	return nil
}

// SetPhaseHook registers a callback invoked at the start of each phase.
func (e *Engine) SetPhaseHook(fn func(phase string)) {
	e.onPhase = fn
}

// Step runs one fixed tick: detect once, then N substeps of integrate and
// resolve against that same collision list, then confine.
func (e *Engine) Step() TickResult {
	s := e.store
	dt := e.settings.DT
	n := e.settings.Substeps
	subDT := e.settings.SubstepDT()

	e.phase(PhaseDetect)
	s.snapshotInto(&e.snap)
	e.collisions = Detect(e.collisions[:0], &e.snap, dt, e.settings.SafetyMargin)

	// The store is not restructured during a tick, so indices stay valid.
	e.pairs = e.pairs[:0]
	for _, c := range e.collisions {
		e.pairs = append(e.pairs, pairIndex{a: s.index[c.A], b: s.index[c.B]})
	}

	e.phase(PhaseIntegrate)
	corrections := 0
	for step := 0; step < n; step++ {
		s.integrate(e.snap.Velocities, subDT)
		corrections += s.resolve(e.pairs)
	}

	e.phase(PhaseConfine)
	s.confine(e.bounds)

	e.moved = e.moved[:0]
	for i := range s.bodies {
		changed := s.bodies[i].Position != e.snap.Positions[i]
		s.changed[i] = changed
		if changed {
			e.moved = append(e.moved, s.bodies[i].ID)
		}
	}

	e.tick++
	return TickResult{
		Tick:        e.tick,
		Collisions:  e.collisions,
		Moved:       e.moved,
		Corrections: corrections,
	}
}

// Penetration returns the current overlap depth of a collision pair, or 0
// if either body is gone or the pair is separated.
func (e *Engine) Penetration(c Collision) float64 {
	a, okA := e.store.Get(c.A)
	b, okB := e.store.Get(c.B)
	if !okA || !okB {
		return 0
	}
	return PenetrationDepth(a, b)
}

// Positions returns every body position keyed by ID.
func (e *Engine) Positions() map[BodyID]r2.Vec {
	out := make(map[BodyID]r2.Vec, e.store.Len())
	e.store.Each(func(b Body) {
		out[b.ID] = b.Position
	})
	return out
}

func (e *Engine) phase(name string) {
	if e.onPhase != nil {
		e.onPhase(name)
	}
}

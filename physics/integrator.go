package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// pairIndex is a collision resolved to dense store indices for one tick.
type pairIndex struct {
	a, b int
}

// integrate advances every body by the tick-start velocity snapshot.
// vel is indexed in the same dense order as s.bodies.
func (s *Store) integrate(vel []r2.Vec, subDT float64) {
	for i := range s.bodies {
		s.bodies[i].Position = r2.Add(s.bodies[i].Position, r2.Scale(subDT, vel[i]))
	}
}

// resolve applies positional correction to every pair, returning how many
// pairs were corrected.
func (s *Store) resolve(pairs []pairIndex) int {
	corrected := 0
	for _, p := range pairs {
		if ResolvePair(&s.bodies[p.a], &s.bodies[p.b]) {
			corrected++
		}
	}
	return corrected
}

// ResolvePair pushes two overlapping bodies apart along the line between
// their centers. Each non-floating body moves half the penetration depth.
// Coincident centers are skipped. Velocity is never modified.
// Reports whether any position changed.
func ResolvePair(a, b *Body) bool {
	if a.Floating && b.Floating {
		return false
	}

	combined := a.Radius + b.Radius
	ab := r2.Sub(b.Position, a.Position)
	distSq := r2.Norm2(ab)
	if distSq >= combined*combined {
		return false
	}

	length := math.Sqrt(distSq)
	if length == 0 {
		return false
	}

	depth := combined - length
	push := r2.Scale(depth/2, r2.Scale(1/length, ab))

	if !a.Floating {
		a.Position = r2.Sub(a.Position, push)
	}
	if !b.Floating {
		b.Position = r2.Add(b.Position, push)
	}
	return true
}

// PenetrationDepth returns how far two bodies overlap, or 0 if they don't.
func PenetrationDepth(a, b Body) float64 {
	d := a.Radius + b.Radius - r2.Norm(r2.Sub(b.Position, a.Position))
	if d < 0 {
		return 0
	}
	return d
}

package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBounds is returned for non-finite rectangles or ones with min > max.
var ErrInvalidBounds = errors.New("invalid map bounds")

// MapBounds is the rectangular arena bodies are confined to.
type MapBounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Validate checks that the rectangle is finite and not inverted.
func (m MapBounds) Validate() error {
	for _, v := range [...]float64{m.XMin, m.XMax, m.YMin, m.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("x[%v,%v] y[%v,%v]: %w", m.XMin, m.XMax, m.YMin, m.YMax, ErrInvalidBounds)
		}
	}
	if m.XMin > m.XMax || m.YMin > m.YMax {
		return fmt.Errorf("x[%v,%v] y[%v,%v]: %w", m.XMin, m.XMax, m.YMin, m.YMax, ErrInvalidBounds)
	}
	return nil
}

// Width returns the horizontal extent.
func (m MapBounds) Width() float64 { return m.XMax - m.XMin }

// Height returns the vertical extent.
func (m MapBounds) Height() float64 { return m.YMax - m.YMin }

// confine clamps every non-floating body inside bounds, one axis at a time.
// A body wider than the arena ends up against the max edge.
func (s *Store) confine(bounds *MapBounds) {
	if bounds == nil {
		return
	}
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.Floating {
			continue
		}
		b.Position.X = clampAxis(b.Position.X, b.Radius, bounds.XMin, bounds.XMax)
		b.Position.Y = clampAxis(b.Position.Y, b.Radius, bounds.YMin, bounds.YMax)
	}
}

func clampAxis(p, r, lo, hi float64) float64 {
	if p-r < lo {
		p = lo + r
	}
	if p+r > hi {
		p = hi - r
	}
	return p
}

package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Collision is a detected pair for one tick. A is always the lower ID.
// Overlapping is false for margin-predicted near misses.
type Collision struct {
	A, B        BodyID
	Overlapping bool
}

// VelocityMargin returns the extra detection distance for a pair:
// k * dt * sqrt(|va|^2 + |vb|^2).
func VelocityMargin(va, vb r2.Vec, dt, k float64) float64 {
	return k * dt * math.Sqrt(r2.Norm2(va)+r2.Norm2(vb))
}

// Detect runs the all-pairs pass over a tick-start snapshot and appends the
// results to dst. It does not touch body state.
//
// This is O(n^2) and is only meant for small body counts.
func Detect(dst []Collision, snap *Snapshot, dt, k float64) []Collision {
	n := snap.Len()
	for i := 0; i < n; i++ {
		idA := snap.IDs[i]
		posA := snap.Positions[i]
		velA := snap.Velocities[i]
		rA := snap.Radii[i]

		for j := i + 1; j < n; j++ {
			idB := snap.IDs[j]
			if idA == idB {
				panic(fmt.Sprintf("physics: body %d paired with itself", idA))
			}

			margin := VelocityMargin(velA, snap.Velocities[j], dt, k)
			combined := rA + snap.Radii[j]
			withMargin := combined + margin

			distSq := r2.Norm2(r2.Sub(snap.Positions[j], posA))
			if distSq >= withMargin*withMargin {
				continue
			}

			c := Collision{A: idA, B: idB, Overlapping: distSq < combined*combined}
			if c.B < c.A {
				c.A, c.B = c.B, c.A
			}
			dst = append(dst, c)
		}
	}
	return dst
}

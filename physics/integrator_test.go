package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func vecNear(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestResolvePairSymmetric(t *testing.T) {
	a := Body{ID: 1, Position: r2.Vec{X: 0, Y: 0}, Radius: 10}
	b := Body{ID: 2, Position: r2.Vec{X: 15, Y: 0}, Radius: 10}

	if !ResolvePair(&a, &b) {
		t.Fatal("expected correction")
	}
	if !vecNear(a.Position, r2.Vec{X: -2.5, Y: 0}, 1e-9) {
		t.Errorf("a = %v, want (-2.5, 0)", a.Position)
	}
	if !vecNear(b.Position, r2.Vec{X: 17.5, Y: 0}, 1e-9) {
		t.Errorf("b = %v, want (17.5, 0)", b.Position)
	}
}

func TestResolvePairCases(t *testing.T) {
	tests := []struct {
		name          string
		a, b          Body
		wantCorrected bool
		wantA, wantB  r2.Vec
	}{
		{
			name:          "separated pair untouched",
			a:             Body{Position: r2.Vec{X: 0, Y: 0}, Radius: 5},
			b:             Body{Position: r2.Vec{X: 20, Y: 0}, Radius: 5},
			wantCorrected: false,
			wantA:         r2.Vec{X: 0, Y: 0},
			wantB:         r2.Vec{X: 20, Y: 0},
		},
		{
			name:          "coincident centers skipped",
			a:             Body{Position: r2.Vec{X: 3, Y: 3}, Radius: 5},
			b:             Body{Position: r2.Vec{X: 3, Y: 3}, Radius: 5},
			wantCorrected: false,
			wantA:         r2.Vec{X: 3, Y: 3},
			wantB:         r2.Vec{X: 3, Y: 3},
		},
		{
			name:          "floating a stays put",
			a:             Body{Position: r2.Vec{X: 0, Y: 0}, Radius: 10, Floating: true},
			b:             Body{Position: r2.Vec{X: 15, Y: 0}, Radius: 10},
			wantCorrected: true,
			wantA:         r2.Vec{X: 0, Y: 0},
			wantB:         r2.Vec{X: 17.5, Y: 0},
		},
		{
			name:          "floating b stays put",
			a:             Body{Position: r2.Vec{X: 0, Y: 0}, Radius: 10},
			b:             Body{Position: r2.Vec{X: 0, Y: 15}, Radius: 10, Floating: true},
			wantCorrected: true,
			wantA:         r2.Vec{X: 0, Y: -2.5},
			wantB:         r2.Vec{X: 0, Y: 15},
		},
		{
			name:          "floating pair never corrected",
			a:             Body{Position: r2.Vec{X: 0, Y: 0}, Radius: 10, Floating: true},
			b:             Body{Position: r2.Vec{X: 15, Y: 0}, Radius: 10, Floating: true},
			wantCorrected: false,
			wantA:         r2.Vec{X: 0, Y: 0},
			wantB:         r2.Vec{X: 15, Y: 0},
		},
		{
			// 3-4-5 triangle: distance 5, combined 7, depth 2, half = 1 along (0.6, 0.8)
			name:          "diagonal",
			a:             Body{Position: r2.Vec{X: 0, Y: 0}, Radius: 3},
			b:             Body{Position: r2.Vec{X: 3, Y: 4}, Radius: 4},
			wantCorrected: true,
			wantA:         r2.Vec{X: -0.6, Y: -0.8},
			wantB:         r2.Vec{X: 3.6, Y: 4.8},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b := tc.a, tc.b
			velA, velB := a.Velocity, b.Velocity

			got := ResolvePair(&a, &b)
			if got != tc.wantCorrected {
				t.Errorf("ResolvePair = %v, want %v", got, tc.wantCorrected)
			}
			if !vecNear(a.Position, tc.wantA, 1e-9) {
				t.Errorf("a = %v, want %v", a.Position, tc.wantA)
			}
			if !vecNear(b.Position, tc.wantB, 1e-9) {
				t.Errorf("b = %v, want %v", b.Position, tc.wantB)
			}
			if a.Velocity != velA || b.Velocity != velB {
				t.Error("resolution must not touch velocity")
			}
		})
	}
}

func TestResolveFloatingPenetrationHalvesEachPass(t *testing.T) {
	a := Body{Position: r2.Vec{X: 0, Y: 0}, Radius: 10, Floating: true}
	b := Body{Position: r2.Vec{X: 12, Y: 0}, Radius: 10}

	prev := PenetrationDepth(a, b)
	for i := 0; i < 5; i++ {
		if !ResolvePair(&a, &b) {
			t.Fatalf("pass %d: expected correction", i)
		}
		depth := PenetrationDepth(a, b)
		if depth >= prev {
			t.Fatalf("pass %d: depth %v did not decrease from %v", i, depth, prev)
		}
		if math.Abs(depth-prev/2) > 1e-9 {
			t.Errorf("pass %d: depth = %v, want %v", i, depth, prev/2)
		}
		prev = depth
	}
}

func TestPenetrationDepth(t *testing.T) {
	a := Body{Position: r2.Vec{X: 0, Y: 0}, Radius: 10}
	b := Body{Position: r2.Vec{X: 15, Y: 0}, Radius: 10}
	if d := PenetrationDepth(a, b); math.Abs(d-5) > 1e-12 {
		t.Errorf("depth = %v, want 5", d)
	}
	b.Position.X = 30
	if d := PenetrationDepth(a, b); d != 0 {
		t.Errorf("depth = %v, want 0", d)
	}
}

func TestIntegrateUsesSubstepDT(t *testing.T) {
	s := NewStore()
	id, _ := s.Spawn(BodySpec{Position: r2.Vec{X: 1, Y: 2}, Velocity: r2.Vec{X: 10, Y: -20}, Radius: 1})
	snap := s.Snapshot()

	s.integrate(snap.Velocities, 0.01)

	b, _ := s.Get(id)
	if !vecNear(b.Position, r2.Vec{X: 1.1, Y: 1.8}, 1e-12) {
		t.Errorf("position = %v, want (1.1, 1.8)", b.Position)
	}
}

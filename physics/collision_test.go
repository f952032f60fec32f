package physics

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func snapshotOf(t *testing.T, specs ...BodySpec) (*Store, Snapshot) {
	t.Helper()
	s := NewStore()
	for _, spec := range specs {
		if _, err := s.Spawn(spec); err != nil {
			t.Fatalf("Spawn(%+v): %v", spec, err)
		}
	}
	return s, s.Snapshot()
}

func TestVelocityMargin(t *testing.T) {
	got := VelocityMargin(r2.Vec{X: 3, Y: 0}, r2.Vec{X: 0, Y: 4}, 0.5, 2)
	// 2 * 0.5 * sqrt(9 + 16) = 5
	if math.Abs(got-5) > 1e-12 {
		t.Errorf("VelocityMargin = %v, want 5", got)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		a, b        BodySpec
		dt, k       float64
		wantHit     bool
		wantOverlap bool
	}{
		{
			name:        "overlapping at rest",
			a:           BodySpec{Position: r2.Vec{X: 0, Y: 0}, Radius: 10},
			b:           BodySpec{Position: r2.Vec{X: 15, Y: 0}, Radius: 10},
			dt:          0.02,
			k:           2,
			wantHit:     true,
			wantOverlap: true,
		},
		{
			name:    "separated at rest",
			a:       BodySpec{Position: r2.Vec{X: 0, Y: 0}, Radius: 10},
			b:       BodySpec{Position: r2.Vec{X: 25, Y: 0}, Radius: 10},
			dt:      0.02,
			k:       2,
			wantHit: false,
		},
		{
			name:    "touching exactly is not a collision",
			a:       BodySpec{Position: r2.Vec{X: 0, Y: 0}, Radius: 10},
			b:       BodySpec{Position: r2.Vec{X: 20, Y: 0}, Radius: 10},
			dt:      0.02,
			k:       2,
			wantHit: false,
		},
		{
			// margin = 2 * 0.02 * 1000 = 40, combined = 4, distance 8
			name:        "fast body predicted within margin",
			a:           BodySpec{Position: r2.Vec{X: 0, Y: 0}, Velocity: r2.Vec{X: 1000, Y: 0}, Radius: 2},
			b:           BodySpec{Position: r2.Vec{X: 8, Y: 0}, Radius: 2},
			dt:          0.02,
			k:           2,
			wantHit:     true,
			wantOverlap: false,
		},
		{
			name:    "slow body outside margin",
			a:       BodySpec{Position: r2.Vec{X: 0, Y: 0}, Velocity: r2.Vec{X: 10, Y: 0}, Radius: 2},
			b:       BodySpec{Position: r2.Vec{X: 8, Y: 0}, Radius: 2},
			dt:      0.02,
			k:       2,
			wantHit: false,
		},
		{
			name:        "floating bodies are still detected",
			a:           BodySpec{Position: r2.Vec{X: 0, Y: 0}, Radius: 5, Floating: true},
			b:           BodySpec{Position: r2.Vec{X: 1, Y: 1}, Radius: 5, Floating: true},
			dt:          0.02,
			k:           2,
			wantHit:     true,
			wantOverlap: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, snap := snapshotOf(t, tc.a, tc.b)
			got := Detect(nil, &snap, tc.dt, tc.k)

			if !tc.wantHit {
				if len(got) != 0 {
					t.Fatalf("Detect = %+v, want no collisions", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("Detect returned %d collisions, want 1", len(got))
			}
			if got[0].Overlapping != tc.wantOverlap {
				t.Errorf("Overlapping = %v, want %v", got[0].Overlapping, tc.wantOverlap)
			}
		})
	}
}

func TestDetectFastBodyWouldTunnelWithoutMargin(t *testing.T) {
	a := BodySpec{Position: r2.Vec{X: 0, Y: 0}, Velocity: r2.Vec{X: 1000, Y: 0}, Radius: 2}
	b := BodySpec{Position: r2.Vec{X: 8, Y: 0}, Radius: 2}

	// Naive end-of-tick check: a ends at x=20, 12 units past b.
	end := r2.Add(a.Position, r2.Scale(0.02, a.Velocity))
	if d := r2.Norm(r2.Sub(b.Position, end)); d < a.Radius+b.Radius {
		t.Fatalf("test setup: end distance %v should exceed combined radius", d)
	}

	_, snap := snapshotOf(t, a, b)
	got := Detect(nil, &snap, 0.02, 2)
	if len(got) != 1 {
		t.Fatalf("expected margin to flag the pair, got %d collisions", len(got))
	}
}

func TestDetectPairsAreUniqueAndOrdered(t *testing.T) {
	// Everything overlaps everything.
	var specs []BodySpec
	for i := 0; i < 6; i++ {
		specs = append(specs, BodySpec{Position: r2.Vec{X: float64(i), Y: 0}, Radius: 10})
	}
	_, snap := snapshotOf(t, specs...)
	got := Detect(nil, &snap, 0.02, 2)

	if want := 6 * 5 / 2; len(got) != want {
		t.Fatalf("Detect returned %d pairs, want %d", len(got), want)
	}

	seen := make(map[[2]BodyID]bool)
	for _, c := range got {
		if c.A == c.B {
			t.Errorf("self collision %+v", c)
		}
		if c.A > c.B {
			t.Errorf("pair %+v not ordered", c)
		}
		key := [2]BodyID{c.A, c.B}
		if seen[key] {
			t.Errorf("duplicate pair %+v", c)
		}
		seen[key] = true
	}
}

func TestDetectOrdersPairAfterSwapRemove(t *testing.T) {
	s := NewStore()
	var ids []BodyID
	for i := 0; i < 3; i++ {
		id, _ := s.Spawn(BodySpec{Position: r2.Vec{X: float64(i), Y: 0}, Radius: 5})
		ids = append(ids, id)
	}
	// Removing the first body moves the highest ID to dense index 0.
	if err := s.Despawn(ids[0]); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	got := Detect(nil, &snap, 0.02, 2)
	if len(got) != 1 {
		t.Fatalf("got %d collisions, want 1", len(got))
	}
	if got[0].A != ids[1] || got[0].B != ids[2] {
		t.Errorf("pair = (%d,%d), want (%d,%d)", got[0].A, got[0].B, ids[1], ids[2])
	}
}

func TestDetectPanicsOnDuplicateID(t *testing.T) {
	snap := Snapshot{
		IDs:        []BodyID{7, 7},
		Positions:  []r2.Vec{{}, {}},
		Velocities: []r2.Vec{{}, {}},
		Radii:      []float64{1, 1},
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for self pair")
		}
	}()
	Detect(nil, &snap, 0.02, 2)
}

func TestDetectDoesNotMutateSnapshot(t *testing.T) {
	_, snap := snapshotOf(t,
		BodySpec{Position: r2.Vec{X: 0, Y: 0}, Radius: 10},
		BodySpec{Position: r2.Vec{X: 5, Y: 0}, Radius: 10},
	)
	before := append([]r2.Vec(nil), snap.Positions...)
	Detect(nil, &snap, 0.02, 2)
	for i := range before {
		if snap.Positions[i] != before[i] {
			t.Errorf("position %d changed: %v -> %v", i, before[i], snap.Positions[i])
		}
	}
}

func BenchmarkDetect(b *testing.B) {
	for _, n := range []int{16, 64, 256} {
		s := NewStore()
		for i := 0; i < n; i++ {
			s.Spawn(BodySpec{
				Position: r2.Vec{X: float64(i%16) * 7, Y: float64(i/16) * 7},
				Velocity: r2.Vec{X: 10, Y: -5},
				Radius:   4,
			})
		}
		snap := s.Snapshot()
		var dst []Collision
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				dst = Detect(dst[:0], &snap, 0.02, 2)
			}
		})
	}
}

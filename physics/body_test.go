package physics

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestStoreSpawnValidation(t *testing.T) {
	tests := []struct {
		name    string
		spec    BodySpec
		wantErr error
	}{
		{"zero radius ok", BodySpec{Radius: 0}, nil},
		{"negative radius", BodySpec{Radius: -1}, ErrInvalidRadius},
		{"nan radius", BodySpec{Radius: math.NaN()}, ErrInvalidRadius},
		{"inf radius", BodySpec{Radius: math.Inf(1)}, ErrInvalidRadius},
		{"nan position", BodySpec{Position: r2.Vec{X: math.NaN()}, Radius: 1}, ErrInvalidVector},
		{"inf velocity", BodySpec{Velocity: r2.Vec{Y: math.Inf(-1)}, Radius: 1}, ErrInvalidVector},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			_, err := s.Spawn(tc.spec)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Spawn err = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil && s.Len() != 0 {
				t.Errorf("rejected body was stored")
			}
		})
	}
}

func TestStoreIDsAreStableAndNeverReused(t *testing.T) {
	s := NewStore()
	a := mustSpawn(t, s, BodySpec{Position: r2.Vec{X: 1}, Radius: 1})
	b := mustSpawn(t, s, BodySpec{Position: r2.Vec{X: 2}, Radius: 1})
	c := mustSpawn(t, s, BodySpec{Position: r2.Vec{X: 3}, Radius: 1})

	if err := s.Despawn(a); err != nil {
		t.Fatal(err)
	}
	d := mustSpawn(t, s, BodySpec{Position: r2.Vec{X: 4}, Radius: 1})

	if d == a || d <= c {
		t.Errorf("new id %d reused or not increasing (a=%d c=%d)", d, a, c)
	}
	for id, wantX := range map[BodyID]float64{b: 2, c: 3, d: 4} {
		body, ok := s.Get(id)
		if !ok {
			t.Fatalf("body %d missing", id)
		}
		if body.Position.X != wantX {
			t.Errorf("body %d x = %v, want %v", id, body.Position.X, wantX)
		}
	}
	if s.Has(a) {
		t.Error("despawned body still present")
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestStoreUnknownBody(t *testing.T) {
	s := NewStore()
	if err := s.Despawn(42); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("Despawn = %v, want ErrUnknownBody", err)
	}
	if err := s.SetVelocity(42, r2.Vec{}); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("SetVelocity = %v, want ErrUnknownBody", err)
	}
	if err := s.SetPosition(42, r2.Vec{}); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("SetPosition = %v, want ErrUnknownBody", err)
	}
	if err := s.SetFloating(42, true); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("SetFloating = %v, want ErrUnknownBody", err)
	}
	if _, ok := s.Get(42); ok {
		t.Error("Get found unknown body")
	}
	if s.Changed(42) {
		t.Error("unknown body reported as changed")
	}
}

func TestStoreSetters(t *testing.T) {
	s := NewStore()
	id := mustSpawn(t, s, BodySpec{Radius: 2})

	if err := s.SetVelocity(id, r2.Vec{X: math.NaN()}); !errors.Is(err, ErrInvalidVector) {
		t.Errorf("SetVelocity(NaN) = %v, want ErrInvalidVector", err)
	}
	s.SetVelocity(id, r2.Vec{X: 3, Y: 4})
	s.SetPosition(id, r2.Vec{X: -1, Y: 1})
	s.SetFloating(id, true)

	b, _ := s.Get(id)
	if b.Velocity != (r2.Vec{X: 3, Y: 4}) || b.Position != (r2.Vec{X: -1, Y: 1}) || !b.Floating {
		t.Errorf("setters not applied: %+v", b)
	}
	if s.Changed(id) {
		t.Error("teleport should not mark the body changed")
	}
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	s := NewStore()
	id := mustSpawn(t, s, BodySpec{Position: r2.Vec{X: 1, Y: 1}, Radius: 2})
	snap := s.Snapshot()

	s.SetPosition(id, r2.Vec{X: 9, Y: 9})

	if snap.Positions[0] != (r2.Vec{X: 1, Y: 1}) {
		t.Errorf("snapshot aliased store: %v", snap.Positions[0])
	}
	if snap.IDs[0] != id || snap.Radii[0] != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
}

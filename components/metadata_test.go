package components

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/tickphys/physics"
)

func TestGetBodyValueCoversDescriptors(t *testing.T) {
	v := &BodyView{
		Body: physics.Body{
			ID:       3,
			Position: r2.Vec{X: 1, Y: -2},
			Velocity: r2.Vec{X: 3, Y: 4},
			Radius:   7,
		},
		Health: &Health{Value: 50, Max: 100, Alive: true},
	}

	want := map[string]float32{
		"id":     3,
		"radius": 7,
		"x":      1,
		"y":      -2,
		"speed":  5,
		"health": 0.5,
	}
	for _, fd := range BodyFieldDescriptors() {
		got := GetBodyValue(v, fd.ID)
		if w, ok := want[fd.ID]; ok && math.Abs(float64(got-w)) > 1e-5 {
			t.Errorf("%s = %v, want %v", fd.ID, got, w)
		}
	}

	// Heading falls back to velocity direction without a Wander component.
	if h := GetBodyValue(v, "heading"); math.Abs(float64(h)-math.Atan2(4, 3)) > 1e-5 {
		t.Errorf("heading = %v", h)
	}
}

func TestHealthFraction(t *testing.T) {
	tests := []struct {
		h    Health
		want float32
	}{
		{Health{Value: 25, Max: 100}, 0.25},
		{Health{Value: -5, Max: 100}, 0},
		{Health{Value: 150, Max: 100}, 1},
		{Health{Value: 10, Max: 0}, 0},
	}
	for _, tc := range tests {
		if got := tc.h.Fraction(); got != tc.want {
			t.Errorf("%+v.Fraction() = %v, want %v", tc.h, got, tc.want)
		}
	}
}

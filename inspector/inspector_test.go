package inspector

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/tickphys/components"
	"github.com/pthm-cable/tickphys/physics"
)

func titles(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Title
	}
	return out
}

func TestSectionsSolidBody(t *testing.T) {
	v := &components.BodyView{
		Body: physics.Body{
			ID:       4,
			Position: r2.Vec{X: 10, Y: 0},
			Velocity: r2.Vec{X: 3, Y: 4},
			Radius:   6,
		},
		Shape:  &components.Shape{Radius: 6, Kind: components.KindSolid},
		Health: &components.Health{Value: 25, Max: 100, Alive: true},
		Wander: &components.Wander{Heading: 0.5, Speed: 5},
	}

	got := titles(Sections(v))
	want := []string{"physics", "motion", "gameplay", "Shape", "Health", "Wander"}
	if len(got) != len(want) {
		t.Fatalf("sections = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("section %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSectionsFloatingBody(t *testing.T) {
	v := &components.BodyView{
		Body:  physics.Body{ID: 1, Radius: 9, Floating: true},
		Shape: &components.Shape{Radius: 9, Kind: components.KindFloating},
	}

	for _, s := range Sections(v) {
		if s.Title == "gameplay" || s.Title == "Health" {
			t.Errorf("floating body should have no %q section", s.Title)
		}
	}
}

func TestDescriptorFieldWidgets(t *testing.T) {
	tests := []struct {
		desc components.FieldDescriptor
		want Widget
		max  float32
	}{
		{components.FieldDescriptor{ID: "x", Format: "%.1f"}, WidgetLabel, 1},
		{components.FieldDescriptor{ID: "speed", IsBar: true, Max: 200}, WidgetBar, 200},
		{components.FieldDescriptor{ID: "heading", IsCentered: true}, WidgetAngle, 1},
	}
	for _, tc := range tests {
		f := descriptorField(tc.desc, 1)
		if f.Widget != tc.want {
			t.Errorf("%s: widget = %v, want %v", tc.desc.ID, f.Widget, tc.want)
		}
		if got := GetMax(f.Options); got != tc.max {
			t.Errorf("%s: max = %v, want %v", tc.desc.ID, got, tc.max)
		}
	}
}

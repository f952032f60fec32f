package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tickphys/components"
)

func TestSpatialGridNearest(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Transform](w)
	trMap := ecs.NewMap[components.Transform](w)

	positions := []components.Transform{{X: -50, Y: 0}, {X: 10, Y: 10}, {X: 400, Y: 400}}
	grid := NewSpatialGrid(-100, -100, 100, 100, 32)
	var entities []ecs.Entity
	for i := range positions {
		e := mapper.NewEntity(&positions[i])
		entities = append(entities, e)
		grid.Insert(e, positions[i].X, positions[i].Y)
	}

	e, ok := grid.Nearest(0, 0, 30, trMap)
	if !ok || e != entities[1] {
		t.Errorf("Nearest(0,0) = %v,%v, want entity 1", e, ok)
	}

	if _, ok := grid.Nearest(-100, 100, 20, trMap); ok {
		t.Error("expected no entity near the corner")
	}

	// Out-of-range positions land in border cells and are still found.
	if e, ok := grid.Nearest(400, 400, 5, trMap); !ok || e != entities[2] {
		t.Error("clamped entity not found")
	}

	grid.Clear()
	if got := grid.QueryRadiusInto(nil, 0, 0, 1000, trMap); len(got) != 0 {
		t.Errorf("after Clear got %d results", len(got))
	}
}

package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tickphys/components"
	"github.com/pthm-cable/tickphys/physics"
)

type contactFixture struct {
	world    *ecs.World
	entities map[physics.BodyID]ecs.Entity
	health   *ecs.Map[components.Health]
}

func newContactFixture(hp, perHit float32, ids ...physics.BodyID) *contactFixture {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Health, components.ContactDamage](w)
	f := &contactFixture{
		world:    w,
		entities: make(map[physics.BodyID]ecs.Entity),
		health:   ecs.NewMap[components.Health](w),
	}
	for _, id := range ids {
		f.entities[id] = mapper.NewEntity(
			&components.Health{Value: hp, Max: hp, Alive: true},
			&components.ContactDamage{PerHit: perHit},
		)
	}
	return f
}

func (f *contactFixture) lookup(id physics.BodyID) (ecs.Entity, bool) {
	e, ok := f.entities[id]
	return e, ok
}

func TestContactDamageIgnoresPredicted(t *testing.T) {
	f := newContactFixture(10, 3, 1, 2)
	sys := NewContactDamageSystem(f.world)

	killed, stats := sys.Update([]physics.Collision{{A: 1, B: 2, Overlapping: false}}, f.lookup)
	if len(killed) != 0 || stats.Hits != 0 {
		t.Errorf("predicted pair dealt damage: killed=%d stats=%+v", len(killed), stats)
	}
	if h := f.health.Get(f.entities[1]); h.Value != 10 {
		t.Errorf("health = %v, want 10", h.Value)
	}
}

func TestContactDamageAppliesBothWays(t *testing.T) {
	f := newContactFixture(10, 3, 1, 2)
	sys := NewContactDamageSystem(f.world)

	_, stats := sys.Update([]physics.Collision{{A: 1, B: 2, Overlapping: true}}, f.lookup)
	if stats.Hits != 1 {
		t.Errorf("hits = %d, want 1", stats.Hits)
	}
	for _, id := range []physics.BodyID{1, 2} {
		if h := f.health.Get(f.entities[id]); h.Value != 7 {
			t.Errorf("body %d health = %v, want 7", id, h.Value)
		}
	}
}

func TestContactDamageKillsAtZero(t *testing.T) {
	f := newContactFixture(5, 3, 1, 2, 3)
	sys := NewContactDamageSystem(f.world)

	// Body 2 overlaps both neighbours and takes two hits.
	collisions := []physics.Collision{
		{A: 1, B: 2, Overlapping: true},
		{A: 2, B: 3, Overlapping: true},
	}
	killed, stats := sys.Update(collisions, f.lookup)
	if stats.Killed != 1 || len(killed) != 1 {
		t.Fatalf("killed = %d, want 1", stats.Killed)
	}
	if killed[0] != f.entities[2] {
		t.Error("wrong entity killed")
	}
	h := f.health.Get(f.entities[2])
	if h.Alive || h.Value != 0 {
		t.Errorf("health = %+v, want dead at 0", *h)
	}

	// A dead entity neither takes nor deals damage.
	killed, stats = sys.Update(collisions[1:], f.lookup)
	if stats.Hits != 0 {
		t.Errorf("hits after death = %d, want 0", stats.Hits)
	}
	if len(killed) != 0 {
		t.Errorf("dead entity reported again")
	}
}

func TestContactDamageMutualLethalHit(t *testing.T) {
	for _, pair := range []physics.Collision{
		{A: 1, B: 2, Overlapping: true},
		{A: 2, B: 1, Overlapping: true},
	} {
		f := newContactFixture(3, 5, 1, 2)
		sys := NewContactDamageSystem(f.world)

		killed, stats := sys.Update([]physics.Collision{pair}, f.lookup)
		if stats.Killed != 2 || len(killed) != 2 {
			t.Errorf("pair %d-%d: killed = %d, want both", pair.A, pair.B, stats.Killed)
		}
		for _, id := range []physics.BodyID{1, 2} {
			if h := f.health.Get(f.entities[id]); h.Alive {
				t.Errorf("pair %d-%d: body %d survived", pair.A, pair.B, id)
			}
		}
	}
}

func TestContactDamageUnknownBody(t *testing.T) {
	f := newContactFixture(5, 3, 1)
	sys := NewContactDamageSystem(f.world)

	_, stats := sys.Update([]physics.Collision{{A: 1, B: 99, Overlapping: true}}, f.lookup)
	if stats.Hits != 0 {
		t.Errorf("hits = %d, want 0", stats.Hits)
	}
}

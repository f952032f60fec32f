package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tickphys/components"
	"github.com/pthm-cable/tickphys/physics"
)

// EntityLookup resolves a body handle to its entity.
type EntityLookup func(id physics.BodyID) (ecs.Entity, bool)

// ContactDamageSystem applies damage for truly overlapping pairs. Predicted
// near misses in the collision list are ignored.
type ContactDamageSystem struct {
	healthMap *ecs.Map[components.Health]
	damageMap *ecs.Map[components.ContactDamage]

	killed []ecs.Entity
}

// ContactStats summarizes one Update.
type ContactStats struct {
	Hits   int // overlapping pairs where at least one side took damage
	Killed int
}

// NewContactDamageSystem creates a new contact damage system.
func NewContactDamageSystem(w *ecs.World) *ContactDamageSystem {
	return &ContactDamageSystem{
		healthMap: ecs.NewMap[components.Health](w),
		damageMap: ecs.NewMap[components.ContactDamage](w),
	}
}

// Update processes the tick's collisions. Entities whose health drops to zero
// are marked dead and returned; the caller despawns them. The returned slice
// is reused on the next call.
func (s *ContactDamageSystem) Update(collisions []physics.Collision, lookup EntityLookup) ([]ecs.Entity, ContactStats) {
	s.killed = s.killed[:0]
	var stats ContactStats

	for _, c := range collisions {
		if !c.Overlapping {
			continue
		}
		ea, okA := lookup(c.A)
		eb, okB := lookup(c.B)
		if !okA || !okB {
			continue
		}

		// Both sides of a pair strike at once, so a mutual lethal hit kills both.
		ha, dmgB, okA := s.strike(ea, eb)
		hb, dmgA, okB := s.strike(eb, ea)
		if okA {
			s.apply(ea, ha, dmgB)
		}
		if okB {
			s.apply(eb, hb, dmgA)
		}
		if okA || okB {
			stats.Hits++
		}
	}

	stats.Killed = len(s.killed)
	return s.killed, stats
}

// strike reports whether attacker can damage target this pair, with the
// target's health and the damage. Attackers already dead deal nothing.
func (s *ContactDamageSystem) strike(target, attacker ecs.Entity) (*components.Health, float32, bool) {
	if !s.healthMap.Has(target) || !s.damageMap.Has(attacker) {
		return nil, 0, false
	}
	h := s.healthMap.Get(target)
	if !h.Alive {
		return nil, 0, false
	}
	if s.healthMap.Has(attacker) && !s.healthMap.Get(attacker).Alive {
		return nil, 0, false
	}
	dmg := s.damageMap.Get(attacker).PerHit
	if dmg <= 0 {
		return nil, 0, false
	}
	return h, dmg, true
}

func (s *ContactDamageSystem) apply(target ecs.Entity, h *components.Health, dmg float32) {
	h.Value -= dmg
	if h.Value <= 0 {
		h.Value = 0
		h.Alive = false
		s.killed = append(s.killed, target)
	}
}

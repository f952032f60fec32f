package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/tickphys/components"
	"github.com/pthm-cable/tickphys/physics"
)

// ErrNoBody is returned when an entity is dead or has no physics body.
var ErrNoBody = errors.New("entity has no live body")

// BodyParams describes a body to spawn.
type BodyParams struct {
	X, Y     float64
	Radius   float64
	Floating bool

	Heading float32 // radians
	Speed   float32 // units per second
	Health  float32 // ignored for floating bodies

	MaxHealth float32 // 0 = Health
}

// SpawnBody creates a physics body and its entity. Floating bodies get no
// Health: they deal contact damage but cannot be destroyed by it.
func (g *Game) SpawnBody(p BodyParams) (ecs.Entity, error) {
	vel := r2.Vec{
		X: float64(p.Speed) * math.Cos(float64(p.Heading)),
		Y: float64(p.Speed) * math.Sin(float64(p.Heading)),
	}
	id, err := g.engine.Store().Spawn(physics.BodySpec{
		Position: r2.Vec{X: p.X, Y: p.Y},
		Velocity: vel,
		Radius:   p.Radius,
		Floating: p.Floating,
	})
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("spawning body: %w", err)
	}

	cfg := g.cfg
	pb := components.PhysicsBody{ID: id}
	tr := components.Transform{X: float32(p.X), Y: float32(p.Y)}
	wander := components.Wander{
		Heading:  p.Heading,
		Speed:    p.Speed,
		TurnRate: float32(cfg.Movement.TurnRate),
	}
	var dmg components.ContactDamage
	if cfg.Contact.Enabled {
		dmg.PerHit = float32(cfg.Contact.DamagePerHit)
	}

	var e ecs.Entity
	if p.Floating {
		shape := components.Shape{Radius: float32(p.Radius), Kind: components.KindFloating}
		e = g.floatingMapper.NewEntity(&pb, &tr, &shape, &wander, &dmg)
	} else {
		shape := components.Shape{Radius: float32(p.Radius), Kind: components.KindSolid}
		maxHealth := p.MaxHealth
		if maxHealth <= 0 {
			maxHealth = p.Health
		}
		health := components.Health{Value: p.Health, Max: maxHealth, Alive: true}
		e = g.solidMapper.NewEntity(&pb, &tr, &shape, &wander, &health, &dmg)
	}
	g.entities[id] = e
	return e, nil
}

// DespawnEntity removes an entity and its physics body. Must not be called
// while a query is iterating.
func (g *Game) DespawnEntity(e ecs.Entity) error {
	if !g.world.Alive(e) || !g.pbMap.Has(e) {
		return fmt.Errorf("despawn: %w", ErrNoBody)
	}
	id := g.pbMap.Get(e).ID

	if err := g.engine.Store().Despawn(id); err != nil {
		return fmt.Errorf("despawn: %w", err)
	}
	delete(g.entities, id)
	g.world.RemoveEntity(e)

	if g.hasSelection && g.selected == e {
		g.hasSelection = false
	}
	return nil
}

// spawnScenario creates the initial population from the scenario config.
func (g *Game) spawnScenario() error {
	sc := g.cfg.Scenario
	mv := g.cfg.Movement

	for i := 0; i < sc.Bodies; i++ {
		p := BodyParams{
			X:        (g.rng.Float64()*2 - 1) * sc.SpawnExtent,
			Y:        (g.rng.Float64()*2 - 1) * sc.SpawnExtent,
			Radius:   sc.RadiusMin + g.rng.Float64()*(sc.RadiusMax-sc.RadiusMin),
			Floating: g.rng.Float64() < sc.FloatingFraction,
			Heading:  float32((g.rng.Float64()*2 - 1) * math.Pi),
			Speed:    float32(mv.SpeedMin + g.rng.Float64()*(mv.SpeedMax-mv.SpeedMin)),
			Health:   float32(sc.Health),
		}
		if g.boundsEnabled {
			p.X, p.Y = insideArena(p.X, p.Y, p.Radius, g.arena)
		}
		if _, err := g.SpawnBody(p); err != nil {
			return err
		}
	}
	return nil
}

// insideArena pulls a spawn point inside the arena.
func insideArena(x, y, r float64, b physics.MapBounds) (float64, float64) {
	x = math.Max(b.XMin+r, math.Min(x, b.XMax-r))
	y = math.Max(b.YMin+r, math.Min(y, b.YMax-r))
	return x, y
}

// cleanupDead despawns entities killed by contact damage this tick.
func (g *Game) cleanupDead(killed []ecs.Entity) int {
	n := 0
	for _, e := range killed {
		if err := g.DespawnEntity(e); err != nil {
			continue
		}
		n++
	}
	return n
}

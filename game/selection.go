package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tickphys/components"
)

// Pick returns the body whose circle contains the world point, preferring
// the one with the nearest center.
func (g *Game) Pick(wx, wy float32) (ecs.Entity, bool) {
	g.grid.Clear()
	query := g.bodyFilter.Query()
	for query.Next() {
		e := query.Entity()
		tr := g.trMap.Get(e)
		g.grid.Insert(e, tr.X, tr.Y)
	}

	reach := float32(g.cfg.Scenario.RadiusMax)
	var best ecs.Entity
	var bestDistSq float32
	found := false
	for _, n := range g.grid.QueryRadiusInto(nil, wx, wy, reach, g.trMap) {
		r := g.shapeMap.Get(n.E).Radius
		if n.DistSq > r*r {
			continue
		}
		if !found || n.DistSq < bestDistSq {
			best, bestDistSq, found = n.E, n.DistSq, true
		}
	}
	return best, found
}

// Select marks an entity as selected. Dead or body-less entities are ignored.
func (g *Game) Select(e ecs.Entity) bool {
	if !g.world.Alive(e) || !g.pbMap.Has(e) {
		return false
	}
	g.selected = e
	g.hasSelection = true
	return true
}

// ClearSelection drops the current selection.
func (g *Game) ClearSelection() { g.hasSelection = false }

// Selected returns the selected entity, if any.
func (g *Game) Selected() (ecs.Entity, bool) {
	if !g.hasSelection || !g.world.Alive(g.selected) {
		return ecs.Entity{}, false
	}
	return g.selected, true
}

// SelectedView gathers the inspector data for the selected entity.
func (g *Game) SelectedView() (components.BodyView, bool) {
	e, ok := g.Selected()
	if !ok {
		return components.BodyView{}, false
	}
	return g.ViewOf(e)
}

// ViewOf gathers the inspector data for an entity.
func (g *Game) ViewOf(e ecs.Entity) (components.BodyView, bool) {
	if !g.world.Alive(e) || !g.pbMap.Has(e) {
		return components.BodyView{}, false
	}
	body, ok := g.engine.Store().Get(g.pbMap.Get(e).ID)
	if !ok {
		return components.BodyView{}, false
	}
	v := components.BodyView{Body: body}
	if g.shapeMap.Has(e) {
		v.Shape = g.shapeMap.Get(e)
	}
	if g.healthMap.Has(e) {
		v.Health = g.healthMap.Get(e)
	}
	if g.wanderMap.Has(e) {
		v.Wander = g.wanderMap.Get(e)
	}
	return v, true
}

// EachBody calls fn for every body entity with its transform and shape.
func (g *Game) EachBody(fn func(e ecs.Entity, tr *components.Transform, shape *components.Shape)) {
	query := g.bodyFilter.Query()
	for query.Next() {
		e := query.Entity()
		_, shape := query.Get()
		fn(e, g.trMap.Get(e), shape)
	}
}

// Health returns an entity's health, or nil for floating bodies.
func (g *Game) Health(e ecs.Entity) *components.Health {
	if !g.healthMap.Has(e) {
		return nil
	}
	return g.healthMap.Get(e)
}

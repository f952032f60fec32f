package game

import (
	"fmt"

	"github.com/pthm-cable/tickphys/telemetry"
)

// UpdateHeadless runs StepsPerUpdate ticks with no wall-clock pacing.
func (g *Game) UpdateHeadless() error {
	for i := 0; i < g.stepsPerUpdate; i++ {
		if err := g.simulationStep(); err != nil {
			return err
		}
	}
	return nil
}

// Update advances the fixed-tick clock by frameDT seconds and runs the ticks
// that are due. While paused only a requested single step runs.
func (g *Game) Update(frameDT float64) error {
	if g.paused {
		g.clock.Reset()
		if g.stepRequested {
			g.stepRequested = false
			return g.simulationStep()
		}
		return nil
	}

	ticks := g.clock.Advance(frameDT) * g.stepsPerUpdate
	for i := 0; i < ticks; i++ {
		if err := g.simulationStep(); err != nil {
			return err
		}
	}
	return nil
}

// simulationStep runs one fixed tick: wander, physics, transform sync,
// contact damage, despawn, telemetry.
func (g *Game) simulationStep() error {
	perf := g.perfCollector
	dt := float32(g.engine.Settings().DT)

	perf.StartTick()

	perf.StartPhase(telemetry.PhaseWander)
	if err := g.wander.Update(g.engine.Store(), g.engine.Bounds(), dt); err != nil {
		return fmt.Errorf("tick %d: wander: %w", g.Tick()+1, err)
	}

	// Detect, integrate and confine report their own phases.
	res := g.engine.Step()

	perf.StartPhase(telemetry.PhaseSync)
	synced := g.sync.Update(g.engine.Store())

	perf.StartPhase(telemetry.PhaseContact)
	killed, contact := g.contact.Update(res.Collisions, g.EntityFor)

	// Telemetry reads the collision list; copy it before despawns.
	g.lastCollisions = append(g.lastCollisions[:0], res.Collisions...)

	perf.StartPhase(telemetry.PhaseCleanup)
	despawned := g.cleanupDead(killed)

	overlapping := 0
	for _, c := range res.Collisions {
		if c.Overlapping {
			overlapping++
		}
	}
	g.lastResult = TickStats{
		Tick:        g.Tick(),
		Collisions:  len(res.Collisions),
		Overlapping: overlapping,
		Corrections: res.Corrections,
		Moved:       len(res.Moved),
		Synced:      synced,
		ContactHits: contact.Hits,
		Despawned:   despawned,
	}

	perf.StartPhase(telemetry.PhaseTelemetry)
	g.recordTelemetry()

	perf.EndTick()
	return nil
}

package game

import (
	"log/slog"
	"slices"

	"github.com/pthm-cable/tickphys/physics"
	"github.com/pthm-cable/tickphys/telemetry"
)

// recordTelemetry feeds the collector and trajectory output, then flushes
// the stats window when due.
func (g *Game) recordTelemetry() {
	r := g.lastResult
	g.collector.RecordTick(telemetry.TickSummary{
		Collisions:  r.Collisions,
		Overlapping: r.Overlapping,
		Corrections: r.Corrections,
		Moved:       r.Moved,
		ContactHits: r.ContactHits,
		Despawned:   r.Despawned,
	})
	g.collector.RecordPenetrations(g.engine, g.lastCollisions)

	if g.outputManager.TrajectoryEnabled() {
		g.trajectoryRows = g.trajectoryRows[:0]
		for _, p := range g.Positions() {
			g.trajectoryRows = append(g.trajectoryRows, telemetry.TrajectoryRow{
				Tick: r.Tick, Body: uint32(p.ID), X: p.X, Y: p.Y,
			})
		}
		if err := g.outputManager.WriteTrajectory(g.trajectoryRows); err != nil {
			slog.Error("failed to write trajectory", "error", err)
		}
	}

	g.flushTelemetry()
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	tick := g.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	floating := 0
	g.engine.Store().Each(func(b physics.Body) {
		if b.Floating {
			floating++
		}
	})

	stats := g.collector.Flush(tick, g.BodyCount(), floating)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// BodyPosition is a body's position at the end of the last tick.
type BodyPosition struct {
	ID   physics.BodyID
	X, Y float64
}

// Positions returns every body position ordered by body ID.
func (g *Game) Positions() []BodyPosition {
	out := make([]BodyPosition, 0, g.BodyCount())
	g.engine.Store().Each(func(b physics.Body) {
		out = append(out, BodyPosition{ID: b.ID, X: b.Position.X, Y: b.Position.Y})
	})
	slices.SortFunc(out, func(a, b BodyPosition) int {
		return int(a.ID) - int(b.ID)
	})
	return out
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(g.CreateSnapshot(bookmark), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.Tick())
}

// CreateSnapshot builds a snapshot from the current state. Bodies are listed
// in ID order.
func (g *Game) CreateSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	settings := g.engine.Settings()
	snapshot := &telemetry.Snapshot{
		Version:      telemetry.SnapshotVersion,
		RNGSeed:      g.seed,
		Tick:         g.Tick(),
		DT:           settings.DT,
		Substeps:     settings.Substeps,
		SafetyMargin: settings.SafetyMargin,
		Bookmark:     bookmark,
	}
	if b := g.engine.Bounds(); b != nil {
		bounds := *b
		snapshot.Bounds = &bounds
	}

	g.engine.Store().Each(func(b physics.Body) {
		state := telemetry.BodyState{
			ID:       b.ID,
			X:        b.Position.X,
			Y:        b.Position.Y,
			VelX:     b.Velocity.X,
			VelY:     b.Velocity.Y,
			Radius:   b.Radius,
			Floating: b.Floating,
		}
		if e, ok := g.entities[b.ID]; ok {
			if g.healthMap.Has(e) {
				h := g.healthMap.Get(e)
				state.Health = h.Value
				state.HealthMax = h.Max
			}
			if g.wanderMap.Has(e) {
				w := g.wanderMap.Get(e)
				state.Heading = w.Heading
				state.Speed = w.Speed
			}
		}
		snapshot.Bodies = append(snapshot.Bodies, state)
	})
	slices.SortFunc(snapshot.Bodies, func(a, b telemetry.BodyState) int {
		return int(a.ID) - int(b.ID)
	})
	return snapshot
}

// restore spawns the bodies of a snapshot. Velocities are rebuilt from the
// stored heading and speed on the first tick.
func (g *Game) restore(s *telemetry.Snapshot) error {
	if s.Bounds != nil {
		g.arena = *s.Bounds
		if err := g.SetBoundsEnabled(true); err != nil {
			return err
		}
	}
	for _, b := range s.Bodies {
		_, err := g.SpawnBody(BodyParams{
			X:         b.X,
			Y:         b.Y,
			Radius:    b.Radius,
			Floating:  b.Floating,
			Heading:   b.Heading,
			Speed:     b.Speed,
			Health:    b.Health,
			MaxHealth: b.HealthMax,
		})
		if err != nil {
			return err
		}
	}
	g.baseTick = s.Tick
	g.collector.StartAt(s.Tick)
	return nil
}

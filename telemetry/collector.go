// Package telemetry provides windowed collision statistics, tick timing,
// bookmarks, snapshots and CSV output.
package telemetry

import "github.com/pthm-cable/tickphys/physics"

// TickSummary is what the game reports to the collector after each tick.
type TickSummary struct {
	Collisions  int
	Overlapping int
	Corrections int
	Moved       int
	ContactHits int
	Despawned   int
}

// Collector accumulates per-tick counts within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks uint64
	dt                  float64

	// Current window tracking
	windowStartTick uint64

	// Counters for current window
	sum          TickSummary
	penetrations []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := uint64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordTick adds one tick's counts to the current window.
func (c *Collector) RecordTick(s TickSummary) {
	c.sum.Collisions += s.Collisions
	c.sum.Overlapping += s.Overlapping
	c.sum.Corrections += s.Corrections
	c.sum.Moved += s.Moved
	c.sum.ContactHits += s.ContactHits
	c.sum.Despawned += s.Despawned
}

// RecordPenetrations samples the residual depth of every listed pair. Pairs
// that ended the tick separated are skipped.
func (c *Collector) RecordPenetrations(engine *physics.Engine, collisions []physics.Collision) {
	for _, col := range collisions {
		if d := engine.Penetration(col); d > 0 {
			c.penetrations = append(c.penetrations, d)
		}
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// bodies and floating are population counts at the current tick.
func (c *Collector) Flush(currentTick uint64, bodies, floating int) WindowStats {
	var overlapRate float64
	if c.sum.Collisions > 0 {
		overlapRate = float64(c.sum.Overlapping) / float64(c.sum.Collisions)
	}

	mean, p50, p90, max := ComputePenetrationStats(c.penetrations)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Bodies:   bodies,
		Floating: floating,

		Collisions:  c.sum.Collisions,
		Overlapping: c.sum.Overlapping,
		Predicted:   c.sum.Collisions - c.sum.Overlapping,
		Corrections: c.sum.Corrections,
		Moved:       c.sum.Moved,

		ContactHits: c.sum.ContactHits,
		Despawned:   c.sum.Despawned,

		PenetrationMean: mean,
		PenetrationP50:  p50,
		PenetrationP90:  p90,
		PenetrationMax:  max,

		OverlapRate: overlapRate,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.sum = TickSummary{}
	c.penetrations = c.penetrations[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() uint64 {
	return c.windowDurationTicks
}

// StartAt begins the current window at tick, for runs restored mid-way.
func (c *Collector) StartAt(tick uint64) {
	c.windowStartTick = tick
}

package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Bodies   int `csv:"bodies"`
	Floating int `csv:"floating"`

	// Collision list totals over the window
	Collisions  int `csv:"collisions"`
	Overlapping int `csv:"overlapping"`
	Predicted   int `csv:"predicted"` // listed by the velocity margin only
	Corrections int `csv:"corrections"`
	Moved       int `csv:"moved"`

	// Gameplay
	ContactHits int `csv:"contact_hits"`
	Despawned   int `csv:"despawned"`

	// Residual overlap of listed pairs after each tick
	PenetrationMean float64 `csv:"penetration_mean"`
	PenetrationP50  float64 `csv:"penetration_p50"`
	PenetrationP90  float64 `csv:"penetration_p90"`
	PenetrationMax  float64 `csv:"penetration_max"`

	OverlapRate float64 `csv:"overlap_rate"` // Overlapping / Collisions
}

// ComputePenetrationStats calculates mean, median, p90 and max of the
// residual penetration depths. values is sorted in place.
func ComputePenetrationStats(values []float64) (mean, p50, p90, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sort.Float64s(values)

	mean = stat.Mean(values, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, values, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, values, nil)
	max = floats.Max(values)
	return mean, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("floating", s.Floating),
		slog.Int("collisions", s.Collisions),
		slog.Int("overlapping", s.Overlapping),
		slog.Int("predicted", s.Predicted),
		slog.Int("corrections", s.Corrections),
		slog.Int("moved", s.Moved),
		slog.Int("contact_hits", s.ContactHits),
		slog.Int("despawned", s.Despawned),
		slog.Float64("penetration_mean", s.PenetrationMean),
		slog.Float64("penetration_p50", s.PenetrationP50),
		slog.Float64("penetration_p90", s.PenetrationP90),
		slog.Float64("penetration_max", s.PenetrationMax),
		slog.Float64("overlap_rate", s.OverlapRate),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}

package main

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/tickphys/config"
	"github.com/pthm-cable/tickphys/game"
	"github.com/pthm-cable/tickphys/telemetry"
)

// Fitness weights. Penetration is in world units, cost terms are per tick.
const (
	weightPenetration = 1.0
	weightPeak        = 0.25
	costPerSubstep    = 0.02
	costPerPair       = 0.001

	warmupWindows = 1 // skip the first window while the scenario settles

	// invalidFitness is returned when a parameter vector cannot run.
	invalidFitness = 1e9
)

// FitnessEvaluator runs headless simulations and scores them.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    uint64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu         sync.Mutex
	bestScore  Score
	lastScore  Score
	haveBest   bool
	evaluation int
}

// Score breaks a fitness value into its parts.
type Score struct {
	Fitness         float64 `csv:"fitness"`
	PenetrationMean float64 `csv:"penetration_mean"`
	PenetrationPeak float64 `csv:"penetration_peak"`
	PairsPerTick    float64 `csv:"pairs_per_tick"`
	Substeps        int     `csv:"substeps"`
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks uint64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 2.0,
		bestScore:   Score{Fitness: math.Inf(1)},
	}
}

// Best returns the best score seen so far.
func (fe *FitnessEvaluator) Best() Score {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestScore
}

// Last returns the score of the most recent evaluation.
func (fe *FitnessEvaluator) Last() Score {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// seedResult holds the windows collected from one seed.
type seedResult struct {
	windows []telemetry.WindowStats
	err     error
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg, err := fe.configFor(x)
	if err != nil {
		fe.record(Score{Fitness: invalidFitness})
		return invalidFitness
	}

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var windows []telemetry.WindowStats
	for _, r := range results {
		if r.err != nil {
			fe.record(Score{Fitness: invalidFitness})
			return invalidFitness
		}
		if len(r.windows) > warmupWindows {
			windows = append(windows, r.windows[warmupWindows:]...)
		}
	}

	score := computeScore(windows, cfg.Physics.Substeps)
	fe.record(score)
	return score.Fitness
}

func (fe *FitnessEvaluator) record(s Score) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.evaluation++
	fe.lastScore = s
	if !fe.haveBest || s.Fitness < fe.bestScore.Fitness {
		fe.bestScore = s
		fe.haveBest = true
	}
}

// configFor copies the base config and applies x.
func (fe *FitnessEvaluator) configFor(x []float64) (*config.Config, error) {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("applying parameters: %w", err)
	}
	return &cfg, nil
}

// runSimulation executes a single headless run to maxTicks. The config is
// shared read-only between seeds.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) seedResult {
	var res seedResult

	g, err := game.NewGame(game.Options{
		Config:         cfg,
		Seed:           seed,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		StatsCallback: func(w telemetry.WindowStats) {
			res.windows = append(res.windows, w)
		},
	})
	if err != nil {
		res.err = err
		return res
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		if err := g.UpdateHeadless(); err != nil {
			res.err = err
			return res
		}
	}
	return res
}

// computeScore combines residual penetration with the per-tick cost of the
// substep count and the number of listed pairs. Warmup windows must already
// be dropped.
func computeScore(windows []telemetry.WindowStats, substeps int) Score {
	s := Score{Substeps: substeps}
	var ticks uint64
	for _, w := range windows {
		ticks += w.WindowEndTick - w.WindowStartTick
	}
	if ticks == 0 {
		s.Fitness = invalidFitness
		return s
	}

	means := make([]float64, len(windows))
	peaks := make([]float64, len(windows))
	weights := make([]float64, len(windows))
	pairs := 0
	for i, w := range windows {
		means[i] = w.PenetrationMean
		peaks[i] = w.PenetrationMax
		weights[i] = float64(w.Collisions)
		pairs += w.Collisions
	}

	if pairs > 0 {
		s.PenetrationMean = stat.Mean(means, weights)
	}
	s.PenetrationPeak = stat.Mean(peaks, nil)
	s.PairsPerTick = float64(pairs) / float64(ticks)

	s.Fitness = weightPenetration*s.PenetrationMean +
		weightPeak*s.PenetrationPeak +
		costPerSubstep*float64(substeps) +
		costPerPair*s.PairsPerTick
	return s
}

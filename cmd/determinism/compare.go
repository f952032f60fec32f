package main

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/pthm-cable/tickphys/config"
	"github.com/pthm-cable/tickphys/game"
	"github.com/pthm-cable/tickphys/telemetry"
)

// Divergence is one mismatch between two trajectories.
type Divergence struct {
	Run    int     `csv:"run"` // -1 = recorded trajectory
	Tick   uint64  `csv:"tick"`
	Body   uint32  `csv:"body"`
	AX     float64 `csv:"a_x"`
	AY     float64 `csv:"a_y"`
	BX     float64 `csv:"b_x"`
	BY     float64 `csv:"b_y"`
	Reason string  `csv:"reason"`
}

// Run steps a headless game for ticks ticks and returns every body position
// at the end of every tick, ordered by tick then body.
func Run(cfg *config.Config, seed int64, ticks uint64) ([]telemetry.TrajectoryRow, error) {
	g, err := game.NewGame(game.Options{Config: cfg, Seed: seed, StepsPerUpdate: 1})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	var rows []telemetry.TrajectoryRow
	for g.Tick() < ticks {
		if err := g.UpdateHeadless(); err != nil {
			return nil, err
		}
		tick := g.Tick()
		for _, p := range g.Positions() {
			rows = append(rows, telemetry.TrajectoryRow{Tick: tick, Body: uint32(p.ID), X: p.X, Y: p.Y})
		}
	}
	return rows, nil
}

// RunMany performs n independent runs concurrently.
func RunMany(cfg *config.Config, seed int64, ticks uint64, n int) ([][]telemetry.TrajectoryRow, error) {
	out := make([][]telemetry.TrajectoryRow, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			out[idx], errs[idx] = Run(cfg, seed, ticks)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
	}
	return out, nil
}

// Truncate returns the rows with Tick <= last.
func Truncate(rows []telemetry.TrajectoryRow, last uint64) []telemetry.TrajectoryRow {
	n := sort.Search(len(rows), func(i int) bool { return rows[i].Tick > last })
	return rows[:n]
}

func rowLess(a, b telemetry.TrajectoryRow) bool {
	if a.Tick != b.Tick {
		return a.Tick < b.Tick
	}
	return a.Body < b.Body
}

// Compare walks a and b in (tick, body) order and reports positions that
// differ by more than tol, and bodies present in only one of them. At most
// limit divergences are returned (0 = unlimited).
func Compare(a, b []telemetry.TrajectoryRow, tol float64, limit int) []Divergence {
	a = sortedCopy(a)
	b = sortedCopy(b)

	var out []Divergence
	full := func() bool { return limit > 0 && len(out) >= limit }

	i, j := 0, 0
	for (i < len(a) || j < len(b)) && !full() {
		switch {
		case j >= len(b) || (i < len(a) && rowLess(a[i], b[j])):
			out = append(out, Divergence{Tick: a[i].Tick, Body: a[i].Body, AX: a[i].X, AY: a[i].Y, Reason: "missing in b"})
			i++
		case i >= len(a) || rowLess(b[j], a[i]):
			out = append(out, Divergence{Tick: b[j].Tick, Body: b[j].Body, BX: b[j].X, BY: b[j].Y, Reason: "missing in a"})
			j++
		default:
			ra, rb := a[i], b[j]
			if !samePosition(ra, rb, tol) {
				out = append(out, Divergence{
					Tick: ra.Tick, Body: ra.Body,
					AX: ra.X, AY: ra.Y, BX: rb.X, BY: rb.Y,
					Reason: "position",
				})
			}
			i++
			j++
		}
	}
	return out
}

func samePosition(a, b telemetry.TrajectoryRow, tol float64) bool {
	if tol == 0 {
		return math.Float64bits(a.X) == math.Float64bits(b.X) &&
			math.Float64bits(a.Y) == math.Float64bits(b.Y)
	}
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func sortedCopy(rows []telemetry.TrajectoryRow) []telemetry.TrajectoryRow {
	out := make([]telemetry.TrajectoryRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return rowLess(out[i], out[j]) })
	return out
}

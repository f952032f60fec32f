// Package main checks that a seeded run reproduces itself: it runs the same
// config and seed more than once, or against a recorded trajectory.csv, and
// reports the first ticks where body positions differ.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/tickphys/config"
	"github.com/pthm-cable/tickphys/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	seed := flag.Int64("seed", 42, "RNG seed")
	ticks := flag.Uint64("ticks", 2000, "Ticks per run")
	runs := flag.Int("runs", 2, "Number of fresh runs to compare")
	against := flag.String("against", "", "Recorded trajectory.csv to compare the first run with")
	tolerance := flag.Float64("tolerance", 0, "Allowed position difference (0 = bit-exact)")
	reportPath := flag.String("report", "", "Write divergences to this CSV file")
	maxReport := flag.Int("max-report", 100, "Maximum divergences to keep")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *runs < 1 {
		*runs = 1
	}
	trajectories, err := RunMany(cfg, *seed, *ticks, *runs)
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
	base := trajectories[0]
	slog.Info("runs complete", "runs", *runs, "ticks", *ticks, "rows", len(base))

	var divergences []Divergence
	for i := 1; i < len(trajectories); i++ {
		d := Compare(base, trajectories[i], *tolerance, *maxReport)
		for j := range d {
			d[j].Run = i
		}
		divergences = append(divergences, d...)
	}

	if *against != "" {
		recorded, err := readTrajectory(*against)
		if err != nil {
			slog.Error("failed to read recorded trajectory", "path", *against, "error", err)
			os.Exit(1)
		}
		// A recording may cover fewer ticks than this run.
		d := Compare(recorded, Truncate(base, lastTick(recorded)), *tolerance, *maxReport)
		for j := range d {
			d[j].Run = -1
		}
		divergences = append(divergences, d...)
	}

	if *reportPath != "" {
		if err := writeReport(*reportPath, divergences); err != nil {
			slog.Error("failed to write report", "path", *reportPath, "error", err)
			os.Exit(1)
		}
	}

	if len(divergences) > 0 {
		first := divergences[0]
		slog.Error("runs diverged",
			"divergences", len(divergences),
			"first_tick", first.Tick,
			"first_body", first.Body,
			"reason", first.Reason,
		)
		os.Exit(1)
	}
	slog.Info("runs identical")
}

func readTrajectory(path string) ([]telemetry.TrajectoryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []telemetry.TrajectoryRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func writeReport(path string, divergences []Divergence) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&divergences, f)
}

// lastTick returns the highest tick in rows, or 0 if empty.
func lastTick(rows []telemetry.TrajectoryRow) uint64 {
	var last uint64
	for _, r := range rows {
		last = max(last, r.Tick)
	}
	return last
}

package main

import (
	"testing"

	"github.com/pthm-cable/tickphys/config"
	"github.com/pthm-cable/tickphys/telemetry"
)

func rows(vals ...float64) []telemetry.TrajectoryRow {
	var out []telemetry.TrajectoryRow
	for i := 0; i+1 < len(vals); i += 2 {
		out = append(out, telemetry.TrajectoryRow{Tick: 1, Body: uint32(i/2 + 1), X: vals[i], Y: vals[i+1]})
	}
	return out
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []telemetry.TrajectoryRow
		tol     float64
		want    int
		reasons []string
	}{
		{"identical", rows(1, 2, 3, 4), rows(1, 2, 3, 4), 0, 0, nil},
		{"moved", rows(1, 2, 3, 4), rows(1, 2, 3, 4.5), 0, 1, []string{"position"}},
		{"within tolerance", rows(1, 2), rows(1.0001, 2), 0.001, 0, nil},
		{"missing in b", rows(1, 2, 3, 4), rows(1, 2), 0, 1, []string{"missing in b"}},
		{"missing in a", rows(1, 2), rows(1, 2, 3, 4), 0, 1, []string{"missing in a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.a, tt.b, tt.tol, 0)
			if len(got) != tt.want {
				t.Fatalf("got %d divergences, want %d: %+v", len(got), tt.want, got)
			}
			for i, r := range tt.reasons {
				if got[i].Reason != r {
					t.Errorf("divergence %d reason = %q, want %q", i, got[i].Reason, r)
				}
			}
		})
	}
}

func TestCompareLimit(t *testing.T) {
	a := rows(0, 0, 0, 0, 0, 0)
	b := rows(1, 1, 1, 1, 1, 1)
	if got := Compare(a, b, 0, 2); len(got) != 2 {
		t.Errorf("got %d divergences, want 2", len(got))
	}
}

func TestTruncate(t *testing.T) {
	in := []telemetry.TrajectoryRow{{Tick: 1}, {Tick: 2}, {Tick: 2}, {Tick: 3}}
	if got := Truncate(in, 2); len(got) != 3 {
		t.Errorf("Truncate kept %d rows, want 3", len(got))
	}
	if got := Truncate(in, 0); len(got) != 0 {
		t.Errorf("Truncate kept %d rows, want 0", len(got))
	}
}

func TestRunManyIsDeterministic(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Scenario.Bodies = 25

	runs, err := RunMany(cfg, 7, 150, 3)
	if err != nil {
		t.Fatalf("RunMany: %v", err)
	}
	if len(runs[0]) == 0 {
		t.Fatal("no trajectory rows")
	}
	for i := 1; i < len(runs); i++ {
		if d := Compare(runs[0], runs[i], 0, 10); len(d) > 0 {
			t.Errorf("run %d diverged: %+v", i, d[0])
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Scenario.Bodies = 10

	a, err := Run(cfg, 1, 20)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := Run(cfg, 2, 20)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(Compare(a, b, 0, 1)) == 0 {
		t.Error("expected different seeds to produce different trajectories")
	}
}

package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/tickphys/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("", true)
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// All writers are nil-safe.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteTrajectory([]TrajectoryRow{{Tick: 1}}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, true)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: uint64(i * 100), Bodies: 10 + i, Collisions: i}); err != nil {
			t.Fatal(err)
		}
	}
	rows := []TrajectoryRow{{Tick: 1, Body: 1, X: 0.5, Y: -2}, {Tick: 1, Body: 2, X: 3, Y: 4}}
	if err := om.WriteTrajectory(rows); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Defaults()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	// Header is written once; records read back in order.
	var stats []WindowStats
	readCSV(t, filepath.Join(dir, "telemetry.csv"), &stats)
	if len(stats) != 3 {
		t.Fatalf("telemetry rows = %d, want 3", len(stats))
	}
	if stats[2].WindowEndTick != 300 || stats[2].Bodies != 13 || stats[2].Collisions != 3 {
		t.Errorf("last row = %+v", stats[2])
	}

	var traj []TrajectoryRow
	readCSV(t, filepath.Join(dir, "trajectory.csv"), &traj)
	if len(traj) != 2 || traj[0] != rows[0] || traj[1] != rows[1] {
		t.Errorf("trajectory = %+v", traj)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot does not load: %v", err)
	}
}

func TestOutputManagerTrajectoryOptional(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	if om.TrajectoryEnabled() {
		t.Error("trajectory should be disabled")
	}
	if _, err := os.Stat(filepath.Join(dir, "trajectory.csv")); !os.IsNotExist(err) {
		t.Error("trajectory.csv should not be created")
	}
}

func readCSV(t *testing.T, path string, out any) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, out); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
}

package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/tickphys/physics"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 2

// Snapshot holds the complete simulation state for replay.
type Snapshot struct {
	Version int    `json:"version"`
	RNGSeed int64  `json:"rng_seed"`
	Tick    uint64 `json:"tick"`

	DT           float64            `json:"dt"`
	Substeps     int                `json:"substeps"`
	SafetyMargin float64            `json:"safety_margin"`
	Bounds       *physics.MapBounds `json:"bounds,omitempty"`

	Bodies []BodyState `json:"bodies"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// BodyState holds one body's complete state. Body IDs are not preserved
// across a restore; bodies are respawned in ID order.
type BodyState struct {
	ID       physics.BodyID `json:"id"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	VelX     float64        `json:"vel_x"`
	VelY     float64        `json:"vel_y"`
	Radius   float64        `json:"radius"`
	Floating bool           `json:"floating"`

	// Gameplay state
	Health    float32 `json:"health"`
	HealthMax float32 `json:"health_max"`
	Heading   float32 `json:"heading"`
	Speed     float32 `json:"speed"`
}

// Settings returns the physics settings recorded in the snapshot.
func (s *Snapshot) Settings() physics.Settings {
	return physics.Settings{DT: s.DT, Substeps: s.Substeps, SafetyMargin: s.SafetyMargin}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	if err := snapshot.Settings().Validate(); err != nil {
		return nil, fmt.Errorf("snapshot settings: %w", err)
	}
	return &snapshot, nil
}

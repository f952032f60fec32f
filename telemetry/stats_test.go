package telemetry

import (
	"math"
	"testing"
)

func TestComputePenetrationStats(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	mean, p50, p90, max := ComputePenetrationStats(values)

	tests := []struct {
		name      string
		got, want float64
	}{
		{"mean", mean, 5.5},
		{"p50", p50, 5},
		{"p90", p90, 9},
		{"max", max, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-9 {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestComputePenetrationStatsEmpty(t *testing.T) {
	mean, p50, p90, max := ComputePenetrationStats(nil)
	if mean != 0 || p50 != 0 || p90 != 0 || max != 0 {
		t.Error("empty input should return all zeros")
	}
}

func TestComputePenetrationStatsSingle(t *testing.T) {
	mean, p50, p90, max := ComputePenetrationStats([]float64{0.25})
	if mean != 0.25 || p50 != 0.25 || p90 != 0.25 || max != 0.25 {
		t.Errorf("got %v %v %v %v, want all 0.25", mean, p50, p90, max)
	}
}

package systems

import "math"

// clampCell clamps a fractional cell coordinate to [0, n-1].
func clampCell(v float32, n int) int {
	return int(max(0, min(v, float32(n-1))))
}

// wrapAngle maps an angle in radians to [-Pi, Pi].
func wrapAngle(a float32) float32 {
	return float32(math.Remainder(float64(a), 2*math.Pi))
}

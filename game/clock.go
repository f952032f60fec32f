package game

import "math"

// Clock turns variable frame times into a whole number of fixed ticks.
type Clock struct {
	dt       float64
	maxTicks int
	acc      float64
}

// NewClock creates a clock for the given tick length. maxTicks caps the
// ticks returned per frame; time beyond the cap is dropped.
func NewClock(dt float64, maxTicks int) *Clock {
	if maxTicks < 1 {
		maxTicks = 1
	}
	return &Clock{dt: dt, maxTicks: maxTicks}
}

// Advance adds frameDT seconds and returns how many ticks are due.
func (c *Clock) Advance(frameDT float64) int {
	if frameDT <= 0 || math.IsNaN(frameDT) {
		return 0
	}
	c.acc += frameDT

	n := int(c.acc / c.dt)
	if n > c.maxTicks {
		// Spiral of death: keep only the partial tick.
		c.acc = math.Mod(c.acc, c.dt)
		return c.maxTicks
	}
	c.acc -= float64(n) * c.dt
	return n
}

// Alpha returns the fraction of a tick currently accumulated, in [0, 1).
func (c *Clock) Alpha() float64 {
	return c.acc / c.dt
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.acc = 0
}

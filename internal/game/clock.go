package game

import "time"

// Clock paces battle frames against wall-clock time and tracks how much
// work has been done. The machine itself is free-running; the clock only
// tells the battle loop how long to sleep before the next frame.
type Clock struct {
	frameDelay time.Duration
	lastFrame  time.Time
	frames     uint64
	ticks      uint64
}

// NewClock creates a clock that spaces frames frameDelay apart. A zero
// delay disables pacing.
func NewClock(frameDelay time.Duration) *Clock {
	return &Clock{
		frameDelay: frameDelay,
		lastFrame:  time.Now(),
	}
}

// AddTicks records executed scheduler ticks.
func (c *Clock) AddTicks(n int) {
	if n > 0 {
		c.ticks += uint64(n)
	}
}

// ShouldWait returns how long to sleep to keep the frame cadence, and
// marks the start of the next frame.
func (c *Clock) ShouldWait() time.Duration {
	c.frames++
	if c.frameDelay == 0 {
		return 0
	}

	now := time.Now()
	elapsed := now.Sub(c.lastFrame)
	if elapsed >= c.frameDelay {
		c.lastFrame = now
		return 0
	}
	wait := c.frameDelay - elapsed
	c.lastFrame = now.Add(wait)
	return wait
}

// Stats returns how many frames and ticks have been played.
func (c *Clock) Stats() (frames, ticks uint64) {
	return c.frames, c.ticks
}

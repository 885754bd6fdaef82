package engine

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Frame clock defaults for interactive viewers.
const (
	DefaultViewerTimeScale = 4.0
	DefaultMaxFrame        = 0.25 // seconds; longer stalls are truncated
	pauseRamp              = 0.5  // seconds to ease in or out of a pause
)

// Clock converts wall-clock frame times into simulation dt for viewers that
// own their own frame loop. Pausing eases the speed down to zero instead of
// stopping dead.
type Clock struct {
	TimeScale float64 // Multiplier on elapsed wall time
	MaxFrame  float64 // Cap on a single frame's elapsed time (0 = uncapped)

	speed  float32
	paused bool
	ramp   *gween.Tween
}

// NewClock creates a running clock.
func NewClock(timeScale float64) *Clock {
	return &Clock{
		TimeScale: timeScale,
		MaxFrame:  DefaultMaxFrame,
		speed:     1,
	}
}

// Advance consumes elapsed wall seconds and returns the dt to simulate.
// Long stalls are truncated to MaxFrame so the scene does not jump ahead.
func (c *Clock) Advance(elapsed float64) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	if c.MaxFrame > 0 && elapsed > c.MaxFrame {
		elapsed = c.MaxFrame
	}
	if c.ramp != nil {
		speed, done := c.ramp.Update(float32(elapsed))
		c.speed = speed
		if done {
			c.ramp = nil
		}
	}
	return elapsed * c.TimeScale * float64(c.speed)
}

// TogglePause starts easing toward a stop, or back to full speed.
func (c *Clock) TogglePause() {
	c.paused = !c.paused
	target := float32(1)
	fn := ease.InQuad
	if c.paused {
		target = 0
		fn = ease.OutQuad
	}
	c.ramp = gween.New(c.speed, target, pauseRamp, fn)
}

// Paused reports whether the clock is paused or pausing.
func (c *Clock) Paused() bool {
	return c.paused
}

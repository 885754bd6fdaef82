// Package engine provides the scene simulation and the tick loop that drives
// it when no window owns the frame clock.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultReportEvery is the number of ticks between OnReport calls.
const DefaultReportEvery = 500

// Engine drives a simulation forward.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	Speed    float64       // Multiplier on dt: 1.0 = real-time, 0 = paused
	Interval time.Duration // Wall time between ticks (0 = as fast as possible)
	Step     float64       // Fixed dt per tick in seconds (0 = measured wall time)
	MaxTicks uint64        // Stop after this many ticks (0 = unbounded)

	ReportEvery uint64 // Ticks between OnReport calls

	// Callbacks, populated during setup.
	OnTick   func(tick uint64, dt float64) // Every tick
	OnReport func(tick uint64)             // Every ReportEvery ticks

	running atomic.Bool
	last    time.Time
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Speed:       1.0,
		Interval:    time.Second / 60,
		ReportEvery: DefaultReportEvery,
	}
}

// Run starts the loop. Blocks until ctx is cancelled, Stop is called or
// MaxTicks is reached.
func (e *Engine) Run(ctx context.Context) {
	e.running.Store(true)
	defer e.running.Store(false)
	slog.Info("simulation engine started", "tick", e.Tick, "speed", e.Speed, "step", e.Step)

	e.last = time.Now()
	for e.running.Load() {
		if ctx.Err() != nil {
			break
		}
		if e.MaxTicks > 0 && e.Tick >= e.MaxTicks {
			break
		}
		if e.Speed <= 0 {
			// Paused: sleep briefly and check again.
			e.last = time.Now()
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		e.step(e.delta(start))

		elapsed := time.Since(start)
		if elapsed < e.Interval {
			select {
			case <-ctx.Done():
			case <-time.After(e.Interval - elapsed):
			}
		}
	}

	slog.Info("simulation engine stopped", "tick", e.Tick)
}

// Stop halts the loop after the current tick.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// delta returns the dt for the next tick.
func (e *Engine) delta(now time.Time) float64 {
	var dt float64
	if e.Step > 0 {
		dt = e.Step
	} else {
		dt = now.Sub(e.last).Seconds()
	}
	e.last = now
	return dt * e.Speed
}

// step advances the loop by one tick.
func (e *Engine) step(dt float64) {
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick, dt)
	}

	if e.ReportEvery > 0 && e.Tick%e.ReportEvery == 0 && e.OnReport != nil {
		e.OnReport(e.Tick)
	}
}

// SimTime returns a human-readable simulated time.
func SimTime(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	minutes := int(d / time.Minute)
	rest := (d % time.Minute).Seconds()
	return fmt.Sprintf("%dm%05.2fs", minutes, rest)
}

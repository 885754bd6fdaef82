// Simulation holds the scene's trees and advances them each tick.
package engine

import (
	"log/slog"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/talgya/grove/internal/world"
)

const (
	// DefaultTimeScale multiplies every dt handed to the trees.
	DefaultTimeScale = 2.0
	// DefaultMaxStep bounds the dt of a single tree update. The branch
	// trial probability is proportional to dt and is not clamped.
	DefaultMaxStep = 0.1
)

// Simulation owns the trees of one scene.
type Simulation struct {
	Plantings []*world.Planting
	TimeScale float64
	MaxStep   float64 // Largest scaled dt per tree update (0 = unbounded)
	Tick      uint64  // Updates applied so far
	Elapsed   float64 // Simulated seconds, after scaling
}

// Stats summarizes the scene.
type Stats struct {
	Trees       int     `json:"trees"`
	Depleted    int     `json:"depleted"`
	Branches    int     `json:"branches"`
	Leaves      int     `json:"leaves"`
	MaxDepth    int     `json:"max_depth"`
	Energy      float64 `json:"energy"`
	TotalLength float64 `json:"total_length"`
}

// NewSimulation creates a Simulation over the given plantings.
func NewSimulation(plantings []*world.Planting) *Simulation {
	return &Simulation{
		Plantings: plantings,
		TimeScale: DefaultTimeScale,
		MaxStep:   DefaultMaxStep,
	}
}

// Update advances every tree, in planting order, by dt × TimeScale. A
// scaled dt above MaxStep is split into equal sub-steps.
func (s *Simulation) Update(dt float64) {
	scaled := dt * s.TimeScale
	steps := 1
	if s.MaxStep > 0 && scaled > s.MaxStep {
		steps = int(math.Ceil(scaled / s.MaxStep))
	}
	step := scaled / float64(steps)
	for range steps {
		for _, p := range s.Plantings {
			p.Tree.Update(step)
		}
	}
	s.Tick++
	s.Elapsed += scaled
}

// Replant swaps in a new set of trees and resets the clock.
func (s *Simulation) Replant(plantings []*world.Planting) {
	s.Plantings = plantings
	s.Tick = 0
	s.Elapsed = 0
}

// Depleted reports whether every tree has emptied its reserve. Depleted
// trees still sway but no longer grow.
func (s *Simulation) Depleted() bool {
	for _, p := range s.Plantings {
		if !p.Tree.Depleted() {
			return false
		}
	}
	return true
}

// Stats walks every tree and totals its shape and reserve.
func (s *Simulation) Stats() Stats {
	st := Stats{Trees: len(s.Plantings)}
	for _, p := range s.Plantings {
		c := p.Tree.Root.Survey()
		st.Branches += c.Branches
		st.Leaves += c.Leaves
		st.TotalLength += c.TotalLength
		if c.MaxDepth > st.MaxDepth {
			st.MaxDepth = c.MaxDepth
		}
		st.Energy += p.Tree.Energy
		if p.Tree.Depleted() {
			st.Depleted++
		}
	}
	return st
}

// LogReport writes a one-line scene summary plus one line per tree at debug level.
func (s *Simulation) LogReport() {
	st := s.Stats()
	slog.Info("grove report",
		"tick", humanize.Comma(int64(s.Tick)),
		"sim_time", SimTime(s.Elapsed),
		"trees", st.Trees,
		"depleted", st.Depleted,
		"branches", humanize.Comma(int64(st.Branches)),
		"max_depth", st.MaxDepth,
		"energy", humanize.CommafWithDigits(st.Energy, 1),
	)
	for _, p := range s.Plantings {
		c := p.Tree.Root.Survey()
		slog.Debug("tree",
			"id", p.ID,
			"name", p.Name,
			"branches", c.Branches,
			"max_depth", c.MaxDepth,
			"energy", humanize.CommafWithDigits(p.Tree.Energy, 1),
		)
	}
}

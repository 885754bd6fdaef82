package engine

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/talgya/grove/internal/entropy"
	"github.com/talgya/grove/internal/growth"
	"github.com/talgya/grove/internal/world"
)

func TestStepCallbacks(t *testing.T) {
	e := NewEngine()
	e.ReportEvery = 3

	var ticks, reports []uint64
	e.OnTick = func(tick uint64, dt float64) { ticks = append(ticks, tick) }
	e.OnReport = func(tick uint64) { reports = append(reports, tick) }

	for i := 0; i < 7; i++ {
		e.step(0.1)
	}

	if len(ticks) != 7 || ticks[6] != 7 {
		t.Errorf("ticks = %v, want 1..7", ticks)
	}
	if len(reports) != 2 || reports[0] != 3 || reports[1] != 6 {
		t.Errorf("reports = %v, want [3 6]", reports)
	}
}

func TestRunStopsAtMaxTicks(t *testing.T) {
	e := NewEngine()
	e.Interval = 0
	e.Step = 0.05
	e.Speed = 2
	e.MaxTicks = 40

	var total float64
	e.OnTick = func(tick uint64, dt float64) { total += dt }
	e.Run(context.Background())

	if e.Tick != 40 {
		t.Errorf("tick = %d, want 40", e.Tick)
	}
	if math.Abs(total-40*0.05*2) > 1e-9 {
		t.Errorf("summed dt = %v, want 4", total)
	}
	if e.running.Load() {
		t.Error("engine still marked running")
	}
}

func TestRunHonorsStop(t *testing.T) {
	e := NewEngine()
	e.Interval = 0
	e.Step = 0.01
	e.OnTick = func(tick uint64, dt float64) {
		if tick == 5 {
			e.Stop()
		}
	}
	e.Run(context.Background())
	if e.Tick != 5 {
		t.Errorf("tick = %d, want 5", e.Tick)
	}
}

func TestRunHonorsContext(t *testing.T) {
	e := NewEngine()
	e.Interval = time.Millisecond
	e.Step = 0.01

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestDeltaMeasuresWallTime(t *testing.T) {
	e := NewEngine()
	start := time.Now()
	e.last = start
	dt := e.delta(start.Add(250 * time.Millisecond))
	if math.Abs(dt-0.25) > 1e-9 {
		t.Errorf("dt = %v, want 0.25", dt)
	}
}

func TestSimTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0m00.00s"},
		{5, "0m05.00s"},
		{75.5, "1m15.50s"},
		{3600, "60m00.00s"},
	}
	for _, tt := range tests {
		if got := SimTime(tt.seconds); got != tt.want {
			t.Errorf("SimTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func newTestSimulation(t *testing.T) *Simulation {
	t.Helper()
	plantings, err := world.PlantForest(world.DefaultForestConfig(), entropy.NewSeeded(3))
	if err != nil {
		t.Fatalf("PlantForest: %v", err)
	}
	return NewSimulation(plantings)
}

func TestSimulationUpdateScalesTime(t *testing.T) {
	sim := newTestSimulation(t)
	energy := sim.Plantings[0].Tree.Energy
	need := sim.Plantings[0].Tree.Root.EnergyNeed

	sim.Update(0.05)

	if sim.Tick != 1 {
		t.Errorf("tick = %d, want 1", sim.Tick)
	}
	if math.Abs(sim.Elapsed-0.1) > 1e-12 {
		t.Errorf("elapsed = %v, want 0.1", sim.Elapsed)
	}
	// The tree drew its previous need times the scaled dt.
	if got := energy - sim.Plantings[0].Tree.Energy; math.Abs(got-need*0.1) > 1e-9 {
		t.Errorf("drawn = %v, want %v", got, need*0.1)
	}
}

// countingSource never lets a trial succeed and counts its draws.
type countingSource struct{ draws int }

func (c *countingSource) Float64() float64 {
	c.draws++
	return 0.999
}

func TestSimulationSplitsLongSteps(t *testing.T) {
	tests := []struct {
		name      string
		dt        float64
		maxStep   float64
		wantSteps int
	}{
		{"within bound", 0.05, DefaultMaxStep, 1},
		{"stalled viewer frame", 0.25 * DefaultViewerTimeScale, DefaultMaxStep, 20},
		{"uneven split", 0.26, DefaultMaxStep, 6},
		{"unbounded", 1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// With no room for children the only draw per tree update is the sway flip.
			src := &countingSource{}
			limits := growth.DefaultLimits()
			limits.MaxChildren = 0
			tree := growth.NewTree(growth.Vector{}, 1e6, growth.Vec(0, 1), limits, src)
			sim := NewSimulation([]*world.Planting{{Name: "counted", Tree: tree}})
			sim.MaxStep = tt.maxStep

			sim.Update(tt.dt)

			if src.draws != tt.wantSteps {
				t.Errorf("tree updated %d times, want %d", src.draws, tt.wantSteps)
			}
			if sim.Tick != 1 {
				t.Errorf("tick = %d, want 1", sim.Tick)
			}
			if want := tt.dt * DefaultTimeScale; math.Abs(sim.Elapsed-want) > 1e-12 {
				t.Errorf("elapsed = %v, want %v", sim.Elapsed, want)
			}
		})
	}
}

func TestSimulationStats(t *testing.T) {
	sim := newTestSimulation(t)
	st := sim.Stats()
	if st.Trees != 2 || st.Branches != 2 || st.Leaves != 2 || st.MaxDepth != 0 {
		t.Errorf("fresh stats = %+v", st)
	}
	if st.Energy != 220_000 {
		t.Errorf("energy = %v, want 220000", st.Energy)
	}

	for i := 0; i < 2000; i++ {
		sim.Update(0.05)
	}
	grown := sim.Stats()
	if grown.Branches <= 2 {
		t.Errorf("no branching after 2000 ticks: %+v", grown)
	}
	if grown.Energy >= st.Energy {
		t.Errorf("energy did not drop: %v", grown.Energy)
	}
	if grown.TotalLength <= st.TotalLength {
		t.Errorf("length did not grow: %v", grown.TotalLength)
	}
	sim.LogReport()
}

func TestSimulationCountsDepleted(t *testing.T) {
	tree := growth.NewTree(growth.Vector{}, 0, growth.Vec(0, 1), growth.DefaultLimits(), entropy.Fixed(0.5))
	sim := NewSimulation([]*world.Planting{{Name: "empty", Tree: tree}})
	if st := sim.Stats(); st.Depleted != 1 {
		t.Errorf("depleted = %d, want 1", st.Depleted)
	}
	if !sim.Depleted() {
		t.Error("scene of empty trees not depleted")
	}
	if newTestSimulation(t).Depleted() {
		t.Error("fresh scene reported depleted")
	}
}

func TestReplantResetsClock(t *testing.T) {
	sim := newTestSimulation(t)
	sim.Update(0.1)
	sim.Replant(nil)
	if sim.Tick != 0 || sim.Elapsed != 0 || len(sim.Plantings) != 0 {
		t.Errorf("after replant: tick %d elapsed %v trees %d", sim.Tick, sim.Elapsed, len(sim.Plantings))
	}
}

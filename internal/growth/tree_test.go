package growth

import (
	"testing"

	"github.com/talgya/grove/internal/entropy"
)

func TestNewTreeRootDefaults(t *testing.T) {
	limits := DefaultLimits()
	tree := NewTree(Vec(300, 0), 1000, Vec(0.1, 1), limits, never)

	assertVec(t, "position", tree.Position, Vec(300, 0))
	assertNear(t, "energy", tree.Energy, 1000)
	assertNear(t, "root need", tree.Root.EnergyNeed, limits.MaxLength/GrowthFactor)
	if tree.Root.Depth != 0 {
		t.Errorf("root depth = %d, want 0", tree.Root.Depth)
	}
}

func TestDrawEnergy(t *testing.T) {
	tests := []struct {
		name        string
		reserve     float64
		need        float64
		dt          float64
		wantDrawn   float64
		wantReserve float64
	}{
		{"plenty", 100, 10, 0.5, 5, 95},
		{"exact", 5, 10, 0.5, 5, 0},
		{"short", 2, 10, 0.5, 2, 0},
		{"empty", 0, 10, 0.5, 0, 0},
		{"no need", 100, 0, 0.5, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewTree(Vector{}, tt.reserve, Vec(0, 1), DefaultLimits(), never)
			tree.Root.EnergyNeed = tt.need
			drawn := tree.drawEnergy(tt.dt)
			assertNear(t, "drawn", drawn, tt.wantDrawn)
			assertNear(t, "reserve", tree.Energy, tt.wantReserve)
		})
	}
}

func TestUpdateUsesPreviousNeed(t *testing.T) {
	tree := NewTree(Vector{}, 1000, Vec(0, 1), DefaultLimits(), never)
	tree.Root.JitterSign = 0

	// The first draw uses the constructor's need of 70/5 = 14: 14 × 0.1 = 1.4.
	tree.Update(0.1)
	assertNear(t, "reserve", tree.Energy, 1000-1.4)
	// All of it goes to growth: 1 + 1.4 × 0.1 × 5.
	assertNear(t, "length", tree.Root.Length(), 1.7)
}

func TestReserveIsMonotoneAndNonNegative(t *testing.T) {
	for _, reserve := range []float64{DefaultEnergy, 300, 1} {
		tree := NewTree(Vector{}, reserve, Vec(0.1, 1), DefaultLimits(), entropy.NewSeeded(21))
		prev := tree.Energy
		for i := 0; i < 1000; i++ {
			tree.Update(0.05)
			if tree.Energy > prev {
				t.Fatalf("reserve %v: tick %d rose from %v to %v", reserve, i, prev, tree.Energy)
			}
			if tree.Energy < 0 {
				t.Fatalf("reserve %v: tick %d went negative: %v", reserve, i, tree.Energy)
			}
			prev = tree.Energy
		}
	}
}

func TestDepletedTreeStopsGrowing(t *testing.T) {
	tree := NewTree(Vector{}, 1, Vec(0, 1), DefaultLimits(), never)
	tree.Root.JitterSign = 0
	for i := 0; i < 100; i++ {
		tree.Update(0.1)
	}
	if !tree.Depleted() {
		t.Fatalf("reserve not depleted: %v", tree.Energy)
	}
	length := tree.Root.Length()
	tree.Update(0.1)
	assertNear(t, "length after depletion", tree.Root.Length(), length)
	// The whole unit reserve went into the first tick: 1 + 1 × 0.1 × 5.
	assertNear(t, "final length", length, 1.5)
}

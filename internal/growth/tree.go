package growth

import (
	"image/color"

	"github.com/talgya/grove/internal/entropy"
)

// DefaultEnergy is the starting reserve of a tree built without one.
const DefaultEnergy = 50_000.0

// Gradient maps a depth fraction in [0, 1] to a color. Trees carry one for
// their renderer; the growth model never reads it.
type Gradient interface {
	At(t float64) color.RGBA
}

// Tree owns a root branch and the energy reserve that feeds it.
type Tree struct {
	Position Vector
	Root     *Branch
	Energy   float64 // remaining reserve, never negative
	Colors   Gradient
}

// NewTree builds a tree rooted at position with the root pointing along
// direction.
func NewTree(position Vector, energy float64, direction Vector, limits Limits, src entropy.Source) *Tree {
	return &Tree{
		Position: position,
		Root:     NewBranch(direction, limits, src),
		Energy:   energy,
	}
}

// Update draws this tick's energy from the reserve and grows the root with it.
func (t *Tree) Update(dt float64) {
	energy := t.drawEnergy(dt)
	t.Root.Update(dt, energy)
}

// drawEnergy takes dt × the root's need from the previous tick out of the
// reserve, or whatever is left if that is less.
func (t *Tree) drawEnergy(dt float64) float64 {
	want := dt * t.Root.EnergyNeed
	if t.Energy < want {
		want = t.Energy
		t.Energy = 0
		return want
	}
	t.Energy -= want
	return want
}

// Depleted reports whether the reserve is empty.
func (t *Tree) Depleted() bool {
	return t.Energy <= 0
}

// Package growth implements the branch growth model: each tick a tree meters
// energy out of its reserve and the branch hierarchy splits it between
// lengthening, spawning and passing it on to children.
package growth

import (
	"math"

	"github.com/talgya/grove/internal/entropy"
)

// GrowthFactor is the length produced per unit of energy per unit of time.
const GrowthFactor = 5.0

// Sway parameters.
const (
	DefaultJitterSign = 0.01
	jitterFlipChance  = 0.1
	jitterCap         = 2.0
	jitterScale       = 0.1
)

// Branch is one growth segment and the sub-branches it owns.
type Branch struct {
	Vector   Vector
	Children []*Branch // creation order, append-only
	Limits   Limits
	Depth    int

	// EnergyNeed is this subtree's estimate of how much energy it can use.
	// Children's values are one tick stale when the parent reads them.
	EnergyNeed float64

	// JitterSign is the signed sway rate. Its sign persists between ticks
	// and flips at random, so sway drifts instead of shaking.
	JitterSign float64

	src entropy.Source
}

// NewBranch creates a root branch. Its initial need assumes the whole
// length is still to grow.
func NewBranch(vector Vector, limits Limits, src entropy.Source) *Branch {
	return &Branch{
		Vector:     vector,
		Limits:     limits,
		EnergyNeed: limits.MaxLength / GrowthFactor,
		JitterSign: DefaultJitterSign,
		src:        src,
	}
}

// Update advances this branch and its subtree by one step with the given
// energy budget. It must be called exactly once per branch per tick, parents
// before children.
func (b *Branch) Update(dt, energy float64) {
	if b.shouldBranch(dt) {
		b.spawn()
	}
	b.updateEnergyNeed()

	growth, childEnergies := b.distributeEnergy(energy)

	b.grow(dt, growth)
	b.sway()

	for i, child := range b.Children {
		child.Update(dt, childEnergies[i])
	}
}

// Length returns the current branch length.
func (b *Branch) Length() float64 {
	return b.Vector.Length()
}

func (b *Branch) canBranch() bool {
	return len(b.Children) < b.Limits.MaxChildren && b.Depth < b.Limits.MaxDepth
}

// shouldBranch runs the spawn trial. The probability rises as the branch
// nears full length and is not clamped, so dt must stay small.
func (b *Branch) shouldBranch(dt float64) bool {
	if !b.canBranch() {
		return false
	}
	return entropy.Chance(b.src, b.Length()/b.Limits.MaxLength*dt)
}

// spawn appends a unit-length child rotated off this branch's direction.
func (b *Branch) spawn() *Branch {
	angle := b.Limits.Angle.Draw(b.src)
	child := &Branch{
		Vector:     b.Vector.Normalize().Rotate(angle),
		Limits:     b.Limits.child(b.src),
		Depth:      b.Depth + 1,
		JitterSign: DefaultJitterSign,
		src:        b.src,
	}
	b.Children = append(b.Children, child)
	return child
}

func (b *Branch) selfNeed() float64 {
	return math.Max(b.Limits.MaxLength-b.Length(), 0) / GrowthFactor
}

func (b *Branch) childNeeds() float64 {
	var sum float64
	for _, c := range b.Children {
		sum += c.EnergyNeed
	}
	return sum
}

func (b *Branch) updateEnergyNeed() {
	b.EnergyNeed = b.selfNeed() + b.childNeeds()
}

// distributeEnergy splits energy in proportion to need. With no recorded
// need the whole budget is split evenly between the children, leaving none
// for self-growth unless there are no children at all.
func (b *Branch) distributeEnergy(energy float64) (float64, []float64) {
	childEnergies := make([]float64, len(b.Children))

	if b.EnergyNeed <= 0 {
		if len(b.Children) == 0 {
			return energy, childEnergies
		}
		share := energy / float64(len(b.Children))
		for i := range childEnergies {
			childEnergies[i] = share
		}
		return 0, childEnergies
	}

	growthNeed := b.EnergyNeed - b.childNeeds()
	for i, c := range b.Children {
		childEnergies[i] = energy * (c.EnergyNeed / b.EnergyNeed)
	}
	return energy * (growthNeed / b.EnergyNeed), childEnergies
}

func (b *Branch) grow(dt, energy float64) {
	if energy <= 0 {
		return
	}
	length := b.Length() + energy*dt*GrowthFactor
	b.Vector = b.Vector.Normalize().Mul(length)
}

// sway rotates the branch by a small angle that fades out as the branch
// reaches its max length.
func (b *Branch) sway() {
	if entropy.Chance(b.src, jitterFlipChance) {
		b.JitterSign = -b.JitterSign
	}
	magnitude := math.Min(b.Limits.MaxLength-b.Length(), jitterCap) * jitterScale
	b.Vector = b.Vector.Rotate(magnitude * b.JitterSign)
}

package growth

import (
	"github.com/talgya/grove/internal/entropy"
)

// Child length limits are drawn from this fraction of the parent's.
const (
	childLengthMin = 0.8
	childLengthMax = 1.0
)

// AngleRange is the half-open interval [Low, High) of branching angles, in radians.
type AngleRange struct {
	Low, High float64
}

// Draw returns a uniform angle from the range.
func (r AngleRange) Draw(src entropy.Source) float64 {
	return entropy.Range(src, r.Low, r.High)
}

// Symmetric returns the range [-half, half).
func Symmetric(half float64) AngleRange {
	return AngleRange{Low: -half, High: half}
}

// Limits are the static growth constraints of one branch.
// A Limits value is never modified after the branch is created.
type Limits struct {
	Angle       AngleRange
	MaxLength   float64
	MaxChildren int
	MaxDepth    int
}

// DefaultLimits returns the limits used when none are supplied.
func DefaultLimits() Limits {
	return Limits{
		Angle:       Symmetric(0.5),
		MaxLength:   70,
		MaxChildren: 2,
		MaxDepth:    15,
	}
}

// child derives the limits of a newly spawned branch: the same angle range
// and fan-out/depth bounds, with a max length shrunk by a random factor.
func (l Limits) child(src entropy.Source) Limits {
	return Limits{
		Angle:       l.Angle,
		MaxLength:   l.MaxLength * entropy.Range(src, childLengthMin, childLengthMax),
		MaxChildren: l.MaxChildren,
		MaxDepth:    l.MaxDepth,
	}
}

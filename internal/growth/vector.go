package growth

import "github.com/gogpu/gg"

// Vector is a 2D displacement. As a branch vector its magnitude is the
// branch's current length.
type Vector = gg.Vec2

// Vec is a convenience constructor.
func Vec(x, y float64) Vector {
	return gg.V2(x, y)
}

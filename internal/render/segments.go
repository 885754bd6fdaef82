// Package render turns trees into colored line segments and paints them
// onto an image surface.
package render

import (
	"image/color"

	"github.com/talgya/grove/internal/growth"
)

// Segment is one branch placed in world space. World y points up.
type Segment struct {
	Start, End growth.Vector
	Depth      int
	Fraction   float64 // Depth / MaxDepth, in [0, 1] for in-bounds branches
}

// fallback colors branches of trees that carry no gradient.
var fallback = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Walk calls fn for every branch of tree, parents before children, with
// each child starting where its parent ends.
func Walk(tree *growth.Tree, fn func(Segment)) {
	walk(tree.Root, tree.Position, fn)
}

func walk(b *growth.Branch, start growth.Vector, fn func(Segment)) {
	end := start.Add(b.Vector)
	fn(Segment{
		Start:    start,
		End:      end,
		Depth:    b.Depth,
		Fraction: depthFraction(b),
	})
	for _, child := range b.Children {
		walk(child, end, fn)
	}
}

func depthFraction(b *growth.Branch) float64 {
	if b.Limits.MaxDepth <= 0 {
		return 0
	}
	return float64(b.Depth) / float64(b.Limits.MaxDepth)
}

// Color picks the tree's gradient color for s, or white without a gradient.
func Color(tree *growth.Tree, s Segment) color.RGBA {
	if tree.Colors == nil {
		return fallback
	}
	return tree.Colors.At(s.Fraction)
}

// Flip maps a world position (y up, ground at 0) into image space (y down)
// for an image of the given height.
func Flip(v growth.Vector, height float64) growth.Vector {
	return growth.Vec(v.X, height-v.Y)
}

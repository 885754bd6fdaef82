package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/surface"

	"github.com/talgya/grove/internal/growth"
	"github.com/talgya/grove/internal/world"
)

// Frame is a CPU image surface that trees are painted onto.
type Frame struct {
	// ScaleX and ScaleY convert world units to pixels.
	ScaleX, ScaleY float64
	// LineWidth is the branch stroke width in pixels.
	LineWidth float64

	surface       surface.Surface
	width, height int
}

// NewFrame allocates a w×h frame at one pixel per world unit, initially
// transparent.
func NewFrame(w, h int) *Frame {
	return &Frame{
		ScaleX:    1,
		ScaleY:    1,
		LineWidth: 1,
		surface:   surface.NewImageSurface(w, h),
		width:     w,
		height:    h,
	}
}

// Size returns the frame size in pixels.
func (f *Frame) Size() (int, int) {
	return f.width, f.height
}

// Clear fills the frame with c.
func (f *Frame) Clear(c color.Color) {
	f.surface.Clear(c)
}

// Image snapshots the painted pixels.
func (f *Frame) Image() image.Image {
	return f.surface.Snapshot()
}

// Close releases the surface.
func (f *Frame) Close() {
	f.surface.Close()
}

// DrawForest paints every planting. The frame is not cleared first.
func (f *Frame) DrawForest(plantings []*world.Planting) {
	for _, p := range plantings {
		f.DrawTree(p.Tree)
	}
}

// DrawTree paints one tree, coloring each branch by its depth fraction.
func (f *Frame) DrawTree(tree *growth.Tree) {
	Walk(tree, func(s Segment) {
		f.stroke(f.toPixel(s.Start), f.toPixel(s.End), Color(tree, s))
	})
}

func (f *Frame) toPixel(v growth.Vector) growth.Vector {
	return Flip(growth.Vec(v.X*f.ScaleX, v.Y*f.ScaleY), float64(f.height))
}

// stroke fills the LineWidth-wide quad around a→b. The surface clips to
// its bounds.
func (f *Frame) stroke(a, b gg.Vec2, c color.RGBA) {
	d := b.Sub(a)
	if d.IsZero() {
		return
	}
	n := d.Normalize().Perp().Mul(f.LineWidth / 2)

	path := surface.NewPath()
	path.MoveTo(a.X+n.X, a.Y+n.Y)
	path.LineTo(b.X+n.X, b.Y+n.Y)
	path.LineTo(b.X-n.X, b.Y-n.Y)
	path.LineTo(a.X-n.X, a.Y-n.Y)
	path.Close()
	f.surface.Fill(path, surface.FillStyle{
		Color: c,
		Rule:  surface.FillRuleNonZero,
	})
}

// WritePNG encodes the frame as PNG.
func (f *Frame) WritePNG(w io.Writer) error {
	if err := png.Encode(w, f.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the frame to path.
func (f *Frame) SavePNG(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := f.WritePNG(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

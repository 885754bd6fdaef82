// Package palette maps branch depth to color with evenly spaced linear gradients.
package palette

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient interpolates between color stops spread evenly across [0, 1].
type Gradient struct {
	stops []colorful.Color
}

// New parses hex color stops ("#918464") into a gradient. At least one
// stop is required.
func New(hexes ...string) (*Gradient, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("gradient needs at least one color")
	}
	stops := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("parse color %q: %w", h, err)
		}
		stops = append(stops, c)
	}
	return &Gradient{stops: stops}, nil
}

// At returns the opaque color at position t. t is clamped to [0, 1]; NaN maps to 0.
func (g *Gradient) At(t float64) color.RGBA {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if len(g.stops) == 1 {
		return toRGBA(g.stops[0])
	}

	segments := float64(len(g.stops) - 1)
	pos := t * segments
	i := int(pos)
	if i >= len(g.stops)-1 {
		return toRGBA(g.stops[len(g.stops)-1])
	}
	return toRGBA(g.stops[i].BlendRgb(g.stops[i+1], pos-float64(i)))
}

func toRGBA(c colorful.Color) color.RGBA {
	r, gr, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: gr, B: b, A: 0xff}
}

// Package world builds the trees of a scene: named presets and
// noise-varied forests laid out across a canvas.
package world

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/grove/internal/entropy"
	"github.com/talgya/grove/internal/growth"
	"github.com/talgya/grove/internal/palette"
)

// Preset is a recipe for a tree.
type Preset struct {
	Name      string
	Energy    float64
	Direction growth.Vector
	Limits    growth.Limits
	Colors    []string // gradient stops, trunk to tip
}

// Planting is a tree placed in a scene.
type Planting struct {
	ID   uuid.UUID
	Name string
	Tree *growth.Tree
}

// DefaultPreset is the tree built when nothing else is specified.
func DefaultPreset() Preset {
	return Preset{
		Name:      "default",
		Energy:    growth.DefaultEnergy,
		Direction: growth.Vec(0.1, 1.0),
		Limits:    growth.DefaultLimits(),
		Colors:    []string{"#918464", "#03c454"},
	}
}

// BroadPreset is a short, wide-angled tree with pale tips.
func BroadPreset() Preset {
	return Preset{
		Name:      "broad",
		Energy:    100_000,
		Direction: growth.Vec(-0.1, 1.0),
		Limits: growth.Limits{
			Angle:       growth.Symmetric(0.6),
			MaxLength:   50,
			MaxChildren: 2,
			MaxDepth:    13,
		},
		Colors: []string{"#918464", "#03c454", "#ededed"},
	}
}

// TallPreset is a long, narrow tree with violet tips.
func TallPreset() Preset {
	return Preset{
		Name:      "tall",
		Energy:    120_000,
		Direction: growth.Vec(0.1, 1.0),
		Limits: growth.Limits{
			Angle:       growth.Symmetric(0.4),
			MaxLength:   70,
			MaxChildren: 2,
			MaxDepth:    13,
		},
		Colors: []string{"#918464", "#6b7347", "#03c454", "#c961bf"},
	}
}

// Presets returns every named preset.
func Presets() []Preset {
	return []Preset{DefaultPreset(), BroadPreset(), TallPreset()}
}

// PresetByName looks up a preset by its Name.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Plant grows a new tree from the preset at position.
func (p Preset) Plant(position growth.Vector, src entropy.Source) (*Planting, error) {
	colors, err := palette.New(p.Colors...)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", p.Name, err)
	}
	tree := growth.NewTree(position, p.Energy, p.Direction, p.Limits, src)
	tree.Colors = colors
	return &Planting{
		ID:   uuid.New(),
		Name: p.Name,
		Tree: tree,
	}, nil
}

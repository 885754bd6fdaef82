// Forest generation. The two-tree scene is fixed; larger forests vary the
// presets with simplex noise sampled along the row of trees.
package world

import (
	"errors"
	"fmt"
	"log/slog"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/grove/internal/entropy"
	"github.com/talgya/grove/internal/growth"
)

// ForestConfig holds forest layout parameters.
type ForestConfig struct {
	Width  float64 // canvas width in world units
	Height float64 // canvas height in world units
	Trees  int     // number of trees (2 = the classic scene)
	Seed   int64   // noise seed (0 = drawn from the source)
	Preset string  // when set, every tree is planted from this preset
}

// DefaultForestConfig returns the classic two-tree scene on a 1024×768 canvas.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Width:  1024,
		Height: 768,
		Trees:  2,
	}
}

// Validate reports configuration errors.
func (c ForestConfig) Validate() error {
	var errs []error
	if c.Width <= 0 {
		errs = append(errs, fmt.Errorf("width must be positive, got %v", c.Width))
	}
	if c.Height <= 0 {
		errs = append(errs, fmt.Errorf("height must be positive, got %v", c.Height))
	}
	if c.Trees < 0 {
		errs = append(errs, fmt.Errorf("tree count must not be negative, got %d", c.Trees))
	}
	if _, ok := PresetByName(c.Preset); c.Preset != "" && !ok {
		errs = append(errs, fmt.Errorf("unknown preset %q", c.Preset))
	}
	return errors.Join(errs...)
}

// Noise sampling offsets, one lane per varied property.
const (
	laneOffset = 0.0
	laneLean   = 10.0
	laneAngle  = 20.0
	laneLength = 30.0
	noiseStep  = 0.7
)

// PlantForest lays out cfg.Trees trees along the ground line (y = 0).
func PlantForest(cfg ForestConfig, src entropy.Source) ([]*Planting, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("forest config: %w", err)
	}

	if cfg.Preset != "" {
		return plantUniform(cfg, src)
	}
	if cfg.Trees == 2 {
		return plantClassic(cfg, src)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = int64(src.Float64()*(1<<53)) + 1
	}
	noise := opensimplex.NewNormalized(seed)

	plantings := make([]*Planting, 0, cfg.Trees)
	spacing := cfg.Width / float64(cfg.Trees+1)
	for i := 0; i < cfg.Trees; i++ {
		p := variedPreset(i, noise)
		x := spacing*float64(i+1) + (sample(noise, i, laneOffset)-0.5)*spacing*0.5
		planting, err := p.Plant(growth.Vec(x, 0), src)
		if err != nil {
			return nil, err
		}
		plantings = append(plantings, planting)
	}

	slog.Info("forest planted", "trees", len(plantings), "seed", seed)
	return plantings, nil
}

// plantClassic places a broad tree at one third and a tall tree at two
// thirds of the width.
func plantClassic(cfg ForestConfig, src entropy.Source) ([]*Planting, error) {
	broad, err := BroadPreset().Plant(growth.Vec(cfg.Width/3, 0), src)
	if err != nil {
		return nil, err
	}
	tall, err := TallPreset().Plant(growth.Vec(cfg.Width*2/3, 0), src)
	if err != nil {
		return nil, err
	}
	slog.Info("forest planted", "trees", 2, "layout", "classic")
	return []*Planting{broad, tall}, nil
}

// plantUniform spaces cfg.Trees copies of the named preset evenly.
func plantUniform(cfg ForestConfig, src entropy.Source) ([]*Planting, error) {
	preset, _ := PresetByName(cfg.Preset)
	plantings := make([]*Planting, 0, cfg.Trees)
	spacing := cfg.Width / float64(cfg.Trees+1)
	for i := 0; i < cfg.Trees; i++ {
		planting, err := preset.Plant(growth.Vec(spacing*float64(i+1), 0), src)
		if err != nil {
			return nil, err
		}
		plantings = append(plantings, planting)
	}
	slog.Info("forest planted", "trees", len(plantings), "preset", preset.Name)
	return plantings, nil
}

// variedPreset alternates broad and tall bases and perturbs lean, spread
// and size. Energy scales with size so reserves stay proportionate.
func variedPreset(i int, noise opensimplex.Noise) Preset {
	p := BroadPreset()
	if i%2 == 1 {
		p = TallPreset()
	}

	lean := (sample(noise, i, laneLean) - 0.5) * 0.4
	spread := 0.8 + 0.4*sample(noise, i, laneAngle)
	size := 0.8 + 0.4*sample(noise, i, laneLength)

	p.Name = fmt.Sprintf("%s-%d", p.Name, i+1)
	p.Direction = growth.Vec(p.Direction.X+lean, p.Direction.Y)
	p.Limits.Angle = growth.AngleRange{Low: p.Limits.Angle.Low * spread, High: p.Limits.Angle.High * spread}
	p.Limits.MaxLength *= size
	p.Energy *= size
	return p
}

// sample reads noise in [0, 1) for tree i on the given lane.
func sample(noise opensimplex.Noise, i int, lane float64) float64 {
	return noise.Eval2(float64(i)*noiseStep, lane)
}

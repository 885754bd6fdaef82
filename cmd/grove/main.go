// Command grove opens a window and grows a forest in real time.
// Space pauses, R replants, Escape quits.
package main

import (
	"log/slog"
	"os"

	"github.com/talgya/grove/internal/config"
	"github.com/talgya/grove/internal/engine"
	"github.com/talgya/grove/internal/entropy"
	"github.com/talgya/grove/internal/viewer"
	"github.com/talgya/grove/internal/world"
)

func main() {
	settings, err := config.Load()
	slog.SetDefault(config.NewLogger(os.Stdout, settings.LogLevel))
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	src := entropy.NewSeeded(settings.Seed)
	forest := world.DefaultForestConfig()
	forest.Width = float64(settings.Width)
	forest.Height = float64(settings.Height)
	forest.Trees = settings.Trees
	forest.Seed = settings.Seed
	forest.Preset = settings.Preset
	plant := func() ([]*world.Planting, error) {
		return world.PlantForest(forest, src)
	}

	plantings, err := plant()
	if err != nil {
		slog.Error("failed to plant forest", "error", err)
		os.Exit(1)
	}

	cfg := viewer.DefaultConfig()
	cfg.Width = settings.Width
	cfg.Height = settings.Height
	cfg.TimeScale = settings.TimeScale

	game := viewer.NewGame(engine.NewSimulation(plantings), cfg)
	game.Replant = func() ([]*world.Planting, error) {
		// Fresh noise for every replant; the seed only fixes the first forest.
		forest.Seed = 0
		return plant()
	}

	slog.Info("opening window", "width", cfg.Width, "height", cfg.Height, "time_scale", cfg.TimeScale)
	if err := viewer.Run(game); err != nil {
		slog.Error("viewer failed", "error", err)
		os.Exit(1)
	}
	game.Sim.LogReport()
}

// Command groveterm grows a forest in the terminal.
// Space pauses; q or Escape quits.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/talgya/grove/internal/config"
	"github.com/talgya/grove/internal/engine"
	"github.com/talgya/grove/internal/entropy"
	"github.com/talgya/grove/internal/termview"
	"github.com/talgya/grove/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "groveterm:", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// The screen owns stdout, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(config.NewLogger(logOut, settings.LogLevel))

	forest := world.DefaultForestConfig()
	forest.Width = float64(settings.Width)
	forest.Height = float64(settings.Height)
	forest.Trees = settings.Trees
	forest.Seed = settings.Seed
	forest.Preset = settings.Preset
	plantings, err := world.PlantForest(forest, entropy.NewSeeded(settings.Seed))
	if err != nil {
		return fmt.Errorf("plant forest: %w", err)
	}
	sim := engine.NewSimulation(plantings)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	v := termview.NewViewer(screen, sim, settings.Width, settings.Height, settings.TimeScale)
	v.Run(ctx)

	sim.LogReport()
	return nil
}

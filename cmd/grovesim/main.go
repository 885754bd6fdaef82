// Command grovesim grows a forest headlessly at a fixed step and writes the
// final frame to a PNG.
package main

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/grove/internal/config"
	"github.com/talgya/grove/internal/engine"
	"github.com/talgya/grove/internal/entropy"
	"github.com/talgya/grove/internal/render"
	"github.com/talgya/grove/internal/world"
)

func main() {
	settings, err := config.Load()
	logger := config.NewLogger(os.Stdout, settings.LogLevel)
	slog.SetDefault(logger)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("grove headless growth run",
		"seed", settings.Seed,
		"trees", settings.Trees,
		"ticks", humanize.Comma(int64(settings.Ticks)),
		"dt", settings.TickDT,
	)

	// ── Forest ────────────────────────────────────────────────────────
	src := entropy.NewSeeded(settings.Seed)
	forest := world.DefaultForestConfig()
	forest.Width = float64(settings.Width)
	forest.Height = float64(settings.Height)
	forest.Trees = settings.Trees
	forest.Seed = settings.Seed
	forest.Preset = settings.Preset
	plantings, err := world.PlantForest(forest, src)
	if err != nil {
		slog.Error("failed to plant forest", "error", err)
		os.Exit(1)
	}
	for _, p := range plantings {
		slog.Info("planted",
			"id", p.ID,
			"name", p.Name,
			"x", fmt.Sprintf("%.1f", p.Tree.Position.X),
			"energy", humanize.Comma(int64(p.Tree.Energy)),
		)
	}

	// ── Simulation ────────────────────────────────────────────────────
	sim := engine.NewSimulation(plantings)

	eng := engine.NewEngine()
	eng.Interval = 0
	eng.Step = settings.TickDT
	eng.MaxTicks = settings.Ticks
	eng.OnTick = func(tick uint64, dt float64) {
		sim.Update(dt)
		if sim.Depleted() {
			slog.Info("every reserve is empty, stopping early", "tick", tick)
			eng.Stop()
		}
	}
	eng.OnReport = func(tick uint64) {
		sim.LogReport()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng.Run(ctx)
	sim.LogReport()

	// ── Output ────────────────────────────────────────────────────────
	frame := render.NewFrame(settings.Width, settings.Height)
	frame.Clear(color.RGBA{A: 0xff})
	frame.DrawForest(sim.Plantings)
	err = frame.SavePNG(settings.Out)
	frame.Close()
	if err != nil {
		slog.Error("failed to write frame", "error", err)
		os.Exit(1)
	}

	st := sim.Stats()
	fmt.Printf("\n%d trees grew %s branches in %s of simulated time. Frame written to %s.\n",
		st.Trees, humanize.Comma(int64(st.Branches)), engine.SimTime(sim.Elapsed), settings.Out)
}

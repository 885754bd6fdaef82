// Package viewer shows a simulation in an ebiten window.
package viewer

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/talgya/grove/internal/engine"
	"github.com/talgya/grove/internal/growth"
	"github.com/talgya/grove/internal/render"
	"github.com/talgya/grove/internal/world"
)

// Config holds window settings.
type Config struct {
	Title     string
	Width     int
	Height    int
	TimeScale float64
	LineWidth float32
}

// DefaultConfig returns the classic 1024×768 window.
func DefaultConfig() Config {
	return Config{
		Title:     "Tree",
		Width:     1024,
		Height:    768,
		TimeScale: engine.DefaultViewerTimeScale,
		LineWidth: 1,
	}
}

var background = color.RGBA{A: 0xff}

// Game implements ebiten.Game over a simulation.
type Game struct {
	Sim *engine.Simulation

	// Replant builds a fresh forest when R is pressed. Nil disables replanting.
	Replant func() ([]*world.Planting, error)

	cfg   Config
	clock *engine.Clock
	last  time.Time
}

// NewGame wraps sim for display.
func NewGame(sim *engine.Simulation, cfg Config) *Game {
	return &Game{
		Sim:   sim,
		cfg:   cfg,
		clock: engine.NewClock(cfg.TimeScale),
	}
}

// controls holds the keys pressed since the previous frame.
type controls struct {
	quit, pause, replant bool
}

func pressedControls() controls {
	return controls{
		quit:    inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		pause:   inpututil.IsKeyJustPressed(ebiten.KeySpace),
		replant: inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
}

// Update advances the simulation by the wall time since the previous frame.
func (g *Game) Update() error {
	if err := g.apply(pressedControls()); err != nil {
		return err
	}
	g.advance(time.Now())
	return nil
}

// apply reacts to key presses. Escape ends the game with ebiten.Termination.
func (g *Game) apply(c controls) error {
	if c.quit {
		return ebiten.Termination
	}
	if c.pause {
		g.clock.TogglePause()
		slog.Info("pause toggled", "paused", g.clock.Paused())
	}
	if c.replant && g.Replant != nil {
		plantings, err := g.Replant()
		if err != nil {
			return fmt.Errorf("replant: %w", err)
		}
		g.Sim.Replant(plantings)
		slog.Info("forest replanted", "trees", len(plantings))
	}
	return nil
}

// advance feeds the clock's dt for the frame ending at now to the simulation.
func (g *Game) advance(now time.Time) {
	if g.last.IsZero() {
		g.last = now
	}
	dt := g.clock.Advance(now.Sub(g.last).Seconds())
	g.last = now

	if dt > 0 {
		g.Sim.Update(dt)
	}
}

// Draw strokes every branch of every tree.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	h := float64(screen.Bounds().Dy())
	for _, p := range g.Sim.Plantings {
		tree := p.Tree
		render.Walk(tree, func(s render.Segment) {
			x0, y0 := screenPoint(s.Start, h)
			x1, y1 := screenPoint(s.End, h)
			vector.StrokeLine(screen, x0, y0, x1, y1, g.cfg.LineWidth, render.Color(tree, s), true)
		})
	}
}

// Layout keeps a fixed logical canvas.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// screenPoint flips world y (up) into screen y (down).
func screenPoint(v growth.Vector, height float64) (float32, float32) {
	p := render.Flip(v, height)
	return float32(p.X), float32(p.Y)
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

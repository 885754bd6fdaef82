// Package termview draws a simulation into a terminal with tcell. The scene
// is painted onto a frame with one pixel per cell, so the whole canvas fits
// the screen at any size.
package termview

import (
	"context"
	"image/color"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/talgya/grove/internal/engine"
	"github.com/talgya/grove/internal/render"
)

const (
	cellGlyph = '█'
	// litAlpha is the least branch coverage that lights a cell.
	litAlpha = 0x40
)

// Viewer runs the terminal loop.
type Viewer struct {
	Screen   tcell.Screen
	Sim      *engine.Simulation
	Clock    *engine.Clock
	Interval time.Duration // Redraw period

	width, height int // world extent shown on screen
	frame         *render.Frame
}

// NewViewer prepares a viewer that fits a width×height world canvas onto an
// initialized screen.
func NewViewer(screen tcell.Screen, sim *engine.Simulation, width, height int, timeScale float64) *Viewer {
	return &Viewer{
		Screen:   screen,
		Sim:      sim,
		Clock:    engine.NewClock(timeScale),
		Interval: 33 * time.Millisecond,
		width:    width,
		height:   height,
	}
}

// Run polls input on a separate goroutine and advances and redraws the
// simulation on this one until ctx ends or the user quits. The poller has
// exited by the time Run returns.
func (v *Viewer) Run(ctx context.Context) {
	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	done := make(chan struct{})
	go v.poll(events, stop, done)
	defer func() {
		close(stop)
		// Wake a poller blocked in PollEvent.
		_ = v.Screen.PostEvent(tcell.NewEventInterrupt(nil))
		<-done
		v.release()
	}()

	ticker := time.NewTicker(v.Interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case ev := <-events:
			if !v.handle(ev) {
				return
			}
		case now := <-ticker.C:
			dt := v.Clock.Advance(now.Sub(last).Seconds())
			last = now
			if dt > 0 {
				v.Sim.Update(dt)
			}
			v.Draw()
		}
	}
}

func (v *Viewer) poll(events chan<- tcell.Event, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}

		ev := v.Screen.PollEvent()
		if ev == nil {
			return
		}

		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

// handle reacts to one event. It returns false when the viewer should exit.
func (v *Viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.Clock.TogglePause()
				slog.Info("pause toggled", "paused", v.Clock.Paused())
			}
		}
	case *tcell.EventResize:
		v.Screen.Sync()
	}
	return true
}

// Draw repaints every tree at the current screen size.
func (v *Viewer) Draw() {
	cols, rows := v.Screen.Size()
	v.Screen.Clear()
	if cols > 0 && rows > 0 && v.width > 0 && v.height > 0 {
		v.paint(v.frameFor(cols, rows))
	}
	v.Screen.Show()
}

// frameFor returns a cols×rows frame scaled to the world canvas, replacing
// the previous one when the screen size changed.
func (v *Viewer) frameFor(cols, rows int) *render.Frame {
	if v.frame != nil {
		if w, h := v.frame.Size(); w == cols && h == rows {
			return v.frame
		}
	}
	v.release()
	v.frame = render.NewFrame(cols, rows)
	v.frame.ScaleX = float64(cols) / float64(v.width)
	v.frame.ScaleY = float64(rows) / float64(v.height)
	return v.frame
}

func (v *Viewer) paint(frame *render.Frame) {
	frame.Clear(color.Transparent)
	frame.DrawForest(v.Sim.Plantings)

	img := frame.Image()
	cols, rows := frame.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < litAlpha {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			v.Screen.SetContent(x, y, cellGlyph, nil, style)
		}
	}
}

func (v *Viewer) release() {
	if v.frame != nil {
		v.frame.Close()
		v.frame = nil
	}
}

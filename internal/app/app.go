package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rook-computer/termclock/internal/clock"
	"github.com/rook-computer/termclock/internal/glyph"
	"github.com/rook-computer/termclock/internal/render"
	"github.com/rook-computer/termclock/internal/state"
)

// DefaultInterval is the pause between two frames.
const DefaultInterval = 500 * time.Millisecond

// Clock is the wall-clock source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads local time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type App struct {
	Render    render.Renderer
	Clock     Clock
	Lifecycle *state.Lifecycle
	Store     *state.Store
	Logger    *slog.Logger

	interval atomic.Int64
}

func New(renderer render.Renderer, clk Clock, logger *slog.Logger) *App {
	app := &App{
		Render:    renderer,
		Clock:     clk,
		Lifecycle: state.NewLifecycle(),
		Store:     state.NewStore(),
		Logger:    logger,
	}
	app.interval.Store(int64(DefaultInterval))
	return app
}

// FrameFor composes the face for r.
func FrameFor(r clock.Reading) render.Frame {
	return render.Frame{Reading: r, Grid: glyph.Compose(clock.Pixels(r))}
}

// Interrupt requests the loop to stop. It can be called from any goroutine;
// the loop notices at the latest when the current wait ends.
func (app *App) Interrupt(reason string) {
	if app.Lifecycle.Running() {
		app.Logger.Info("interrupt received", "component", "app", "reason", reason)
	}
	app.Lifecycle.Stop(reason)
}

// InterruptOn calls Interrupt for every reason received on ch until ctx ends
// or ch is closed.
func (app *App) InterruptOn(ctx context.Context, ch <-chan string) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case reason, ok := <-ch:
				if !ok {
					return
				}
				app.Interrupt(reason)
			}
		}
	}()
}

// SetInterval changes the tick interval; it applies from the next wait.
func (app *App) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	if old := app.Interval(); old != d {
		app.Logger.Info("tick interval changed", "component", "app", "from", old, "to", d)
	}
	app.interval.Store(int64(d))
}

func (app *App) Interval() time.Duration { return time.Duration(app.interval.Load()) }

// Tick draws one frame for the current time.
func (app *App) Tick() error {
	now := app.Clock.Now()
	reading := clock.ReadingAt(now)
	frame := FrameFor(reading)
	if err := app.Render.Draw(frame); err != nil {
		return fmt.Errorf("draw %s: %w", reading, err)
	}
	app.Store.RecordFrame(reading, frame.Grid, now)
	app.Logger.Debug("frame drawn", "component", "app", "reading", reading.String())
	return nil
}

// Run starts the renderer and draws a frame every interval until the
// lifecycle stops or ctx ends. The renderer is stopped on the way out, which
// restores the display. A draw error ends the loop and is returned.
func (app *App) Run(ctx context.Context) (err error) {
	if err := app.Render.Start(ctx); err != nil {
		return fmt.Errorf("start renderer: %w", err)
	}
	defer func() {
		if serr := app.Render.Stop(); serr != nil {
			app.Logger.Error("renderer stop failed", "component", "app", "error", serr)
			if err == nil {
				err = serr
			}
		}
	}()

	app.Logger.Info("clock running", "component", "app", "interval", app.Interval())
	timer := time.NewTimer(app.Interval())
	timer.Stop()
	defer timer.Stop()

	for app.Lifecycle.Running() {
		if err := app.Tick(); err != nil {
			app.Lifecycle.Stop("render error")
			return err
		}

		timer.Reset(app.Interval())
		select {
		case <-timer.C:
		case <-app.Lifecycle.Done():
		case <-ctx.Done():
			app.Interrupt("context done")
		}
	}

	snap := app.Store.Snapshot()
	app.Logger.Info("clock stopped", "component", "app", "reason", app.Lifecycle.Reason(), "frames", snap.Frames)
	return nil
}

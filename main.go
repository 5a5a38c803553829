package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rook-computer/termclock/internal/app"
	"github.com/rook-computer/termclock/internal/clock"
	"github.com/rook-computer/termclock/internal/config"
	"github.com/rook-computer/termclock/internal/logger"
	"github.com/rook-computer/termclock/internal/render"
	"github.com/rook-computer/termclock/internal/system"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "optional TOML config file, reloaded on change")
	sink := flag.String("sink", "", "terminal or framebuffer (overrides the config file)")
	pngPath := flag.String("png", "", "write a single frame to this PNG file and exit")
	at := flag.String("at", "", "time drawn by -png as HH:MM (default: now)")
	stderrLog := flag.String("stderr-log", "", "redirect stderr (including panics) to this file; also TERMCLOCK_STDERR_LOG")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "termclock:", err)
		return 1
	}
	if *sink != "" {
		cfg.Sink = *sink
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "termclock:", err)
			return 1
		}
	}

	errPath := *stderrLog
	if errPath == "" {
		errPath = os.Getenv("TERMCLOCK_STDERR_LOG")
	}
	if errPath == "" {
		errPath = cfg.StderrLog
	}
	if err := redirectStderr(errPath); err != nil {
		fmt.Fprintln(os.Stderr, "termclock: stderr redirect:", err)
	}

	level := new(slog.LevelVar)
	level.Set(logger.ParseLevel(cfg.Log.Level))
	log, closer := logger.NewLogger(cfg.Log.Path, level, cfg.Log.MaxSizeMB)
	defer closer.Close()

	if *pngPath != "" {
		return snapshot(*pngPath, *at, log)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := app.New(nil, app.SystemClock{}, log)
	renderer, err := openSink(ctx, cfg, a, log)
	if err != nil {
		logger.Fail(log, "sink setup failed", "component", "main", "sink", cfg.Sink, "error", err)
		fmt.Fprintln(os.Stderr, "termclock:", err)
		return 1
	}
	a.Render = renderer
	a.SetInterval(cfg.Tick())

	if *configPath != "" {
		w, err := config.Watch(*configPath, log, func(c *config.Config) {
			a.SetInterval(c.Tick())
			level.Set(logger.ParseLevel(c.Log.Level))
		})
		if err != nil {
			log.Warn("config watch disabled", "component", "main", "error", err)
		} else {
			defer w.Close()
		}
	}

	signals := signalChannel()
	go func() {
		select {
		case sig := <-signals:
			a.Interrupt(sig.String())
		case <-ctx.Done():
		}
	}()

	log.Info("termclock starting", "component", "main", "sink", cfg.Sink, "interval", a.Interval())
	if err := a.Run(ctx); err != nil {
		logger.Fail(log, "clock failed", "component", "main", "error", err)
		fmt.Fprintln(os.Stderr, "termclock:", err)
		return 1
	}
	return 0
}

// openSink builds the renderer named by cfg.Sink and hooks its interrupt
// sources up to a.
func openSink(ctx context.Context, cfg *config.Config, a *app.App, log *slog.Logger) (render.Renderer, error) {
	switch cfg.Sink {
	case config.SinkFramebuffer:
		if cfg.Framebuffer.ExitKeys {
			system.StartExitOnKeys(ctx, log, system.ExitKeys, func() { a.Interrupt("exit key") })
		}
		return render.NewFBRenderer(cfg.Framebuffer.Device, cfg.Framebuffer.ConsoleGraphics, log), nil
	default:
		if !system.IsTerminal(os.Stdout) {
			log.Warn("stdout is not a terminal", "component", "main")
		}
		term, err := render.NewTcellTerminal()
		if err != nil {
			return nil, err
		}
		a.InterruptOn(ctx, term.Interrupts())
		return render.NewTermRenderer(term, log), nil
	}
}

// snapshot writes one frame to path. at overrides the current time.
func snapshot(path, at string, log *slog.Logger) int {
	reading := clock.ReadingAt(time.Now())
	if at != "" {
		r, err := clock.ParseReading(at)
		if err != nil {
			fmt.Fprintln(os.Stderr, "termclock:", err)
			return 1
		}
		reading = r
	}

	r := render.NewPNGRenderer(path, log)
	err := r.Start(context.Background())
	if err == nil {
		err = r.Draw(app.FrameFor(reading))
		if serr := r.Stop(); err == nil {
			err = serr
		}
	}
	if err != nil {
		logger.Fail(log, "snapshot failed", "component", "main", "path", path, "error", err)
		fmt.Fprintln(os.Stderr, "termclock:", err)
		return 1
	}
	return 0
}

package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/termclock/internal/system"
)

// FBRenderer draws to the Linux framebuffer through an offscreen logical
// canvas that is scaled to the device on every frame.
type FBRenderer struct {
	Device          string
	ConsoleGraphics bool
	Logger          *slog.Logger

	fbDev   *fb.Device
	canvas  *image.RGBA
	caption *Captioner
	running atomic.Bool
}

func NewFBRenderer(device string, consoleGraphics bool, l *slog.Logger) *FBRenderer {
	return &FBRenderer{Device: device, ConsoleGraphics: consoleGraphics, Logger: l}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.Device)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", r.Device, err)
	}
	r.fbDev = dev
	bounds := dev.Bounds()
	r.Logger.Info("framebuffer open", "component", "fb", "device", r.Device, "width", bounds.Dx(), "height", bounds.Dy())

	r.canvas = image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	r.caption = NewCaptioner(r.Logger)

	// Console mode failures leave the kernel cursor blinking but the clock
	// still draws, so they are logged only.
	if r.ConsoleGraphics {
		_ = system.SetGraphicsModeWithLog(r.Logger)
		_ = system.HideCursorWithLog(r.Logger)
	}

	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Draw(f Frame) error {
	if !r.running.Load() || r.fbDev == nil {
		return fmt.Errorf("framebuffer not started")
	}
	if err := PaintFrame(r.canvas, f, r.caption); err != nil {
		return fmt.Errorf("paint frame: %w", err)
	}
	xdraw.NearestNeighbor.Scale(r.fbDev, r.fbDev.Bounds(), r.canvas, r.canvas.Bounds(), xdraw.Src, nil)
	return nil
}

func (r *FBRenderer) Stop() error {
	if !r.running.Swap(false) {
		return nil
	}
	var err error
	if r.ConsoleGraphics {
		err = system.ShowCursorWithLog(r.Logger)
		if merr := system.RestoreTextModeWithLog(r.Logger); err == nil {
			err = merr
		}
	}
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return err
}

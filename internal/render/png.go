package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
)

// PNGRenderer writes every frame to Path as a PNG image. It is used for
// one-shot snapshots where no display is available.
type PNGRenderer struct {
	Path   string
	Logger *slog.Logger

	canvas  *image.RGBA
	caption *Captioner
}

func NewPNGRenderer(path string, l *slog.Logger) *PNGRenderer {
	return &PNGRenderer{Path: path, Logger: l}
}

func (r *PNGRenderer) Start(ctx context.Context) error {
	r.canvas = image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	r.caption = NewCaptioner(r.Logger)
	return nil
}

func (r *PNGRenderer) Draw(f Frame) error {
	if r.canvas == nil {
		return fmt.Errorf("png renderer not started")
	}
	if err := PaintFrame(r.canvas, f, r.caption); err != nil {
		return fmt.Errorf("paint frame: %w", err)
	}
	if err := WriteSnapshot(r.Path, r.canvas); err != nil {
		return err
	}
	r.Logger.Info("snapshot written", "component", "png", "path", r.Path, "reading", f.Reading.String())
	return nil
}

func (r *PNGRenderer) Stop() error { return nil }

// WriteSnapshot encodes img as PNG and moves it into place at path in one
// rename, so readers never see a partial file.
func WriteSnapshot(path string, img image.Image) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := f.Name()
	var success bool
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	success = true
	return nil
}

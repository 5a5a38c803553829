package render

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/rook-computer/termclock/internal/clock"
	"github.com/rook-computer/termclock/internal/glyph"
)

// Frame is what a sink draws on one tick.
type Frame struct {
	Reading clock.Reading
	Grid    glyph.Grid
}

// Renderer is a display sink. Start and Stop bracket any number of Draw
// calls; Stop must restore whatever Start changed on the display.
type Renderer interface {
	Start(ctx context.Context) error
	Draw(f Frame) error
	Stop() error
}

// Terminal is a character display addressed by column and row.
type Terminal interface {
	Clear() error
	MoveTo(col, row int) error
	WriteRune(r rune) error
	HideCursor() error
	ShowCursor() error
	SetColors(fg, bg tcell.Color) error
	Flush() error
	Close() error
}

// TermRenderer repaints every cell of the grid on each Draw. Any Terminal
// error is returned; there is no degraded mode.
type TermRenderer struct {
	Term   Terminal
	Logger *slog.Logger
}

func NewTermRenderer(term Terminal, l *slog.Logger) *TermRenderer {
	return &TermRenderer{Term: term, Logger: l}
}

func (r *TermRenderer) Start(ctx context.Context) error {
	if err := r.Term.SetColors(TermForeground, TermBackground); err != nil {
		return fmt.Errorf("set colors: %w", err)
	}
	if err := r.Term.HideCursor(); err != nil {
		return fmt.Errorf("hide cursor: %w", err)
	}
	r.Logger.Debug("terminal ready", "component", "term")
	return nil
}

func (r *TermRenderer) Draw(f Frame) error {
	if err := r.Term.Clear(); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	for col := 0; col < glyph.Columns; col++ {
		for row := 0; row < glyph.Rows; row++ {
			if err := r.Term.MoveTo(col, row); err != nil {
				return fmt.Errorf("move cursor to %d,%d: %w", col, row, err)
			}
			if err := r.Term.WriteRune(f.Grid.At(col, row).Rune()); err != nil {
				return fmt.Errorf("write cell %d,%d: %w", col, row, err)
			}
		}
	}
	if err := r.Term.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Stop shows the cursor and releases the terminal. The terminal is closed
// even when showing the cursor fails.
func (r *TermRenderer) Stop() error {
	err := r.Term.ShowCursor()
	if err == nil {
		err = r.Term.Flush()
	}
	if cerr := r.Term.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	r.Logger.Debug("terminal restored", "component", "term")
	return nil
}

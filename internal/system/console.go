package system

import (
	"fmt"
	"log/slog"
	"os"
)

const (
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"
)

// vtPaths are tried in order when writing to the active virtual terminal.
var vtPaths = []string{"/dev/tty", "/dev/tty0"}

// HideCursor hides the text cursor of the active VT.
func HideCursor() error { return writeVT(escHideCursor) }

// ShowCursor makes the text cursor of the active VT visible again.
func ShowCursor() error { return writeVT(escShowCursor) }

func HideCursorWithLog(l *slog.Logger) error {
	return withLog(l, "cursor hidden", "hide cursor failed", HideCursor())
}

func ShowCursorWithLog(l *slog.Logger) error {
	return withLog(l, "cursor shown", "show cursor failed", ShowCursor())
}

func SetGraphicsModeWithLog(l *slog.Logger) error {
	return withLog(l, "KD_GRAPHICS set", "KD_GRAPHICS failed", SetGraphicsMode())
}

func RestoreTextModeWithLog(l *slog.Logger) error {
	return withLog(l, "KD_TEXT set", "KD_TEXT failed", RestoreTextMode())
}

func withLog(l *slog.Logger, ok, failed string, err error) error {
	if l == nil {
		return err
	}
	if err != nil {
		l.Error(failed, "component", "tty", "error", err)
	} else {
		l.Debug(ok, "component", "tty")
	}
	return err
}

func writeVT(s string) error {
	var lastErr error
	for _, p := range vtPaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return fmt.Errorf("write VT failed: %w", lastErr)
	}
	return fmt.Errorf("write VT failed: no terminal")
}

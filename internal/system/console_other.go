//go:build !linux

package system

import (
	"errors"
	"os"
)

var errNoKDMode = errors.New("console modes are only available on linux")

func SetGraphicsMode() error { return errNoKDMode }

func RestoreTextMode() error { return errNoKDMode }

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

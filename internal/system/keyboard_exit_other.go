//go:build !linux

package system

import (
	"context"
	"log/slog"
)

// StartExitOnKeys is a no-op outside linux.
func StartExitOnKeys(ctx context.Context, l *slog.Logger, keys []uint16, onExit func()) {}

//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sys/unix"
)

const evKey = 0x01

// StartExitOnKeys watches the evdev devices under /dev/input and calls onExit
// once when any of keys is pressed. Without a terminal in raw mode (the
// framebuffer sink) this is the only way a keypress can stop the clock.
//
// Best effort: if no device can be read it logs and returns.
func StartExitOnKeys(ctx context.Context, l *slog.Logger, keys []uint16, onExit func()) {
	if onExit == nil || len(keys) == 0 {
		return
	}

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		l.Info("no evdev devices for exit keys", "component", "input")
		return
	}

	var once sync.Once
	trigger := func(code uint16) {
		once.Do(func() {
			l.Info("exit key pressed", "component", "input", "code", code)
			onExit()
		})
	}

	for _, path := range paths {
		go watchDevice(ctx, path, eventSize, tvSize, keys, trigger)
	}
}

func watchDevice(ctx context.Context, path string, eventSize, tvSize int, keys []uint16, trigger func(uint16)) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	buf := make([]byte, 64*eventSize)
	for {
		if ctx.Err() != nil {
			return
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			if typ == evKey && value == 1 && slices.Contains(keys, code) {
				trigger(code)
				return
			}
		}
	}
}

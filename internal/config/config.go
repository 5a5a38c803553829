// Package config loads the optional termclock TOML file.
//
// Every field has a default and running without a file reproduces the stock
// clock: terminal output, a 500 ms tick and no log file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Sink names.
const (
	SinkTerminal    = "terminal"
	SinkFramebuffer = "framebuffer"
)

// Config is the top-level configuration.
type Config struct {
	// Sink selects where frames are drawn: "terminal" or "framebuffer".
	Sink string `toml:"sink"`
	// TickMillis is the pause between two frames.
	TickMillis int `toml:"tick_ms"`
	// StderrLog, when set, receives stderr (including panics) so the display
	// is not corrupted by diagnostics.
	StderrLog string `toml:"stderr_log"`

	Framebuffer FramebufferConfig `toml:"framebuffer"`
	Log         LogConfig         `toml:"log"`
}

// FramebufferConfig holds settings for the Linux framebuffer sink.
type FramebufferConfig struct {
	// Device is the framebuffer device path.
	Device string `toml:"device"`
	// ConsoleGraphics switches the active VT to KD_GRAPHICS while drawing.
	ConsoleGraphics bool `toml:"console_graphics"`
	// ExitKeys stops the clock on Esc, Q or F4 read from evdev devices.
	ExitKeys bool `toml:"exit_keys"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Path of the log file. Empty disables logging.
	Path string `toml:"path"`
	// Level is the minimum level (trace, debug, info, warn, error).
	Level string `toml:"level"`
	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `toml:"max_size_mb"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Sink:       SinkTerminal,
		TickMillis: 500,
		Framebuffer: FramebufferConfig{
			Device:          "/dev/fb0",
			ConsoleGraphics: true,
			ExitKeys:        true,
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
	}
}

// Tick returns TickMillis as a duration.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// Load reads path over the defaults. An empty path or a missing file yields
// DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse config: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	switch c.Sink {
	case SinkTerminal, SinkFramebuffer:
	default:
		return fmt.Errorf("invalid sink %q: must be terminal or framebuffer", c.Sink)
	}

	if c.TickMillis < 10 || c.TickMillis > 60_000 {
		return fmt.Errorf("tick_ms must be between 10 and 60000, got %d", c.TickMillis)
	}

	if c.Sink == SinkFramebuffer && c.Framebuffer.Device == "" {
		return fmt.Errorf("framebuffer.device must be set for the framebuffer sink")
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, or error", c.Log.Level)
	}

	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be > 0, got %d", c.Log.MaxSizeMB)
	}

	return nil
}

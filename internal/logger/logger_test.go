package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, LevelInfo))

	log.Info("frame drawn", "reading", "3:00")

	line := strings.TrimRight(buf.String(), "\n")
	if !strings.Contains(line, "[INFO] frame drawn | reading=3:00") {
		t.Errorf("unexpected line %q", line)
	}
	if !strings.HasSuffix(strings.Split(line, " [")[0], "Z") {
		t.Errorf("expected UTC timestamp, got %q", line)
	}
}

func TestHandler_NoAttrs(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler(&buf, LevelInfo)).Info("bare")
	if strings.Contains(buf.String(), "|") {
		t.Errorf("no separator expected without attrs, got %q", buf.String())
	}
}

func TestHandler_LevelVar(t *testing.T) {
	var buf bytes.Buffer
	var lv slog.LevelVar
	lv.Set(LevelWarn)
	log := slog.New(NewHandler(&buf, &lv))

	log.Info("hidden")
	lv.Set(LevelDebug)
	log.Debug("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record passed a warn threshold")
	}
	if !strings.Contains(out, "[DEBUG] shown") {
		t.Errorf("debug record missing after lowering the level: %q", out)
	}
}

func TestComponentAndGroup(t *testing.T) {
	var buf bytes.Buffer
	log := Component(slog.New(NewHandler(&buf, LevelTrace)), "term")
	log.WithGroup("draw").Info("cells", "n", 128)
	Fail(log, "flush failed")

	out := buf.String()
	if !strings.Contains(out, "draw.component=term, draw.n=128") {
		t.Errorf("grouped attrs missing: %q", out)
	}
	if !strings.Contains(out, "[FAIL] flush failed | component=term") {
		t.Errorf("fail record missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"fail", LevelFail},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termclock.log")
	log, closer := NewLogger(path, LevelInfo, 1)
	log.Info("started")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "[INFO] started") {
		t.Errorf("log file content %q", data)
	}
}

func TestNewLogger_EmptyPathDiscards(t *testing.T) {
	log, closer := NewLogger("", LevelTrace, 1)
	if log.Enabled(context.Background(), LevelFail) {
		t.Error("discard logger should not enable any level")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

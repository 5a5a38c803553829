package system

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("regular file reported as terminal")
	}
}

func TestWriteVT_NoTerminal(t *testing.T) {
	saved := vtPaths
	t.Cleanup(func() { vtPaths = saved })

	vtPaths = []string{filepath.Join(t.TempDir(), "missing", "tty")}
	err := HideCursor()
	if err == nil || !strings.Contains(err.Error(), "write VT failed") {
		t.Errorf("HideCursor() = %v, want write VT failure", err)
	}

	vtPaths = nil
	if err := ShowCursor(); err == nil {
		t.Error("ShowCursor() with no paths should fail")
	}
}

func TestWriteVT_File(t *testing.T) {
	saved := vtPaths
	t.Cleanup(func() { vtPaths = saved })

	path := filepath.Join(t.TempDir(), "vt")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	vtPaths = []string{path}

	if err := HideCursor(); err != nil {
		t.Fatalf("HideCursor: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != escHideCursor {
		t.Errorf("wrote %q, want %q", data, escHideCursor)
	}
}

func TestWithLog(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	boom := errors.New("boom")
	if err := withLog(l, "done", "broke", boom); err != boom {
		t.Errorf("withLog returned %v, want the original error", err)
	}
	if err := withLog(l, "done", "broke", nil); err != nil {
		t.Errorf("withLog returned %v, want nil", err)
	}
	if err := withLog(nil, "done", "broke", boom); err != boom {
		t.Errorf("nil logger: got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "msg=broke") || !strings.Contains(out, "error=boom") {
		t.Errorf("error record missing: %q", out)
	}
	if !strings.Contains(out, "msg=done") {
		t.Errorf("success record missing: %q", out)
	}
}

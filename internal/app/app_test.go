package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/termclock/internal/clock"
	"github.com/rook-computer/termclock/internal/glyph"
	"github.com/rook-computer/termclock/internal/logger"
	"github.com/rook-computer/termclock/internal/render"
	"github.com/rook-computer/termclock/internal/state"
)

// ///////////////////////////////////////////////
// Fakes
// ///////////////////////////////////////////////

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeRenderer struct {
	mu       sync.Mutex
	frames   []render.Frame
	started  bool
	stopped  bool
	startErr error
	drawErr  error
	onDraw   func(n int)
}

func (r *fakeRenderer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.startErr != nil {
		return r.startErr
	}
	r.started = true
	return nil
}

func (r *fakeRenderer) Draw(f render.Frame) error {
	r.mu.Lock()
	if r.drawErr != nil {
		r.mu.Unlock()
		return r.drawErr
	}
	r.frames = append(r.frames, f)
	n := len(r.frames)
	r.mu.Unlock()
	if r.onDraw != nil {
		r.onDraw(n)
	}
	return nil
}

func (r *fakeRenderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	return nil
}

func (r *fakeRenderer) frameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

var threePM = fixedClock{t: time.Date(2024, 3, 1, 15, 0, 10, 0, time.Local)}

func newTestApp(r render.Renderer) *App {
	a := New(r, threePM, logger.Discard())
	a.SetInterval(time.Millisecond)
	return a
}

// ///////////////////////////////////////////////
// Run
// ///////////////////////////////////////////////

func TestRun_StopsOnInterrupt(t *testing.T) {
	r := &fakeRenderer{}
	a := newTestApp(r)
	r.onDraw = func(n int) {
		if n == 3 {
			a.Interrupt("test")
		}
	}

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !r.started || !r.stopped {
		t.Errorf("started=%v stopped=%v, want both", r.started, r.stopped)
	}
	if r.frameCount() != 3 {
		t.Errorf("frames = %d, want 3", r.frameCount())
	}
	if a.Lifecycle.Phase() != state.STOPPED || a.Lifecycle.Reason() != "test" {
		t.Errorf("phase=%v reason=%q", a.Lifecycle.Phase(), a.Lifecycle.Reason())
	}
	if snap := a.Store.Snapshot(); snap.Frames != 3 || snap.Reading != clock.NewReading(3, 0) {
		t.Errorf("store snapshot = %+v", snap)
	}
}

func TestRun_InterruptCutsWaitShort(t *testing.T) {
	r := &fakeRenderer{}
	a := New(r, threePM, logger.Discard())
	a.SetInterval(time.Hour)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for r.frameCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	a.Interrupt("signal")

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Interrupt")
	}
	if r.frameCount() != 1 {
		t.Errorf("frames = %d, want 1", r.frameCount())
	}
}

func TestRun_ContextCancel(t *testing.T) {
	r := &fakeRenderer{}
	a := New(r, threePM, logger.Discard())
	a.SetInterval(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	r.onDraw = func(int) { cancel() }
	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.Lifecycle.Running() {
		t.Error("lifecycle still running after context cancel")
	}
	if !r.stopped {
		t.Error("renderer not stopped")
	}
}

func TestRun_DrawErrorIsFatal(t *testing.T) {
	r := &fakeRenderer{drawErr: errors.New("tty gone")}
	a := newTestApp(r)

	err := a.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "tty gone") || !strings.Contains(err.Error(), "draw 3:00") {
		t.Fatalf("Run error = %v", err)
	}
	if !r.stopped {
		t.Error("renderer must be stopped after a draw error")
	}
	if a.Lifecycle.Running() {
		t.Error("lifecycle must be stopped after a draw error")
	}
}

func TestRun_StartError(t *testing.T) {
	r := &fakeRenderer{startErr: errors.New("no tty")}
	a := newTestApp(r)

	err := a.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "start renderer: no tty") {
		t.Fatalf("Run error = %v", err)
	}
	if r.stopped || r.frameCount() != 0 {
		t.Error("nothing may be drawn or stopped when Start fails")
	}
}

func TestRun_AlreadyStopped(t *testing.T) {
	r := &fakeRenderer{}
	a := newTestApp(r)
	a.Interrupt("before start")
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.frameCount() != 0 {
		t.Errorf("frames = %d, want 0", r.frameCount())
	}
	if !r.stopped {
		t.Error("renderer must still be restored")
	}
}

// ///////////////////////////////////////////////
// Interrupt sources and interval
// ///////////////////////////////////////////////

func TestInterruptOn(t *testing.T) {
	a := newTestApp(&fakeRenderer{})
	ch := make(chan string, 1)
	a.InterruptOn(context.Background(), ch)
	ch <- "ctrl-c"

	select {
	case <-a.Lifecycle.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("interrupt not delivered")
	}
	if a.Lifecycle.Reason() != "ctrl-c" {
		t.Errorf("Reason() = %q", a.Lifecycle.Reason())
	}
}

func TestSetInterval(t *testing.T) {
	a := New(&fakeRenderer{}, threePM, logger.Discard())
	if a.Interval() != DefaultInterval {
		t.Fatalf("Interval() = %v, want %v", a.Interval(), DefaultInterval)
	}
	a.SetInterval(0)
	a.SetInterval(-time.Second)
	if a.Interval() != DefaultInterval {
		t.Errorf("non-positive interval accepted: %v", a.Interval())
	}
	a.SetInterval(250 * time.Millisecond)
	if a.Interval() != 250*time.Millisecond {
		t.Errorf("Interval() = %v, want 250ms", a.Interval())
	}
}

// ///////////////////////////////////////////////
// Frames
// ///////////////////////////////////////////////

func TestTick_UsesClock(t *testing.T) {
	r := &fakeRenderer{}
	a := newTestApp(r)
	if err := a.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	f := r.frames[0]
	if f.Reading != clock.NewReading(3, 0) {
		t.Errorf("reading = %+v, want 3:00", f.Reading)
	}
	if got, want := f.Grid.Row(4), " █      ▀▀▀▀   █"; got != want {
		t.Errorf("row 4 = %q, want %q", got, want)
	}
}

func TestFrameFor_Noon(t *testing.T) {
	f := FrameFor(clock.NewReading(12, 0))
	want := []glyph.Cell{glyph.Lower, glyph.Lower, glyph.Full, glyph.Full, glyph.Upper, glyph.Space, glyph.Space, glyph.Lower}
	for row, w := range want {
		if got := f.Grid.At(8, row); got != w {
			t.Errorf("column 8 row %d = %q, want %q", row, got.Rune(), w.Rune())
		}
	}
	// the dial is symmetric around column 8, so rows 5..6 show it at equal distance
	for row := 5; row <= 6; row++ {
		line := []rune(f.Grid.Row(row))
		for d := 1; d <= 7; d++ {
			if (line[8-d] == ' ') != (line[8+d] == ' ') {
				t.Errorf("row %d not symmetric at distance %d: %q", row, d, string(line))
			}
		}
	}
}

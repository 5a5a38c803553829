package state

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/termclock/internal/clock"
	"github.com/rook-computer/termclock/internal/glyph"
)

type Phase int

const (
	RUNNING Phase = iota
	STOPPED
)

func (p Phase) String() string {
	if p == STOPPED {
		return "stopped"
	}
	return "running"
}

// Lifecycle is the run flag shared between the tick loop and interrupt
// sources. It starts RUNNING; Stop moves it to STOPPED and there is no way back.
type Lifecycle struct {
	stopped atomic.Bool
	once    sync.Once
	done    chan struct{}
	reason  atomic.Value
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{done: make(chan struct{})}
}

// Stop requests termination. Safe to call from any goroutine, any number of
// times; only the first reason is kept.
func (l *Lifecycle) Stop(reason string) {
	l.once.Do(func() {
		l.reason.Store(reason)
		l.stopped.Store(true)
		close(l.done)
	})
}

func (l *Lifecycle) Running() bool { return !l.stopped.Load() }

func (l *Lifecycle) Phase() Phase {
	if l.stopped.Load() {
		return STOPPED
	}
	return RUNNING
}

// Done is closed once Stop has been called.
func (l *Lifecycle) Done() <-chan struct{} { return l.done }

// Reason returns the reason passed to the first Stop call, or "".
func (l *Lifecycle) Reason() string {
	r, _ := l.reason.Load().(string)
	return r
}

// State is the last frame drawn.
type State struct {
	Reading  clock.Reading
	Grid     glyph.Grid
	Frames   int
	LastDraw time.Time
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

// RecordFrame stores a drawn frame and bumps the frame counter.
func (store *Store) RecordFrame(reading clock.Reading, grid glyph.Grid, at time.Time) {
	store.mu.Lock()
	store.state.Reading = reading
	store.state.Grid = grid
	store.state.LastDraw = at
	store.state.Frames++
	store.mu.Unlock()
}

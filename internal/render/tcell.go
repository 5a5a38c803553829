package render

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
)

var errTerminalClosed = errors.New("terminal closed")

// TcellTerminal implements Terminal on a tcell screen.
//
// tcell puts the tty in raw mode, so Ctrl-C arrives as a key event instead of
// SIGINT. A poller forwards Ctrl-C, Esc and q to Interrupts.
type TcellTerminal struct {
	screen tcell.Screen
	style  tcell.Style

	mu       sync.Mutex
	col, row int
	closed   bool

	interrupts chan string
	pollDone   chan struct{}
	closeOnce  sync.Once
}

// NewTcellTerminal opens the controlling terminal.
func NewTcellTerminal() (*TcellTerminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTcellTerminalOn(s)
}

// NewTcellTerminalOn initialises s and starts the key poller.
func NewTcellTerminalOn(s tcell.Screen) (*TcellTerminal, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	t := &TcellTerminal{
		screen:     s,
		style:      tcell.StyleDefault,
		interrupts: make(chan string, 1),
		pollDone:   make(chan struct{}),
	}
	go t.poll()
	return t, nil
}

// Interrupts receives a reason whenever an interrupt key is pressed.
func (t *TcellTerminal) Interrupts() <-chan string { return t.interrupts }

func (t *TcellTerminal) poll() {
	defer close(t.pollDone)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			var reason string
			switch {
			case ev.Key() == tcell.KeyCtrlC:
				reason = "ctrl-c"
			case ev.Key() == tcell.KeyEscape:
				reason = "esc"
			case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
				reason = "q"
			default:
				continue
			}
			select {
			case t.interrupts <- reason:
			default:
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *TcellTerminal) check() error {
	if t.closed {
		return errTerminalClosed
	}
	return nil
}

func (t *TcellTerminal) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(); err != nil {
		return err
	}
	t.screen.Clear()
	t.col, t.row = 0, 0
	return nil
}

func (t *TcellTerminal) MoveTo(col, row int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(); err != nil {
		return err
	}
	t.col, t.row = col, row
	return nil
}

// WriteRune puts r at the cursor and advances one column.
func (t *TcellTerminal) WriteRune(r rune) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(); err != nil {
		return err
	}
	t.screen.SetContent(t.col, t.row, r, nil, t.style)
	t.col++
	return nil
}

func (t *TcellTerminal) HideCursor() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(); err != nil {
		return err
	}
	t.screen.HideCursor()
	return nil
}

func (t *TcellTerminal) ShowCursor() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(); err != nil {
		return err
	}
	t.screen.ShowCursor(t.col, t.row)
	return nil
}

// SetColors changes the style used by later writes and by Clear.
func (t *TcellTerminal) SetColors(fg, bg tcell.Color) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(); err != nil {
		return err
	}
	t.style = tcell.StyleDefault.Foreground(fg).Background(bg)
	t.screen.SetStyle(t.style)
	return nil
}

func (t *TcellTerminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(); err != nil {
		return err
	}
	t.screen.Show()
	return nil
}

// Close restores the terminal and stops the key poller.
func (t *TcellTerminal) Close() error {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.closed = true
		t.mu.Unlock()
		t.screen.Fini()
		<-t.pollDone
	})
	return nil
}

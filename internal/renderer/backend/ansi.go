package backend

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	seqAltScreenOn  = "\x1b[?1049h"
	seqAltScreenOff = "\x1b[?1049l"
	seqCursorReset  = "\x1b[0 q\x1b[?25h"
)

// Default size reported when the terminal cannot be queried.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// ANSI implements Backend directly on a raw-mode terminal. Input bytes
// are decoded into key events and SIGWINCH produces resize events.
type ANSI struct {
	in  *os.File
	out *os.File

	mu      sync.Mutex
	state   *term.State
	started bool

	events     chan Event
	done       chan struct{}
	eof        chan struct{}
	closeOnce  sync.Once
	stopResize func()
}

// NewANSI creates a backend reading keys from in and writing terminal
// modes to out. Frames are written separately by a WriterSink on out.
func NewANSI(in, out *os.File) *ANSI {
	return &ANSI{
		in:     in,
		out:    out,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
		eof:    make(chan struct{}),
	}
}

// Init switches the terminal to raw mode and the alternate screen.
func (a *ANSI) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	fd := int(a.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	a.state = state
	if _, err := io.WriteString(a.out, seqAltScreenOn); err != nil {
		_ = term.Restore(fd, state)
		return err
	}

	a.started = true
	a.stopResize = a.watchResize()
	go a.readLoop()
	return nil
}

// Shutdown leaves the alternate screen and restores the terminal mode.
func (a *ANSI) Shutdown() {
	a.closeOnce.Do(func() {
		close(a.done)

		a.mu.Lock()
		defer a.mu.Unlock()
		if !a.started {
			return
		}
		a.stopResize()
		_, _ = io.WriteString(a.out, seqAltScreenOff+seqCursorReset)
		_ = term.Restore(int(a.in.Fd()), a.state)
	})
}

func (a *ANSI) Size() (int, int) {
	w, h, err := term.GetSize(int(a.out.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

func (a *ANSI) PollEvent() Event {
	select {
	case ev := <-a.events:
		return ev
	default:
	}
	select {
	case ev := <-a.events:
		return ev
	case <-a.done:
		return Event{Type: EventClosed}
	case <-a.eof:
		return Event{Type: EventClosed}
	}
}

// readLoop decodes input until it fails or the backend shuts down. A
// read already in progress at shutdown stays blocked until the next
// byte arrives; its result is discarded.
func (a *ANSI) readLoop() {
	defer close(a.eof)

	buf := make([]byte, 256)
	var pending []byte
	for {
		n, err := a.in.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			var events []Event
			events, pending = decode(pending)
			pending = append([]byte(nil), pending...)
			for _, ev := range events {
				if !a.post(ev) {
					return
				}
			}
		}
		if err != nil {
			return
		}
	}
}

// post delivers ev unless the backend has shut down.
func (a *ANSI) post(ev Event) bool {
	select {
	case a.events <- ev:
		return true
	case <-a.done:
		return false
	}
}

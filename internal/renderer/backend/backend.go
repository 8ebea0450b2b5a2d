// Package backend provides the terminal collaborators of the editor: input
// sources that produce key and resize events, and sinks that display frames.
package backend

import (
	"errors"
	"sync"

	"github.com/dshills/modal/internal/input/key"
)

// ErrNotTerminal is returned by Init when the input is not a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventClosed is returned by PollEvent once the backend has been shut
	// down or its input has ended. No further events follow.
	EventClosed
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	case EventClosed:
		return "closed"
	default:
		return "none"
	}
}

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  key.Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int
}

// KeyEvent returns a key event for k.
func KeyEvent(k key.Key, r rune, mod ModMask) Event {
	return Event{Type: EventKey, Key: k, Rune: r, Mod: mod}
}

// RuneEvent returns a key event for an unmodified character.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: key.KeyRune, Rune: r}
}

// ResizeEvent returns a resize event.
func ResizeEvent(width, height int) Event {
	return Event{Type: EventResize, Width: width, Height: height}
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend is an input source bound to a terminal.
type Backend interface {
	// Init prepares the terminal for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown restores the terminal and unblocks PollEvent.
	// Safe to call more than once.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call. After Shutdown it returns EventClosed.
	PollEvent() Event
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	events        chan Event
	done          chan struct{}
	closeOnce     sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 256),
		done:   make(chan struct{}),
	}
}

func (b *NullBackend) Init() error { return nil }

func (b *NullBackend) Shutdown() {
	b.closeOnce.Do(func() { close(b.done) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) PollEvent() Event {
	// Queued events drain before the closed state is reported.
	select {
	case ev := <-b.events:
		return ev
	default:
	}
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return Event{Type: EventClosed}
	}
}

// PostEvent queues an event. It blocks if the queue is full.
func (b *NullBackend) PostEvent(event Event) {
	b.events <- event
}

// PostKeys queues one key event per character of s.
func (b *NullBackend) PostKeys(s string) {
	for _, r := range s {
		b.PostEvent(RuneEvent(r))
	}
}

// Resize simulates a terminal resize.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.mu.Unlock()
	b.PostEvent(ResizeEvent(width, height))
}

package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/dshills/modal/internal/engine/buffer"
	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/renderer/viewport"
)

// Engine is the editor state machine.
type Engine struct {
	buffers []*buffer.Buffer
	curBuf  int

	cursor cursor.Cursor
	scroll viewport.Scroll
	size   viewport.Size
	mode   mode.Mode

	running          bool
	dirty            atomic.Bool
	unknownKeysDirty bool
}

// New creates an engine editing content in a window of width x height
// cells. The engine starts running, in Normal mode, with the cursor at
// the origin and the screen dirty so the first frame is drawn.
func New(content string, width, height int, opts ...Option) *Engine {
	e := &Engine{
		buffers:          []*buffer.Buffer{buffer.New(content)},
		size:             viewport.NewSize(width, height),
		mode:             mode.Normal,
		running:          true,
		unknownKeysDirty: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.dirty.Store(true)
	return e
}

// Event handling

// HandleKey applies one key event. Reports whether the key has a binding
// in the current mode.
func (e *Engine) HandleKey(ev key.Event) bool {
	var handled bool
	switch e.mode {
	case mode.Insert:
		handled = e.handleInsert(ev)
	default:
		handled = e.handleNormal(ev)
	}

	if !handled && e.unknownKeysDirty {
		e.MarkDirty()
	}
	e.checkInvariants()
	return handled
}

// HandleResize records a new window size and re-applies the scroll
// policy, since the cursor may now lie outside the window.
func (e *Engine) HandleResize(width, height int) {
	e.size = viewport.NewSize(width, height)
	e.scroll.Follow(e.cursor.Col, e.cursor.Row, e.size)
	e.MarkDirty()
	e.checkInvariants()
}

func (e *Engine) handleNormal(ev key.Event) bool {
	switch {
	case ev.Key == key.KeyEscape:
		e.running = false
	case ev.Is('i'):
		e.setMode(mode.Insert)
	case ev.Is('a'):
		e.setMode(mode.Insert)
		e.moveRight()
	case ev.Is('h'), ev.Key == key.KeyLeft:
		e.moveLeft()
	case ev.Is('j'), ev.Key == key.KeyDown:
		e.moveDown()
	case ev.Is('k'), ev.Key == key.KeyUp:
		e.moveUp()
	case ev.Is('l'), ev.Key == key.KeyRight:
		e.moveRight()
	default:
		return false
	}
	return true
}

func (e *Engine) handleInsert(ev key.Event) bool {
	switch {
	case ev.Key == key.KeyEscape:
		e.setMode(mode.Normal)
		e.cursor.ClampCol(e.maxCol(e.cursor.Row))
		e.cursorMoved()
	case ev.Key == key.KeyEnter:
		e.buf().Insert(e.cursor.Col, e.cursor.Row, '\n')
		e.cursor.Row++
		e.cursor.SetCol(0)
		e.cursorMoved()
	case ev.Key == key.KeyBackspace:
		e.backspace()
	case ev.Key == key.KeyLeft:
		e.moveLeft()
	case ev.Key == key.KeyDown:
		e.moveDown()
	case ev.Key == key.KeyUp:
		e.moveUp()
	case ev.Key == key.KeyRight:
		e.moveRight()
	case ev.IsChar():
		e.buf().Insert(e.cursor.Col, e.cursor.Row, ev.Rune)
		e.cursor.MoveRight(e.maxCol(e.cursor.Row))
		e.cursorMoved()
	default:
		return false
	}
	return true
}

func (e *Engine) backspace() {
	buf := e.buf()
	switch {
	case e.cursor.Col > 0:
		buf.Remove(e.cursor.Col, e.cursor.Row)
		e.cursor.MoveLeft()
	case e.cursor.Row > 0:
		joinCol := buf.RowLen(e.cursor.Row - 1)
		buf.Remove(0, e.cursor.Row)
		e.cursor.Row--
		e.cursor.SetCol(joinCol)
	default:
		return
	}
	e.cursorMoved()
}

// Cursor movement

func (e *Engine) moveLeft() {
	if e.cursor.MoveLeft() {
		e.cursorMoved()
	}
}

func (e *Engine) moveRight() {
	if e.cursor.MoveRight(e.maxCol(e.cursor.Row)) {
		e.cursorMoved()
	}
}

func (e *Engine) moveUp() {
	if e.cursor.Row == 0 {
		return
	}
	if e.cursor.MoveUp(e.maxCol(e.cursor.Row - 1)) {
		e.cursorMoved()
	}
}

func (e *Engine) moveDown() {
	rows := e.buf().NumRows()
	if e.cursor.Row+1 >= rows {
		return
	}
	if e.cursor.MoveDown(e.maxCol(e.cursor.Row+1), rows) {
		e.cursorMoved()
	}
}

// cursorMoved applies the scroll policy and marks the screen dirty.
func (e *Engine) cursorMoved() {
	e.scroll.Follow(e.cursor.Col, e.cursor.Row, e.size)
	e.MarkDirty()
}

func (e *Engine) setMode(m mode.Mode) {
	if e.mode == m {
		return
	}
	e.mode = m
	e.MarkDirty()
}

// maxCol returns the column bound of row in the current mode.
func (e *Engine) maxCol(row int) int {
	return mode.MaxCol(e.mode, e.buf().RowLen(row))
}

func (e *Engine) buf() *buffer.Buffer {
	return e.buffers[e.curBuf]
}

// checkInvariants panics if the cursor is outside the buffer, beyond the
// column bound of its mode, or outside the window.
func (e *Engine) checkInvariants() {
	rows := e.buf().NumRows()
	if e.cursor.Row < 0 || e.cursor.Row >= rows {
		panic(&InvariantError{Rule: "cursor row", Detail: fmt.Sprintf("%v with %d rows", e.cursor, rows)})
	}
	if limit := e.maxCol(e.cursor.Row); e.cursor.Col < 0 || e.cursor.Col > limit {
		panic(&InvariantError{Rule: "cursor column", Detail: fmt.Sprintf("%v beyond %d in %v mode", e.cursor, limit, e.mode)})
	}
	if !e.scroll.Contains(e.cursor.Col, e.cursor.Row, e.size) {
		panic(&InvariantError{Rule: "cursor visible", Detail: fmt.Sprintf("%v outside %v of %v", e.cursor, e.scroll, e.size)})
	}
}

// State

// Running returns false once the editor has been asked to stop.
func (e *Engine) Running() bool {
	return e.running
}

// Stop asks the editor to stop.
func (e *Engine) Stop() {
	e.running = false
}

// Dirty returns true if the last rendered frame is stale.
func (e *Engine) Dirty() bool {
	return e.dirty.Load()
}

// MarkDirty records that a repaint is owed.
func (e *Engine) MarkDirty() {
	e.dirty.Store(true)
}

// SetUnknownKeysDirty changes whether keys with no binding mark the
// screen dirty.
func (e *Engine) SetUnknownKeysDirty(dirty bool) {
	e.unknownKeysDirty = dirty
}

// Mode returns the current mode.
func (e *Engine) Mode() mode.Mode {
	return e.mode
}

// Cursor returns a copy of the cursor.
func (e *Engine) Cursor() cursor.Cursor {
	return e.cursor
}

// Scroll returns the scroll offset.
func (e *Engine) Scroll() viewport.Scroll {
	return e.scroll
}

// Size returns the window size.
func (e *Engine) Size() viewport.Size {
	return e.size
}

// Text returns the content of the active buffer.
func (e *Engine) Text() string {
	return e.buf().Text()
}

// NumRows returns the row count of the active buffer.
func (e *Engine) NumRows() int {
	return e.buf().NumRows()
}

// BufferCount returns the number of buffers held by the engine.
func (e *Engine) BufferCount() int {
	return len(e.buffers)
}

// Snapshots

// Snapshot is a self-contained copy of everything needed to draw a frame.
// It shares nothing mutable with the engine.
type Snapshot struct {
	Size   viewport.Size
	Scroll viewport.Scroll
	Cursor cursor.Cursor
	Mode   mode.Mode
	Buffer *buffer.Buffer
}

// Snapshot copies the state needed for rendering.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Size:   e.size,
		Scroll: e.scroll,
		Cursor: e.cursor,
		Mode:   e.mode,
		Buffer: e.buf().Clone(),
	}
}

// TakeSnapshot copies the state and clears the dirty flag. Reports
// whether the flag was set.
func (e *Engine) TakeSnapshot() (Snapshot, bool) {
	snap := e.Snapshot()
	return snap, e.dirty.Swap(false)
}

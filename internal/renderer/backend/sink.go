package backend

import (
	"errors"
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/renderer"
)

// ErrNoScreen is returned by a ScreenSink without a screen.
var ErrNoScreen = errors.New("screen sink has no screen")

// Sink displays frames.
type Sink interface {
	// WriteFrame displays f. A failed write is not retried.
	WriteFrame(f *renderer.Frame) error
}

type flusher interface {
	Flush() error
}

// WriterSink writes the byte form of each frame to an io.Writer.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing to w. If w has a Flush method it
// is called after each frame.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) WriteFrame(f *renderer.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := f.WriteTo(s.w); err != nil {
		return err
	}
	if fl, ok := s.w.(flusher); ok {
		return fl.Flush()
	}
	return nil
}

// ScreenSink paints frames into a tcell screen.
type ScreenSink struct {
	screen tcell.Screen
}

// NewScreenSink creates a sink drawing on screen.
func NewScreenSink(screen tcell.Screen) *ScreenSink {
	return &ScreenSink{screen: screen}
}

func (s *ScreenSink) WriteFrame(f *renderer.Frame) error {
	if s.screen == nil {
		return ErrNoScreen
	}

	cursorCell := f.CursorX
	for y, row := range f.Rows {
		x := 0
		for col, r := range []rune(row) {
			if y == f.CursorY && col == f.CursorX {
				cursorCell = x
			}
			if x >= f.Width {
				break
			}
			s.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
			x += cellWidth(r)
		}
		for ; x < f.Width; x++ {
			s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}

	if f.CursorStyle() == mode.CursorBar {
		s.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	} else {
		s.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	}
	s.screen.ShowCursor(min(cursorCell, f.Width-1), f.CursorY)
	s.screen.Show()
	return nil
}

// cellWidth returns the number of cells r occupies. Zero-width runes
// still take a cell so that the grid stays aligned.
func cellWidth(r rune) int {
	return max(runewidth.RuneWidth(r), 1)
}

package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/dshills/modal/internal/input/mode"
)

// Control sequences written around the grid.
const (
	seqCursorBlock = "\x1b[2 q"
	seqCursorBar   = "\x1b[5 q"
	seqCursorHide  = "\x1b[?25l"
	seqCursorShow  = "\x1b[?25h"
	seqHome        = "\x1b[0;0H"
	rowSeparator   = "\r\n"
)

// Frame is one complete screen image.
type Frame struct {
	// Width and Height are the window size in cells.
	Width  int
	Height int

	// Rows holds exactly Height rows of exactly Width characters each.
	Rows []string

	// CursorX and CursorY are the cursor position relative to the
	// viewport's top-left corner.
	CursorX int
	CursorY int

	// Mode is the editing mode the frame was captured in.
	Mode mode.Mode
}

// CursorStyle returns the cursor style for the frame's mode.
func (f *Frame) CursorStyle() mode.CursorStyle {
	return f.Mode.CursorStyle()
}

// Bytes returns the terminal byte form of the frame.
func (f *Frame) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(f.sizeHint())

	if f.CursorStyle() == mode.CursorBar {
		buf.WriteString(seqCursorBar)
	} else {
		buf.WriteString(seqCursorBlock)
	}
	buf.WriteString(seqCursorHide)
	buf.WriteString(seqHome)

	for i, row := range f.Rows {
		if i > 0 {
			buf.WriteString(rowSeparator)
		}
		buf.WriteString(row)
	}

	buf.WriteString("\x1b[")
	buf.WriteString(strconv.Itoa(f.CursorY + 1))
	buf.WriteByte(';')
	buf.WriteString(strconv.Itoa(f.CursorX + 1))
	buf.WriteByte('H')
	buf.WriteString(seqCursorShow)

	return buf.Bytes()
}

// WriteTo writes the byte form of the frame to w in a single write.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}

// String returns a short description of the frame, not its content.
func (f *Frame) String() string {
	return fmt.Sprintf("Frame(%dx%d cursor %d:%d %v)", f.Width, f.Height, f.CursorX, f.CursorY, f.Mode)
}

func (f *Frame) sizeHint() int {
	return 64 + f.Height*(f.Width+len(rowSeparator))
}

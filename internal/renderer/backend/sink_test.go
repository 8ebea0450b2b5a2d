package backend

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/renderer"
)

func testFrame() *renderer.Frame {
	return &renderer.Frame{
		Width:   4,
		Height:  2,
		Rows:    []string{"ab  ", "cXd "},
		CursorX: 2,
		CursorY: 1,
		Mode:    mode.Insert,
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	f := testFrame()
	if err := sink.WriteFrame(f); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), f.Bytes()) {
		t.Errorf("sink wrote %q, want %q", buf.Bytes(), f.Bytes())
	}
}

func TestWriterSinkFlushes(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriterSize(&buf, 4096)
	sink := NewWriterSink(w)

	if err := sink.WriteFrame(testFrame()); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("frame was not flushed to the underlying writer")
	}
}

var errBroken = errors.New("broken pipe")

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestWriterSinkError(t *testing.T) {
	sink := NewWriterSink(brokenWriter{})
	if err := sink.WriteFrame(testFrame()); !errors.Is(err, errBroken) {
		t.Errorf("expected write error, got %v", err)
	}
}

func TestScreenSink(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(4, 2)

	sink := NewScreenSink(screen)
	if err := sink.WriteFrame(testFrame()); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	cells, w, _ := screen.GetContents()
	var row1 []rune
	for x := 0; x < 4; x++ {
		row1 = append(row1, cells[w+x].Runes...)
	}
	if string(row1) != "cXd " {
		t.Errorf("row 1 = %q, want %q", string(row1), "cXd ")
	}

	x, y, visible := screen.GetCursor()
	if x != 2 || y != 1 || !visible {
		t.Errorf("cursor = (%d, %d, %v), want (2, 1, true)", x, y, visible)
	}
}

func TestScreenSinkWideRunes(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(6, 1)

	f := &renderer.Frame{
		Width:   6,
		Height:  1,
		Rows:    []string{"日本ab"},
		CursorX: 2,
		Mode:    mode.Normal,
	}
	if err := NewScreenSink(screen).WriteFrame(f); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	x, _, _ := screen.GetCursor()
	if x != 4 {
		t.Errorf("cursor cell = %d, want 4", x)
	}
}

func TestScreenSinkNoScreen(t *testing.T) {
	if err := NewScreenSink(nil).WriteFrame(testFrame()); !errors.Is(err, ErrNoScreen) {
		t.Errorf("expected ErrNoScreen, got %v", err)
	}
}

func TestCellWidth(t *testing.T) {
	tests := map[rune]int{
		'a':      1,
		'日':      2,
		'\u0301': 1,
	}
	for r, want := range tests {
		if got := cellWidth(r); got != want {
			t.Errorf("cellWidth(%q) = %d, want %d", r, got, want)
		}
	}
}

package renderer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dshills/modal/internal/engine"
	"github.com/dshills/modal/internal/engine/buffer"
	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/renderer/viewport"
)

func snapshot(content string, w, h int) engine.Snapshot {
	return engine.Snapshot{
		Size:   viewport.NewSize(w, h),
		Buffer: buffer.New(content),
		Mode:   mode.Normal,
	}
}

func TestRenderPadsRowsAndWindow(t *testing.T) {
	f := Render(snapshot("ab\ncd", 4, 3))

	want := []string{"ab  ", "cd  ", "    "}
	if len(f.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(f.Rows))
	}
	for i := range want {
		if f.Rows[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, f.Rows[i], want[i])
		}
	}
}

func TestRenderClipsToScroll(t *testing.T) {
	snap := snapshot("0123456789\nab\nxyz0123456", 4, 2)
	snap.Scroll = viewport.Scroll{X: 3, Y: 1}
	snap.Cursor = cursor.At(5, 2)

	f := Render(snap)

	want := []string{"    ", "0123"}
	for i := range want {
		if f.Rows[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, f.Rows[i], want[i])
		}
	}
	if f.CursorX != 2 || f.CursorY != 1 {
		t.Errorf("expected cursor (2,1), got (%d,%d)", f.CursorX, f.CursorY)
	}
}

func TestRenderMultibyteClip(t *testing.T) {
	snap := snapshot("日本語テキスト", 3, 1)
	snap.Scroll = viewport.Scroll{X: 2}

	f := Render(snap)
	if f.Rows[0] != "語テキ" {
		t.Errorf("row = %q, want %q", f.Rows[0], "語テキ")
	}
}

func TestRenderTabIndentedRows(t *testing.T) {
	f := Render(engine.New("\tfunc main() {\n\treturn\n}", 10, 3).Snapshot())

	want := []string{" func main", " return   ", "}         "}
	for i := range want {
		if f.Rows[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, f.Rows[i], want[i])
		}
	}
	if bytes.ContainsAny(f.Bytes(), "\t") {
		t.Error("frame bytes contain a raw tab")
	}
}

func TestCellRune(t *testing.T) {
	tests := []struct {
		in, want rune
	}{
		{'a', 'a'},
		{'日', '日'},
		{' ', ' '},
		{'\t', ' '},
		{'\x00', ' '},
		{'\x1b', ' '},
		{'\u200b', ' '},
	}
	for _, tt := range tests {
		if got := cellRune(tt.in); got != tt.want {
			t.Errorf("cellRune(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderRowsHaveWindowWidth(t *testing.T) {
	contents := []string{"", "a", "héllo wörld\n\n日本", "\n\n\n\n\n\n\n"}
	for _, content := range contents {
		for w := 1; w <= 6; w++ {
			for h := 1; h <= 4; h++ {
				f := Render(snapshot(content, w, h))
				if len(f.Rows) != h {
					t.Fatalf("%q at %dx%d: %d rows", content, w, h, len(f.Rows))
				}
				for i, row := range f.Rows {
					if n := utf8.RuneCountInString(row); n != w {
						t.Errorf("%q at %dx%d: row %d has %d chars", content, w, h, i, n)
					}
				}
			}
		}
	}
}

func TestFrameBytes(t *testing.T) {
	f := &Frame{
		Width:   2,
		Height:  2,
		Rows:    []string{"ab", "  "},
		CursorX: 1,
		CursorY: 0,
		Mode:    mode.Normal,
	}

	want := "\x1b[2 q\x1b[?25l\x1b[0;0Hab\r\n  \x1b[1;2H\x1b[?25h"
	if got := string(f.Bytes()); got != want {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
}

func TestFrameBytesInsertCursor(t *testing.T) {
	f := &Frame{Width: 1, Height: 1, Rows: []string{"x"}, CursorX: 0, CursorY: 0, Mode: mode.Insert}

	got := string(f.Bytes())
	if !strings.HasPrefix(got, "\x1b[5 q") {
		t.Errorf("insert frame should start with bar cursor, got %q", got)
	}
	if strings.HasSuffix(strings.TrimSuffix(got, "\x1b[1;1H\x1b[?25h"), "\r\n") {
		t.Errorf("grid should not end with CRLF: %q", got)
	}
}

func TestEngineToFrame(t *testing.T) {
	e := engine.New("ab\ncd", 4, 2)
	for _, r := range "ljiX" {
		e.HandleKey(key.NewRuneEvent(r))
	}

	f := Render(e.Snapshot())
	if f.Rows[0] != "ab  " || f.Rows[1] != "cXd " {
		t.Errorf("unexpected rows %q", f.Rows)
	}
	if f.CursorX != 2 || f.CursorY != 1 {
		t.Errorf("expected cursor (2,1), got (%d,%d)", f.CursorX, f.CursorY)
	}
	if f.CursorStyle() != mode.CursorBar {
		t.Errorf("expected bar cursor, got %v", f.CursorStyle())
	}
}

func TestFrameWriteTo(t *testing.T) {
	f := Render(snapshot("hi", 3, 1))

	var buf bytes.Buffer
	n, err := f.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if int(n) != buf.Len() || !bytes.Equal(buf.Bytes(), f.Bytes()) {
		t.Errorf("WriteTo wrote %d bytes, differs from Bytes()", n)
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestFrameWriteToError(t *testing.T) {
	f := Render(snapshot("hi", 3, 1))
	if _, err := f.WriteTo(failingWriter{}); !errors.Is(err, errWrite) {
		t.Errorf("expected write error, got %v", err)
	}
}

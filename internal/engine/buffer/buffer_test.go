package buffer

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func TestNewEmpty(t *testing.T) {
	b := New("")

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.NumRows() != 1 {
		t.Errorf("expected 1 row, got %d", b.NumRows())
	}
	if b.RowLen(0) != 0 {
		t.Errorf("expected empty row, got length %d", b.RowLen(0))
	}
}

func TestNumRows(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 1},
		{"abc", 1},
		{"abc\n", 2},
		{"ab\ncd", 2},
		{"\n\nabc", 3},
		{"a\r\nb\rc", 3},
	}

	for _, tt := range tests {
		if got := New(tt.content).NumRows(); got != tt.want {
			t.Errorf("New(%q).NumRows() = %d, want %d", tt.content, got, tt.want)
		}
	}
}

func TestRowLenCountsRunes(t *testing.T) {
	b := New("héllo\n日本語\n\n🙂x")

	want := []int{5, 3, 0, 2}
	for row, n := range want {
		if got := b.RowLen(row); got != n {
			t.Errorf("RowLen(%d) = %d, want %d", row, got, n)
		}
	}
}

func TestLineEndingsNormalized(t *testing.T) {
	b := New("a\r\nb\rc")
	if b.Text() != "a\nb\nc" {
		t.Errorf("expected normalized text, got %q", b.Text())
	}
}

func TestLine(t *testing.T) {
	b := New("line1\nline2\nline3")

	for i, want := range []string{"line1", "line2", "line3"} {
		if got := b.Line(i); got != want {
			t.Errorf("Line(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestRows(t *testing.T) {
	b := New("a\nb\nc\n")

	tests := []struct {
		from, count int
		want        []string
	}{
		{0, 10, []string{"a", "b", "c", ""}},
		{1, 2, []string{"b", "c"}},
		{3, 5, []string{""}},
		{4, 5, nil},
		{0, 0, nil},
	}

	for _, tt := range tests {
		got := b.Rows(tt.from, tt.count)
		if len(got) != len(tt.want) {
			t.Errorf("Rows(%d, %d) = %q, want %q", tt.from, tt.count, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Rows(%d, %d)[%d] = %q, want %q", tt.from, tt.count, i, got[i], tt.want[i])
			}
		}
	}
}

func TestOffset(t *testing.T) {
	b := New("aé\n日b")

	tests := []struct {
		col, row int
		want     int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{2, 0, 3}, // past 'é' (2 bytes)
		{0, 1, 4},
		{1, 1, 7}, // past '日' (3 bytes)
		{2, 1, 8},
	}

	for _, tt := range tests {
		if got := b.Offset(tt.col, tt.row); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestInsert(t *testing.T) {
	b := New("ab\ncd")

	b.Insert(1, 1, 'X')
	if b.Text() != "ab\ncXd" {
		t.Errorf("expected %q, got %q", "ab\ncXd", b.Text())
	}

	b.Insert(2, 0, '!')
	if b.Text() != "ab!\ncXd" {
		t.Errorf("expected %q, got %q", "ab!\ncXd", b.Text())
	}
}

func TestInsertMultibyte(t *testing.T) {
	b := New("日本")

	b.Insert(1, 0, 'é')
	if b.Text() != "日é本" {
		t.Errorf("expected %q, got %q", "日é本", b.Text())
	}
	if !utf8.ValidString(b.Text()) {
		t.Error("content is no longer valid UTF-8")
	}
}

func TestInsertNewlineSplitsRow(t *testing.T) {
	b := New("abcd")

	b.Insert(2, 0, '\n')
	if b.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", b.NumRows())
	}
	if b.Line(0) != "ab" || b.Line(1) != "cd" {
		t.Errorf("unexpected rows %q, %q", b.Line(0), b.Line(1))
	}
}

func TestRemove(t *testing.T) {
	b := New("héllo")

	got := b.Remove(2, 0)
	if got != 'é' {
		t.Errorf("removed %q, want %q", got, 'é')
	}
	if b.Text() != "hllo" {
		t.Errorf("expected %q, got %q", "hllo", b.Text())
	}
}

func TestRemoveJoinsRows(t *testing.T) {
	b := New("ab\ncd")

	got := b.Remove(0, 1)
	if got != '\n' {
		t.Errorf("removed %q, want newline", got)
	}
	if b.Text() != "abcd" {
		t.Errorf("expected %q, got %q", "abcd", b.Text())
	}
	if b.NumRows() != 1 {
		t.Errorf("expected 1 row, got %d", b.NumRows())
	}
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	contents := []string{"", "a", "ab\ncd", "\n\nabc", "日本語\nhé\n", "🙂🙂\n\n"}
	chars := []rune{'x', 'é', '日', '🙂', '\n'}

	for _, content := range contents {
		base := New(content)
		for row := 0; row < base.NumRows(); row++ {
			for col := 0; col <= base.RowLen(row); col++ {
				for _, ch := range chars {
					b := base.Clone()
					b.Insert(col, row, ch)

					nextCol, nextRow := col+1, row
					if ch == '\n' {
						nextCol, nextRow = 0, row+1
					}
					removed := b.Remove(nextCol, nextRow)

					if removed != ch {
						t.Errorf("%q: insert %q at (%d:%d) then remove got %q", content, ch, col, row, removed)
					}
					if b.Text() != content {
						t.Errorf("%q: insert %q at (%d:%d) then remove left %q", content, ch, col, row, b.Text())
					}
					if b.NumRows() != base.NumRows() {
						t.Errorf("%q: row count changed from %d to %d", content, base.NumRows(), b.NumRows())
					}
				}
			}
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New("abc")
	c := b.Clone()

	b.Insert(0, 0, 'X')
	if c.Text() != "abc" {
		t.Errorf("clone changed with original: %q", c.Text())
	}
}

func TestPreconditionViolations(t *testing.T) {
	tests := []struct {
		name string
		fn   func(b *Buffer)
		op   string
		pos  Position
	}{
		{"row_len past end", func(b *Buffer) { b.RowLen(2) }, "row_len", Position{0, 2}},
		{"row_len negative", func(b *Buffer) { b.RowLen(-1) }, "row_len", Position{0, -1}},
		{"insert past row", func(b *Buffer) { b.Insert(0, 5, 'x') }, "insert", Position{0, 5}},
		{"insert past col", func(b *Buffer) { b.Insert(3, 0, 'x') }, "insert", Position{3, 0}},
		{"remove at origin", func(b *Buffer) { b.Remove(0, 0) }, "remove", Position{0, 0}},
		{"remove past col", func(b *Buffer) { b.Remove(9, 1) }, "remove", Position{9, 1}},
		{"offset negative col", func(b *Buffer) { b.Offset(-1, 0) }, "offset", Position{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("ab\ncd")
			err := capturePanic(func() { tt.fn(b) })
			if err == nil {
				t.Fatal("expected panic")
			}
			var pe *PreconditionError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *PreconditionError, got %T: %v", err, err)
			}
			if pe.Op != tt.op {
				t.Errorf("Op = %q, want %q", pe.Op, tt.op)
			}
			if pe.Pos != tt.pos {
				t.Errorf("Pos = %v, want %v", pe.Pos, tt.pos)
			}
			if pe.Rows != 2 {
				t.Errorf("Rows = %d, want 2", pe.Rows)
			}
			if b.Text() != "ab\ncd" {
				t.Errorf("buffer modified by failed call: %q", b.Text())
			}
		})
	}
}

func TestPreconditionErrorMessage(t *testing.T) {
	err := &PreconditionError{Op: "insert", Pos: Position{Col: 3, Row: 1}, Rows: 2, Reason: "column past end of row"}
	want := "buffer: insert at (3:1) with 2 rows: column past end of row"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func capturePanic(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = errors.New("non-error panic")
		}
	}()
	fn()
	return nil
}

func FuzzInsertRemoveRoundTrip(f *testing.F) {
	f.Add("ab\ncd", 1, 1, 'X')
	f.Add("\n\nabc", 0, 2, '日')
	f.Add("", 0, 0, '\n')

	f.Fuzz(func(t *testing.T, content string, col, row int, ch rune) {
		if !utf8.ValidString(content) || !utf8.ValidRune(ch) || ch == '\r' {
			return
		}
		b := New(content)
		original := b.Text()
		if row < 0 || row >= b.NumRows() {
			return
		}
		if col < 0 || col > b.RowLen(row) {
			return
		}

		b.Insert(col, row, ch)
		if ch == '\n' {
			b.Remove(0, row+1)
		} else {
			b.Remove(col+1, row)
		}
		if b.Text() != original {
			t.Errorf("round trip changed %q to %q", original, b.Text())
		}
	})
}

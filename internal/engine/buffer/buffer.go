package buffer

import (
	"strings"
	"unicode/utf8"
)

// Buffer holds editable text as rows separated by '\n'.
type Buffer struct {
	content string
	rows    int
}

// New creates a buffer with initial content.
// CRLF and lone CR line endings are normalized to LF.
func New(content string) *Buffer {
	content = normalizeLineEndings(content)
	return &Buffer{
		content: content,
		rows:    strings.Count(content, "\n") + 1,
	}
}

// normalizeLineEndings converts all line endings to '\n'.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// Read Operations

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return b.content
}

// Len returns the content length in bytes.
func (b *Buffer) Len() int {
	return len(b.content)
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.content) == 0
}

// NumRows returns the number of rows. A final row without a terminator
// counts, and so does the empty row after a trailing '\n'. An empty
// buffer has one empty row.
func (b *Buffer) NumRows() int {
	return b.rows
}

// RowLen returns the number of characters in row, excluding the newline.
// Panics if row is out of range.
func (b *Buffer) RowLen(row int) int {
	b.checkRow("row_len", 0, row)
	start, end := b.rowBounds(row)
	return utf8.RuneCountInString(b.content[start:end])
}

// Line returns the text of row without its newline.
// Panics if row is out of range.
func (b *Buffer) Line(row int) string {
	b.checkRow("line", 0, row)
	start, end := b.rowBounds(row)
	return b.content[start:end]
}

// Rows returns up to count rows starting at from, without newlines.
// Rows past the end of the buffer are not returned, so the result may be
// shorter than count or empty.
func (b *Buffer) Rows(from, count int) []string {
	if from < 0 || from >= b.rows || count <= 0 {
		return nil
	}
	start, _ := b.rowBounds(from)
	rest := b.content[start:]

	lines := make([]string, 0, min(count, b.rows-from))
	for len(lines) < count {
		idx := strings.IndexByte(rest, '\n')
		if idx < 0 {
			lines = append(lines, rest)
			break
		}
		lines = append(lines, rest[:idx])
		rest = rest[idx+1:]
	}
	return lines
}

// Clone returns an independent copy of the buffer.
// The content string is shared, which is safe because strings are immutable.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{content: b.content, rows: b.rows}
}

// Coordinate Conversion

// Offset converts a character position to a byte offset into the content.
// col may equal RowLen(row), which addresses the position just past the
// last character. Panics if the position is not valid.
func (b *Buffer) Offset(col, row int) int {
	return b.offset("offset", col, row)
}

func (b *Buffer) offset(op string, col, row int) int {
	b.checkRow(op, col, row)
	start, end := b.rowBounds(row)
	off, ok := advance(b.content[start:end], col)
	if !ok {
		b.fail(op, col, row, "column beyond end of row")
	}
	return start + off
}

// rowBounds returns the byte range of row, excluding its newline.
// row must already be validated.
func (b *Buffer) rowBounds(row int) (start, end int) {
	for i := 0; i < row; i++ {
		idx := strings.IndexByte(b.content[start:], '\n')
		start += idx + 1
	}
	end = strings.IndexByte(b.content[start:], '\n')
	if end < 0 {
		return start, len(b.content)
	}
	return start, start + end
}

// advance returns the byte offset of the col-th rune in line.
func advance(line string, col int) (int, bool) {
	if col < 0 {
		return 0, false
	}
	off := 0
	for i := 0; i < col; i++ {
		if off >= len(line) {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(line[off:])
		off += size
	}
	return off, true
}

// Write Operations

// Insert inserts ch at the character position (col, row).
// Inserting '\n' splits the row in two.
func (b *Buffer) Insert(col, row int, ch rune) {
	off := b.offset("insert", col, row)
	b.content = b.content[:off] + string(ch) + b.content[off:]
	if ch == '\n' {
		b.rows++
	}
}

// Remove deletes the character immediately before (col, row) and
// returns it. At column 0 of a row other than the first, the removed
// character is the newline ending the previous row, which joins the two.
// Panics at (0, 0) since there is nothing before it.
func (b *Buffer) Remove(col, row int) rune {
	if col == 0 && row == 0 {
		b.fail("remove", col, row, "nothing to remove before start of buffer")
	}
	off := b.offset("remove", col, row)
	ch, size := utf8.DecodeLastRuneInString(b.content[:off])
	b.content = b.content[:off-size] + b.content[off:]
	if ch == '\n' {
		b.rows--
	}
	return ch
}

// Precondition checks

func (b *Buffer) checkRow(op string, col, row int) {
	if row < 0 || row >= b.rows {
		b.fail(op, col, row, "row out of range")
	}
}

func (b *Buffer) fail(op string, col, row int, reason string) {
	panic(&PreconditionError{Op: op, Pos: Position{Col: col, Row: row}, Rows: b.rows, Reason: reason})
}

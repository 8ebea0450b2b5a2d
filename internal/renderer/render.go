package renderer

import (
	"strings"
	"unicode"

	"github.com/dshills/modal/internal/engine"
)

// Render builds the frame for a snapshot. The snapshot is only read.
func Render(snap engine.Snapshot) *Frame {
	size := snap.Size.Normalize()
	scroll := snap.Scroll

	rows := make([]string, 0, size.Height)
	for _, line := range snap.Buffer.Rows(scroll.Y, size.Height) {
		rows = append(rows, clipRow(line, scroll.X, size.Width))
	}
	blank := strings.Repeat(" ", size.Width)
	for len(rows) < size.Height {
		rows = append(rows, blank)
	}

	x, y := snap.Cursor.RelativeTo(scroll.X, scroll.Y)
	return &Frame{
		Width:   size.Width,
		Height:  size.Height,
		Rows:    rows,
		CursorX: x,
		CursorY: y,
		Mode:    snap.Mode,
	}
}

// clipRow returns the width characters of line starting at character
// from, padded with spaces when the line is shorter. Tabs and other
// non-printable runes are drawn as one space each.
func clipRow(line string, from, width int) string {
	var sb strings.Builder
	sb.Grow(width)

	n := 0
	col := 0
	for _, r := range line {
		if col < from {
			col++
			continue
		}
		if n == width {
			break
		}
		sb.WriteRune(cellRune(r))
		n++
	}
	for ; n < width; n++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}

// cellRune returns the rune drawn for r. Each buffer character keeps
// exactly one cell, so a tab cannot be expanded to the next tab stop.
func cellRune(r rune) rune {
	if r == '\t' || !unicode.IsPrint(r) {
		return ' '
	}
	return r
}

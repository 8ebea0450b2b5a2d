package cursor

import "fmt"

// Cursor is a position in a buffer measured in characters.
type Cursor struct {
	Col       int
	Row       int
	WantedCol int
}

// New creates a cursor at the start of the buffer.
func New() Cursor {
	return Cursor{}
}

// At creates a cursor at (col, row) with WantedCol set to col.
func At(col, row int) Cursor {
	return Cursor{Col: col, Row: row, WantedCol: col}
}

// MoveLeft moves one column left.
// Reports whether the position changed.
func (c *Cursor) MoveLeft() bool {
	if c.Col <= 0 {
		return false
	}
	c.Col--
	c.WantedCol = c.Col
	return true
}

// MoveRight moves one column right without passing maxCol.
// Reports whether the position changed.
func (c *Cursor) MoveRight(maxCol int) bool {
	if c.Col >= maxCol {
		return false
	}
	c.Col++
	c.WantedCol = c.Col
	return true
}

// MoveUp moves one row up. maxCol is the column bound of the row above.
// WantedCol is left unchanged. Reports whether the position changed.
func (c *Cursor) MoveUp(maxCol int) bool {
	if c.Row <= 0 {
		return false
	}
	c.Row--
	c.Col = landingCol(c.WantedCol, maxCol)
	return true
}

// MoveDown moves one row down within numRows. maxCol is the column
// bound of the row below. WantedCol is left unchanged. Reports whether
// the position changed.
func (c *Cursor) MoveDown(maxCol, numRows int) bool {
	if c.Row+1 >= numRows {
		return false
	}
	c.Row++
	c.Col = landingCol(c.WantedCol, maxCol)
	return true
}

// SetCol places the cursor on col and makes it the wanted column.
func (c *Cursor) SetCol(col int) {
	c.Col = max(col, 0)
	c.WantedCol = c.Col
}

// ClampCol narrows Col to maxCol. WantedCol is kept so that a later
// vertical move can still return to it. Reports whether Col changed.
func (c *Cursor) ClampCol(maxCol int) bool {
	if c.Col <= maxCol {
		return false
	}
	c.Col = max(maxCol, 0)
	return true
}

// RelativeTo returns the cursor position relative to a viewport whose
// top-left corner is (x, y). Coordinates left of or above the viewport
// clamp to 0.
func (c Cursor) RelativeTo(x, y int) (int, int) {
	return max(c.Col-x, 0), max(c.Row-y, 0)
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d:%d want %d)", c.Col, c.Row, c.WantedCol)
}

func landingCol(wanted, maxCol int) int {
	if maxCol < 0 {
		return 0
	}
	return min(wanted, maxCol)
}

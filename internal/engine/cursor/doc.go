// Package cursor provides the editing cursor and its movement arithmetic.
//
// A Cursor is a (Col, Row) character position plus WantedCol, the column
// the user last chose explicitly. Vertical moves land on
// min(WantedCol, bound of the new row) and leave WantedCol alone, so
// moving through short rows and back onto a long one restores the
// original column:
//
//	c := cursor.New()
//	c.MoveRight(4)       // col 1, wanted 1
//	c.MoveDown(0, 3)     // empty row: col 0, wanted still 1
//	c.MoveDown(4, 3)     // col 1 again
//
// The cursor holds no buffer reference. Every move takes the column
// bound of the row it lands on (see mode.MaxCol) and, for downward
// moves, the row count. Each move reports whether the position changed.
//
// Cursor is a plain value type; copying it is how snapshots are taken.
package cursor

package buffer

import "fmt"

// Position is a character coordinate in a buffer.
// Both Col and Row are 0-indexed and measured in runes.
type Position struct {
	Col int
	Row int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Col, p.Row)
}

// PreconditionError describes a call made with coordinates the buffer
// cannot honor. It is raised with panic, not returned: the engine is
// responsible for never producing such a call.
type PreconditionError struct {
	Op     string // "row_len", "insert", "remove", "offset", "line"
	Pos    Position
	Rows   int // row count at the time of the call
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("buffer: %s at %s with %d rows: %s", e.Op, e.Pos, e.Rows, e.Reason)
}

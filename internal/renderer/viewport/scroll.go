package viewport

import "fmt"

// Scroll is the top-left character coordinate of the viewport.
type Scroll struct {
	X int // first visible column
	Y int // first visible row
}

// Follow applies the minimal adjustment that brings (col, row) into a
// viewport of the given size: the offset moves only as far as needed,
// never centers. Reports whether the scroll offset changed.
func (s *Scroll) Follow(col, row int, size Size) bool {
	size = size.Normalize()
	before := *s

	s.Y = follow(s.Y, row, size.Height)
	s.X = follow(s.X, col, size.Width)

	return *s != before
}

func follow(offset, pos, extent int) int {
	if pos < offset {
		return pos
	}
	if pos >= offset+extent {
		return pos - extent + 1
	}
	return offset
}

// Contains reports whether (col, row) is visible with this scroll offset.
func (s Scroll) Contains(col, row int, size Size) bool {
	size = size.Normalize()
	return col >= s.X && col < s.X+size.Width &&
		row >= s.Y && row < s.Y+size.Height
}

// String returns a human-readable representation of the scroll offset.
func (s Scroll) String() string {
	return fmt.Sprintf("Scroll(%d,%d)", s.X, s.Y)
}

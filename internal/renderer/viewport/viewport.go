// Package viewport provides the scroll arithmetic that keeps the cursor
// inside the visible window.
package viewport

import "fmt"

// Size is a window size in character cells.
type Size struct {
	Width  int
	Height int
}

// NewSize creates a size. Width and height are clamped to a minimum of 1
// to prevent underflow in scroll calculations.
func NewSize(width, height int) Size {
	return Size{Width: max(width, 1), Height: max(height, 1)}
}

// Normalize returns the size with both dimensions clamped to at least 1.
func (s Size) Normalize() Size {
	return NewSize(s.Width, s.Height)
}

// String returns a human-readable representation of the size.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

package mode

// Mode is the current editing mode.
type Mode uint8

const (
	// Normal is the navigation and command mode.
	Normal Mode = iota

	// Insert is the text entry mode.
	Insert
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

// CursorStyle returns the cursor style shown in this mode.
func (m Mode) CursorStyle() CursorStyle {
	if m == Insert {
		return CursorBar
	}
	return CursorBlock
}

// MaxCol returns the largest legal cursor column on a row of rowLen
// characters. Normal mode stays on the last character (0 for an empty
// row); Insert mode may sit just after it.
func MaxCol(m Mode, rowLen int) int {
	if m == Insert {
		return rowLen
	}
	return max(rowLen-1, 0)
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	default:
		return "unknown"
	}
}

package key

// Key represents a keyboard key.
// For character keys, use KeyRune and set the Rune field in Event.
type Key uint8

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// KeyRune is used for character keys (letters, numbers, punctuation).
	// The actual character is stored in Event.Rune.
	KeyRune
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeyTab:
		return "Tab"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyRune:
		return "Rune"
	default:
		return "Unknown"
	}
}

// IsArrow returns true for the four arrow keys.
func (k Key) IsArrow() bool {
	return k >= KeyUp && k <= KeyRight
}

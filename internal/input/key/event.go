package key

import (
	"fmt"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune
}

// NewEvent creates a key event.
func NewEvent(key Key, r rune) Event {
	return Event{Key: key, Rune: r}
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key) Event {
	return Event{Key: key}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// Is returns true if the event is the character r.
func (e Event) Is(r rune) bool {
	return e.Key == KeyRune && e.Rune == r
}

// String returns a readable representation such as "a", "Space" or "Esc".
func (e Event) String() string {
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			return "Space"
		}
		if unicode.IsPrint(e.Rune) {
			return string(e.Rune)
		}
		return fmt.Sprintf("U+%04X", e.Rune)
	case KeyEscape:
		return "Esc"
	default:
		return e.Key.String()
	}
}

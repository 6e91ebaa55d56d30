package key

import "unicode"

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune
}

// NewRuneEvent creates an event for a character key.
func NewRuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// NewSpecialEvent creates an event for a non-character key.
func NewSpecialEvent(k Key) Event {
	return Event{Key: k}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsDigit returns true if this is a decimal digit character.
func (e Event) IsDigit() bool {
	return e.IsRune() && e.Rune >= '0' && e.Rune <= '9'
}

// IsEscape returns true if this is the Escape key.
func (e Event) IsEscape() bool { return e.Key == KeyEscape }

// IsEnter returns true if this is the Enter key.
func (e Event) IsEnter() bool { return e.Key == KeyEnter }

// IsBackspace returns true if this is the Backspace key.
func (e Event) IsBackspace() bool { return e.Key == KeyBackspace }

// String returns a canonical name: the character itself for rune
// events ("Space" for the space bar), the key name otherwise.
func (e Event) String() string {
	if e.Key == KeyRune {
		if e.Rune == ' ' {
			return "Space"
		}
		return string(e.Rune)
	}
	return e.Key.String()
}

package key

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Key identifies a keyboard key. Character keys use KeyRune with the
// character in Event.Rune.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// KeyRune is used for character keys. The character itself is
	// stored in Event.Rune.
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
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
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
		return fmt.Sprintf("Key(%d)", k)
	}
}

// IsArrowKey returns true for the four arrow keys.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// FromTcell decodes a tcell key event into an Event. Unrecognized keys
// decode to KeyNone, which every mode ignores.
func FromTcell(ev *tcell.EventKey) Event {
	switch ev.Key() {
	case tcell.KeyRune:
		return NewRuneEvent(ev.Rune())
	case tcell.KeyEscape:
		return NewSpecialEvent(KeyEscape)
	case tcell.KeyEnter:
		return NewSpecialEvent(KeyEnter)
	case tcell.KeyTab:
		return NewSpecialEvent(KeyTab)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return NewSpecialEvent(KeyBackspace)
	case tcell.KeyDelete:
		return NewSpecialEvent(KeyDelete)
	case tcell.KeyHome:
		return NewSpecialEvent(KeyHome)
	case tcell.KeyEnd:
		return NewSpecialEvent(KeyEnd)
	case tcell.KeyPgUp:
		return NewSpecialEvent(KeyPageUp)
	case tcell.KeyPgDn:
		return NewSpecialEvent(KeyPageDown)
	case tcell.KeyUp:
		return NewSpecialEvent(KeyUp)
	case tcell.KeyDown:
		return NewSpecialEvent(KeyDown)
	case tcell.KeyLeft:
		return NewSpecialEvent(KeyLeft)
	case tcell.KeyRight:
		return NewSpecialEvent(KeyRight)
	default:
		return NewSpecialEvent(KeyNone)
	}
}

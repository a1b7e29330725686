package key

import "fmt"

// Key represents a decoded key.
// For character keys, use KeyRune and set the Char field in Event.
type Key uint8

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// KeyRune is used for character keys (letters, digits, punctuation).
	// The byte is stored in Event.Char.
	KeyRune

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Editing keys
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyEnter

	// Screen switching (Ctrl+Left / Ctrl+Right)
	KeySwitchScreenLeft
	KeySwitchScreenRight
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyRune:
		return "Rune"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyEnter:
		return "Enter"
	case KeySwitchScreenLeft:
		return "SwitchScreenLeft"
	case KeySwitchScreenRight:
		return "SwitchScreenRight"
	default:
		return fmt.Sprintf("Key(%d)", k)
	}
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsScreenSwitch returns true for the screen switching keys.
func (k Key) IsScreenSwitch() bool {
	return k == KeySwitchScreenLeft || k == KeySwitchScreenRight
}

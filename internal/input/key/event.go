package key

import (
	"fmt"
	"strings"
)

// Event represents a single decoded key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Char is the ASCII byte for KeyRune events, already shifted.
	Char byte

	// Modifiers is the modifier state when the key was decoded.
	Modifiers Modifier
}

// NewCharEvent creates a key event for a character.
func NewCharEvent(c byte, mods Modifier) Event {
	return Event{Key: KeyRune, Char: c, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a non-character key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsChar returns true if this is a character event.
func (e Event) IsChar() bool {
	return e.Key == KeyRune && e.Char != 0
}

// IsPrintable returns true for printable ASCII characters.
func (e Event) IsPrintable() bool {
	return e.IsChar() && e.Char >= 0x20 && e.Char < 0x7F
}

// String returns a compact representation, e.g. "a", "C-Left", "Enter".
func (e Event) String() string {
	var parts []string
	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	// Shift is already folded into the character
	if e.Modifiers.HasShift() && e.Key != KeyRune {
		parts = append(parts, "S")
	}

	var name string
	switch {
	case e.Key == KeyRune && e.Char == ' ':
		name = "Space"
	case e.Key == KeyRune && e.IsPrintable():
		name = string(rune(e.Char))
	case e.Key == KeyRune:
		name = fmt.Sprintf("0x%02x", e.Char)
	default:
		name = e.Key.String()
	}
	parts = append(parts, name)

	return strings.Join(parts, "-")
}

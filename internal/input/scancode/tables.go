package scancode

import "github.com/dshills/ktty/internal/input/key"

// Prefix and flag bits of the Set-1 byte stream.
const (
	ExtendedPrefix byte = 0xE0
	releaseBit     byte = 0x80
	codeMask       byte = 0x7F
)

// Make codes the decoder treats specially.
const (
	codeBackspace  byte = 0x0E
	codeEnter      byte = 0x1C
	codeLeftCtrl   byte = 0x1D
	codeLeftShift  byte = 0x2A
	codeRightShift byte = 0x36
	codeLeftAlt    byte = 0x38
)

// asciiTable maps US QWERTY Set-1 make codes to unshifted ASCII.
// Zero entries produce no character.
var asciiTable = [128]byte{
	0x01: 27, // Escape
	0x02: '1', 0x03: '2', 0x04: '3', 0x05: '4', 0x06: '5',
	0x07: '6', 0x08: '7', 0x09: '8', 0x0A: '9', 0x0B: '0',
	0x0C: '-', 0x0D: '=',
	0x0E: 8, // Backspace
	0x0F: '\t',
	0x10: 'q', 0x11: 'w', 0x12: 'e', 0x13: 'r', 0x14: 't',
	0x15: 'y', 0x16: 'u', 0x17: 'i', 0x18: 'o', 0x19: 'p',
	0x1A: '[', 0x1B: ']',
	0x1C: '\n', // Enter
	0x1E: 'a', 0x1F: 's', 0x20: 'd', 0x21: 'f', 0x22: 'g',
	0x23: 'h', 0x24: 'j', 0x25: 'k', 0x26: 'l',
	0x27: ';', 0x28: '\'', 0x29: '`',
	0x2B: '\\',
	0x2C: 'z', 0x2D: 'x', 0x2E: 'c', 0x2F: 'v', 0x30: 'b',
	0x31: 'n', 0x32: 'm',
	0x33: ',', 0x34: '.', 0x35: '/',
	0x37: '*', // Keypad *
	0x39: ' ',
	// Keypad
	0x47: '7', 0x48: '8', 0x49: '9', 0x4A: '-',
	0x4B: '4', 0x4C: '5', 0x4D: '6', 0x4E: '+',
	0x4F: '1', 0x50: '2', 0x51: '3',
	0x52: '0', 0x53: '.',
}

// shiftedSymbols is the US layout substitution for non-letter keys while
// Shift is held. Zero entries are left unchanged.
var shiftedSymbols = [128]byte{
	'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
	'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
	'-': '_', '=': '+',
	'[': '{', ']': '}',
	';': ':', '\'': '"', '`': '~',
	'\\': '|',
	',': '<', '.': '>', '/': '?',
}

// extendedTable maps make codes following an 0xE0 prefix.
var extendedTable = map[byte]key.Key{
	0x48: key.KeyUp,
	0x50: key.KeyDown,
	0x4B: key.KeyLeft,
	0x4D: key.KeyRight,
	0x47: key.KeyHome,
	0x4F: key.KeyEnd,
	0x53: key.KeyDelete,
}

// shiftByte applies the Shift substitution to an unshifted ASCII byte.
func shiftByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	if int(c) < len(shiftedSymbols) && shiftedSymbols[c] != 0 {
		return shiftedSymbols[c]
	}
	return c
}

package scancode

import "github.com/dshills/ktty/internal/input/key"

// Encode returns the scancode bytes a keyboard would send for ev: modifier
// presses, the key's make and break codes, then modifier releases in
// reverse order. It returns nil if no key produces ev.
//
// For character events Shift is derived from the character itself;
// Ctrl and Alt come from ev.Modifiers.
func Encode(ev key.Event) []byte {
	mods := ev.Modifiers.Without(key.ModShift)
	var body []byte

	switch ev.Key {
	case key.KeyRune:
		code, shifted, ok := lookupChar(ev.Char)
		if !ok {
			return nil
		}
		if shifted {
			mods = mods.With(key.ModShift)
		}
		body = []byte{code, code | releaseBit}
	case key.KeyEnter:
		body = []byte{codeEnter, codeEnter | releaseBit}
	case key.KeyBackspace:
		body = []byte{codeBackspace, codeBackspace | releaseBit}
	case key.KeySwitchScreenLeft:
		mods = mods.With(key.ModCtrl)
		body = extended(0x4B)
	case key.KeySwitchScreenRight:
		mods = mods.With(key.ModCtrl)
		body = extended(0x4D)
	default:
		code, ok := lookupExtended(ev.Key)
		if !ok {
			return nil
		}
		if ev.Key == key.KeyLeft || ev.Key == key.KeyRight {
			// Ctrl would turn these into screen switches
			mods = mods.Without(key.ModCtrl)
		}
		body = extended(code)
	}

	var out []byte
	if mods.HasCtrl() {
		out = append(out, codeLeftCtrl)
	}
	if mods.HasAlt() {
		out = append(out, codeLeftAlt)
	}
	if mods.HasShift() {
		out = append(out, codeLeftShift)
	}
	out = append(out, body...)
	if mods.HasShift() {
		out = append(out, codeLeftShift|releaseBit)
	}
	if mods.HasAlt() {
		out = append(out, codeLeftAlt|releaseBit)
	}
	if mods.HasCtrl() {
		out = append(out, codeLeftCtrl|releaseBit)
	}
	return out
}

func extended(code byte) []byte {
	return []byte{ExtendedPrefix, code, ExtendedPrefix, code | releaseBit}
}

// lookupChar finds the make code producing c, preferring unshifted keys and
// the main block over the keypad.
func lookupChar(c byte) (code byte, shifted bool, ok bool) {
	if c == 0 || c == '\n' || c == 8 {
		return 0, false, false
	}
	for i, v := range asciiTable {
		if v == c {
			return byte(i), false, true
		}
	}
	for i, v := range asciiTable {
		if v != 0 && shiftByte(v) == c {
			return byte(i), true, true
		}
	}
	return 0, false, false
}

func lookupExtended(k key.Key) (byte, bool) {
	for code, v := range extendedTable {
		if v == k {
			return code, true
		}
	}
	return 0, false
}

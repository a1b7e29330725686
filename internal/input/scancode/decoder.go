package scancode

import "github.com/dshills/ktty/internal/input/key"

type state uint8

const (
	stateIdle state = iota
	stateAwaitingExtended
)

// Decoder turns Set-1 scancode bytes into key events. The zero value is
// ready to use. Modifier flags persist across Feed calls until Reset.
type Decoder struct {
	state state
	shift bool
	ctrl  bool
	alt   bool
}

// Feed decodes one byte. It returns false when the byte carries no event:
// a prefix, a modifier change, a key release or an unmapped code.
func (d *Decoder) Feed(b byte) (key.Event, bool) {
	if b == ExtendedPrefix {
		d.state = stateAwaitingExtended
		return key.Event{}, false
	}

	extended := d.state == stateAwaitingExtended
	d.state = stateIdle

	released := b&releaseBit != 0
	code := b & codeMask

	switch code {
	case codeLeftShift, codeRightShift:
		d.shift = !released
		return key.Event{}, false
	case codeLeftCtrl:
		d.ctrl = !released
		return key.Event{}, false
	case codeLeftAlt:
		d.alt = !released
		return key.Event{}, false
	}

	if released {
		return key.Event{}, false
	}

	if extended {
		return d.decodeExtended(code)
	}

	switch code {
	case codeBackspace:
		return key.NewSpecialEvent(key.KeyBackspace, d.Modifiers()), true
	case codeEnter:
		return key.NewSpecialEvent(key.KeyEnter, d.Modifiers()), true
	}

	c := asciiTable[code]
	if c == 0 {
		return key.Event{}, false
	}
	if d.shift {
		c = shiftByte(c)
	}
	return key.NewCharEvent(c, d.Modifiers()), true
}

func (d *Decoder) decodeExtended(code byte) (key.Event, bool) {
	k, ok := extendedTable[code]
	if !ok {
		return key.Event{}, false
	}
	if d.ctrl {
		switch k {
		case key.KeyLeft:
			k = key.KeySwitchScreenLeft
		case key.KeyRight:
			k = key.KeySwitchScreenRight
		}
	}
	return key.NewSpecialEvent(k, d.Modifiers()), true
}

// Modifiers returns the current sticky modifier state.
func (d *Decoder) Modifiers() key.Modifier {
	m := key.ModNone
	if d.shift {
		m = m.With(key.ModShift)
	}
	if d.ctrl {
		m = m.With(key.ModCtrl)
	}
	if d.alt {
		m = m.With(key.ModAlt)
	}
	return m
}

// AwaitingExtended reports whether the previous byte was an 0xE0 prefix.
func (d *Decoder) AwaitingExtended() bool {
	return d.state == stateAwaitingExtended
}

// Reset clears the modifier flags and the prefix state.
func (d *Decoder) Reset() {
	*d = Decoder{}
}

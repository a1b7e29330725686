package scancode

import (
	"github.com/dshills/ktty/internal/arch/port"
	"github.com/dshills/ktty/internal/input/key"
)

// maxDrain bounds how many stale bytes Init discards, so a controller that
// never clears its status bit cannot hang boot.
const maxDrain = 1024

// Keyboard polls the 8042 controller and decodes what it reads.
type Keyboard struct {
	ports   port.Ports
	decoder Decoder
}

// NewKeyboard creates a keyboard reading from ports.
func NewKeyboard(p port.Ports) *Keyboard {
	return &Keyboard{ports: p}
}

// Init discards bytes already waiting in the controller and resets the
// decoder. It returns the number of bytes discarded.
func (k *Keyboard) Init() int {
	n := 0
	for n < maxDrain && k.HasData() {
		_ = k.ports.InB(port.KeyboardData)
		n++
	}
	k.decoder.Reset()
	return n
}

// HasData reports whether the controller holds an unread byte.
func (k *Keyboard) HasData() bool {
	return k.ports.InB(port.KeyboardStatus)&port.StatusOutputFull != 0
}

// Poll reads at most one byte and decodes it. It returns immediately with
// false if no byte is waiting. Extended sequences span two polls.
func (k *Keyboard) Poll() (key.Event, bool) {
	if !k.HasData() {
		return key.Event{}, false
	}
	return k.decoder.Feed(k.ports.InB(port.KeyboardData))
}

// Modifiers returns the decoder's modifier state.
func (k *Keyboard) Modifiers() key.Modifier {
	return k.decoder.Modifiers()
}

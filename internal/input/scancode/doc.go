// Package scancode decodes the PC keyboard controller's Set-1 scancode
// stream into key events.
//
// The Decoder is a two-state machine (idle, awaiting the byte after an 0xE0
// prefix) that also tracks the sticky Shift, Ctrl and Alt flags. Keyboard
// wraps a Decoder with the polled port protocol: check the status port,
// read one byte from the data port, decode it.
//
// Encode performs the inverse mapping and is used to synthesize controller
// traffic from host key events.
package scancode

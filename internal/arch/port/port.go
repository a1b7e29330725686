// Package port defines the single-byte port I/O primitives the console core
// is built on, and an in-memory bus that records traffic.
package port

import "sync"

// Well-known I/O ports.
const (
	// KeyboardData is the 8042 data port (next scancode byte).
	KeyboardData uint16 = 0x60
	// KeyboardStatus is the 8042 status register (read) and command
	// register (write).
	KeyboardStatus uint16 = 0x64
	// CRTCIndex selects a CRT controller register.
	CRTCIndex uint16 = 0x3D4
	// CRTCData reads or writes the selected CRT controller register.
	CRTCData uint16 = 0x3D5
	// ResetControl is the chipset reset control register.
	ResetControl uint16 = 0xCF9
)

// Keyboard controller status bits.
const (
	StatusOutputFull byte = 0x01
	StatusInputFull  byte = 0x02
)

// Ports reads and writes one byte at a port address.
type Ports interface {
	InB(port uint16) byte
	OutB(port uint16, value byte)
}

// Write is one recorded OutB call.
type Write struct {
	Port  uint16
	Value byte
}

// Recorder is a Ports implementation for simulation and testing. Bytes
// queued with Feed are delivered on KeyboardData and reflected in the
// KeyboardStatus output-full bit; every OutB is appended to a log.
type Recorder struct {
	mu      sync.Mutex
	pending []byte
	writes  []Write
	regs    map[uint16]byte
	onWrite func(Write)
}

// NewRecorder creates an empty bus.
func NewRecorder() *Recorder {
	return &Recorder{regs: make(map[uint16]byte)}
}

// Feed queues scancode bytes for the keyboard data port.
func (r *Recorder) Feed(b ...byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, b...)
}

// Pending returns the number of undelivered scancode bytes.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// SetRegister sets the value returned by InB for a port other than the
// keyboard ports.
func (r *Recorder) SetRegister(port uint16, v byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs[port] = v
}

// OnWrite registers a callback invoked after each OutB.
func (r *Recorder) OnWrite(fn func(Write)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onWrite = fn
}

// InB implements Ports.
func (r *Recorder) InB(port uint16) byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch port {
	case KeyboardStatus:
		status := r.regs[KeyboardStatus] &^ StatusOutputFull
		if len(r.pending) > 0 {
			status |= StatusOutputFull
		}
		return status
	case KeyboardData:
		if len(r.pending) == 0 {
			return 0
		}
		b := r.pending[0]
		r.pending = r.pending[1:]
		return b
	default:
		return r.regs[port]
	}
}

// OutB implements Ports.
func (r *Recorder) OutB(port uint16, value byte) {
	r.mu.Lock()
	w := Write{Port: port, Value: value}
	r.writes = append(r.writes, w)
	fn := r.onWrite
	r.mu.Unlock()

	if fn != nil {
		fn(w)
	}
}

// Writes returns a copy of the OutB log.
func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Write, len(r.writes))
	copy(out, r.writes)
	return out
}

// Reset clears the OutB log.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = nil
}

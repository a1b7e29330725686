// Package power performs the irreversible machine-level directives: reboot
// and halt. Neither returns to its caller.
package power

import "github.com/dshills/ktty/internal/arch/port"

// Exit codes handed to the host when a directive completes.
const (
	ExitHalt   = 0
	ExitReboot = 3
)

// Machine carries out terminal directives.
type Machine interface {
	// Reboot resets the machine. It never returns.
	Reboot()
	// Halt stops the machine. It never returns.
	Halt()
}

// PortMachine drives the reset hardware through port I/O.
type PortMachine struct {
	Ports port.Ports

	// Exit is called once the hardware sequence has been issued. On real
	// hardware the reset wins the race and Exit is never reached; a hosted
	// environment uses it to tear down the process. It must not return
	// normally either (os.Exit or runtime.Goexit).
	Exit func(code int)

	// spinLimit bounds the wait for the controller input buffer.
	spinLimit int
}

// NewPortMachine creates a PortMachine.
func NewPortMachine(p port.Ports, exit func(code int)) *PortMachine {
	return &PortMachine{Ports: p, Exit: exit, spinLimit: 1 << 16}
}

// Reboot pulses the 8042 reset line, then falls back to the chipset reset
// control register.
func (m *PortMachine) Reboot() {
	for i := 0; i < m.spinLimit; i++ {
		if m.Ports.InB(port.KeyboardStatus)&port.StatusInputFull == 0 {
			break
		}
	}
	m.Ports.OutB(port.KeyboardStatus, 0xFE)

	m.Ports.OutB(port.ResetControl, 0x02)
	m.Ports.OutB(port.ResetControl, 0x06)

	m.park(ExitReboot)
}

// Halt stops executing. Nothing is left to program: the machine simply
// never leaves the parked state.
func (m *PortMachine) Halt() {
	m.park(ExitHalt)
}

func (m *PortMachine) park(code int) {
	if m.Exit != nil {
		m.Exit(code)
	}
	select {}
}

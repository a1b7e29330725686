// Package hosted runs the console on a terminal. Console stands in for the
// PC hardware the kernel expects: the VGA text buffer, the CRT controller
// cursor, the 8042 keyboard controller and the reset ports.
package hosted

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ktty/internal/arch/port"
	"github.com/dshills/ktty/internal/input/scancode"
	"github.com/dshills/ktty/internal/vga"
)

// maxQueue bounds the scancode bytes waiting behind the data port.
const maxQueue = 4096

// resetPulse is the 8042 command that pulses the CPU reset line.
const resetPulse = 0xFE

// Console implements vga.TextBuffer, vga.Presenter and port.Ports on top
// of a tcell screen.
type Console struct {
	screen tcell.Screen

	mu        sync.Mutex
	queue     []byte
	crtcIndex byte
	cursor    uint16
	dropped   int

	onInterrupt func()
	onReset     func()

	wg       sync.WaitGroup
	initOnce sync.Once
	finiOnce sync.Once
}

// Option configures a Console.
type Option func(*Console)

// WithInterruptHandler sets the function called when the user presses
// Ctrl+C, the console's power button.
func WithInterruptHandler(fn func()) Option {
	return func(c *Console) {
		c.onInterrupt = fn
	}
}

// WithResetHandler sets the function called when software pulses a reset
// line (0xFE to the keyboard controller, or a full reset through 0xCF9).
func WithResetHandler(fn func()) Option {
	return func(c *Console) {
		c.onReset = fn
	}
}

// NewTerminal creates a console on the controlling terminal.
func NewTerminal(opts ...Option) (*Console, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen, opts...), nil
}

// New creates a console on screen. The screen is initialized by Init.
func New(screen tcell.Screen, opts ...Option) *Console {
	c := &Console{screen: screen}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init takes over the terminal and starts translating key events.
func (c *Console) Init() error {
	var err error
	c.initOnce.Do(func() {
		if err = c.screen.Init(); err != nil {
			return
		}
		c.screen.SetStyle(convertStyle(vga.DefaultStyle))
		c.screen.SetCursorStyle(tcell.CursorStyleSteadyUnderline)
		c.screen.Clear()
		c.screen.Show()

		c.wg.Add(1)
		go c.pollEvents()
	})
	return err
}

// Shutdown restores the terminal. It is safe to call more than once.
func (c *Console) Shutdown() {
	c.finiOnce.Do(func() {
		c.screen.Fini()
		c.wg.Wait()
	})
}

// Put implements vga.TextBuffer.
func (c *Console) Put(row, col int, cell vga.Cell) {
	if row < 0 || row >= vga.Height || col < 0 || col >= vga.Width {
		return
	}
	c.screen.SetContent(col, row, glyphRune(cell.Glyph), nil, convertStyle(cell.Style))
}

// Present implements vga.Presenter.
func (c *Console) Present() {
	c.screen.Show()
}

// Cursor returns the hardware cursor as last programmed. visible is false
// when the position lies outside the grid.
func (c *Console) Cursor() (row, col int, visible bool) {
	c.mu.Lock()
	pos := int(c.cursor)
	c.mu.Unlock()
	return pos / vga.Width, pos % vga.Width, pos < vga.Width*vga.Height
}

// pending returns the number of scancode bytes not yet read.
func (c *Console) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Dropped returns the number of scancode bytes discarded because the
// queue was full.
func (c *Console) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}

// InB implements port.Ports.
func (c *Console) InB(p uint16) byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch p {
	case port.KeyboardStatus:
		if len(c.queue) > 0 {
			return port.StatusOutputFull
		}
		return 0
	case port.KeyboardData:
		if len(c.queue) == 0 {
			return 0
		}
		b := c.queue[0]
		c.queue = c.queue[1:]
		return b
	case port.CRTCData:
		switch c.crtcIndex {
		case vga.CRTCCursorLow:
			return byte(c.cursor)
		case vga.CRTCCursorHigh:
			return byte(c.cursor >> 8)
		}
		return 0
	default:
		return 0xFF
	}
}

// OutB implements port.Ports.
func (c *Console) OutB(p uint16, v byte) {
	switch p {
	case port.CRTCIndex:
		c.mu.Lock()
		c.crtcIndex = v
		c.mu.Unlock()
	case port.CRTCData:
		c.writeCRTC(v)
	case port.KeyboardStatus:
		if v == resetPulse {
			c.reset()
		}
	case port.ResetControl:
		// Bit 2 starts the reset; bit 1 selects a hard one.
		if v&0x04 != 0 {
			c.reset()
		}
	}
}

func (c *Console) writeCRTC(v byte) {
	c.mu.Lock()
	switch c.crtcIndex {
	case vga.CRTCCursorLow:
		c.cursor = c.cursor&0xFF00 | uint16(v)
	case vga.CRTCCursorHigh:
		c.cursor = c.cursor&0x00FF | uint16(v)<<8
	default:
		c.mu.Unlock()
		return
	}
	pos := int(c.cursor)
	c.mu.Unlock()

	if pos >= vga.Width*vga.Height {
		c.screen.HideCursor()
	} else {
		c.screen.ShowCursor(pos%vga.Width, pos/vga.Width)
	}
	c.screen.Show()
}

func (c *Console) reset() {
	if c.onReset != nil {
		c.onReset()
	}
}

// enqueue appends scancode bytes for the data port. A key that does not
// fit is dropped whole.
func (c *Console) enqueue(b []byte) {
	if len(b) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue)+len(b) > maxQueue {
		c.dropped += len(b)
		return
	}
	c.queue = append(c.queue, b...)
}

func (c *Console) pollEvents() {
	defer c.wg.Done()
	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			return
		}
		c.HandleEvent(ev)
	}
}

// HandleEvent feeds one terminal event to the emulated hardware. Key
// presses become Set-1 scancodes on the keyboard data port.
func (c *Console) HandleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if isInterrupt(e) {
			if c.onInterrupt != nil {
				c.onInterrupt()
			}
			return
		}
		if kev, ok := convertKey(e); ok {
			c.enqueue(scancode.Encode(kev))
		}
	case *tcell.EventResize:
		c.screen.Sync()
	}
}

func isInterrupt(e *tcell.EventKey) bool {
	if e.Key() == tcell.KeyCtrlC {
		return true
	}
	return e.Key() == tcell.KeyRune && e.Modifiers()&tcell.ModCtrl != 0 &&
		(e.Rune() == 'c' || e.Rune() == 'C')
}

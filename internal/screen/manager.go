package screen

import (
	"github.com/dshills/ktty/internal/arch/port"
	"github.com/dshills/ktty/internal/vga"
)

// MaxScreens is the number of screen slots.
const MaxScreens = 3

// DefaultScreens is the number of screens populated at construction.
const DefaultScreens = 2

// Manager multiplexes virtual screens onto the physical display.
// Exactly one populated screen is active; only it is ever copied to the
// physical buffer.
type Manager struct {
	slots  [MaxScreens]*Screen
	active int

	phys  vga.TextBuffer
	ports port.Ports
	style vga.Style
}

// Option configures a Manager.
type Option func(*Manager)

// WithScreens sets how many screens are populated up front.
// The value is clamped to [1, MaxScreens].
func WithScreens(n int) Option {
	return func(m *Manager) {
		if n < 1 {
			n = 1
		}
		if n > MaxScreens {
			n = MaxScreens
		}
		for i := range m.slots {
			m.slots[i] = nil
		}
		for i := 0; i < n; i++ {
			m.slots[i] = m.newScreen(i + 1)
		}
	}
}

// WithStyle sets the default style for every screen created.
func WithStyle(style vga.Style) Option {
	return func(m *Manager) {
		m.style = style
		for _, s := range m.slots {
			if s != nil {
				s.SetStyle(style)
			}
		}
	}
}

// NewManager creates a manager writing to phys and programming the
// hardware cursor through ports. Screen 1 starts active.
func NewManager(phys vga.TextBuffer, ports port.Ports, opts ...Option) *Manager {
	m := &Manager{
		active: 1,
		phys:   phys,
		ports:  ports,
		style:  vga.DefaultStyle,
	}
	for i := 0; i < DefaultScreens; i++ {
		m.slots[i] = m.newScreen(i + 1)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) newScreen(id int) *Screen {
	s := NewScreen(id)
	s.SetStyle(m.style)
	return s
}

// Screen returns the screen with the given id.
// Returns false for unpopulated or out-of-range ids.
func (m *Manager) Screen(id int) (*Screen, bool) {
	if id < 1 || id > MaxScreens {
		return nil, false
	}
	s := m.slots[id-1]
	return s, s != nil
}

// ActiveID returns the id of the screen mirrored on the display.
func (m *Manager) ActiveID() int {
	return m.active
}

// Active returns the active screen.
func (m *Manager) Active() *Screen {
	return m.slots[m.active-1]
}

// ScreenIDs returns the populated ids in ascending order.
func (m *Manager) ScreenIDs() []int {
	ids := make([]int, 0, MaxScreens)
	for i, s := range m.slots {
		if s != nil {
			ids = append(ids, i+1)
		}
	}
	return ids
}

// CreateScreen populates the lowest free slot and returns its id.
// Returns false when every slot is populated.
func (m *Manager) CreateScreen() (int, bool) {
	for i, s := range m.slots {
		if s == nil {
			m.slots[i] = m.newScreen(i + 1)
			return i + 1, true
		}
	}
	return 0, false
}

// Next returns the populated id delta steps away from the active screen,
// wrapping around. Returns false if no other screen is populated.
func (m *Manager) Next(delta int) (int, bool) {
	ids := m.ScreenIDs()
	if len(ids) < 2 || delta == 0 {
		return m.active, false
	}
	pos := 0
	for i, id := range ids {
		if id == m.active {
			pos = i
			break
		}
	}
	n := len(ids)
	next := ((pos+delta)%n + n) % n
	return ids[next], true
}

// SwitchScreen makes id the active screen and repaints the display.
// Returns false and changes nothing if id is not populated.
func (m *Manager) SwitchScreen(id int) bool {
	if _, ok := m.Screen(id); !ok {
		return false
	}
	m.active = id
	m.FlushToPhysical()
	m.UpdateCursor()
	return true
}

// FlushToPhysical copies the active screen into the physical buffer.
func (m *Manager) FlushToPhysical() {
	s := m.Active()
	for row := 0; row < vga.Height; row++ {
		for col := 0; col < vga.Width; col++ {
			m.phys.Put(row, col, s.cells[row][col])
		}
	}
	if p, ok := m.phys.(vga.Presenter); ok {
		p.Present()
	}
}

// UpdateCursor programs the hardware cursor to the active screen's
// position, clamped to the grid.
func (m *Manager) UpdateCursor() {
	row, col := m.Active().Cursor()
	vga.SetCursor(m.ports, vga.CursorIndex(row, col))
}

// Present flushes and repositions the cursor if id is the active screen.
// Edits to a background screen stay invisible until it is switched to.
func (m *Manager) Present(id int) {
	if id != m.active {
		return
	}
	m.FlushToPhysical()
	m.UpdateCursor()
}

// WriteToScreen writes data to screen id and presents it if active.
// Returns false if id is not populated.
func (m *Manager) WriteToScreen(id int, data []byte) bool {
	s, ok := m.Screen(id)
	if !ok {
		return false
	}
	_, _ = s.Write(data)
	m.Present(id)
	return true
}

// ClearScreen blanks screen id and homes its cursor.
// Returns false if id is not populated.
func (m *Manager) ClearScreen(id int) bool {
	s, ok := m.Screen(id)
	if !ok {
		return false
	}
	s.Clear()
	m.Present(id)
	return true
}

// Package lineedit implements the single-line command editor that sits
// under the shell prompt.
//
// The editor owns a fixed-capacity byte buffer and keeps one screen in
// sync with it. Column arithmetic is anchored at the prompt position; text
// that runs past the right edge wraps onto the following rows, and the
// anchor follows the content when the screen scrolls.
package lineedit

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/ktty/internal/kspin"
	"github.com/dshills/ktty/internal/screen"
	"github.com/dshills/ktty/internal/vga"
)

// DefaultCapacity is the buffer size used when none is configured.
// One byte is reserved, so capacity-1 bytes are usable.
const DefaultCapacity = 256

// minCapacity leaves room for at least one usable byte.
const minCapacity = 2

// Editor is a line editor bound to one screen.
//
// Editor has no lock of its own; share it through a kspin.Guarded. Its
// operations take the display lock internally, so the display lock must
// never be held when calling into an Editor.
type Editor struct {
	display  *kspin.Guarded[screen.Manager]
	screenID int

	buf    []byte
	length int
	cursor int

	// Prompt anchor and the screen's scroll count when it was last valid
	promptRow int
	promptCol int
	scrolls   uint64
}

// Option configures an Editor.
type Option func(*Editor)

// WithCapacity sets the buffer capacity. Values below 2 are raised to 2.
func WithCapacity(n int) Option {
	return func(e *Editor) {
		if n < minCapacity {
			n = minCapacity
		}
		e.buf = make([]byte, n)
	}
}

// New creates an editor drawing on screenID of display.
func New(display *kspin.Guarded[screen.Manager], screenID int, opts ...Option) *Editor {
	e := &Editor{
		display:  display,
		screenID: screenID,
		buf:      make([]byte, DefaultCapacity),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScreenID returns the screen the editor draws on.
func (e *Editor) ScreenID() int { return e.screenID }

// Len returns the number of bytes in the buffer.
func (e *Editor) Len() int { return e.length }

// Cursor returns the insertion offset within the buffer.
func (e *Editor) Cursor() int { return e.cursor }

// Capacity returns the buffer capacity, one more than the usable size.
func (e *Editor) Capacity() int { return len(e.buf) }

// String returns the buffer contents as a string.
func (e *Editor) String() string {
	return string(e.buf[:e.length])
}

// Prompt returns the current prompt anchor.
func (e *Editor) Prompt() (row, col int) {
	return e.promptRow, e.promptCol
}

// SetPromptPosition anchors column arithmetic at (row, col). It must be
// called after each prompt is printed and before the next edit.
func (e *Editor) SetPromptPosition(row, col int) {
	e.promptRow = row
	e.promptCol = col
	e.display.With(func(m *screen.Manager) {
		if s, ok := m.Screen(e.screenID); ok {
			e.scrolls = s.Scrolls()
		}
	})
}

// AnchorAtCursor anchors the prompt at the screen's current write cursor.
func (e *Editor) AnchorAtCursor() {
	e.display.With(func(m *screen.Manager) {
		s, ok := m.Screen(e.screenID)
		if !ok {
			return
		}
		e.promptRow, e.promptCol = s.Cursor()
		e.scrolls = s.Scrolls()
	})
}

// AddChar inserts b at the cursor. It returns false without changing
// anything if the buffer is full or b is a newline.
func (e *Editor) AddChar(b byte) bool {
	if b == '\n' || e.length >= len(e.buf)-1 {
		return false
	}

	copy(e.buf[e.cursor+1:e.length+1], e.buf[e.cursor:e.length])
	e.buf[e.cursor] = b
	e.length++
	e.cursor++

	atEnd := e.cursor == e.length
	e.withScreen(func(s *screen.Screen) {
		if atEnd {
			s.SetCursorPosition(e.position(e.cursor - 1))
			_ = s.WriteByte(b)
			return
		}
		e.ensureVisible(s, e.length-1)
		e.redraw(s, e.cursor-1)
	})
	return true
}

// DeleteChar removes the byte under the cursor. No-op at end of line.
func (e *Editor) DeleteChar() {
	if e.cursor >= e.length {
		return
	}
	e.removeAtCursor()
}

// Backspace removes the byte before the cursor. No-op at offset 0.
func (e *Editor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.cursor--
	e.removeAtCursor()
}

func (e *Editor) removeAtCursor() {
	copy(e.buf[e.cursor:], e.buf[e.cursor+1:e.length])
	e.length--
	e.buf[e.length] = 0

	e.withScreen(func(s *screen.Screen) {
		row, col := e.position(e.length)
		s.WriteByteAt(row, col, ' ')
		e.redraw(s, e.cursor)
	})
}

// MoveLeft moves the cursor one byte left.
func (e *Editor) MoveLeft() {
	if e.cursor > 0 {
		e.cursor--
	}
	e.withScreen(nil)
}

// MoveRight moves the cursor one byte right.
func (e *Editor) MoveRight() {
	if e.cursor < e.length {
		e.cursor++
	}
	e.withScreen(nil)
}

// MoveHome moves the cursor to the start of the line.
func (e *Editor) MoveHome() {
	e.cursor = 0
	e.withScreen(nil)
}

// MoveEnd moves the cursor to the end of the line.
func (e *Editor) MoveEnd() {
	e.cursor = e.length
	e.withScreen(nil)
}

// ExecuteCommand hands the trimmed line to run and clears the buffer.
// It returns false without calling run if the buffer is empty. A buffer
// that is not valid UTF-8 is passed as the empty string.
func (e *Editor) ExecuteCommand(run func(line string)) bool {
	if e.length == 0 {
		return false
	}

	line := ""
	if utf8.Valid(e.buf[:e.length]) {
		line = string(e.buf[:e.length])
	}
	line = strings.TrimSpace(line)

	defer e.reset()
	run(line)
	return true
}

// reset zeroes the buffer.
func (e *Editor) reset() {
	clear(e.buf)
	e.length = 0
	e.cursor = 0
}

// position maps a buffer offset to screen coordinates.
func (e *Editor) position(i int) (row, col int) {
	off := e.promptCol + i
	return e.promptRow + off/vga.Width, off % vga.Width
}

// withScreen runs fn against the editor's screen under the display lock,
// then places the write cursor at the edit cursor and presents the screen.
func (e *Editor) withScreen(fn func(s *screen.Screen)) {
	e.display.With(func(m *screen.Manager) {
		s, ok := m.Screen(e.screenID)
		if !ok {
			return
		}
		e.followScroll(s)
		if fn != nil {
			fn(s)
			e.followScroll(s)
		}
		s.SetCursorPosition(e.position(e.cursor))
		m.Present(e.screenID)
	})
}

// followScroll moves the anchor up by the number of scrolls since it was
// last updated.
func (e *Editor) followScroll(s *screen.Screen) {
	n := s.Scrolls()
	if n == e.scrolls {
		return
	}
	e.promptRow -= int(n - e.scrolls)
	e.scrolls = n
}

// ensureVisible scrolls until offset i lands on the grid.
func (e *Editor) ensureVisible(s *screen.Screen, i int) {
	for {
		row, _ := e.position(i)
		if row < vga.Height {
			return
		}
		s.ScrollUp()
		e.followScroll(s)
	}
}

// redraw rewrites [from, length) in place.
func (e *Editor) redraw(s *screen.Screen, from int) {
	for i := from; i < e.length; i++ {
		row, col := e.position(i)
		s.WriteByteAt(row, col, e.buf[i])
	}
}

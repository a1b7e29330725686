package screen

import (
	"strings"

	"github.com/dshills/ktty/internal/vga"
)

// Screen is one virtual text screen: a full-size cell grid and a write
// cursor. It is not safe for concurrent use on its own; callers reach it
// through the Manager's lock.
type Screen struct {
	id    int
	cells [vga.Height][vga.Width]vga.Cell

	// Cursor position (0-indexed). row may equal vga.Height after a
	// newline on the last row; the next printable byte scrolls.
	row int
	col int

	// Style applied to newly written glyphs
	style vga.Style

	// Number of ScrollUp calls over the screen's lifetime
	scrolls uint64
}

// NewScreen creates a blank screen with the given id.
func NewScreen(id int) *Screen {
	s := &Screen{id: id, style: vga.DefaultStyle}
	s.blankAll()
	return s
}

// ID returns the screen id.
func (s *Screen) ID() int {
	return s.id
}

// Cursor returns the write cursor position.
func (s *Screen) Cursor() (row, col int) {
	return s.row, s.col
}

// SetCursorPosition moves the write cursor. The caller is responsible for
// bounds.
func (s *Screen) SetCursorPosition(row, col int) {
	s.row = row
	s.col = col
}

// Style returns the style used for new glyphs.
func (s *Screen) Style() vga.Style {
	return s.style
}

// SetStyle sets the style used for new glyphs.
func (s *Screen) SetStyle(style vga.Style) {
	s.style = style
}

// Scrolls returns how many times the content has scrolled up.
func (s *Screen) Scrolls() uint64 {
	return s.scrolls
}

// Cell returns the cell at the given position.
// Returns a blank cell if out of bounds.
func (s *Screen) Cell(row, col int) vga.Cell {
	if row < 0 || row >= vga.Height || col < 0 || col >= vga.Width {
		return vga.Blank()
	}
	return s.cells[row][col]
}

// Row returns the glyphs of a row with trailing spaces trimmed.
func (s *Screen) Row(row int) string {
	if row < 0 || row >= vga.Height {
		return ""
	}
	var sb strings.Builder
	for col := 0; col < vga.Width; col++ {
		sb.WriteByte(s.cells[row][col].Glyph)
	}
	return strings.TrimRight(sb.String(), " ")
}

// WriteByte writes one byte at the cursor and advances it.
//
// A newline moves to the start of the next row without checking for
// overflow. Any other byte first completes a pending wrap (col == Width),
// scrolls if the cursor sits below the last row, then stores the glyph
// and wraps at the right edge. It never fails;
// the error result satisfies io.ByteWriter.
func (s *Screen) WriteByte(b byte) error {
	if b == '\n' {
		s.row++
		s.col = 0
		return nil
	}

	if s.col >= vga.Width {
		s.col = 0
		s.row++
	}
	if s.row >= vga.Height {
		s.ScrollUp()
		s.row = vga.Height - 1
	}

	s.cells[s.row][s.col] = vga.Cell{Glyph: b, Style: s.style}

	s.col++
	if s.col >= vga.Width {
		s.col = 0
		s.row++
	}
	return nil
}

// Write writes p byte by byte. It always consumes all of p.
func (s *Screen) Write(p []byte) (int, error) {
	for _, b := range p {
		_ = s.WriteByte(b)
	}
	return len(p), nil
}

// WriteString writes str byte by byte.
func (s *Screen) WriteString(str string) (int, error) {
	for i := 0; i < len(str); i++ {
		_ = s.WriteByte(str[i])
	}
	return len(str), nil
}

// WriteByteAt stores a glyph without moving the write cursor.
// Positions outside the grid are ignored; callers clamp.
func (s *Screen) WriteByteAt(row, col int, b byte) {
	if row < 0 || row >= vga.Height || col < 0 || col >= vga.Width {
		return
	}
	s.cells[row][col] = vga.Cell{Glyph: b, Style: s.style}
}

// ScrollUp shifts every row up by one and blanks the last row. The top
// row is discarded.
func (s *Screen) ScrollUp() {
	for row := 1; row < vga.Height; row++ {
		s.cells[row-1] = s.cells[row]
	}
	s.blankRow(vga.Height - 1)
	s.scrolls++
}

// Clear blanks the screen and homes the cursor.
func (s *Screen) Clear() {
	s.blankAll()
	s.row = 0
	s.col = 0
}

func (s *Screen) blankAll() {
	for row := range s.cells {
		s.blankRow(row)
	}
}

func (s *Screen) blankRow(row int) {
	blank := vga.Blank()
	for col := range s.cells[row] {
		s.cells[row][col] = blank
	}
}

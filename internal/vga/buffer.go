package vga

import "strings"

// MemoryBuffer is a TextBuffer backed by a slice laid out exactly like the
// hardware buffer. It is used when the display is simulated and as the
// reference device in tests.
type MemoryBuffer struct {
	cells []uint16
}

// NewMemoryBuffer creates a blank Width x Height buffer.
func NewMemoryBuffer() *MemoryBuffer {
	b := &MemoryBuffer{cells: make([]uint16, Width*Height)}
	blank := Blank().Encode()
	for i := range b.cells {
		b.cells[i] = blank
	}
	return b
}

// Put implements TextBuffer.
func (b *MemoryBuffer) Put(row, col int, c Cell) {
	if row < 0 || row >= Height || col < 0 || col >= Width {
		return
	}
	b.cells[row*Width+col] = c.Encode()
}

// At returns the cell at the given position.
// Returns a blank cell if out of bounds.
func (b *MemoryBuffer) At(row, col int) Cell {
	if row < 0 || row >= Height || col < 0 || col >= Width {
		return Blank()
	}
	return DecodeCell(b.cells[row*Width+col])
}

// Row returns the glyphs of one row with trailing spaces removed.
func (b *MemoryBuffer) Row(row int) string {
	if row < 0 || row >= Height {
		return ""
	}
	var sb strings.Builder
	for col := 0; col < Width; col++ {
		sb.WriteByte(byte(b.cells[row*Width+col]))
	}
	return strings.TrimRight(sb.String(), " ")
}

// Raw returns the underlying hardware-encoded cells.
func (b *MemoryBuffer) Raw() []uint16 {
	return b.cells
}

// Package vga models the VGA text-mode display: an 80x25 grid of cells,
// each a glyph byte plus an attribute byte, and the CRTC register pair that
// positions the hardware cursor.
//
// The grid layout matches the memory-mapped buffer at 0xB8000: cell (row,
// col) lives at index row*Width+col and is encoded as style<<8 | glyph.
package vga

import "github.com/dshills/ktty/internal/arch/port"

// Display geometry.
const (
	Width  = 80
	Height = 25
)

// Color is one of the 16 VGA palette entries.
type Color uint8

// Standard VGA palette.
const (
	ColorBlack Color = iota
	ColorBlue
	ColorGreen
	ColorCyan
	ColorRed
	ColorMagenta
	ColorBrown
	ColorLightGray
	ColorDarkGray
	ColorLightBlue
	ColorLightGreen
	ColorLightCyan
	ColorLightRed
	ColorPink
	ColorYellow
	ColorWhite
)

// Style is a VGA attribute byte: foreground in bits 0-3, background in
// bits 4-6 and blink in bit 7.
type Style uint8

// DefaultStyle is white on black.
const DefaultStyle Style = 0x0F

// MakeStyle combines a foreground and background color.
// Only the low three bits of bg are representable.
func MakeStyle(fg, bg Color) Style {
	return Style(uint8(bg&0x07)<<4 | uint8(fg&0x0F))
}

// Foreground returns the foreground color.
func (s Style) Foreground() Color {
	return Color(s & 0x0F)
}

// Background returns the background color.
func (s Style) Background() Color {
	return Color((s >> 4) & 0x07)
}

// Blink reports whether the blink bit is set.
func (s Style) Blink() bool {
	return s&0x80 != 0
}

// Cell is one character position on the display.
type Cell struct {
	Glyph byte
	Style Style
}

// Blank returns an empty cell: a space in the default style.
func Blank() Cell {
	return Cell{Glyph: ' ', Style: DefaultStyle}
}

// Encode returns the 16-bit hardware representation of the cell.
func (c Cell) Encode() uint16 {
	return uint16(c.Style)<<8 | uint16(c.Glyph)
}

// DecodeCell is the inverse of Cell.Encode.
func DecodeCell(v uint16) Cell {
	return Cell{Glyph: byte(v), Style: Style(v >> 8)}
}

// TextBuffer is the physical character grid. It is write-only from the
// console's point of view.
type TextBuffer interface {
	// Put stores a cell. Out-of-range positions are ignored.
	Put(row, col int, c Cell)
}

// Presenter is implemented by devices that need an explicit repaint after
// a batch of Put calls. Memory-mapped buffers do not.
type Presenter interface {
	Present()
}

// CRT controller cursor location registers.
const (
	CRTCCursorHigh = 0x0E
	CRTCCursorLow  = 0x0F
)

// SetCursor programs the hardware cursor to the linear cell index pos.
// Each register is written as an index-select followed by the data byte.
func SetCursor(p port.Ports, pos uint16) {
	p.OutB(port.CRTCIndex, CRTCCursorLow)
	p.OutB(port.CRTCData, byte(pos&0xFF))
	p.OutB(port.CRTCIndex, CRTCCursorHigh)
	p.OutB(port.CRTCData, byte((pos>>8)&0xFF))
}

// CursorIndex converts a cursor position to the linear index programmed into
// the CRTC, clamping both coordinates to the visible grid.
func CursorIndex(row, col int) uint16 {
	if row < 0 {
		row = 0
	}
	if row > Height-1 {
		row = Height - 1
	}
	if col < 0 {
		col = 0
	}
	if col > Width-1 {
		col = Width - 1
	}
	return uint16(row*Width + col)
}

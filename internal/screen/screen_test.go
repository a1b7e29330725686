package screen

import (
	"fmt"
	"testing"

	"github.com/dshills/ktty/internal/vga"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(1)

	if s.ID() != 1 {
		t.Errorf("expected id 1, got %d", s.ID())
	}
	row, col := s.Cursor()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor at (0,0), got (%d,%d)", row, col)
	}
	if s.Cell(0, 0) != vga.Blank() {
		t.Error("expected blank cell")
	}
}

func TestScreenWriteByte(t *testing.T) {
	s := NewScreen(1)

	_, _ = s.WriteString("Hi")

	if s.Cell(0, 0).Glyph != 'H' || s.Cell(0, 1).Glyph != 'i' {
		t.Errorf("expected \"Hi\", got %q", s.Row(0))
	}
	if s.Cell(0, 0).Style != vga.DefaultStyle {
		t.Errorf("expected default style, got %#x", uint8(s.Cell(0, 0).Style))
	}
	row, col := s.Cursor()
	if row != 0 || col != 2 {
		t.Errorf("expected cursor at (0,2), got (%d,%d)", row, col)
	}
}

func TestScreenNewline(t *testing.T) {
	s := NewScreen(1)

	_, _ = s.WriteString("ab\ncd")

	if s.Row(0) != "ab" || s.Row(1) != "cd" {
		t.Errorf("rows = %q, %q", s.Row(0), s.Row(1))
	}
	row, col := s.Cursor()
	if row != 1 || col != 2 {
		t.Errorf("expected cursor at (1,2), got (%d,%d)", row, col)
	}
}

func TestScreenWrap(t *testing.T) {
	s := NewScreen(1)

	for i := 0; i < vga.Width; i++ {
		_ = s.WriteByte('x')
	}
	row, col := s.Cursor()
	if row != 1 || col != 0 {
		t.Errorf("expected cursor at (1,0) after filling a row, got (%d,%d)", row, col)
	}

	_ = s.WriteByte('y')
	if s.Cell(1, 0).Glyph != 'y' {
		t.Errorf("expected 'y' at (1,0), got %q", s.Cell(1, 0).Glyph)
	}
}

func TestScreenWriteAtPendingWrap(t *testing.T) {
	s := NewScreen(1)

	s.SetCursorPosition(3, vga.Width)
	_ = s.WriteByte('x')

	if got := s.Cell(4, 0).Glyph; got != 'x' {
		t.Errorf("expected 'x' at (4,0), got %q", got)
	}
	if row, col := s.Cursor(); row != 4 || col != 1 {
		t.Errorf("expected cursor at (4,1), got (%d,%d)", row, col)
	}

	_, _ = s.WriteString("top")
	s.SetCursorPosition(vga.Height-1, vga.Width)
	_ = s.WriteByte('y')

	if s.Scrolls() != 1 {
		t.Errorf("expected 1 scroll, got %d", s.Scrolls())
	}
	if got := s.Cell(vga.Height-1, 0).Glyph; got != 'y' {
		t.Errorf("expected 'y' at start of last row, got %q", got)
	}
	if got := s.Row(3); got != "xtop" {
		t.Errorf("expected row 3 %q after scroll, got %q", "xtop", got)
	}
}

func TestScreenNewlineOnLastRowDefersScroll(t *testing.T) {
	s := NewScreen(1)
	s.SetCursorPosition(vga.Height-1, 0)
	_, _ = s.WriteString("last")

	_ = s.WriteByte('\n')
	row, _ := s.Cursor()
	if row != vga.Height {
		t.Fatalf("expected row %d after newline on last row, got %d", vga.Height, row)
	}
	if s.Scrolls() != 0 {
		t.Fatal("newline alone must not scroll")
	}

	_ = s.WriteByte('z')
	row, col := s.Cursor()
	if row != vga.Height-1 || col != 1 {
		t.Errorf("expected cursor at (%d,1), got (%d,%d)", vga.Height-1, row, col)
	}
	if s.Scrolls() != 1 {
		t.Errorf("expected 1 scroll, got %d", s.Scrolls())
	}
	if s.Row(vga.Height-2) != "last" || s.Row(vga.Height-1) != "z" {
		t.Errorf("rows = %q, %q", s.Row(vga.Height-2), s.Row(vga.Height-1))
	}
}

func TestScreenScrollKeepsMostRecentLines(t *testing.T) {
	s := NewScreen(1)

	for i := 0; i <= vga.Height; i++ {
		fmt.Fprintf(s, "line %d\n", i)
	}

	for row := 0; row < vga.Height; row++ {
		want := fmt.Sprintf("line %d", row+1)
		if got := s.Row(row); got != want {
			t.Errorf("row %d = %q, want %q", row, got, want)
		}
	}
	for row := 0; row < vga.Height; row++ {
		if s.Row(row) == "line 0" {
			t.Error("first line should have scrolled off")
		}
	}
}

func TestScreenScrollUp(t *testing.T) {
	s := NewScreen(1)
	_, _ = s.WriteString("top\nsecond")

	s.ScrollUp()

	if s.Row(0) != "second" {
		t.Errorf("row 0 = %q, want \"second\"", s.Row(0))
	}
	if s.Row(vga.Height-1) != "" {
		t.Errorf("last row = %q, want blank", s.Row(vga.Height-1))
	}
	if s.Cell(vga.Height-1, 0) != vga.Blank() {
		t.Error("last row should hold blank cells")
	}
}

func TestScreenWriteByteAt(t *testing.T) {
	s := NewScreen(1)
	s.SetCursorPosition(2, 3)

	s.WriteByteAt(5, 6, 'q')
	if s.Cell(5, 6).Glyph != 'q' {
		t.Errorf("expected 'q' at (5,6)")
	}
	row, col := s.Cursor()
	if row != 2 || col != 3 {
		t.Errorf("WriteByteAt moved the cursor to (%d,%d)", row, col)
	}

	// These should not panic
	s.WriteByteAt(-1, 0, 'x')
	s.WriteByteAt(0, vga.Width, 'x')
	s.WriteByteAt(vga.Height, 0, 'x')
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(1)
	_, _ = s.WriteString("hello\nworld")

	s.Clear()

	for row := 0; row < vga.Height; row++ {
		if s.Row(row) != "" {
			t.Fatalf("row %d not blank: %q", row, s.Row(row))
		}
	}
	row, col := s.Cursor()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor at (0,0), got (%d,%d)", row, col)
	}
}

func TestScreenStyle(t *testing.T) {
	s := NewScreen(1)
	style := vga.MakeStyle(vga.ColorLightGreen, vga.ColorBlack)
	s.SetStyle(style)

	_ = s.WriteByte('g')
	if s.Cell(0, 0).Style != style {
		t.Errorf("style = %#x, want %#x", uint8(s.Cell(0, 0).Style), uint8(style))
	}
}

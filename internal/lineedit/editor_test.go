package lineedit

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/dshills/ktty/internal/arch/port"
	"github.com/dshills/ktty/internal/kspin"
	"github.com/dshills/ktty/internal/screen"
	"github.com/dshills/ktty/internal/vga"
)

type fixture struct {
	phys    *vga.MemoryBuffer
	manager *screen.Manager
	display *kspin.Guarded[screen.Manager]
	editor  *Editor
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{phys: vga.NewMemoryBuffer()}
	f.manager = screen.NewManager(f.phys, port.NewRecorder())
	f.display = kspin.New(f.manager)
	f.editor = New(f.display, 1, opts...)
	f.prompt("$> ")
	return f
}

// prompt prints p on the editor's screen and anchors after it.
func (f *fixture) prompt(p string) {
	f.manager.WriteToScreen(f.editor.ScreenID(), []byte(p))
	f.editor.AnchorAtCursor()
}

func (f *fixture) screen() *screen.Screen {
	s, _ := f.manager.Screen(f.editor.ScreenID())
	return s
}

func (f *fixture) typeString(s string) {
	for i := 0; i < len(s); i++ {
		f.editor.AddChar(s[i])
	}
}

func TestAddCharAppend(t *testing.T) {
	f := newFixture(t)
	f.typeString("hello")

	if got := f.editor.String(); got != "hello" {
		t.Errorf("buffer = %q, want %q", got, "hello")
	}
	if f.editor.Len() != 5 || f.editor.Cursor() != 5 {
		t.Errorf("Len() = %d, Cursor() = %d; want 5, 5", f.editor.Len(), f.editor.Cursor())
	}
	if got := f.screen().Row(0); got != "$> hello" {
		t.Errorf("screen row = %q", got)
	}
	if got := f.phys.Row(0); got != "$> hello" {
		t.Errorf("physical row = %q", got)
	}
	if row, col := f.screen().Cursor(); row != 0 || col != 8 {
		t.Errorf("cursor = (%d, %d), want (0, 8)", row, col)
	}
}

func TestAddCharMidBuffer(t *testing.T) {
	f := newFixture(t)
	f.typeString("hllo")
	f.editor.MoveHome()
	f.editor.MoveRight()
	if !f.editor.AddChar('e') {
		t.Fatal("AddChar rejected")
	}

	if got := f.editor.String(); got != "hello" {
		t.Errorf("buffer = %q, want %q", got, "hello")
	}
	if f.editor.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", f.editor.Cursor())
	}
	if got := f.screen().Row(0); got != "$> hello" {
		t.Errorf("screen row = %q", got)
	}
	if row, col := f.screen().Cursor(); row != 0 || col != 5 {
		t.Errorf("cursor = (%d, %d), want (0, 5)", row, col)
	}
}

func TestAddCharRejects(t *testing.T) {
	f := newFixture(t, WithCapacity(4))

	if f.editor.AddChar('\n') {
		t.Error("newline should be rejected")
	}
	f.typeString("abc")
	if f.editor.AddChar('d') {
		t.Error("AddChar on full buffer should be rejected")
	}
	if got := f.editor.String(); got != "abc" {
		t.Errorf("buffer = %q, want %q", got, "abc")
	}
	if got := f.screen().Row(0); got != "$> abc" {
		t.Errorf("screen row = %q", got)
	}
}

func TestWithCapacityMinimum(t *testing.T) {
	f := newFixture(t, WithCapacity(0))
	if f.editor.Capacity() != 2 {
		t.Errorf("Capacity() = %d, want 2", f.editor.Capacity())
	}
	if !f.editor.AddChar('a') || f.editor.AddChar('b') {
		t.Error("expected exactly one usable byte")
	}
}

func TestAddThenBackspaceRestores(t *testing.T) {
	for pos := 0; pos <= 5; pos++ {
		f := newFixture(t)
		f.typeString("hello")
		f.editor.MoveHome()
		for i := 0; i < pos; i++ {
			f.editor.MoveRight()
		}

		f.editor.AddChar('x')
		f.editor.Backspace()

		if got := f.editor.String(); got != "hello" {
			t.Errorf("pos %d: buffer = %q", pos, got)
		}
		if f.editor.Cursor() != pos {
			t.Errorf("pos %d: Cursor() = %d", pos, f.editor.Cursor())
		}
		if got := f.screen().Row(0); got != "$> hello" {
			t.Errorf("pos %d: screen row = %q", pos, got)
		}
	}
}

func TestDeleteChar(t *testing.T) {
	f := newFixture(t)
	f.typeString("hello")

	f.editor.DeleteChar()
	if f.editor.Len() != 5 {
		t.Errorf("DeleteChar at end changed Len() to %d", f.editor.Len())
	}

	f.editor.MoveHome()
	f.editor.DeleteChar()
	if got := f.editor.String(); got != "ello" {
		t.Errorf("buffer = %q, want %q", got, "ello")
	}
	if got := f.screen().Row(0); got != "$> ello" {
		t.Errorf("screen row = %q", got)
	}
	if row, col := f.screen().Cursor(); row != 0 || col != 3 {
		t.Errorf("cursor = (%d, %d), want (0, 3)", row, col)
	}
}

func TestBackspace(t *testing.T) {
	f := newFixture(t)
	f.editor.Backspace()
	if f.editor.Len() != 0 || f.editor.Cursor() != 0 {
		t.Error("Backspace on empty buffer should be a no-op")
	}

	f.typeString("abc")
	f.editor.Backspace()
	if got := f.editor.String(); got != "ab" {
		t.Errorf("buffer = %q, want %q", got, "ab")
	}
	if got := f.screen().Row(0); got != "$> ab" {
		t.Errorf("screen row = %q", got)
	}
	if row, col := f.screen().Cursor(); row != 0 || col != 5 {
		t.Errorf("cursor = (%d, %d), want (0, 5)", row, col)
	}

	f.editor.MoveHome()
	f.editor.Backspace()
	if got := f.editor.String(); got != "ab" {
		t.Errorf("Backspace at offset 0 changed buffer to %q", got)
	}
}

func TestCursorMovement(t *testing.T) {
	f := newFixture(t)
	f.typeString("abc")

	tests := []struct {
		name string
		op   func()
		want int
	}{
		{"right at end", f.editor.MoveRight, 3},
		{"left", f.editor.MoveLeft, 2},
		{"home", f.editor.MoveHome, 0},
		{"left at start", f.editor.MoveLeft, 0},
		{"right", f.editor.MoveRight, 1},
		{"end", f.editor.MoveEnd, 3},
	}

	for _, tt := range tests {
		tt.op()
		if f.editor.Cursor() != tt.want {
			t.Errorf("%s: Cursor() = %d, want %d", tt.name, f.editor.Cursor(), tt.want)
		}
		if row, col := f.screen().Cursor(); row != 0 || col != 3+tt.want {
			t.Errorf("%s: screen cursor = (%d, %d), want (0, %d)", tt.name, row, col, 3+tt.want)
		}
	}
	if got := f.editor.String(); got != "abc" {
		t.Errorf("movement changed buffer to %q", got)
	}
}

func TestExecuteCommand(t *testing.T) {
	f := newFixture(t)

	called := false
	if f.editor.ExecuteCommand(func(string) { called = true }) {
		t.Error("ExecuteCommand on empty buffer should report false")
	}
	if called {
		t.Error("run should not be called for an empty buffer")
	}

	f.typeString("  help  ")
	var got string
	if !f.editor.ExecuteCommand(func(line string) { got = line }) {
		t.Fatal("ExecuteCommand reported false")
	}
	if got != "help" {
		t.Errorf("line = %q, want %q", got, "help")
	}
	if f.editor.Len() != 0 || f.editor.Cursor() != 0 {
		t.Errorf("Len() = %d, Cursor() = %d after execute", f.editor.Len(), f.editor.Cursor())
	}
	for i, b := range f.editor.buf {
		if b != 0 {
			t.Fatalf("buf[%d] = %#x, want 0", i, b)
		}
	}
}

func TestExecuteCommandInvalidUTF8(t *testing.T) {
	f := newFixture(t)
	f.editor.AddChar('a')
	f.editor.AddChar(0xFF)

	got := "unset"
	f.editor.ExecuteCommand(func(line string) { got = line })
	if got != "" {
		t.Errorf("line = %q, want empty", got)
	}
	if f.editor.Len() != 0 {
		t.Errorf("Len() = %d after execute", f.editor.Len())
	}
}

func TestEditBackgroundScreen(t *testing.T) {
	phys := vga.NewMemoryBuffer()
	m := screen.NewManager(phys, port.NewRecorder())
	display := kspin.New(m)
	m.WriteToScreen(1, []byte("visible"))

	e := New(display, 2)
	e.SetPromptPosition(0, 0)
	for _, b := range []byte("hidden") {
		e.AddChar(b)
	}
	e.MoveHome()
	e.DeleteChar()

	if got := phys.Row(0); got != "visible" {
		t.Errorf("physical row = %q, want %q", got, "visible")
	}
	s, _ := m.Screen(2)
	if got := s.Row(0); got != "idden" {
		t.Errorf("background row = %q, want %q", got, "idden")
	}

	m.SwitchScreen(2)
	if got := phys.Row(0); got != "idden" {
		t.Errorf("physical row after switch = %q", got)
	}
}

func TestLineWraps(t *testing.T) {
	f := newFixture(t)
	line := strings.Repeat("a", vga.Width-3) + "bcd"
	f.typeString(line)

	if got := f.screen().Row(0); got != "$> "+strings.Repeat("a", vga.Width-3) {
		t.Errorf("row 0 = %q", got)
	}
	if got := f.screen().Row(1); got != "bcd" {
		t.Errorf("row 1 = %q", got)
	}
	if row, col := f.screen().Cursor(); row != 1 || col != 3 {
		t.Errorf("cursor = (%d, %d), want (1, 3)", row, col)
	}

	f.editor.MoveHome()
	f.editor.DeleteChar()
	if got := f.screen().Row(1); got != "cd" {
		t.Errorf("row 1 after delete = %q", got)
	}
}

func TestAnchorFollowsScroll(t *testing.T) {
	f := newFixture(t)
	f.manager.ClearScreen(1)
	f.manager.WriteToScreen(1, []byte(strings.Repeat("\n", vga.Height-1)))
	f.prompt("$> ")
	if row, col := f.editor.Prompt(); row != vga.Height-1 || col != 3 {
		t.Fatalf("Prompt() = (%d, %d)", row, col)
	}

	f.typeString(strings.Repeat("a", vga.Width-3))
	if f.screen().Scrolls() != 0 {
		t.Fatalf("filling the last row should not scroll yet")
	}
	f.editor.AddChar('b')

	if row, _ := f.editor.Prompt(); row != vga.Height-2 {
		t.Errorf("prompt row = %d, want %d", row, vga.Height-2)
	}
	if got := f.screen().Row(vga.Height - 2); got != "$> "+strings.Repeat("a", vga.Width-3) {
		t.Errorf("row %d = %q", vga.Height-2, got)
	}
	if got := f.screen().Row(vga.Height - 1); got != "b" {
		t.Errorf("last row = %q", got)
	}
	if row, col := f.screen().Cursor(); row != vga.Height-1 || col != 1 {
		t.Errorf("cursor = (%d, %d)", row, col)
	}
}

func TestMidInsertScrollsWhenTailOverflows(t *testing.T) {
	f := newFixture(t)
	f.manager.ClearScreen(1)
	f.manager.WriteToScreen(1, []byte(strings.Repeat("\n", vga.Height-1)))
	f.prompt("$> ")

	f.typeString(strings.Repeat("a", vga.Width-3))
	f.editor.MoveHome()
	f.editor.AddChar('x')

	if f.screen().Scrolls() != 1 {
		t.Errorf("Scrolls() = %d, want 1", f.screen().Scrolls())
	}
	want := "$> x" + strings.Repeat("a", vga.Width-4)
	if got := f.screen().Row(vga.Height - 2); got != want {
		t.Errorf("row %d = %q", vga.Height-2, got)
	}
	if got := f.screen().Row(vga.Height - 1); got != "a" {
		t.Errorf("last row = %q", got)
	}
	if row, col := f.screen().Cursor(); row != vga.Height-2 || col != 4 {
		t.Errorf("cursor = (%d, %d), want (%d, 4)", row, col, vga.Height-2)
	}
}

// TestEditorInvariants drives random operations and checks the editor
// against a plain slice model after every step.
func TestEditorInvariants(t *testing.T) {
	const capacity = 16
	f := newFixture(t, WithCapacity(capacity))
	rng := rand.New(rand.NewSource(1))

	var model []byte
	cursor := 0

	for step := 0; step < 2000; step++ {
		switch rng.Intn(7) {
		case 0, 1, 2:
			b := byte('a' + rng.Intn(26))
			ok := f.editor.AddChar(b)
			if len(model) < capacity-1 {
				if !ok {
					t.Fatalf("step %d: AddChar rejected below capacity", step)
				}
				model = append(model[:cursor], append([]byte{b}, model[cursor:]...)...)
				cursor++
			} else if ok {
				t.Fatalf("step %d: AddChar accepted at capacity", step)
			}
		case 3:
			f.editor.Backspace()
			if cursor > 0 {
				cursor--
				model = append(model[:cursor], model[cursor+1:]...)
			}
		case 4:
			f.editor.DeleteChar()
			if cursor < len(model) {
				model = append(model[:cursor], model[cursor+1:]...)
			}
		case 5:
			f.editor.MoveLeft()
			if cursor > 0 {
				cursor--
			}
		case 6:
			f.editor.MoveRight()
			if cursor < len(model) {
				cursor++
			}
		}

		if f.editor.Len() < 0 || f.editor.Len() > capacity-1 {
			t.Fatalf("step %d: Len() = %d out of range", step, f.editor.Len())
		}
		if f.editor.Cursor() < 0 || f.editor.Cursor() > f.editor.Len() {
			t.Fatalf("step %d: Cursor() = %d out of [0, %d]", step, f.editor.Cursor(), f.editor.Len())
		}
		if got := f.editor.String(); got != string(model) {
			t.Fatalf("step %d: buffer = %q, model = %q", step, got, model)
		}
		if f.editor.Cursor() != cursor {
			t.Fatalf("step %d: Cursor() = %d, model = %d", step, f.editor.Cursor(), cursor)
		}
		if got := f.screen().Row(0); got != "$> "+string(model) {
			t.Fatalf("step %d: screen row = %q, model = %q", step, got, model)
		}
	}
}

package kernel

import (
	"fmt"

	"github.com/dshills/ktty/internal/lineedit"
	"github.com/dshills/ktty/internal/screen"
)

// Boot brings the console up: descriptor tables, a blank display, the
// keyboard, the banner and the first prompt.
func (k *Kernel) Boot() error {
	if !k.booted.CompareAndSwap(false, true) {
		return ErrAlreadyBooted
	}

	if k.hw.SetupTables != nil {
		if err := k.hw.SetupTables(); err != nil {
			return &InitError{Component: "descriptor tables", Err: err}
		}
	}

	var screens []int
	k.display.With(func(m *screen.Manager) {
		for _, id := range m.ScreenIDs() {
			s, _ := m.Screen(id)
			s.Clear()
		}
		if !m.SwitchScreen(k.shellScreen) {
			m.FlushToPhysical()
			m.UpdateCursor()
		}
		screens = m.ScreenIDs()
	})
	k.log.Info("ktty starting, boot %s", k.bootID)
	k.log.WithComponent("vga").Info("%d screens, shell on %d", len(screens), k.shellScreen)

	drained := k.keyboard.Init()
	k.log.WithComponent("kbd").Info("keyboard ready, %d stale bytes discarded", drained)
	k.log.WithComponent("shell").Info("%d commands registered", k.shell.Registry().Count())

	k.writeShell(k.banner())
	k.showPrompt()
	return nil
}

func (k *Kernel) banner() string {
	return fmt.Sprintf("Welcome to ktty!\nBoot ID: %s\nType 'help' for a list of commands.\n\n", k.bootID)
}

// writeShell appends s to the shell screen under the display lock.
func (k *Kernel) writeShell(s string) {
	k.display.With(func(m *screen.Manager) {
		m.WriteToScreen(k.shellScreen, []byte(s))
	})
}

// showPrompt prints the prompt and anchors the editor after it. The
// display lock is released before the editor lock is taken.
func (k *Kernel) showPrompt() {
	k.writeShell(k.Prompt())
	k.editor.With(func(e *lineedit.Editor) {
		e.AnchorAtCursor()
	})
}

// clearShell blanks the shell screen.
func (k *Kernel) clearShell() {
	k.display.With(func(m *screen.Manager) {
		m.ClearScreen(k.shellScreen)
	})
}

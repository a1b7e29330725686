package kernel

import (
	"context"
	"runtime"
	"time"

	"github.com/dshills/ktty/internal/input/key"
	"github.com/dshills/ktty/internal/lineedit"
	"github.com/dshills/ktty/internal/screen"
)

// Run polls the keyboard and routes events until ctx is done. Reboot and
// halt never return, so Run only returns on cancellation.
func (k *Kernel) Run(ctx context.Context) error {
	if !k.booted.Load() {
		return ErrNotBooted
	}
	if !k.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer k.running.Store(false)

	var idle *time.Timer
	defer func() {
		if idle != nil {
			idle.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if k.Step() {
			continue
		}

		d := k.PollInterval()
		if d <= 0 {
			runtime.Gosched()
			continue
		}
		if idle == nil {
			idle = time.NewTimer(d)
		} else {
			idle.Reset(d)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-idle.C:
		}
	}
}

// Step reads at most one byte from the keyboard and routes the event it
// completes, if any. It reports whether a byte was read.
func (k *Kernel) Step() bool {
	if !k.keyboard.HasData() {
		return false
	}
	if ev, ok := k.keyboard.Poll(); ok {
		k.Route(ev)
	}
	return true
}

// Route delivers one key event. Screen switches always apply; editing
// keys reach the editor only while the shell screen is active.
func (k *Kernel) Route(ev key.Event) {
	switch ev.Key {
	case key.KeySwitchScreenLeft:
		k.switchScreen(-1)
		return
	case key.KeySwitchScreenRight:
		k.switchScreen(1)
		return
	}

	if k.ActiveScreen() != k.shellScreen {
		return
	}

	if ev.Key == key.KeyEnter {
		k.submit()
		return
	}

	full := false
	k.editor.With(func(e *lineedit.Editor) {
		switch ev.Key {
		case key.KeyRune:
			if ev.IsPrintable() {
				full = !e.AddChar(ev.Char)
			}
		case key.KeyBackspace:
			e.Backspace()
		case key.KeyDelete:
			e.DeleteChar()
		case key.KeyLeft:
			e.MoveLeft()
		case key.KeyRight:
			e.MoveRight()
		case key.KeyHome:
			e.MoveHome()
		case key.KeyEnd:
			e.MoveEnd()
		}
	})
	if full {
		k.log.Debug("line buffer full, dropped %v", ev)
	}
}

func (k *Kernel) switchScreen(delta int) {
	var to int
	var ok bool
	k.display.With(func(m *screen.Manager) {
		if to, ok = m.Next(delta); ok {
			ok = m.SwitchScreen(to)
		}
	})
	if !ok {
		k.log.Debug("no screen to switch to")
		return
	}
	k.log.Debug("switched to screen %d", to)
}

// submit ends the line, runs it and prints a fresh prompt.
func (k *Kernel) submit() {
	k.editor.With(func(e *lineedit.Editor) {
		e.MoveEnd()
	})
	k.writeShell("\n")

	k.editor.With(func(e *lineedit.Editor) {
		e.ExecuteCommand(func(line string) {
			k.shell.Dispatch(line)
		})
	})

	k.showPrompt()
}

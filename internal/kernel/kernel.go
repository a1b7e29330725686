// Package kernel wires the console together and runs its main loop.
//
// The kernel owns two lock-guarded singletons: the screen manager (the
// display) and the line editor. Lock order is editor, then display. Code
// holding the display lock must not take the editor lock or log, since
// printk writes through the display lock and the lock is not reentrant.
package kernel

import (
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/ktty/internal/arch/port"
	"github.com/dshills/ktty/internal/arch/power"
	"github.com/dshills/ktty/internal/config"
	"github.com/dshills/ktty/internal/dispatcher"
	"github.com/dshills/ktty/internal/input/scancode"
	"github.com/dshills/ktty/internal/kspin"
	"github.com/dshills/ktty/internal/lineedit"
	"github.com/dshills/ktty/internal/printk"
	"github.com/dshills/ktty/internal/screen"
	"github.com/dshills/ktty/internal/vga"
)

// Hardware is the machine the kernel drives.
type Hardware struct {
	// Display is the physical text buffer.
	Display vga.TextBuffer

	// Ports reaches the keyboard controller and the CRT controller.
	Ports port.Ports

	// Machine carries out reboot and halt. Defaults to a PortMachine on Ports.
	Machine power.Machine

	// SetupTables installs the descriptor tables. Nil skips the step.
	SetupTables func() error
}

// Options configures a Kernel.
type Options struct {
	// Config holds the settings. Nil means config.Default().
	Config *config.Config

	// HostLog receives timestamped log lines. Nil disables the host sink.
	HostLog io.Writer

	// BootID identifies this boot. The zero value draws a random one.
	BootID uuid.UUID
}

// Kernel is the console core.
type Kernel struct {
	cfg *config.Config
	hw  Hardware

	display  *kspin.Guarded[screen.Manager]
	editor   *kspin.Guarded[lineedit.Editor]
	keyboard *scancode.Keyboard
	shell    *dispatcher.Dispatcher

	log    *printk.Logger
	bootID uuid.UUID

	shellScreen  int
	prompt       atomic.Pointer[string]
	pollInterval atomic.Int64

	booted  atomic.Bool
	running atomic.Bool
}

// New builds a kernel for hw. Nothing touches the hardware until Boot.
func New(hw Hardware, opts Options) (*Kernel, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if hw.Display == nil {
		return nil, &InitError{Component: "display", Err: ErrNoDisplay}
	}
	if hw.Ports == nil {
		return nil, &InitError{Component: "ports", Err: ErrNoPorts}
	}
	if hw.Machine == nil {
		hw.Machine = power.NewPortMachine(hw.Ports, nil)
	}

	bootID := opts.BootID
	if bootID == uuid.Nil {
		bootID = uuid.New()
	}

	k := &Kernel{
		cfg:         cfg,
		hw:          hw,
		bootID:      bootID,
		shellScreen: cfg.Shell.Screen,
	}
	k.setPrompt(cfg.Shell.Prompt)
	k.pollInterval.Store(int64(cfg.Keyboard.PollInterval))

	manager := screen.NewManager(hw.Display, hw.Ports,
		screen.WithScreens(cfg.Display.Screens),
		screen.WithStyle(vga.Style(cfg.Display.Style)),
	)
	k.display = kspin.New(manager)

	logCfg := printk.Config{Level: cfg.LogLevel(), Host: opts.HostLog}
	if cfg.Logging.Screen > 0 {
		logCfg.Console = printk.NewScreenWriter(k.display, cfg.Logging.Screen)
	}
	k.log = printk.New(logCfg).WithField("boot", bootID.String())

	k.editor = kspin.New(lineedit.New(k.display, k.shellScreen,
		lineedit.WithCapacity(cfg.Shell.BufferSize)))

	k.keyboard = scancode.NewKeyboard(hw.Ports)

	registry := dispatcher.NewRegistry()
	if err := dispatcher.RegisterBuiltins(registry); err != nil {
		return nil, &InitError{Component: "shell", Err: err}
	}
	k.shell = dispatcher.New(registry, &dispatcher.Context{
		Out:     printk.NewScreenWriter(k.display, k.shellScreen),
		Clear:   k.clearShell,
		Machine: hw.Machine,
		Log:     k.log.WithComponent("shell"),
	})

	return k, nil
}

// Display returns the guarded screen manager.
func (k *Kernel) Display() *kspin.Guarded[screen.Manager] { return k.display }

// Editor returns the guarded line editor.
func (k *Kernel) Editor() *kspin.Guarded[lineedit.Editor] { return k.editor }

// Shell returns the command dispatcher.
func (k *Kernel) Shell() *dispatcher.Dispatcher { return k.shell }

// Logger returns the kernel logger.
func (k *Kernel) Logger() *printk.Logger { return k.log }

// BootID returns the identifier of this boot.
func (k *Kernel) BootID() uuid.UUID { return k.bootID }

// ShellScreen returns the screen the shell runs on.
func (k *Kernel) ShellScreen() int { return k.shellScreen }

// Prompt returns the current prompt string.
func (k *Kernel) Prompt() string { return *k.prompt.Load() }

func (k *Kernel) setPrompt(p string) { k.prompt.Store(&p) }

// PollInterval returns the pause after an empty poll.
func (k *Kernel) PollInterval() time.Duration {
	return time.Duration(k.pollInterval.Load())
}

// ActiveScreen returns the id of the screen on the display.
func (k *Kernel) ActiveScreen() int {
	var id int
	k.display.With(func(m *screen.Manager) { id = m.ActiveID() })
	return id
}

// Config returns a copy of the settings in effect.
func (k *Kernel) Config() *config.Config {
	cfg := k.cfg.Clone()
	cfg.Shell.Prompt = k.Prompt()
	cfg.Keyboard.PollInterval = k.PollInterval()
	cfg.Logging.Level = strings.ToLower(k.log.Level().String())
	return cfg
}

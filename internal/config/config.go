package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/ktty/internal/printk"
)

// Limits on configurable values.
const (
	MaxScreens       = 3
	MinBufferSize    = 2
	MaxBufferSize    = 4096
	MaxPromptLength  = 40
	DefaultPrompt    = "$> "
	DefaultPollDelay = time.Millisecond
)

// Config holds every console setting.
type Config struct {
	Shell    ShellConfig
	Display  DisplayConfig
	Logging  LoggingConfig
	Keyboard KeyboardConfig
}

// ShellConfig configures the command line.
type ShellConfig struct {
	// Prompt is printed before each command line.
	Prompt string
	// Screen is the screen the shell runs on.
	Screen int
	// BufferSize is the line buffer capacity; BufferSize-1 bytes are usable.
	BufferSize int
}

// DisplayConfig configures the virtual screens.
type DisplayConfig struct {
	// Screens is how many screens exist at boot.
	Screens int
	// Style is the VGA attribute byte for text.
	Style int
}

// LoggingConfig configures printk.
type LoggingConfig struct {
	// Level is the least severe level logged.
	Level string
	// Screen receives console log lines; 0 disables the console sink.
	Screen int
	// File receives host log lines; empty disables the host sink.
	File string
}

// KeyboardConfig configures input polling.
type KeyboardConfig struct {
	// PollInterval is the pause after an empty poll; 0 spins.
	PollInterval time.Duration
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{
			Prompt:     DefaultPrompt,
			Screen:     1,
			BufferSize: 256,
		},
		Display: DisplayConfig{
			Screens: 2,
			Style:   0x0F,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Screen: 2,
		},
		Keyboard: KeyboardConfig{
			PollInterval: DefaultPollDelay,
		},
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() printk.Level {
	level, _ := printk.ParseLevel(c.Logging.Level)
	return level
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if len(c.Shell.Prompt) > MaxPromptLength {
		invalid("shell.prompt longer than %d bytes", MaxPromptLength)
	}
	for i := 0; i < len(c.Shell.Prompt); i++ {
		if b := c.Shell.Prompt[i]; b < 0x20 || b > 0x7E {
			invalid("shell.prompt contains byte %#x", b)
			break
		}
	}
	if c.Display.Screens < 1 || c.Display.Screens > MaxScreens {
		invalid("display.screens %d not in [1, %d]", c.Display.Screens, MaxScreens)
	}
	if c.Display.Style < 0 || c.Display.Style > 0xFF {
		invalid("display.style %d not a byte", c.Display.Style)
	}
	if c.Shell.Screen < 1 || c.Shell.Screen > c.Display.Screens {
		invalid("shell.screen %d not a populated screen", c.Shell.Screen)
	}
	if c.Shell.BufferSize < MinBufferSize || c.Shell.BufferSize > MaxBufferSize {
		invalid("shell.bufferSize %d not in [%d, %d]", c.Shell.BufferSize, MinBufferSize, MaxBufferSize)
	}
	if _, err := printk.ParseLevel(c.Logging.Level); err != nil {
		invalid("logging.level %q", c.Logging.Level)
	}
	if c.Logging.Screen < 0 || c.Logging.Screen > c.Display.Screens {
		invalid("logging.screen %d not a populated screen", c.Logging.Screen)
	}
	if c.Logging.Screen != 0 && c.Logging.Screen == c.Shell.Screen {
		invalid("logging.screen %d is the shell screen", c.Logging.Screen)
	}
	if c.Keyboard.PollInterval < 0 {
		invalid("keyboard.pollInterval %v is negative", c.Keyboard.PollInterval)
	}

	return errors.Join(errs...)
}

// Map returns c as a nested map using the file's key names.
func (c *Config) Map() map[string]any {
	return map[string]any{
		"shell": map[string]any{
			"prompt":     c.Shell.Prompt,
			"screen":     int64(c.Shell.Screen),
			"bufferSize": int64(c.Shell.BufferSize),
		},
		"display": map[string]any{
			"screens": int64(c.Display.Screens),
			"style":   int64(c.Display.Style),
		},
		"logging": map[string]any{
			"level":  c.Logging.Level,
			"screen": int64(c.Logging.Screen),
			"file":   c.Logging.File,
		},
		"keyboard": map[string]any{
			"pollInterval": c.Keyboard.PollInterval.String(),
		},
	}
}

// MarshalTOML renders c in the file format.
func (c *Config) MarshalTOML() ([]byte, error) {
	return toml.Marshal(c.Map())
}

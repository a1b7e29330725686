package kernel

import (
	"github.com/dshills/ktty/internal/config"
)

// Reload applies the settings that can change at runtime: the prompt, the
// log level and the poll interval. The new prompt is used from the next
// line on. Other changed settings are logged and take effect at the next
// boot.
func (k *Kernel) Reload(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return &OperationError{Op: "reload", Target: "config", Err: err}
	}

	k.setPrompt(cfg.Shell.Prompt)
	k.log.SetLevel(cfg.LogLevel())
	k.pollInterval.Store(int64(cfg.Keyboard.PollInterval))

	if cfg.Display != k.cfg.Display || cfg.Shell.Screen != k.cfg.Shell.Screen ||
		cfg.Shell.BufferSize != k.cfg.Shell.BufferSize || cfg.Logging.Screen != k.cfg.Logging.Screen ||
		cfg.Logging.File != k.cfg.Logging.File {
		k.log.Warn("some settings change only after reboot")
	}
	k.log.Notice("configuration reloaded")
	return nil
}

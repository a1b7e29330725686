package printk

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is a message severity. Lower values are more severe, following the
// kernel log level numbering.
type Level int

const (
	// LevelEmerg means the system is unusable.
	LevelEmerg Level = iota
	// LevelAlert means action must be taken immediately.
	LevelAlert
	// LevelCrit is for critical conditions.
	LevelCrit
	// LevelErr is for error conditions.
	LevelErr
	// LevelWarning is for warning conditions.
	LevelWarning
	// LevelNotice is for normal but significant conditions.
	LevelNotice
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelDebug is for debug-level messages.
	LevelDebug
)

var levelNames = [...]string{
	LevelEmerg:   "EMERG",
	LevelAlert:   "ALERT",
	LevelCrit:    "CRIT",
	LevelErr:     "ERR",
	LevelWarning: "WARN",
	LevelNotice:  "NOTICE",
	LevelInfo:    "INFO",
	LevelDebug:   "DEBUG",
}

// String returns the level name.
func (l Level) String() string {
	if l < LevelEmerg || l > LevelDebug {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Prefix returns the console marker for the level, e.g. "<6> ".
func (l Level) Prefix() string {
	return "<" + strconv.Itoa(int(l)) + "> "
}

// ParseLevel parses a level name or number. Names are case-insensitive and
// accept the common aliases ("warn", "error", "err").
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "emerg", "emergency":
		return LevelEmerg, nil
	case "alert":
		return LevelAlert, nil
	case "crit", "critical":
		return LevelCrit, nil
	case "err", "error":
		return LevelErr, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "notice":
		return LevelNotice, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= int(LevelEmerg) && n <= int(LevelDebug) {
		return Level(n), nil
	}
	return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// Package printk provides leveled kernel logging.
//
// Each message goes to up to two sinks. The console sink receives the
// message with a "<n> " level marker and is normally a ScreenWriter, so log
// output lands on a virtual screen. The host sink receives a timestamped
// line with level, component and fields, for hosted runs.
//
// Loggers derived with WithField or WithComponent share their parent's
// level and sinks, so SetLevel on any of them applies to all.
//
// A console sink that writes through the display lock must never be
// called while that lock is held.
package printk

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// core is the state shared by a logger and everything derived from it.
type core struct {
	mu       sync.Mutex
	level    Level
	console  io.Writer
	host     io.Writer
	disabled bool
	now      func() time.Time
}

// Logger writes leveled messages.
type Logger struct {
	core   *core
	prefix string
	fields map[string]any
}

// Config configures a Logger.
type Config struct {
	// Level is the least severe level written.
	Level Level
	// Console receives "<n> msg" lines. Nil disables the console sink.
	Console io.Writer
	// Host receives timestamped lines. Nil disables the host sink.
	Host io.Writer
	// Prefix names the subsystem.
	Prefix string
}

// DefaultConfig returns a config logging at LevelInfo with no sinks.
func DefaultConfig() Config {
	return Config{Level: LevelInfo}
}

// New creates a logger.
func New(cfg Config) *Logger {
	return &Logger{
		core: &core{
			level:   cfg.Level,
			console: cfg.Console,
			host:    cfg.Host,
			now:     time.Now,
		},
		prefix: cfg.Prefix,
		fields: make(map[string]any),
	}
}

// WithField returns a logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	newFields := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &Logger{core: l.core, prefix: l.prefix, fields: newFields}
}

// WithComponent returns a logger whose messages are prefixed by component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{core: l.core, prefix: component, fields: l.fields}
}

// Level returns the current level.
func (l *Logger) Level() Level {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	return l.core.level
}

// SetLevel sets the least severe level written.
func (l *Logger) SetLevel(level Level) {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.level = level
}

// SetConsole replaces the console sink. Nil stops console output; the
// host sink is unaffected.
func (l *Logger) SetConsole(w io.Writer) {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.console = w
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.Log(LevelDebug, msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.Log(LevelInfo, msg, args...) }

// Notice logs at LevelNotice.
func (l *Logger) Notice(msg string, args ...any) { l.Log(LevelNotice, msg, args...) }

// Warn logs at LevelWarning.
func (l *Logger) Warn(msg string, args ...any) { l.Log(LevelWarning, msg, args...) }

// Error logs at LevelErr.
func (l *Logger) Error(msg string, args ...any) { l.Log(LevelErr, msg, args...) }

// Log writes msg at level. args, if any, format msg with fmt.Sprintf.
func (l *Logger) Log(level Level, msg string, args ...any) {
	c := l.core
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disabled || level > c.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	if c.console != nil {
		_, _ = io.WriteString(c.console, l.consoleLine(level, msg))
	}
	if c.host != nil {
		_, _ = io.WriteString(c.host, l.hostLine(c.now(), level, msg))
	}
}

func (l *Logger) consoleLine(level Level, msg string) string {
	if l.prefix != "" {
		return level.Prefix() + l.prefix + ": " + msg + "\n"
	}
	return level.Prefix() + msg + "\n"
}

func (l *Logger) hostLine(ts time.Time, level Level, msg string) string {
	var sb strings.Builder
	sb.WriteString(ts.Format("2006-01-02T15:04:05.000"))
	sb.WriteString(" [")
	sb.WriteString(level.String())
	sb.WriteString("] ")
	if l.prefix != "" {
		sb.WriteString(l.prefix)
		sb.WriteString(": ")
	}
	sb.WriteString(msg)

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s=%v", k, l.fields[k])
		}
		sb.WriteString("}")
	}
	sb.WriteString("\n")
	return sb.String()
}

// Null is a logger that discards everything.
var Null = &Logger{core: &core{disabled: true, now: time.Now}}

var (
	defaultMu     sync.Mutex
	defaultLogger = Null
)

// Default returns the process-wide logger. It is Null until SetDefault.
func Default() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultLogger
}

// SetDefault sets the process-wide logger.
func SetDefault(l *Logger) {
	if l == nil {
		l = Null
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

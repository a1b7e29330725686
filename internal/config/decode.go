package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// FromMap overlays the settings found in m onto the defaults. Unknown
// keys are ignored. Values are converted where the intent is clear: an
// integer-valued string for an int, a duration string for a duration, and
// a bare integer duration in milliseconds.
func FromMap(m map[string]any) (*Config, error) {
	c := Default()
	var errs []error

	d := decoder{m: m, errs: &errs}
	d.str("shell", "prompt", &c.Shell.Prompt)
	d.int("shell", "screen", &c.Shell.Screen)
	d.int("shell", "bufferSize", &c.Shell.BufferSize)
	d.int("display", "screens", &c.Display.Screens)
	d.int("display", "style", &c.Display.Style)
	d.str("logging", "level", &c.Logging.Level)
	d.int("logging", "screen", &c.Logging.Screen)
	d.str("logging", "file", &c.Logging.File)
	d.duration("keyboard", "pollInterval", &c.Keyboard.PollInterval)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

type decoder struct {
	m    map[string]any
	errs *[]error
}

func (d decoder) lookup(section, key string) (any, bool) {
	sec, ok := d.m[section].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := sec[key]
	return v, ok
}

func (d decoder) fail(section, key string, v any, want string) {
	*d.errs = append(*d.errs, fmt.Errorf("%w: %s.%s is %T, want %s", ErrWrongType, section, key, v, want))
}

func (d decoder) str(section, key string, dst *string) {
	v, ok := d.lookup(section, key)
	if !ok {
		return
	}
	switch x := v.(type) {
	case string:
		*dst = x
	case int64:
		*dst = strconv.FormatInt(x, 10)
	default:
		d.fail(section, key, v, "string")
	}
}

func (d decoder) int(section, key string, dst *int) {
	v, ok := d.lookup(section, key)
	if !ok {
		return
	}
	switch x := v.(type) {
	case int64:
		*dst = int(x)
	case int:
		*dst = x
	case float64:
		if x != math.Trunc(x) {
			d.fail(section, key, v, "integer")
			return
		}
		*dst = int(x)
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			d.fail(section, key, v, "integer")
			return
		}
		*dst = n
	default:
		d.fail(section, key, v, "integer")
	}
}

func (d decoder) duration(section, key string, dst *time.Duration) {
	v, ok := d.lookup(section, key)
	if !ok {
		return
	}
	switch x := v.(type) {
	case time.Duration:
		*dst = x
	case int64:
		*dst = time.Duration(x) * time.Millisecond
	case string:
		dur, err := time.ParseDuration(x)
		if err != nil {
			d.fail(section, key, v, "duration")
			return
		}
		*dst = dur
	default:
		d.fail(section, key, v, "duration")
	}
}

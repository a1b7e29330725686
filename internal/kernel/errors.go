package kernel

import (
	"errors"
	"fmt"
)

// Kernel errors.
var (
	// ErrAlreadyBooted indicates Boot was called twice.
	ErrAlreadyBooted = errors.New("kernel already booted")

	// ErrNotBooted indicates Run was called before Boot.
	ErrNotBooted = errors.New("kernel not booted")

	// ErrAlreadyRunning indicates the main loop is already running.
	ErrAlreadyRunning = errors.New("kernel already running")

	// ErrNoDisplay indicates Hardware has no text buffer.
	ErrNoDisplay = errors.New("no display")

	// ErrNoPorts indicates Hardware has no port I/O.
	ErrNoPorts = errors.New("no port I/O")
)

// InitError reports a component that failed to come up.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// OperationError reports a failed runtime operation.
type OperationError struct {
	Op     string // e.g. "reload"
	Target string // e.g. a file path
	Err    error
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

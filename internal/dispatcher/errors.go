package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrDuplicateCommand indicates a verb is already registered.
	ErrDuplicateCommand = errors.New("dispatcher: command already registered")

	// ErrInvalidName indicates a command name is empty or contains whitespace.
	ErrInvalidName = errors.New("dispatcher: invalid command name")
)

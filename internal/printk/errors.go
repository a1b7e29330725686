package printk

import "errors"

var (
	// ErrInvalidLevel indicates a level string could not be parsed.
	ErrInvalidLevel = errors.New("printk: invalid level")

	// ErrNoScreen indicates the target screen is not populated.
	ErrNoScreen = errors.New("printk: no such screen")
)

package config

import "errors"

var (
	// ErrInvalidConfig indicates a setting holds an unusable value.
	ErrInvalidConfig = errors.New("config: invalid value")

	// ErrWrongType indicates a setting has the wrong type.
	ErrWrongType = errors.New("config: wrong type")
)

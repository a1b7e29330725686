package config

import (
	"fmt"

	"github.com/dshills/ktty/internal/config/loader"
)

// Loader reads a Config from a file and the environment.
type Loader struct {
	fs        loader.FileSystem
	path      string
	envPrefix string
	environ   func() []string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem reads the file through fsys.
func WithFileSystem(fsys loader.FileSystem) LoaderOption {
	return func(l *Loader) { l.fs = fsys }
}

// WithEnvPrefix sets the environment prefix. An empty prefix disables
// environment overrides.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) { l.envPrefix = prefix }
}

// WithEnviron replaces os.Environ as the variable source.
func WithEnviron(environ func() []string) LoaderOption {
	return func(l *Loader) { l.environ = environ }
}

// NewLoader creates a loader for path. An empty path loads defaults plus
// environment overrides.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:        loader.DefaultFS(),
		path:      path,
		envPrefix: loader.DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the config file path.
func (l *Loader) Path() string {
	return l.path
}

// Load merges the file and environment over the defaults and validates
// the result.
func (l *Loader) Load() (*Config, error) {
	merged, err := loader.NewTOMLLoaderWithFS(l.fs, l.path).Load()
	if err != nil {
		return nil, err
	}

	if l.envPrefix != "" {
		env := loader.NewEnvLoader(l.envPrefix)
		if l.environ != nil {
			env.SetEnviron(l.environ)
		}
		overrides, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, overrides)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is shorthand for NewLoader(path).Load().
func Load(path string) (*Config, error) {
	return NewLoader(path).Load()
}

// Package config defines the console's settings and loads them.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, which may pull in others with "@include"
//  3. Environment variables prefixed with KTTY_
//
// A file looks like:
//
//	[shell]
//	prompt = "$> "
//	screen = 1
//	bufferSize = 256
//
//	[display]
//	screens = 2
//	style = 15
//
//	[logging]
//	level = "info"
//	screen = 2
//	file = ""
//
//	[keyboard]
//	pollInterval = "1ms"
//
// logging.screen 0 sends log lines to the host sink only; otherwise it
// must name a screen other than the shell's.
//
// The watcher subpackage reloads the file when it changes.
package config

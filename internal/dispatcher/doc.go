// Package dispatcher maps a submitted command line to a shell command.
//
// The first whitespace-separated token of the line is the verb. Verbs are
// matched case-sensitively against a Registry; the rest of the line is
// split into arguments. A verb with no registered command prints
//
//	unknown command: <verb>
//
// and is an ordinary outcome, not an error.
//
// # Builtins
//
// RegisterBuiltins installs the fixed command set:
//
//	help    lists every registered command with its summary
//	clear   blanks the current screen and homes its cursor
//	reboot  resets the machine (never returns)
//	halt    stops the machine (never returns)
//
// # Usage
//
//	reg := dispatcher.NewRegistry()
//	dispatcher.RegisterBuiltins(reg)
//	d := dispatcher.New(reg, &dispatcher.Context{Out: console, Clear: clearFn, Machine: m})
//	d.Dispatch("help")
package dispatcher

package dispatcher

import (
	"io"

	"github.com/dshills/ktty/internal/arch/power"
	"github.com/dshills/ktty/internal/printk"
)

// Context gives commands access to the console they run on.
type Context struct {
	// Out receives command output. It writes to the shell's screen.
	Out io.Writer

	// Clear blanks the shell's screen and homes its cursor.
	Clear func()

	// Machine carries out reboot and halt.
	Machine power.Machine

	// Log records command activity. Nil means printk.Default().
	Log *printk.Logger

	// Registry is the set the command was found in.
	Registry *Registry

	// Metrics counts the dispatcher's outcomes.
	Metrics *Metrics
}

// Logger returns ctx.Log, or the process-wide logger when unset.
func (ctx *Context) Logger() *printk.Logger {
	if ctx == nil || ctx.Log == nil {
		return printk.Default()
	}
	return ctx.Log
}

// Command is a shell command.
type Command interface {
	// Name returns the verb that invokes the command.
	Name() string

	// Summary returns a one-line description for help.
	Summary() string

	// Run executes the command. args excludes the verb.
	Run(ctx *Context, args []string)
}

// CommandFunc adapts a function to the Command interface.
type CommandFunc struct {
	name    string
	summary string
	fn      func(ctx *Context, args []string)
}

// NewCommandFunc creates a Command from a function.
func NewCommandFunc(name, summary string, fn func(ctx *Context, args []string)) *CommandFunc {
	return &CommandFunc{name: name, summary: summary, fn: fn}
}

// Name implements Command.Name.
func (c *CommandFunc) Name() string { return c.name }

// Summary implements Command.Summary.
func (c *CommandFunc) Summary() string { return c.summary }

// Run implements Command.Run.
func (c *CommandFunc) Run(ctx *Context, args []string) {
	if c.fn != nil {
		c.fn(ctx, args)
	}
}

package dispatcher

import (
	"fmt"
	"io"
)

// Builtin command names.
const (
	CmdHelp   = "help"
	CmdClear  = "clear"
	CmdReboot = "reboot"
	CmdHalt   = "halt"
)

// Builtins returns the fixed command set in help order.
func Builtins() []Command {
	return []Command{
		NewCommandFunc(CmdHelp, "Show this help message", runHelp),
		NewCommandFunc(CmdClear, "Clear the screen", runClear),
		NewCommandFunc(CmdReboot, "Restart the system", runReboot),
		NewCommandFunc(CmdHalt, "Halt the system", runHalt),
	}
}

// RegisterBuiltins adds the builtin commands to r.
func RegisterBuiltins(r *Registry) error {
	for _, cmd := range Builtins() {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// WriteHelp writes the usage block for every command in r.
func WriteHelp(w io.Writer, r *Registry) {
	cmds := r.List()
	width := 0
	for _, cmd := range cmds {
		if len(cmd.Name()) > width {
			width = len(cmd.Name())
		}
	}

	fmt.Fprintln(w, "Available commands:")
	for _, cmd := range cmds {
		fmt.Fprintf(w, "  %-*s  - %s\n", width, cmd.Name(), cmd.Summary())
	}
}

func runHelp(ctx *Context, _ []string) {
	if ctx.Out == nil || ctx.Registry == nil {
		return
	}
	WriteHelp(ctx.Out, ctx.Registry)
}

func runClear(ctx *Context, _ []string) {
	if ctx.Clear != nil {
		ctx.Clear()
	}
}

func runReboot(ctx *Context, _ []string) {
	if ctx.Out != nil {
		fmt.Fprintln(ctx.Out, "Rebooting system...")
	}
	logSession(ctx)
	ctx.Logger().Notice("reboot requested")
	ctx.Machine.Reboot()
}

func runHalt(ctx *Context, _ []string) {
	if ctx.Out != nil {
		fmt.Fprintln(ctx.Out, "System halted. You can safely power off.")
	}
	logSession(ctx)
	ctx.Logger().Notice("halt requested")
	ctx.Machine.Halt()
}

// logSession records the shell's counters before the machine stops.
func logSession(ctx *Context) {
	if ctx.Metrics == nil {
		return
	}
	ctx.Logger().Notice("session: %s", ctx.Metrics.Summary(3))
}

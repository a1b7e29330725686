package dispatcher

import (
	"fmt"
	"strings"
)

// Outcome describes what Dispatch did with a line.
type Outcome int

const (
	// OutcomeEmpty means the line held no verb.
	OutcomeEmpty Outcome = iota
	// OutcomeExecuted means a registered command ran.
	OutcomeExecuted
	// OutcomeUnknown means the verb matched no command.
	OutcomeUnknown
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeExecuted:
		return "executed"
	case OutcomeUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Dispatcher runs command lines against a registry.
type Dispatcher struct {
	registry *Registry
	ctx      *Context
	metrics  *Metrics
}

// New creates a dispatcher. ctx.Registry and ctx.Metrics are set to the
// dispatcher's own.
func New(registry *Registry, ctx *Context) *Dispatcher {
	if ctx == nil {
		ctx = &Context{}
	}
	metrics := NewMetrics()
	ctx.Registry = registry
	ctx.Metrics = metrics
	return &Dispatcher{
		registry: registry,
		ctx:      ctx,
		metrics:  metrics,
	}
}

// Registry returns the command registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the dispatch counters.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Split returns the verb and the remainder of line after the first
// whitespace run. Leading whitespace is skipped.
func Split(line string) (verb, rest string) {
	line = strings.TrimLeft(line, " \t\r\n\v\f")
	i := strings.IndexAny(line, " \t\r\n\v\f")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeft(line[i:], " \t\r\n\v\f")
}

// Dispatch runs the command named by line's verb. Commands that stop the
// machine do not return.
func (d *Dispatcher) Dispatch(line string) Outcome {
	verb, rest := Split(line)
	log := d.ctx.Logger()

	if verb == "" {
		d.metrics.Record(verb, OutcomeEmpty)
		return OutcomeEmpty
	}

	cmd, ok := d.registry.Get(verb)
	if !ok {
		d.metrics.Record(verb, OutcomeUnknown)
		log.Debug("unknown command %q", verb)
		if d.ctx.Out != nil {
			fmt.Fprintf(d.ctx.Out, "unknown command: %s\n", verb)
		}
		return OutcomeUnknown
	}

	d.metrics.Record(verb, OutcomeExecuted)
	log.Debug("running %s", verb)
	cmd.Run(d.ctx, strings.Fields(rest))
	return OutcomeExecuted
}

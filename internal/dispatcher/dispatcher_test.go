package dispatcher_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dshills/ktty/internal/dispatcher"
	"github.com/dshills/ktty/internal/printk"
)

type fakeMachine struct {
	reboots int
	halts   int
}

func (m *fakeMachine) Reboot() { m.reboots++ }
func (m *fakeMachine) Halt()   { m.halts++ }

func newDispatcher(t *testing.T) (*dispatcher.Dispatcher, *bytes.Buffer, *fakeMachine, *int) {
	t.Helper()
	reg := dispatcher.NewRegistry()
	if err := dispatcher.RegisterBuiltins(reg); err != nil {
		t.Fatalf("RegisterBuiltins: %v", err)
	}

	var out bytes.Buffer
	machine := &fakeMachine{}
	clears := 0
	d := dispatcher.New(reg, &dispatcher.Context{
		Out:     &out,
		Clear:   func() { clears++ },
		Machine: machine,
	})
	return d, &out, machine, &clears
}

func TestSplit(t *testing.T) {
	tests := []struct {
		line string
		verb string
		rest string
	}{
		{"", "", ""},
		{"help", "help", ""},
		{"echo a b", "echo", "a b"},
		{"  echo \t a  b ", "echo", "a  b "},
		{"\t", "", ""},
	}

	for _, tt := range tests {
		verb, rest := dispatcher.Split(tt.line)
		if verb != tt.verb || rest != tt.rest {
			t.Errorf("Split(%q) = (%q, %q), want (%q, %q)", tt.line, verb, rest, tt.verb, tt.rest)
		}
	}
}

func TestDispatchHelp(t *testing.T) {
	d, out, _, _ := newDispatcher(t)

	if got := d.Dispatch("help"); got != dispatcher.OutcomeExecuted {
		t.Fatalf("Dispatch(help) = %v", got)
	}

	want := "Available commands:\n" +
		"  help    - Show this help message\n" +
		"  clear   - Clear the screen\n" +
		"  reboot  - Restart the system\n" +
		"  halt    - Halt the system\n"
	if out.String() != want {
		t.Errorf("help output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestDispatchUnknown(t *testing.T) {
	d, out, _, _ := newDispatcher(t)

	if got := d.Dispatch("xyz"); got != dispatcher.OutcomeUnknown {
		t.Fatalf("Dispatch(xyz) = %v", got)
	}
	if out.String() != "unknown command: xyz\n" {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	d.Dispatch("HELP")
	if out.String() != "unknown command: HELP\n" {
		t.Errorf("verbs should be case-sensitive, output = %q", out.String())
	}

	if d.Metrics().TotalUnknown() != 2 {
		t.Errorf("TotalUnknown() = %d", d.Metrics().TotalUnknown())
	}
}

func TestDispatchEmpty(t *testing.T) {
	d, out, _, _ := newDispatcher(t)

	if got := d.Dispatch(""); got != dispatcher.OutcomeEmpty {
		t.Errorf("Dispatch(\"\") = %v", got)
	}
	if out.Len() != 0 {
		t.Errorf("empty line printed %q", out.String())
	}
}

func TestDispatchClear(t *testing.T) {
	d, _, _, clears := newDispatcher(t)
	d.Dispatch("clear")
	if *clears != 1 {
		t.Errorf("clear ran %d times", *clears)
	}
}

func TestDispatchPowerCommands(t *testing.T) {
	d, out, machine, _ := newDispatcher(t)

	d.Dispatch("reboot")
	if machine.reboots != 1 {
		t.Errorf("reboots = %d", machine.reboots)
	}
	if !strings.Contains(out.String(), "Rebooting system...") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	d.Dispatch("halt now")
	if machine.halts != 1 {
		t.Errorf("halts = %d", machine.halts)
	}
	if !strings.Contains(out.String(), "System halted.") {
		t.Errorf("output = %q", out.String())
	}

	top := d.Metrics().TopCommands(2)
	if len(top) != 2 || top[0].Name != "halt" || top[1].Name != "reboot" {
		t.Errorf("power commands should be counted before they run, top = %+v", top)
	}
}

func TestDispatchArguments(t *testing.T) {
	d, _, _, _ := newDispatcher(t)

	var got []string
	err := d.Registry().Register(dispatcher.NewCommandFunc("echo", "Print arguments", func(ctx *dispatcher.Context, args []string) {
		got = args
	}))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	d.Dispatch("echo  one\ttwo ")
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("args = %q", got)
	}
}

func TestRegistry(t *testing.T) {
	reg := dispatcher.NewRegistry()
	if err := dispatcher.RegisterBuiltins(reg); err != nil {
		t.Fatal(err)
	}

	if reg.Count() != 4 {
		t.Errorf("Count() = %d, want 4", reg.Count())
	}
	if _, ok := reg.Get("halt"); !ok {
		t.Error("Get(halt) not found")
	}
	if _, ok := reg.Get("exit"); ok {
		t.Error("Get(exit) found")
	}

	names := make([]string, 0, 4)
	for _, cmd := range reg.List() {
		names = append(names, cmd.Name())
	}
	if strings.Join(names, ",") != "help,clear,reboot,halt" {
		t.Errorf("List() order = %v", names)
	}

	err := reg.Register(dispatcher.NewCommandFunc("help", "again", nil))
	if !errors.Is(err, dispatcher.ErrDuplicateCommand) {
		t.Errorf("duplicate Register error = %v", err)
	}
	for _, name := range []string{"", "two words"} {
		err := reg.Register(dispatcher.NewCommandFunc(name, "", nil))
		if !errors.Is(err, dispatcher.ErrInvalidName) {
			t.Errorf("Register(%q) error = %v", name, err)
		}
	}
}

func TestMetricsTopCommands(t *testing.T) {
	d, _, _, _ := newDispatcher(t)
	d.Dispatch("help")
	d.Dispatch("help")
	d.Dispatch("clear")
	d.Dispatch("")

	top := d.Metrics().TopCommands(5)
	if len(top) != 2 || top[0].Name != "help" || top[0].Count != 2 {
		t.Errorf("TopCommands = %+v", top)
	}
	if d.Metrics().TotalDispatches() != 4 || d.Metrics().TotalEmpty() != 1 {
		t.Errorf("totals = %d dispatches, %d empty", d.Metrics().TotalDispatches(), d.Metrics().TotalEmpty())
	}

	if top := d.Metrics().TopCommands(-1); len(top) != 0 {
		t.Errorf("TopCommands(-1) = %+v, want empty", top)
	}
	if got := d.Metrics().Summary(1); got != "4 lines, 1 empty, 0 unknown; top: help=2" {
		t.Errorf("Summary(1) = %q", got)
	}
}

func TestPowerCommandsLogSession(t *testing.T) {
	reg := dispatcher.NewRegistry()
	if err := dispatcher.RegisterBuiltins(reg); err != nil {
		t.Fatal(err)
	}
	var host bytes.Buffer
	machine := &fakeMachine{}
	d := dispatcher.New(reg, &dispatcher.Context{
		Out:     io.Discard,
		Machine: machine,
		Log:     printk.New(printk.Config{Level: printk.LevelNotice, Host: &host}),
	})

	d.Dispatch("help")
	d.Dispatch("xyz")
	d.Dispatch("")
	d.Dispatch("reboot")

	want := "[NOTICE] session: 4 lines, 1 empty, 1 unknown; top: help=1 reboot=1"
	if !strings.Contains(host.String(), want) {
		t.Errorf("host log = %q, want %q", host.String(), want)
	}
	if i, j := strings.Index(host.String(), "session:"), strings.Index(host.String(), "reboot requested"); i < 0 || j < i {
		t.Errorf("session summary should precede the reboot notice: %q", host.String())
	}
}

func TestMetricsSummaryNoCommands(t *testing.T) {
	m := dispatcher.NewMetrics()
	m.Record("", dispatcher.OutcomeEmpty)
	if got := m.Summary(3); got != "1 lines, 1 empty, 0 unknown" {
		t.Errorf("Summary = %q", got)
	}
}

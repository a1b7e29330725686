package dispatcher

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Metrics counts dispatch outcomes.
type Metrics struct {
	mu sync.RWMutex

	perCommand map[string]uint64

	totalDispatches uint64
	totalUnknown    uint64
	totalEmpty      uint64
}

// CommandCount is the number of runs of one command.
type CommandCount struct {
	Name  string
	Count uint64
}

// NewMetrics creates a metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{perCommand: make(map[string]uint64)}
}

// Record counts one dispatch. It is called before the command runs, since
// some commands never return.
func (m *Metrics) Record(verb string, outcome Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	switch outcome {
	case OutcomeEmpty:
		m.totalEmpty++
	case OutcomeUnknown:
		m.totalUnknown++
	case OutcomeExecuted:
		m.perCommand[verb]++
	}
}

// TotalDispatches returns the number of lines dispatched.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalUnknown returns the number of unrecognized verbs.
func (m *Metrics) TotalUnknown() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalUnknown
}

// TotalEmpty returns the number of blank lines dispatched.
func (m *Metrics) TotalEmpty() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalEmpty
}

// TopCommands returns the n most-run commands, most-run first.
func (m *Metrics) TopCommands(n int) []CommandCount {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make([]CommandCount, 0, len(m.perCommand))
	for name, c := range m.perCommand {
		counts = append(counts, CommandCount{Name: name, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})

	n = max(0, min(n, len(counts)))
	return counts[:n]
}

// Summary returns a one-line account of the session so far, naming up to
// top of the most-run commands.
func (m *Metrics) Summary(top int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d lines, %d empty, %d unknown",
		m.TotalDispatches(), m.TotalEmpty(), m.TotalUnknown())

	cmds := m.TopCommands(top)
	if len(cmds) == 0 {
		return sb.String()
	}
	sb.WriteString("; top:")
	for _, c := range cmds {
		fmt.Fprintf(&sb, " %s=%d", c.Name, c.Count)
	}
	return sb.String()
}


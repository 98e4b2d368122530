// Package scenario defines the named stimulus scripts and the dispatcher
// that runs them against a device.
//
// A scenario is an immutable, ordered list of tagged operations built from
// the sequencer primitives: drive a control input, tick the clock, pulse
// reset. The builtin table reproduces the external test contract exactly;
// other tools depend on these scripts cycle for cycle.
package scenario

import (
	"fmt"
	"sort"
)

// Operation kinds.
const (
	OpSet   = "set"
	OpTick  = "tick"
	OpReset = "reset"
)

// Signals drivable by a set operation. The clock is never set directly;
// only the sequencer toggles it.
const (
	SignalEn  = "en"
	SignalRst = "rst"
)

// Op is one scenario step.
type Op struct {
	Op     string `yaml:"op"`
	Signal string `yaml:"signal,omitempty"` // set only: "en" or "rst"
	Value  uint8  `yaml:"value,omitempty"`  // set only: 0 or 1
	Count  int    `yaml:"count,omitempty"`  // tick: periods; reset: cycles
}

// Set drives a control input between clock operations.
func Set(signal string, value uint8) Op {
	return Op{Op: OpSet, Signal: signal, Value: value}
}

// Tick advances count full clock periods.
func Tick(count int) Op {
	return Op{Op: OpTick, Count: count}
}

// Reset pulses reset for count clock cycles.
func Reset(count int) Op {
	return Op{Op: OpReset, Count: count}
}

// Validate checks an op for structural errors.
func (o Op) Validate() error {
	switch o.Op {
	case OpSet:
		if o.Signal != SignalEn && o.Signal != SignalRst {
			return fmt.Errorf("set: unknown signal %q", o.Signal)
		}
		if o.Value > 1 {
			return fmt.Errorf("set %s: value %d out of range (0 or 1)", o.Signal, o.Value)
		}
		if o.Count != 0 {
			return fmt.Errorf("set %s: count not allowed", o.Signal)
		}
	case OpTick, OpReset:
		if o.Count < 0 {
			return fmt.Errorf("%s: negative count %d", o.Op, o.Count)
		}
		if o.Signal != "" {
			return fmt.Errorf("%s: signal not allowed", o.Op)
		}
	default:
		return fmt.Errorf("unknown op %q", o.Op)
	}
	return nil
}

// Scenario is a named, fixed stimulus script.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Script      []Op   `yaml:"script"`
}

// Validate checks the scenario and every op in its script.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario missing name")
	}
	if len(s.Script) == 0 {
		return fmt.Errorf("scenario %q: empty script", s.Name)
	}
	for i, op := range s.Script {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("scenario %q: op %d: %w", s.Name, i, err)
		}
	}
	return nil
}

// Ticks returns the total number of full clock periods the script drives,
// including those inside reset pulses.
func (s Scenario) Ticks() int {
	n := 0
	for _, op := range s.Script {
		switch op.Op {
		case OpTick, OpReset:
			n += op.Count
		}
	}
	return n
}

// Resets returns the number of reset invocations in the script.
func (s Scenario) Resets() int {
	n := 0
	for _, op := range s.Script {
		if op.Op == OpReset {
			n++
		}
	}
	return n
}

// Builtins returns the builtin scenario table, keyed by exact name.
// The returned map is a fresh copy; callers may extend it.
func Builtins() map[string]Scenario {
	table := map[string]Scenario{}
	for _, s := range builtinList() {
		table[s.Name] = s
	}
	return table
}

// Names returns the scenario names in the table, sorted.
func Names(table map[string]Scenario) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtinList() []Scenario {
	return []Scenario{
		{
			Name:        "basic_counting",
			Description: "count 20 enabled periods, then hold disabled",
			Script: []Op{
				Reset(1),
				Set(SignalEn, 1), Tick(20),
				Set(SignalEn, 0), Tick(5),
			},
		},
		{
			Name:        "hold_when_disabled",
			Description: "count, hold with en low, then resume",
			Script: []Op{
				Reset(1),
				Set(SignalEn, 1), Tick(5),
				Set(SignalEn, 0), Tick(10),
				Set(SignalEn, 1), Tick(5),
			},
		},
		{
			Name:        "reset_behavior",
			Description: "multi-cycle and single-cycle reset pulses with en toggling",
			Script: []Op{
				Set(SignalEn, 1), Reset(2), Tick(5),
				Set(SignalEn, 0), Reset(1), Tick(5),
			},
		},
		{
			Name:        "rst_over_en_priority",
			Description: "reset asserted while enabled must pin the count",
			Script: []Op{
				Reset(1),
				Set(SignalEn, 1), Tick(5),
				Set(SignalRst, 1), Tick(4),
				Set(SignalRst, 0), Tick(6),
			},
		},
		{
			Name:        "wraparound",
			Description: "drive the count through 0xFE, 0xFF, 0x00, 0x01",
			Script: []Op{
				Reset(1),
				Set(SignalEn, 1), Tick(254), Tick(4),
				Set(SignalEn, 0), Tick(4),
			},
		},
		{
			Name:        "mid_stream_reset",
			Description: "single-cycle reset pulse in the middle of a count",
			Script: []Op{
				Reset(1),
				Set(SignalEn, 1), Tick(8),
				Set(SignalRst, 1), Tick(1),
				Set(SignalRst, 0), Tick(8),
			},
		},
	}
}

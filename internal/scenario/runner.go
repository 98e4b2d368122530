package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/wavesense/internal/dut"
	"github.com/roach88/wavesense/internal/sim"
)

// UnknownScenarioError reports a name with no entry in the scenario table.
//
// It is deliberately non-fatal: the baseline snapshot has already been
// recorded by the time the lookup fails, and the run still produces a
// validly closed trace.
type UnknownScenarioError struct {
	Name  string
	Known []string
}

func (e *UnknownScenarioError) Error() string {
	return fmt.Sprintf("unknown scenario %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// IsUnknownScenario reports whether err is an unknown-scenario condition.
// Uses errors.As to handle wrapped errors.
func IsUnknownScenario(err error) bool {
	var ue *UnknownScenarioError
	return errors.As(err, &ue)
}

// Runner resolves scenario names and executes their scripts against a
// freshly initialized device. One runner drives exactly one run:
// SelectScenario, Initialize, RunScript, with finalization owned by the
// caller so close/final order is independent of scenario outcome.
type Runner struct {
	dev   dut.Device
	seq   *sim.Sequencer
	table map[string]Scenario
}

// NewRunner wires a device and recorder into a runner over the given
// scenario table.
func NewRunner(dev dut.Device, rec sim.Recorder, table map[string]Scenario) *Runner {
	return &Runner{
		dev:   dev,
		seq:   sim.NewSequencer(dev, rec),
		table: table,
	}
}

// Now returns the current simulated time (snapshots recorded so far).
func (r *Runner) Now() sim.Time {
	return r.seq.Now()
}

// Run records the time-zero baseline, then executes the named scenario to
// completion. An unknown name returns *UnknownScenarioError after the
// baseline snapshot, with no further device interaction.
func (r *Runner) Run(name string) error {
	if err := r.seq.Init(); err != nil {
		return fmt.Errorf("baseline init: %w", err)
	}

	sc, ok := r.table[name]
	if !ok {
		return &UnknownScenarioError{Name: name, Known: Names(r.table)}
	}
	if err := r.exec(sc); err != nil {
		return fmt.Errorf("scenario %q: %w", name, err)
	}
	return nil
}

func (r *Runner) exec(sc Scenario) error {
	for i, op := range sc.Script {
		var err error
		switch op.Op {
		case OpSet:
			r.setSignal(op.Signal, op.Value)
		case OpTick:
			for n := 0; n < op.Count && err == nil; n++ {
				err = r.seq.Tick()
			}
		case OpReset:
			err = r.seq.Reset(op.Count)
		default:
			err = fmt.Errorf("unknown op %q", op.Op)
		}
		if err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Op, err)
		}
	}
	return nil
}

// setSignal drives a control input directly, between clock operations.
// The next evaluation picks the value up.
func (r *Runner) setSignal(signal string, value uint8) {
	switch signal {
	case SignalEn:
		r.dev.SetEn(value)
	case SignalRst:
		r.dev.SetRst(value)
	}
}

package sim

import (
	"fmt"

	"github.com/roach88/wavesense/internal/dut"
)

// Time is a simulated time step. One unit per recorded snapshot.
type Time uint64

// Recorder is the sink for signal snapshots.
//
// Dump is called with strictly increasing time values. Close flushes and
// finalizes the trace; it is called exactly once, before the device is
// finalized.
type Recorder interface {
	Dump(t Time, s dut.Snapshot) error
	Close() error
}

// Sequencer drives a device through clock and reset primitives, recording
// one snapshot per time step.
//
// Time is sequencer state, not a global: two sequencers never interfere,
// and a fresh sequencer always starts a run at time zero.
type Sequencer struct {
	dev dut.Device
	rec Recorder
	now Time
}

// NewSequencer creates a sequencer at time zero. The sequencer takes
// exclusive ownership of the device and recorder for the run.
func NewSequencer(dev dut.Device, rec Recorder) *Sequencer {
	return &Sequencer{dev: dev, rec: rec}
}

// Now returns the next time step to be recorded, which equals the number
// of snapshots recorded so far.
func (s *Sequencer) Now() Time {
	return s.now
}

// Init establishes the time-zero baseline: all inputs low, one evaluation,
// one snapshot. Runs before any scenario script.
func (s *Sequencer) Init() error {
	s.dev.SetClk(0)
	s.dev.SetRst(0)
	s.dev.SetEn(0)
	return s.step()
}

// Tick advances one full clock period: drive clk low, evaluate, record;
// drive clk high, evaluate, record. The device sees a complete rising
// edge, so edge-triggered state updates exactly once per call.
func (s *Sequencer) Tick() error {
	s.dev.SetClk(0)
	if err := s.step(); err != nil {
		return err
	}
	s.dev.SetClk(1)
	return s.step()
}

// Reset pulses the reset input: assert, evaluate, record; run cycles full
// clock periods; deassert, evaluate, record. Reset is observably asserted
// for at least one snapshot before any clock toggling, and deasserted only
// after all cycles complete. cycles = 0 records just the assert and
// deassert snapshots.
func (s *Sequencer) Reset(cycles int) error {
	s.dev.SetRst(1)
	if err := s.step(); err != nil {
		return err
	}
	for i := 0; i < cycles; i++ {
		if err := s.Tick(); err != nil {
			return err
		}
	}
	s.dev.SetRst(0)
	return s.step()
}

// step evaluates the device, records the snapshot, and advances time.
func (s *Sequencer) step() error {
	s.dev.Eval()
	if err := s.rec.Dump(s.now, s.dev.Snapshot()); err != nil {
		return fmt.Errorf("record snapshot at t=%d: %w", s.now, err)
	}
	s.now++
	return nil
}

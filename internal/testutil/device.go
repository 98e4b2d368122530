// Package testutil provides test doubles for the harness packages.
package testutil

import (
	"fmt"

	"github.com/roach88/wavesense/internal/dut"
	"github.com/roach88/wavesense/internal/sim"
)

// LoggingDevice wraps a real counter and records every call made to it,
// in order. Sequencer tests assert on the exact drive/evaluate sequence.
type LoggingDevice struct {
	Counter *dut.Counter
	Calls   []string
}

// NewLoggingDevice creates a logging wrapper around a fresh counter.
func NewLoggingDevice() *LoggingDevice {
	return &LoggingDevice{Counter: dut.NewCounter()}
}

func (d *LoggingDevice) log(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *LoggingDevice) SetClk(v uint8) {
	d.log("clk=%d", v)
	d.Counter.SetClk(v)
}

func (d *LoggingDevice) SetRst(v uint8) {
	d.log("rst=%d", v)
	d.Counter.SetRst(v)
}

func (d *LoggingDevice) SetEn(v uint8) {
	d.log("en=%d", v)
	d.Counter.SetEn(v)
}

func (d *LoggingDevice) Eval() {
	d.log("eval")
	d.Counter.Eval()
}

func (d *LoggingDevice) Final() {
	d.log("final")
	d.Counter.Final()
}

func (d *LoggingDevice) Snapshot() dut.Snapshot {
	return d.Counter.Snapshot()
}

// FailingRecorder returns an error from Dump at a chosen time step.
// Used to exercise error propagation through the sequencer.
type FailingRecorder struct {
	FailAt sim.Time
	Err    error
	Dumps  int
	Closed bool
}

func (r *FailingRecorder) Dump(t sim.Time, s dut.Snapshot) error {
	if t >= r.FailAt {
		return r.Err
	}
	r.Dumps++
	return nil
}

func (r *FailingRecorder) Close() error {
	r.Closed = true
	return nil
}

// Package dut models the device under test: a free-running 8-bit counter
// with clock, reset, and enable inputs.
//
// The harness treats the device as a black box behind the Device interface.
// Inputs are plain signal assignments; Eval settles the device's internal
// and output state from the current input values, the same contract a
// cycle-accurate simulator exposes for a compiled RTL model.
package dut

// Device is the contract between the harness and a simulated circuit.
//
// The sequencer owns the device for the duration of one run. All methods
// are synchronous; Eval must be safe to call any number of times between
// input changes.
type Device interface {
	// SetClk drives the clock input (0 or 1).
	SetClk(v uint8)

	// SetRst drives the synchronous reset input (0 or 1).
	SetRst(v uint8)

	// SetEn drives the count-enable input (0 or 1).
	SetEn(v uint8)

	// Eval updates internal and output state from the current inputs.
	Eval()

	// Final releases the device. Called exactly once, after the last Eval.
	Final()

	// Snapshot returns the current observable signal values.
	Snapshot() Snapshot
}

// Snapshot is the complete set of observable signals at one instant.
// One snapshot is recorded per simulated time step.
type Snapshot struct {
	Clk   uint8
	Rst   uint8
	En    uint8
	Count uint8
}

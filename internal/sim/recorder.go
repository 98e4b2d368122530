package sim

import "github.com/roach88/wavesense/internal/dut"

// MultiRecorder fans snapshots out to several recorders in order.
// The first error from any recorder stops the run; Close is still
// attempted on every recorder so no sink is left open.
type MultiRecorder []Recorder

// Dump forwards the snapshot to every recorder.
func (m MultiRecorder) Dump(t Time, s dut.Snapshot) error {
	for _, r := range m {
		if err := r.Dump(t, s); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every recorder, returning the first error encountered.
func (m MultiRecorder) Close() error {
	var first error
	for _, r := range m {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

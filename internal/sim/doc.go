// Package sim implements the clock sequencer: the cycle-exact ordering of
// device evaluations and trace snapshots.
//
// Simulated time is a monotonic logical clock. Every recorded snapshot
// advances it by exactly one unit, so time never repeats and never has
// gaps; deterministic ordering never depends on the wall clock. A full
// clock period contributes two units (low phase, high phase) and each
// reset assert/deassert edge contributes one.
//
// The sequencer is strictly forward-progressing: no suspension, no retry,
// no rollback. All operations run to completion before the next begins.
package sim

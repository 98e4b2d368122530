// Package trace holds in-memory trace capture and the canonical JSON
// serialization used for golden-file comparison.
package trace

import (
	"errors"
	"fmt"

	"github.com/roach88/wavesense/internal/dut"
	"github.com/roach88/wavesense/internal/sim"
)

// Event is one recorded snapshot: the full signal set at one time step.
type Event struct {
	Time  uint64 `json:"time"`
	Clk   uint8  `json:"clk"`
	Rst   uint8  `json:"rst"`
	En    uint8  `json:"en"`
	Count uint8  `json:"count"`
}

// Buffer is an in-memory recorder. It backs golden tests, the run-history
// store, and trace inspection.
//
// Buffer enforces the recorder contract: strictly increasing time, no
// dumps after close.
type Buffer struct {
	events []Event
	closed bool
}

// NewBuffer creates an empty trace buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Dump appends one snapshot.
func (b *Buffer) Dump(t sim.Time, s dut.Snapshot) error {
	if b.closed {
		return errors.New("trace: dump after close")
	}
	if n := len(b.events); n > 0 && uint64(t) <= b.events[n-1].Time {
		return fmt.Errorf("trace: time %d not after %d", t, b.events[n-1].Time)
	}
	b.events = append(b.events, Event{
		Time:  uint64(t),
		Clk:   s.Clk,
		Rst:   s.Rst,
		En:    s.En,
		Count: s.Count,
	})
	return nil
}

// Close marks the buffer complete. Events remain readable.
func (b *Buffer) Close() error {
	b.closed = true
	return nil
}

// Events returns the recorded events in time order.
func (b *Buffer) Events() []Event {
	return b.events
}

// Len returns the number of recorded snapshots.
func (b *Buffer) Len() int {
	return len(b.events)
}

// Last returns the most recent event. ok is false on an empty buffer.
func (b *Buffer) Last() (e Event, ok bool) {
	if len(b.events) == 0 {
		return Event{}, false
	}
	return b.events[len(b.events)-1], true
}

package dut

// Counter is the reference device: an 8-bit up-counter.
//
// Behavior per evaluation:
//   - rst high clears the count, regardless of clk or en (reset dominant)
//   - otherwise the count increments modulo 256 on a rising clk edge
//     while en is high
//   - otherwise the count holds
//
// Edge detection compares against the clk value seen by the previous Eval,
// so two evaluations at the same clk level never double-count.
type Counter struct {
	clk     uint8
	rst     uint8
	en      uint8
	prevClk uint8
	count   uint8
	final   bool
}

// NewCounter creates a counter with all inputs low and count zero.
func NewCounter() *Counter {
	return &Counter{}
}

// SetClk drives the clock input. Any nonzero value is treated as high.
func (c *Counter) SetClk(v uint8) { c.clk = bit(v) }

// SetRst drives the reset input.
func (c *Counter) SetRst(v uint8) { c.rst = bit(v) }

// SetEn drives the enable input.
func (c *Counter) SetEn(v uint8) { c.en = bit(v) }

// Eval settles the counter state from the current inputs.
func (c *Counter) Eval() {
	switch {
	case c.rst == 1:
		c.count = 0
	case c.clk == 1 && c.prevClk == 0 && c.en == 1:
		c.count++ // uint8 wraps at 256
	}
	c.prevClk = c.clk
}

// Final marks the device finalized. Calling Final twice panics: the
// harness contract is exactly one finalization per run.
func (c *Counter) Final() {
	if c.final {
		panic("dut: Final called twice")
	}
	c.final = true
}

// Snapshot returns the current signal values.
func (c *Counter) Snapshot() Snapshot {
	return Snapshot{Clk: c.clk, Rst: c.rst, En: c.en, Count: c.count}
}

// Count returns the current counter value. Test convenience.
func (c *Counter) Count() uint8 {
	return c.count
}

func bit(v uint8) uint8 {
	if v != 0 {
		return 1
	}
	return 0
}

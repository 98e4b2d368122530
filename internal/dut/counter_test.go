package dut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// risingEdge drives one full clock period: low, eval, high, eval.
func risingEdge(c *Counter) {
	c.SetClk(0)
	c.Eval()
	c.SetClk(1)
	c.Eval()
}

func TestCounter_StartsAtZero(t *testing.T) {
	c := NewCounter()
	assert.Equal(t, uint8(0), c.Count())

	s := c.Snapshot()
	assert.Equal(t, Snapshot{}, s, "all signals should start low")
}

func TestCounter_IncrementsOnEnabledRisingEdge(t *testing.T) {
	c := NewCounter()
	c.SetEn(1)

	for i := 1; i <= 5; i++ {
		risingEdge(c)
		assert.Equal(t, uint8(i), c.Count(), "after %d edges", i)
	}
}

func TestCounter_HoldsWhenDisabled(t *testing.T) {
	c := NewCounter()
	c.SetEn(1)
	risingEdge(c)
	risingEdge(c)
	require.Equal(t, uint8(2), c.Count())

	c.SetEn(0)
	for i := 0; i < 10; i++ {
		risingEdge(c)
	}
	assert.Equal(t, uint8(2), c.Count(), "count should hold while en=0")
}

func TestCounter_NoDoubleCountWithoutEdge(t *testing.T) {
	c := NewCounter()
	c.SetEn(1)
	risingEdge(c)
	require.Equal(t, uint8(1), c.Count())

	// Re-evaluating at clk=1 is not a new edge.
	c.Eval()
	c.Eval()
	assert.Equal(t, uint8(1), c.Count())
}

func TestCounter_ResetDominatesEnable(t *testing.T) {
	c := NewCounter()
	c.SetEn(1)
	for i := 0; i < 7; i++ {
		risingEdge(c)
	}
	require.Equal(t, uint8(7), c.Count())

	c.SetRst(1)
	for i := 0; i < 4; i++ {
		risingEdge(c)
		assert.Equal(t, uint8(0), c.Count(), "count pinned at 0 while rst=1")
	}

	c.SetRst(0)
	risingEdge(c)
	assert.Equal(t, uint8(1), c.Count(), "counting resumes from 0 after deassert")
}

func TestCounter_ResetWithoutEdge(t *testing.T) {
	c := NewCounter()
	c.SetEn(1)
	risingEdge(c)
	risingEdge(c)
	require.Equal(t, uint8(2), c.Count())

	// A bare evaluation with rst high clears the count even with no
	// clock activity (the cycles=0 reset pulse).
	c.SetRst(1)
	c.Eval()
	assert.Equal(t, uint8(0), c.Count())

	c.SetRst(0)
	c.Eval()
	assert.Equal(t, uint8(0), c.Count(), "deassert alone must not count")
}

func TestCounter_WrapsModulo256(t *testing.T) {
	c := NewCounter()
	c.SetEn(1)
	for i := 0; i < 254; i++ {
		risingEdge(c)
	}
	require.Equal(t, uint8(0xFE), c.Count())

	risingEdge(c)
	assert.Equal(t, uint8(0xFF), c.Count())
	risingEdge(c)
	assert.Equal(t, uint8(0x00), c.Count(), "wraps to zero")
	risingEdge(c)
	assert.Equal(t, uint8(0x01), c.Count())
}

func TestCounter_NonBinaryInputsCoerced(t *testing.T) {
	c := NewCounter()
	c.SetEn(0xFF)
	risingEdge(c)
	assert.Equal(t, uint8(1), c.Count())
	assert.Equal(t, uint8(1), c.Snapshot().En)
}

func TestCounter_FinalTwicePanics(t *testing.T) {
	c := NewCounter()
	c.Final()
	assert.Panics(t, func() { c.Final() })
}

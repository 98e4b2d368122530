package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRun_Deterministic(t *testing.T) {
	events := []Event{
		{Time: 0, Clk: 0, Rst: 0, En: 0, Count: 0},
		{Time: 1, Clk: 1, Rst: 0, En: 1, Count: 1},
	}

	a, err := MarshalRun("basic_counting", events)
	require.NoError(t, err)
	b, err := MarshalRun("basic_counting", events)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same input must produce identical bytes")
}

func TestMarshalRun_Shape(t *testing.T) {
	got, err := MarshalRun("s", []Event{{Time: 3, Clk: 1, Rst: 0, En: 1, Count: 2}})
	require.NoError(t, err)

	// Keys sorted, compact separators, no trailing newline.
	want := `{"scenario":"s","trace":[{"clk":1,"count":2,"en":1,"rst":0,"time":3}]}`
	assert.Equal(t, want, string(got))
}

func TestMarshalRun_EmptyTrace(t *testing.T) {
	got, err := MarshalRun("unknown", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"scenario":"unknown","trace":[]}`, string(got))
}

func TestMarshalCanonical_Rejections(t *testing.T) {
	_, err := marshalCanonical(nil)
	assert.Error(t, err, "null forbidden")

	_, err = marshalCanonical(1.5)
	assert.Error(t, err, "floats forbidden")

	_, err = marshalCanonical(map[string]any{"k": []any{nil}})
	assert.Error(t, err, "nested null forbidden")
}

func TestMarshalCanonicalString_NoHTMLEscape(t *testing.T) {
	got, err := marshalCanonicalString("a<b>&c")
	require.NoError(t, err)
	assert.Equal(t, `"a<b>&c"`, string(got))
}

func TestUTF16KeyOrdering(t *testing.T) {
	// U+FB01 (ﬁ) sorts after U+1D11E (𝄞) in UTF-16 code units because the
	// supplementary character encodes as a surrogate pair starting 0xD834.
	got, err := marshalCanonical(map[string]any{
		"ﬁ":     int64(1),
		"\U0001D11E": int64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"𝄞":2,"ﬁ":1}`, string(got))
}

package harness

import (
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wavesense/internal/dut"
	"github.com/roach88/wavesense/internal/scenario"
	"github.com/roach88/wavesense/internal/vcd"
)

func TestGoldenTraces(t *testing.T) {
	for _, name := range scenario.Names(scenario.Builtins()) {
		t.Run(name, func(t *testing.T) {
			AssertGolden(t, name)
		})
	}
}

func TestGoldenTrace_UnknownScenario(t *testing.T) {
	// The unknown-name run still records the baseline snapshot and its
	// trace is stable, so it gets a fixture too.
	AssertGolden(t, "unknown_scenario")
}

func TestRunScenario_CloseAndFinalOrder(t *testing.T) {
	buf, err := RunScenario("basic_counting", scenario.Builtins())
	require.NoError(t, err)

	assert.Error(t, buf.Dump(9999, dut.Snapshot{}), "buffer closed after run")
	assert.Equal(t, 55, buf.Len())
}

func TestRunScenario_UnknownReturnsBaseline(t *testing.T) {
	buf, err := RunScenario("nope", scenario.Builtins())
	require.Error(t, err)
	assert.True(t, scenario.IsUnknownScenario(err))
	assert.Equal(t, 1, buf.Len())
}

// The VCD output is part of the external contract too: third-party viewers
// consume it. Golden the smallest interesting builtin end to end.
func TestGoldenVCD_MidStreamReset(t *testing.T) {
	path := t.TempDir() + "/waves.vcd"
	wr, err := vcd.Create(path)
	require.NoError(t, err)

	dev := dut.NewCounter()
	runner := scenario.NewRunner(dev, wr, scenario.Builtins())
	require.NoError(t, runner.Run("mid_stream_reset"))
	require.NoError(t, wr.Close())
	dev.Final()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "mid_stream_reset_vcd", data)
}

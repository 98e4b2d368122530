package vcd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wavesense/internal/dut"
)

func tracePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "waves.vcd")
}

func TestCreate_WritesHeader(t *testing.T) {
	path := tracePath(t)
	wr, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, wr.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "$timescale 1ns $end")
	assert.Contains(t, text, "$scope module counter $end")
	assert.Contains(t, text, "$var wire 1 ! clk $end")
	assert.Contains(t, text, "$var wire 1 \" rst $end")
	assert.Contains(t, text, "$var wire 1 # en $end")
	assert.Contains(t, text, "$var wire 8 $ count [7:0] $end")
	assert.Contains(t, text, "$enddefinitions $end")
	assert.NotContains(t, text, "$date", "header must be deterministic")
}

func TestCreate_FailsOnBadPath(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "no", "such", "dir", "w.vcd"))
	require.Error(t, err)
}

func TestDump_InitialDumpvarsThenChangesOnly(t *testing.T) {
	path := tracePath(t)
	wr, err := Create(path)
	require.NoError(t, err)

	require.NoError(t, wr.Dump(0, dut.Snapshot{Clk: 0, Rst: 0, En: 0, Count: 0}))
	require.NoError(t, wr.Dump(1, dut.Snapshot{Clk: 1, Rst: 0, En: 0, Count: 0}))
	require.NoError(t, wr.Dump(2, dut.Snapshot{Clk: 1, Rst: 0, En: 1, Count: 0}))
	require.NoError(t, wr.Dump(3, dut.Snapshot{Clk: 1, Rst: 0, En: 1, Count: 5}))
	require.NoError(t, wr.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)

	// Initial values dumped in full.
	assert.Contains(t, body, "#0\n$dumpvars\n0!\n0\"\n0#\nb0 $\n$end\n")

	// Later steps carry only the changed signals.
	assert.Contains(t, body, "#1\n1!\n#2\n1#\n#3\nb101 $\n")
	assert.Equal(t, 1, strings.Count(body, "$dumpvars"))
}

func TestDump_VectorOmitsLeadingZeros(t *testing.T) {
	path := tracePath(t)
	wr, err := Create(path)
	require.NoError(t, err)

	require.NoError(t, wr.Dump(0, dut.Snapshot{Count: 0xFE}))
	require.NoError(t, wr.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "b11111110 $")
}

func TestDump_EnforcesIncreasingTime(t *testing.T) {
	wr, err := Create(tracePath(t))
	require.NoError(t, err)
	defer wr.Close()

	require.NoError(t, wr.Dump(3, dut.Snapshot{}))
	assert.Error(t, wr.Dump(3, dut.Snapshot{}))
	assert.Error(t, wr.Dump(2, dut.Snapshot{}))
	assert.NoError(t, wr.Dump(4, dut.Snapshot{}))
}

func TestClose_Idempotent(t *testing.T) {
	wr, err := Create(tracePath(t))
	require.NoError(t, err)

	require.NoError(t, wr.Close())
	require.NoError(t, wr.Close())
	assert.Error(t, wr.Dump(0, dut.Snapshot{}), "dump after close")
}

// Package harness provides golden-trace test helpers.
//
// A golden file is the canonical JSON serialization of a full run trace,
// checked into testdata/golden. Fixtures are the source of truth for
// cycle-exact behavior: any drift in sequencing, device semantics, or
// snapshot ordering fails the comparison.
//
// To regenerate fixtures after an intentional change:
//
//	go test ./internal/harness -update
package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/wavesense/internal/dut"
	"github.com/roach88/wavesense/internal/scenario"
	"github.com/roach88/wavesense/internal/trace"
)

// RunScenario executes a scenario from the table against a fresh counter,
// returning the captured trace. The recorder is closed and the device
// finalized before returning, in that order. An unknown name still
// returns the baseline trace alongside the error.
func RunScenario(name string, table map[string]scenario.Scenario) (*trace.Buffer, error) {
	dev := dut.NewCounter()
	buf := trace.NewBuffer()
	runner := scenario.NewRunner(dev, buf, table)

	err := runner.Run(name)

	if cerr := buf.Close(); cerr != nil && err == nil {
		err = cerr
	}
	dev.Final()
	return buf, err
}

// AssertGolden runs a builtin scenario and compares its canonical trace
// against testdata/golden/<name>.golden.
func AssertGolden(t *testing.T, name string) {
	t.Helper()

	buf, err := RunScenario(name, scenario.Builtins())
	if err != nil && !scenario.IsUnknownScenario(err) {
		t.Fatalf("run scenario %s: %v", name, err)
	}

	data, err := trace.MarshalRun(name, buf.Events())
	if err != nil {
		t.Fatalf("marshal trace for %s: %v", name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

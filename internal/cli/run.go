package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/wavesense/internal/dut"
	"github.com/roach88/wavesense/internal/scenario"
	"github.com/roach88/wavesense/internal/sim"
	"github.com/roach88/wavesense/internal/store"
	"github.com/roach88/wavesense/internal/trace"
	"github.com/roach88/wavesense/internal/vcd"
)

// Defaults for the two positional arguments.
const (
	DefaultScenario  = "basic_counting"
	DefaultTracePath = "waves.vcd"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database     string
	ScenarioFile string

	// Tokens overrides the run token generator (for testing).
	// Defaults to store.UUIDv7Generator.
	Tokens store.TokenGenerator
}

// RunResult is the run command's success payload.
type RunResult struct {
	Scenario  string `json:"scenario"`
	TracePath string `json:"trace_path"`
	Snapshots int    `json:"snapshots"`
	Count     uint8  `json:"count"`
	RunToken  string `json:"run_token,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [scenario] [trace-path]",
		Short: "Run a stimulus scenario and record its waveform trace",
		Long: `Run a named stimulus scenario against a fresh counter device.

The scenario defaults to "` + DefaultScenario + `" and the trace path to
"` + DefaultTracePath + `". An unknown scenario name emits a diagnostic and still
produces a valid trace holding only the baseline snapshot; the exit
status stays 0.

Examples:
  wavesense run
  wavesense run wraparound /tmp/wrap.vcd
  wavesense run basic_counting waves.vcd --db runs.db
  wavesense run short_burst --scenarios extra.yaml`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record run history to this SQLite database")
	cmd.Flags().StringVar(&opts.ScenarioFile, "scenarios", "", "YAML file with additional scenarios")

	return cmd
}

func runScenario(opts *RunOptions, args []string, cmd *cobra.Command) error {
	name := DefaultScenario
	tracePath := DefaultTracePath
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		tracePath = args[1]
	}

	table := scenario.Builtins()
	if opts.ScenarioFile != "" {
		extra, err := scenario.LoadFile(opts.ScenarioFile)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenarios", err)
		}
		if err := scenario.Merge(table, extra); err != nil {
			return WrapExitError(ExitCommandError, "failed to merge scenarios", err)
		}
		slog.Debug("loaded scenario file", "path", opts.ScenarioFile, "scenarios", len(extra))
	}

	// A trace file that cannot be opened is fatal: there is no recorder
	// to run against.
	writer, err := vcd.Create(tracePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open trace file", err)
	}

	var rec sim.Recorder = writer
	var buf *trace.Buffer
	if opts.Database != "" {
		buf = trace.NewBuffer()
		rec = sim.MultiRecorder{writer, buf}
	}

	dev := dut.NewCounter()
	runner := scenario.NewRunner(dev, rec, table)

	slog.Debug("scenario starting", "scenario", name, "trace", tracePath)
	runErr := runner.Run(name)

	// Finalization order is fixed: recorder closes first, device second,
	// regardless of scenario outcome.
	closeErr := rec.Close()
	dev.Final()

	if closeErr != nil {
		return WrapExitError(ExitCommandError, "failed to close trace file", closeErr)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	snapshots := int(runner.Now())

	if runErr != nil {
		if scenario.IsUnknownScenario(runErr) {
			// Deliberately lenient: the baseline snapshot and a validly
			// closed trace already exist.
			fmt.Fprintf(cmd.ErrOrStderr(), "Unknown scenario: %s\n", name)
			return formatter.Error("UNKNOWN_SCENARIO", runErr.Error())
		}
		return WrapExitError(ExitFailure, fmt.Sprintf("scenario %s failed", name), runErr)
	}
	slog.Debug("scenario complete", "scenario", name, "snapshots", snapshots)

	result := RunResult{
		Scenario:  name,
		TracePath: tracePath,
		Snapshots: snapshots,
		Count:     dev.Count(),
	}

	if opts.Database != "" {
		token, err := recordRun(cmd.Context(), opts, result, buf)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record run history", err)
		}
		result.RunToken = token
	}

	if formatter.JSON() {
		return formatter.Success(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "scenario:  %s\n", result.Scenario)
	fmt.Fprintf(cmd.OutOrStdout(), "trace:     %s\n", result.TracePath)
	fmt.Fprintf(cmd.OutOrStdout(), "snapshots: %d\n", result.Snapshots)
	fmt.Fprintf(cmd.OutOrStdout(), "count:     %d\n", result.Count)
	if result.RunToken != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "run:       %s\n", result.RunToken)
	}
	return nil
}

func recordRun(ctx context.Context, opts *RunOptions, result RunResult, buf *trace.Buffer) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = store.UUIDv7Generator{}
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			slog.Error("error closing run database", "error", cerr)
		}
	}()

	token := tokens.Generate()
	run := store.Run{Token: token, Scenario: result.Scenario, VCDPath: result.TracePath}
	if err := st.RecordRun(ctx, run, buf.Events()); err != nil {
		return "", err
	}
	slog.Debug("run recorded", "token", token, "db", opts.Database)
	return token, nil
}

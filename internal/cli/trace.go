package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/wavesense/internal/store"
	"github.com/roach88/wavesense/internal/trace"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Run      string
}

// RunTimeline is the trace command's payload for a single run.
type RunTimeline struct {
	Token    string        `json:"token"`
	Scenario string        `json:"scenario"`
	Timeline []trace.Event `json:"timeline"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect recorded run history",
		Long: `Inspect runs recorded with "run --db".

Without --run, lists recorded runs newest first. With --run, prints the
full snapshot timeline of that run, reconstructed in time order.

Examples:
  wavesense trace --db runs.db
  wavesense trace --db runs.db --run 019212aa-...
  wavesense trace --db runs.db --run 019212aa-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to run history database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Run, "run", "", "run token to show the timeline for")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open run database", err)
	}
	defer st.Close()

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Run == "" {
		return listRuns(ctx, st, formatter, cmd)
	}
	return showTimeline(ctx, st, opts.Run, formatter, cmd)
}

func listRuns(ctx context.Context, st *store.Store, formatter *OutputFormatter, cmd *cobra.Command) error {
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if formatter.JSON() {
		if runs == nil {
			runs = []store.Run{}
		}
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-22s %4d snapshots  %s\n",
			r.Token, r.Scenario, r.Snapshots, r.CreatedAt)
	}
	return nil
}

func showTimeline(ctx context.Context, st *store.Store, token string, formatter *OutputFormatter, cmd *cobra.Command) error {
	run, err := st.GetRun(ctx, token)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to get run", err)
	}
	events, err := st.ReplayRun(ctx, token)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to replay run", err)
	}

	if formatter.JSON() {
		if events == nil {
			events = []trace.Event{}
		}
		return formatter.Success(RunTimeline{
			Token:    run.Token,
			Scenario: run.Scenario,
			Timeline: events,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run %s (%s)\n", run.Token, run.Scenario)
	fmt.Fprintln(cmd.OutOrStdout(), "time  clk rst en  count")
	for _, e := range events {
		fmt.Fprintf(cmd.OutOrStdout(), "%-5d %3d %3d %2d  0x%02X\n",
			e.Time, e.Clk, e.Rst, e.En, e.Count)
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/wavesense/internal/scenario"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	ScenarioFile string
}

// ScenarioInfo is one list entry.
type ScenarioInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Ticks       int    `json:"ticks"`
	Resets      int    `json:"resets"`
	Snapshots   int    `json:"snapshots"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available scenarios",
		Long: `List the builtin scenarios, plus any loaded from --scenarios.

The snapshot count shown is the exact trace length a run produces:
two per clock period, two per reset invocation, plus the baseline.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listScenarios(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ScenarioFile, "scenarios", "", "YAML file with additional scenarios")

	return cmd
}

func listScenarios(opts *ListOptions, cmd *cobra.Command) error {
	table := scenario.Builtins()
	if opts.ScenarioFile != "" {
		extra, err := scenario.LoadFile(opts.ScenarioFile)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenarios", err)
		}
		if err := scenario.Merge(table, extra); err != nil {
			return WrapExitError(ExitCommandError, "failed to merge scenarios", err)
		}
	}

	infos := make([]ScenarioInfo, 0, len(table))
	for _, name := range scenario.Names(table) {
		sc := table[name]
		infos = append(infos, ScenarioInfo{
			Name:        sc.Name,
			Description: sc.Description,
			Ticks:       sc.Ticks(),
			Resets:      sc.Resets(),
			Snapshots:   2*sc.Ticks() + 2*sc.Resets() + 1,
		})
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.JSON() {
		return formatter.Success(infos)
	}

	for _, info := range infos {
		fmt.Fprintf(cmd.OutOrStdout(), "%-22s %4d snapshots  %s\n",
			info.Name, info.Snapshots, info.Description)
	}
	return nil
}

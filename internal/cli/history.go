package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fpga-bringup/rvcheck/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewHistoryCommand creates the history command: list runs recorded in
// a run log written via --log-db on build, coverage or selftest.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded harness runs",
		Long: `List runs from a SQLite run log, newest first.

Examples:
  rvcheck history --db runs.db
  rvcheck history --db runs.db --limit 10 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite run log (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list, 0 for all")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	log, err := history.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open run log", err)
	}
	defer log.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	records, err := log.List(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list runs", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: out}
		return formatter.Success(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	for _, rec := range records {
		status := "ok"
		if !rec.OK {
			status = "FAIL"
		}
		fmt.Fprintf(out, "%s  %-8s %-4s %s/%s", rec.CreatedAt, rec.Kind, status, rec.Arch, rec.ABI)
		if rec.Detail != "" {
			fmt.Fprintf(out, "  (%s)", rec.Detail)
		}
		fmt.Fprintln(out)
	}
	return nil
}

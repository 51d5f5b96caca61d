package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fpga-bringup/rvcheck/internal/conformance"
	"github.com/fpga-bringup/rvcheck/internal/history"
)

// SelftestOptions holds flags for the selftest command.
type SelftestOptions struct {
	*RootOptions
	LogDB string
}

// selftestResult is the JSON payload for a selftest run.
type selftestResult struct {
	Passed int                     `json:"passed"`
	Failed int                     `json:"failed"`
	Status int                     `json:"status"`
	Checks []conformance.Assertion `json:"checks,omitempty"`
}

// NewSelftestCommand creates the selftest command: run the test group
// registry natively on the build host. This exercises the same
// assertion semantics the C program runs on the target, so expected
// values can be validated before an image ever reaches hardware.
func NewSelftestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SelftestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run the conformance test groups natively on the host",
		Long: `Execute every test group with host arithmetic and report the ledger.

The exit status is the ledger's final status: zero when every assertion
passed, nonzero otherwise. All groups always run to completion; a
failure never aborts the run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelftest(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.LogDB, "log-db", "", "append the run to this SQLite run log")
	return cmd
}

func runSelftest(opts *SelftestOptions, cmd *cobra.Command) error {
	runID := uuid.Must(uuid.NewV7()).String()

	ledger := conformance.NewLedger()
	conformance.NewRegistry().Run(ledger)
	slog.Info("selftest complete",
		"run_id", runID,
		"passed", ledger.Passed,
		"failed", ledger.Failed,
		"status", ledger.Status,
	)

	if opts.LogDB != "" {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		recordRun(ctx, opts.LogDB, history.Record{
			ID: runID, Kind: history.KindSelftest,
			Arch: "host", ABI: "host", Toolchain: "native",
			OK:     ledger.Status == 0,
			Detail: fmt.Sprintf("passed=%d failed=%d", ledger.Passed, ledger.Failed),
		})
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: out}
		result := selftestResult{
			Passed: ledger.Passed,
			Failed: ledger.Failed,
			Status: ledger.Status,
		}
		if opts.Verbose {
			result.Checks = ledger.Records
		}
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		if opts.Verbose {
			for _, rec := range ledger.Records {
				mark := "ok  "
				if !rec.OK {
					mark = "FAIL"
				}
				fmt.Fprintf(out, "%s %s\n", mark, rec.Label)
			}
		} else {
			for _, rec := range ledger.Records {
				if !rec.OK {
					fmt.Fprintf(out, "FAIL %s\n", rec.Label)
				}
			}
		}
		fmt.Fprintf(out, "%d passed, %d failed\n", ledger.Passed, ledger.Failed)
	}

	if status := ledger.Finalize(); status != 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d assertion(s) failed", ledger.Failed))
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fpga-bringup/rvcheck/internal/coverage"
	"github.com/fpga-bringup/rvcheck/internal/history"
	"github.com/fpga-bringup/rvcheck/internal/pipeline"
)

// CoverageOptions holds flags for the coverage command.
type CoverageOptions struct {
	*RootOptions
	Config  ConfigOptions
	Listing string
	LogDB   string
}

// NewCoverageCommand creates the coverage command: verify that the most
// recently produced disassembly listing contains every required
// base-ISA mnemonic.
func NewCoverageCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CoverageOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Check required mnemonic coverage of the built image",
		Long: `Scan the disassembly listing for the required base-ISA mnemonic set.

Exits zero when every mnemonic is present, nonzero with an enumerated
list of missing mnemonics otherwise. The check is textual presence
only: it proves the binary contains each instruction, not that the
instruction behaves correctly (the target-side assertions do that).

Examples:
  rvcheck coverage
  rvcheck coverage --listing build/conformance.dis --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoverage(opts, cmd)
		},
	}

	addConfigFlags(cmd, &opts.Config)
	cmd.Flags().StringVar(&opts.Listing, "listing", "", "disassembly listing to scan (default: the build output)")
	cmd.Flags().StringVar(&opts.LogDB, "log-db", "", "append the run to this SQLite run log")

	return cmd
}

func runCoverage(opts *CoverageOptions, cmd *cobra.Command) error {
	runID := uuid.Must(uuid.NewV7()).String()

	cfg, err := resolveConfig(&opts.Config)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to resolve build configuration", err)
	}

	listingPath := opts.Listing
	if listingPath == "" {
		listingPath = pipeline.New(cfg, nil, slog.Default()).Paths().Listing
	}

	f, err := os.Open(listingPath)
	if err != nil {
		return WrapExitError(ExitFailure,
			fmt.Sprintf("cannot open listing %s (run `rvcheck build` first)", listingPath), err)
	}
	defer f.Close()

	required := coverage.RequiredRV32I()
	report, err := coverage.Verify(f, required)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to scan listing", err)
	}
	slog.Info("coverage checked",
		"run_id", runID,
		"listing", listingPath,
		"required", len(required),
		"missing", len(report.Missing),
	)

	if opts.LogDB != "" {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		recordRun(ctx, opts.LogDB, history.Record{
			ID: runID, Kind: history.KindCoverage,
			Arch: cfg.FullArch(), ABI: cfg.ABI,
			Toolchain: cfg.Toolchain.Prefix,
			OK:        report.OK,
			Detail:    coverageDetail(report),
		})
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		report.WriteText(cmd.OutOrStdout())
	}

	if !report.OK {
		return NewExitError(ExitFailure, "coverage incomplete")
	}
	return nil
}

func coverageDetail(report *coverage.Report) string {
	if report.OK {
		return ""
	}
	return "missing: " + strings.Join(report.Missing, ", ")
}

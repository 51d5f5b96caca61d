package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fpga-bringup/rvcheck/internal/history"
	"github.com/fpga-bringup/rvcheck/internal/pipeline"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Config ConfigOptions
	LogDB  string

	// Runner overrides the external tool runner (for testing).
	// If nil, tools run as host processes.
	Runner pipeline.Runner
}

// NewBuildCommand creates the build command, the harness's default
// action: resolve the configuration, then produce the ELF image, raw
// binary, disassembly listing and linker map.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the conformance image and its disassembly",
		Long: `Resolve the build configuration, invoke the cross-toolchain, and
produce the executable image, the raw binary image, the disassembly
listing and the linker map.

Examples:
  rvcheck build
  rvcheck build --arch rv32i --ext m --ext c --abi ilp32
  rvcheck build --profile profiles/rv32im.yaml --out-dir build`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, cmd)
		},
	}

	addConfigFlags(cmd, &opts.Config)
	cmd.Flags().StringVar(&opts.LogDB, "log-db", "", "append the run to this SQLite run log")

	return cmd
}

func runBuild(opts *BuildOptions, cmd *cobra.Command) error {
	runID := uuid.Must(uuid.NewV7()).String()

	cfg, err := resolveConfig(&opts.Config)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to resolve build configuration", err)
	}
	slog.Info("configuration resolved",
		"run_id", runID,
		"arch", cfg.FullArch(),
		"abi", cfg.ABI,
		"toolchain", cfg.Toolchain.Prefix,
		"verified", cfg.Toolchain.Verified,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	builder := pipeline.New(cfg, opts.Runner, slog.Default())
	artifacts, buildErr := builder.Build(ctx)

	if opts.LogDB != "" {
		recordRun(ctx, opts.LogDB, history.Record{
			ID: runID, Kind: history.KindBuild,
			Arch: cfg.FullArch(), ABI: cfg.ABI,
			Toolchain: cfg.Toolchain.Prefix,
			OK:        buildErr == nil,
			Detail:    errDetail(buildErr),
		})
	}

	if buildErr != nil {
		msg := "build failed"
		if !cfg.Toolchain.Verified {
			msg += fmt.Sprintf(" (toolchain %q was never found during probing; install it or pass --toolchain)", cfg.Toolchain.Prefix)
		}
		return WrapExitError(ExitFailure, msg, buildErr)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(artifacts)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "built %s (%s/%s)\n", artifacts.ELF, cfg.FullArch(), cfg.ABI)
	fmt.Fprintf(cmd.OutOrStdout(), "  raw image: %s\n", artifacts.Bin)
	fmt.Fprintf(cmd.OutOrStdout(), "  listing:   %s\n", artifacts.Listing)
	fmt.Fprintf(cmd.OutOrStdout(), "  map:       %s\n", artifacts.Map)
	return nil
}

// recordRun appends to the run log, logging instead of failing: the
// log is operational convenience, never part of the build contract.
func recordRun(ctx context.Context, path string, rec history.Record) {
	log, err := history.Open(path)
	if err != nil {
		slog.Error("run log unavailable", "path", path, "error", err)
		return
	}
	defer log.Close()

	if _, err := log.Append(ctx, rec); err != nil {
		slog.Error("failed to append run record", "path", path, "error", err)
	}
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

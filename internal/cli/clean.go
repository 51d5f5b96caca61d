package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fpga-bringup/rvcheck/internal/pipeline"
)

// CleanOptions holds flags for the clean command.
type CleanOptions struct {
	*RootOptions
	Config ConfigOptions
}

// NewCleanCommand creates the clean command: remove generated build
// artifacts. Idempotent, safe to run when nothing has been built.
func NewCleanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CleanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "clean",
		Short:         "Remove generated build artifacts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(&opts.Config)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to resolve build configuration", err)
			}

			if err := pipeline.New(cfg, nil, slog.Default()).Clean(); err != nil {
				return WrapExitError(ExitFailure, "failed to remove artifacts", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleaned %s\n", cfg.OutDir)
			return nil
		},
	}

	addConfigFlags(cmd, &opts.Config)
	return cmd
}

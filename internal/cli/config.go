package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ConfigCmdOptions holds flags for the config command.
type ConfigCmdOptions struct {
	*RootOptions
	Config ConfigOptions
}

// NewConfigCommand creates the config command: print the resolved build
// configuration without invoking the toolchain.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigCmdOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved build configuration without building",
		Long: `Resolve defaults, profile and flag overrides, probe for a
cross-toolchain, and print the result. Nothing is built.

Examples:
  rvcheck config
  rvcheck config --ext m --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(&opts.Config)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to resolve build configuration", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if opts.Format == "json" {
				return formatter.Success(cfg)
			}
			fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			return nil
		},
	}

	addConfigFlags(cmd, &opts.Config)
	return cmd
}

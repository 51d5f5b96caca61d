package cli

import (
	"github.com/spf13/cobra"

	"github.com/fpga-bringup/rvcheck/internal/buildcfg"
)

// ConfigOptions collects the build-configuration override flags shared
// by the build, coverage, config and clean commands.
type ConfigOptions struct {
	Arch       string
	Extensions []string
	ABI        string
	Toolchain  string
	Sources    []string
	OutDir     string
	Profile    string
}

// addConfigFlags registers the override flags on a command.
func addConfigFlags(cmd *cobra.Command, o *ConfigOptions) {
	cmd.Flags().StringVar(&o.Arch, "arch", "", "base architecture (default rv32i)")
	cmd.Flags().StringArrayVar(&o.Extensions, "ext", nil, "ISA extension, repeatable, appended in order")
	cmd.Flags().StringVar(&o.ABI, "abi", "", "target ABI (default ilp32)")
	cmd.Flags().StringVar(&o.Toolchain, "toolchain", "", "explicit cross-toolchain prefix")
	cmd.Flags().StringArrayVar(&o.Sources, "src", nil, "program source, repeatable")
	cmd.Flags().StringVar(&o.OutDir, "out-dir", "", "artifact output directory (default out)")
	cmd.Flags().StringVar(&o.Profile, "profile", "", "YAML build profile to load before flag overrides")
}

// resolveConfig layers defaults, an optional profile file, and flag
// overrides (in that order, later wins) into a resolved configuration.
func resolveConfig(o *ConfigOptions) (*buildcfg.Config, error) {
	var overrides buildcfg.Overrides

	if o.Profile != "" {
		profile, err := buildcfg.LoadProfile(o.Profile)
		if err != nil {
			return nil, err
		}
		overrides = profile.Overrides()
	}

	if o.Arch != "" {
		overrides.BaseArch = o.Arch
	}
	if len(o.Extensions) > 0 {
		overrides.Extensions = o.Extensions
	}
	if o.ABI != "" {
		overrides.ABI = o.ABI
	}
	if o.Toolchain != "" {
		overrides.ToolchainPrefix = o.Toolchain
	}
	if len(o.Sources) > 0 {
		overrides.Sources = o.Sources
	}
	if o.OutDir != "" {
		overrides.OutDir = o.OutDir
	}

	return buildcfg.Resolve(overrides)
}

// Package buildcfg resolves the concrete build configuration for a
// conformance build: architecture string, ABI, source list and the
// cross-toolchain to invoke.
package buildcfg

import (
	"fmt"
	"strings"
)

// Defaults for a bare RV32I conformance build.
const (
	DefaultBaseArch = "rv32i"
	DefaultABI      = "ilp32"
	DefaultOutDir   = "out"
)

// DefaultSources are the target program sources, relative to the
// repository root. The conformance program is the image under test; the
// linker script fixes the memory layout the processor expects.
var DefaultSources = []string{"program/crt0.S", "program/conformance.c"}

// DefaultLinkerScript is the fixed memory-map used for every build.
const DefaultLinkerScript = "program/link.ld"

// Config is a fully resolved build configuration. Resolved once before
// any toolchain invocation and immutable thereafter.
type Config struct {
	BaseArch     string    `json:"base_arch" yaml:"arch"`
	Extensions   []string  `json:"extensions,omitempty" yaml:"extensions"`
	ABI          string    `json:"abi" yaml:"abi"`
	Toolchain    Toolchain `json:"toolchain" yaml:"-"`
	Sources      []string  `json:"sources" yaml:"sources"`
	LinkerScript string    `json:"linker_script" yaml:"linker_script"`
	OutDir       string    `json:"out_dir" yaml:"out_dir"`
}

// FullArch assembles the -march string: base architecture with every
// extension concatenated in order. No validation and no de-duplication;
// an illegal combination is rejected by the real toolchain, and a
// duplicated extension is a caller error.
func (c *Config) FullArch() string {
	var sb strings.Builder
	sb.WriteString(c.BaseArch)
	for _, ext := range c.Extensions {
		sb.WriteString(ext)
	}
	return sb.String()
}

// Overrides are caller-supplied configuration overrides. Zero values
// mean "use the default"; an explicit toolchain prefix short-circuits
// probing entirely.
type Overrides struct {
	BaseArch        string
	Extensions      []string
	ABI             string
	ToolchainPrefix string
	Sources         []string
	LinkerScript    string
	OutDir          string
}

// Resolve produces the concrete configuration from defaults and
// overrides, and detects an available cross-toolchain. Deterministic
// for a given host environment: identical inputs always yield an
// identical configuration.
func Resolve(o Overrides) (*Config, error) {
	cfg := &Config{
		BaseArch:     DefaultBaseArch,
		ABI:          DefaultABI,
		Sources:      append([]string(nil), DefaultSources...),
		LinkerScript: DefaultLinkerScript,
		OutDir:       DefaultOutDir,
	}

	if o.BaseArch != "" {
		cfg.BaseArch = o.BaseArch
	}
	if len(o.Extensions) > 0 {
		cfg.Extensions = append([]string(nil), o.Extensions...)
	}
	if o.ABI != "" {
		cfg.ABI = o.ABI
	}
	if len(o.Sources) > 0 {
		cfg.Sources = append([]string(nil), o.Sources...)
	}
	if o.LinkerScript != "" {
		cfg.LinkerScript = o.LinkerScript
	}
	if o.OutDir != "" {
		cfg.OutDir = o.OutDir
	}

	cfg.Toolchain = DetectToolchain(o.ToolchainPrefix)
	return cfg, nil
}

// String renders the resolved configuration for the config command's
// text output.
func (c *Config) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "arch:       %s\n", c.FullArch())
	fmt.Fprintf(&sb, "abi:        %s\n", c.ABI)
	fmt.Fprintf(&sb, "toolchain:  %s", c.Toolchain.Prefix)
	if !c.Toolchain.Verified {
		sb.WriteString(" (unverified)")
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "sources:    %s\n", strings.Join(c.Sources, " "))
	fmt.Fprintf(&sb, "linker:     %s\n", c.LinkerScript)
	fmt.Fprintf(&sb, "out dir:    %s\n", c.OutDir)
	return sb.String()
}

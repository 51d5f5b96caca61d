// Package pipeline drives the cross-toolchain: compile and link the
// conformance program, extract the raw binary image, and produce the
// disassembly listing the coverage verifier consumes.
//
// Each step is a single external invocation. Steps are strictly
// sequential because each consumes the previous step's artifact; any
// nonzero tool exit aborts the pipeline with the tool's diagnostics
// surfaced verbatim.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fpga-bringup/rvcheck/internal/buildcfg"
)

// imageName is the base name of every generated artifact.
const imageName = "conformance"

// Artifacts are the paths produced by a successful build. All of them
// are regenerable from sources and configuration; none are
// authoritative state.
type Artifacts struct {
	ELF     string `json:"elf"`
	Bin     string `json:"bin"`
	Listing string `json:"listing"`
	Map     string `json:"map"`
}

// Builder runs the build pipeline for one resolved configuration.
type Builder struct {
	cfg    *buildcfg.Config
	runner Runner
	logger *slog.Logger
}

// New creates a builder. A nil runner defaults to ExecRunner; a nil
// logger defaults to slog.Default().
func New(cfg *buildcfg.Config, runner Runner, logger *slog.Logger) *Builder {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{cfg: cfg, runner: runner, logger: logger}
}

// Paths returns the artifact locations for the builder's output
// directory without building anything.
func (b *Builder) Paths() Artifacts {
	join := func(ext string) string {
		return filepath.Join(b.cfg.OutDir, imageName+ext)
	}
	return Artifacts{
		ELF:     join(".elf"),
		Bin:     join(".bin"),
		Listing: join(".dis"),
		Map:     join(".map"),
	}
}

// Build produces, in order: the linked ELF image, the raw binary image,
// and the disassembly listing. The linker map is emitted as a side
// effect of the link step.
func (b *Builder) Build(ctx context.Context) (*Artifacts, error) {
	tc := b.cfg.Toolchain
	if !tc.Verified {
		b.logger.Warn("toolchain prefix unverified, build may fail",
			"prefix", tc.Prefix)
	}

	if err := os.MkdirAll(b.cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	art := b.Paths()

	// Compile and link in one invocation against the fixed memory
	// layout. -lgcc supplies the soft multiply/divide support routines
	// the base ISA needs when the M extension is absent.
	ccArgs := []string{
		"-march=" + b.cfg.FullArch(),
		"-mabi=" + b.cfg.ABI,
		"-O2", "-g",
		"-ffreestanding", "-nostartfiles",
		"-T", b.cfg.LinkerScript,
		"-Wl,-Map=" + art.Map,
		"-o", art.ELF,
	}
	ccArgs = append(ccArgs, b.cfg.Sources...)
	ccArgs = append(ccArgs, "-lgcc")

	b.logger.Info("compiling", "arch", b.cfg.FullArch(), "abi", b.cfg.ABI, "elf", art.ELF)
	if _, err := b.runner.Run(ctx, tc.CC(), ccArgs...); err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	b.logger.Info("extracting raw image", "bin", art.Bin)
	if _, err := b.runner.Run(ctx, tc.Objcopy(), "-O", "binary", art.ELF, art.Bin); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	b.logger.Info("disassembling", "listing", art.Listing)
	listing, err := b.runner.Run(ctx, tc.Objdump(), "-d", art.ELF)
	if err != nil {
		return nil, fmt.Errorf("disassemble: %w", err)
	}
	if err := os.WriteFile(art.Listing, listing, 0o644); err != nil {
		return nil, fmt.Errorf("writing listing: %w", err)
	}

	sizeOut, err := b.runner.Run(ctx, tc.Size(), art.ELF)
	if err != nil {
		return nil, fmt.Errorf("size: %w", err)
	}
	b.logger.Info("image built", "size", strings.TrimSpace(string(sizeOut)))

	return &art, nil
}

// Clean removes generated artifacts. Idempotent: missing files are not
// an error, and the output directory is removed only if it is empty.
func (b *Builder) Clean() error {
	art := b.Paths()
	for _, path := range []string{art.ELF, art.Bin, art.Listing, art.Map} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}

	// Best effort: the directory stays if anything else lives in it.
	_ = os.Remove(b.cfg.OutDir)
	return nil
}

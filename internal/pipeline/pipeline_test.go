package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpga-bringup/rvcheck/internal/buildcfg"
	"github.com/fpga-bringup/rvcheck/internal/testutil"
)

func testConfig(t *testing.T) *buildcfg.Config {
	t.Helper()
	return &buildcfg.Config{
		BaseArch:     "rv32i",
		ABI:          "ilp32",
		Toolchain:    buildcfg.Toolchain{Prefix: "riscv32-unknown-elf-", Verified: true},
		Sources:      []string{"program/crt0.S", "program/conformance.c"},
		LinkerScript: "program/link.ld",
		OutDir:       t.TempDir(),
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuild_InvokesToolsInOrder(t *testing.T) {
	cfg := testConfig(t)
	runner := testutil.NewScriptedRunner().
		Output("riscv32-unknown-elf-objdump", []byte("0:\tadd\ta0,a0,a1\n")).
		Output("riscv32-unknown-elf-size", []byte("   text	   data	    bss\n"))

	art, err := New(cfg, runner, quietLogger()).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"riscv32-unknown-elf-gcc",
		"riscv32-unknown-elf-objcopy",
		"riscv32-unknown-elf-objdump",
		"riscv32-unknown-elf-size",
	}, runner.CallNames())

	listing, err := os.ReadFile(art.Listing)
	require.NoError(t, err)
	assert.Equal(t, "0:\tadd\ta0,a0,a1\n", string(listing))
}

func TestBuild_CompileArgs(t *testing.T) {
	cfg := testConfig(t)
	cfg.Extensions = []string{"m", "c"}
	runner := testutil.NewScriptedRunner()

	b := New(cfg, runner, quietLogger())
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	calls := runner.Calls()
	require.NotEmpty(t, calls)
	cc := calls[0]

	assert.Contains(t, cc.Args, "-march=rv32imc")
	assert.Contains(t, cc.Args, "-mabi=ilp32")
	assert.Contains(t, cc.Args, "-nostartfiles")
	assert.Contains(t, cc.Args, "program/conformance.c")

	// The soft mul/div support library is always the last link input.
	assert.Equal(t, "-lgcc", cc.Args[len(cc.Args)-1])

	// Linker script and map file are fixed per configuration.
	assert.Contains(t, cc.Args, "-T")
	assert.Contains(t, cc.Args, "program/link.ld")
	assert.Contains(t, cc.Args, "-Wl,-Map="+b.Paths().Map)
}

func TestBuild_CompileFailureAbortsPipeline(t *testing.T) {
	cfg := testConfig(t)
	runner := testutil.NewScriptedRunner().
		Fail("riscv32-unknown-elf-gcc", "error: unknown argument '-march=rv32x'")

	_, err := New(cfg, runner, quietLogger()).Build(context.Background())
	require.Error(t, err)

	// Tool diagnostics surface verbatim; later steps never run.
	assert.Contains(t, err.Error(), "compile:")
	assert.Contains(t, err.Error(), "unknown argument")
	assert.Equal(t, []string{"riscv32-unknown-elf-gcc"}, runner.CallNames())
}

func TestBuild_ExtractFailureAbortsBeforeDisassembly(t *testing.T) {
	cfg := testConfig(t)
	runner := testutil.NewScriptedRunner().
		Fail("riscv32-unknown-elf-objcopy", "objcopy: cannot open output")

	_, err := New(cfg, runner, quietLogger()).Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract:")
	assert.Equal(t, []string{
		"riscv32-unknown-elf-gcc",
		"riscv32-unknown-elf-objcopy",
	}, runner.CallNames())
}

func TestPaths_DerivedFromOutDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutDir = "out"

	art := New(cfg, testutil.NewScriptedRunner(), quietLogger()).Paths()
	assert.Equal(t, filepath.Join("out", "conformance.elf"), art.ELF)
	assert.Equal(t, filepath.Join("out", "conformance.bin"), art.Bin)
	assert.Equal(t, filepath.Join("out", "conformance.dis"), art.Listing)
	assert.Equal(t, filepath.Join("out", "conformance.map"), art.Map)
}

func TestClean_Idempotent(t *testing.T) {
	cfg := testConfig(t)
	b := New(cfg, testutil.NewScriptedRunner(), quietLogger())

	_, err := b.Build(context.Background())
	require.NoError(t, err)
	require.FileExists(t, b.Paths().Listing)

	require.NoError(t, b.Clean())
	assert.NoFileExists(t, b.Paths().Listing)

	// Safe to run again with nothing left to remove.
	require.NoError(t, b.Clean())
}

func TestToolError_CarriesStderrVerbatim(t *testing.T) {
	err := &ToolError{
		Tool:   "riscv32-unknown-elf-gcc",
		Args:   []string{"-march=rv32i"},
		Stderr: "conformance.c:12: error: expected ';'\n",
		Err:    assert.AnError,
	}
	msg := err.Error()
	assert.Contains(t, msg, "riscv32-unknown-elf-gcc -march=rv32i")
	assert.Contains(t, msg, "expected ';'")
}

package buildcfg

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Toolchain is a resolved cross-toolchain handle. Tool paths are
// derived from the prefix; Verified reports whether probing actually
// found the compiler. An unverified toolchain is still usable: the
// failure surfaces at first pipeline invocation, where the real error
// text is more actionable than a generic probe failure.
type Toolchain struct {
	Prefix   string `json:"prefix"`
	Verified bool   `json:"verified"`
}

// Tool names behind the prefix.
func (t Toolchain) CC() string      { return t.Prefix + "gcc" }
func (t Toolchain) Objcopy() string { return t.Prefix + "objcopy" }
func (t Toolchain) Objdump() string { return t.Prefix + "objdump" }
func (t Toolchain) Size() string    { return t.Prefix + "size" }

// candidatePrefixes are probed in priority order: 64-bit bare-metal
// first (multilib builds cover rv32), then 32-bit bare-metal, then
// Linux-target variants.
var candidatePrefixes = []string{
	"riscv64-unknown-elf-",
	"riscv32-unknown-elf-",
	"riscv64-elf-",
	"riscv-none-elf-",
	"riscv64-linux-gnu-",
}

// installDirs are well-known installation locations checked when no
// candidate is on PATH.
var installDirs = []string{
	"/opt/riscv/bin",
	"/usr/local/riscv/bin",
	"/opt/riscv32/bin",
}

// fallbackPrefix is used, unverified, when every probe fails.
const fallbackPrefix = "riscv64-unknown-elf-"

// DetectToolchain resolves a cross-toolchain. Priority order, first
// match wins:
//
//  1. an explicit prefix override, taken as-is and marked verified
//     only if its compiler resolves;
//  2. candidate prefixes probed on PATH;
//  3. candidate prefixes probed in well-known installation directories,
//     returned as absolute prefixes;
//  4. the fixed fallback prefix, unverified.
//
// Probing is best-effort in a bring-up environment, so detection never
// fails outright; an unusable result fails at first use instead.
func DetectToolchain(explicit string) Toolchain {
	return detectToolchain(explicit, onPath, fileExists)
}

func detectToolchain(explicit string, onPath func(string) bool, exists func(string) bool) Toolchain {
	if explicit != "" {
		return Toolchain{Prefix: explicit, Verified: onPath(explicit+"gcc") || exists(explicit+"gcc")}
	}

	for _, prefix := range candidatePrefixes {
		if onPath(prefix + "gcc") {
			return Toolchain{Prefix: prefix, Verified: true}
		}
	}

	for _, dir := range installDirs {
		for _, prefix := range candidatePrefixes {
			if exists(filepath.Join(dir, prefix+"gcc")) {
				return Toolchain{Prefix: filepath.Join(dir, prefix), Verified: true}
			}
		}
	}

	return Toolchain{Prefix: fallbackPrefix, Verified: false}
}

func onPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

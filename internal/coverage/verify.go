// Package coverage proves that a compiled image actually contains every
// instruction the conformance suite claims to exercise, by scanning the
// image's disassembly listing for a required mnemonic set.
//
// The listing is treated as opaque line-oriented text. Presence of a
// mnemonic anywhere in the listing counts, even on an unreachable path;
// functional correctness is left to the target-side assertions.
package coverage

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Report is the outcome of one verification pass.
type Report struct {
	// Required is the mnemonic set that was checked, in input order.
	Required []string `json:"required"`

	// Missing lists mnemonics absent from the listing, preserving the
	// order of Required for reproducible reports.
	Missing []string `json:"missing,omitempty"`

	// OK is true iff Missing is empty.
	OK bool `json:"ok"`
}

// Found returns the number of required mnemonics present in the listing.
func (r *Report) Found() int {
	return len(r.Required) - len(r.Missing)
}

// Verify scans a disassembly listing for every mnemonic in required.
//
// Matching is whole-token: a mnemonic is present only if it occurs as a
// standalone token on some line. A substring match would produce false
// positives (sll inside slli), so lines are split on anything that
// cannot appear inside a mnemonic.
func Verify(listing io.Reader, required []string) (*Report, error) {
	present := make(map[string]bool)

	scanner := bufio.NewScanner(listing)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		for _, tok := range tokenize(scanner.Text()) {
			present[tok] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading listing: %w", err)
	}

	report := &Report{Required: append([]string(nil), required...)}
	for _, m := range required {
		if !present[m] {
			report.Missing = append(report.Missing, m)
		}
	}
	report.OK = len(report.Missing) == 0
	return report, nil
}

// VerifyString is Verify over an in-memory listing.
func VerifyString(listing string, required []string) (*Report, error) {
	return Verify(strings.NewReader(listing), required)
}

// tokenize splits a listing line into mnemonic-shaped tokens. Mnemonics
// consist of letters, digits and dots (fence.i, fcvt.w.s); everything
// else, including tabs, commas and parentheses, delimits.
func tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= 'A' && r <= 'Z':
			return false
		case r >= '0' && r <= '9':
			return false
		case r == '.' || r == '_':
			return false
		}
		return true
	})
}

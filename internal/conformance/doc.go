// Package conformance implements the target-side half of the ISA test
// harness: an assertion ledger and a fixed registry of instruction test
// groups mirroring the C conformance program under program/.
//
// The groups compute expected results with RV32I arithmetic semantics
// (32-bit two's-complement wraparound, logical vs. arithmetic right
// shift, full-width unsigned comparison) so the same checks that run on
// the target image can be validated natively on the build host via
// `rvcheck selftest`.
//
// The registry and the required mnemonic set in package coverage are
// maintained in parallel by hand. Nothing enforces that the compiler
// emits exactly the instruction a group intends to exercise; the
// coverage check is a necessary but not sufficient proof of coverage.
package conformance

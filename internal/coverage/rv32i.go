package coverage

// RequiredRV32I returns the base-ISA mnemonic set the conformance build
// is required to exercise, in the instruction-listing order used for
// reports.
//
// fence, ecall and ebreak are deliberately absent: the C conformance
// program is plain freestanding code and never emits them, so requiring
// them would fail every build. The set is maintained by hand in
// parallel with the test group registry.
func RequiredRV32I() []string {
	return []string{
		"lui", "auipc",
		"jal", "jalr",
		"beq", "bne", "blt", "bge", "bltu", "bgeu",
		"lb", "lh", "lw", "lbu", "lhu",
		"sb", "sh", "sw",
		"addi", "slti", "sltiu", "xori", "ori", "andi",
		"slli", "srli", "srai",
		"add", "sub", "sll", "slt", "sltu", "xor",
		"srl", "sra", "or", "and",
	}
}

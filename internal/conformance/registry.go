package conformance

// DefaultGroups returns the full group sequence in registry order. The
// order is fixed so a given build always produces the same ledger
// trajectory (bring-up logs must be reproducible run to run).
func DefaultGroups() []Group {
	return []Group{
		{Name: "arithmetic", Run: testArithmetic},
		{Name: "memory", Run: testMemory},
		{Name: "branches", Run: testBranches},
		{Name: "loops", Run: testLoops},
		{Name: "functions", Run: testFunctions},
		{Name: "immediates", Run: testImmediates},
		{Name: "upper_immediates", Run: testUpperImmediates},
		{Name: "jumps", Run: testJumps},
	}
}

// TotalAssertions is the number of assertions the default registry
// records on every run, pass or fail.
const TotalAssertions = ArithmeticAssertions + MemoryAssertions +
	BranchAssertions + LoopAssertions + FunctionAssertions +
	ImmediateAssertions + UpperImmediateAssertions + JumpAssertions

// Registry executes test groups in a fixed order against one ledger.
type Registry struct {
	groups []Group
}

// NewRegistry returns a registry over the default group sequence.
func NewRegistry() *Registry {
	return &Registry{groups: DefaultGroups()}
}

// NewRegistryWith returns a registry over an explicit group sequence.
// Used by tests and by partial selftest runs.
func NewRegistryWith(groups ...Group) *Registry {
	return &Registry{groups: groups}
}

// Groups returns the registered groups in execution order.
func (r *Registry) Groups() []Group {
	return r.groups
}

// Run resets the ledger and executes every group to completion. A
// failing assertion never aborts the run; later groups still execute
// and contribute their own outcomes.
func (r *Registry) Run(l *Ledger) {
	l.Reset()
	for _, g := range r.groups {
		g.Run(l)
	}
}

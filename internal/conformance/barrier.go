package conformance

// opaque returns its argument through a call the compiler will not
// inline, so the value stays a runtime operand. Register-form shifts,
// indirect-call targets, and recursion results are routed through it;
// the C program uses volatile for the same purpose.
//
//go:noinline
func opaque(v int32) int32 {
	return v
}

//go:noinline
func opaqueU(v uint32) uint32 {
	return v
}

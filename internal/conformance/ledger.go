package conformance

// Assertion is one recorded check outcome. Immutable once recorded.
type Assertion struct {
	OK    bool   `json:"ok"`
	Label string `json:"label"`
}

// Ledger accumulates assertion outcomes for a single harness run.
//
// It is deliberately not safe for concurrent use: the target program is
// single-threaded, and the host-side selftest threads one Ledger through
// the registry run by exclusive ownership.
type Ledger struct {
	Passed  int         `json:"passed"`
	Failed  int         `json:"failed"`
	Status  int         `json:"status"` // 0 = all passed, sticky 1 on first failure
	Records []Assertion `json:"records,omitempty"`
}

// NewLedger returns a zeroed ledger, equivalent to Reset on a fresh value.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record notes one assertion outcome.
//
// A failure sets Status to 1 and it never clears for the rest of the run.
func (l *Ledger) Record(ok bool, label string) {
	l.Records = append(l.Records, Assertion{OK: ok, Label: label})
	if ok {
		l.Passed++
		return
	}
	l.Failed++
	l.Status = 1
}

// Reset zeroes all counters and drops recorded assertions.
// Called exactly once at harness start.
func (l *Ledger) Reset() {
	*l = Ledger{}
}

// Finalize returns the sticky status for use as a process exit value.
func (l *Ledger) Finalize() int {
	return l.Status
}

// Total returns the number of assertions recorded so far.
func (l *Ledger) Total() int {
	return l.Passed + l.Failed
}

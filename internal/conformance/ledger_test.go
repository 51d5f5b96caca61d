package conformance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRecord_CountsAndStickyStatus(t *testing.T) {
	l := NewLedger()

	l.Record(true, "first")
	assert.Equal(t, 1, l.Passed)
	assert.Equal(t, 0, l.Failed)
	assert.Equal(t, 0, l.Status)

	l.Record(false, "second")
	assert.Equal(t, 1, l.Passed)
	assert.Equal(t, 1, l.Failed)
	assert.Equal(t, 1, l.Status)

	// Status is sticky: a later pass must not clear it.
	l.Record(true, "third")
	assert.Equal(t, 2, l.Passed)
	assert.Equal(t, 1, l.Failed)
	assert.Equal(t, 1, l.Status)
}

func TestLedgerInvariant_TotalEqualsRecords(t *testing.T) {
	l := NewLedger()
	outcomes := []bool{true, false, true, true, false, false, true}

	for i, ok := range outcomes {
		l.Record(ok, "check")
		assert.Equal(t, i+1, l.Total())
		assert.Len(t, l.Records, i+1)
	}
	assert.Equal(t, l.Passed+l.Failed, len(l.Records))
}

func TestLedgerStatus_ZeroIffNoFailures(t *testing.T) {
	l := NewLedger()
	for i := 0; i < 10; i++ {
		l.Record(true, "pass")
	}
	assert.Zero(t, l.Status)
	assert.Zero(t, l.Finalize())

	l.Record(false, "fail")
	assert.NotZero(t, l.Status)
	assert.Equal(t, 1, l.Finalize())
}

func TestLedgerReset(t *testing.T) {
	l := NewLedger()
	l.Record(false, "fail")
	require.NotZero(t, l.Status)

	l.Reset()
	assert.Zero(t, l.Passed)
	assert.Zero(t, l.Failed)
	assert.Zero(t, l.Status)
	assert.Empty(t, l.Records)
}

func TestLedgerRecords_PreserveOrderAndLabels(t *testing.T) {
	l := NewLedger()
	l.Record(true, "ADD")
	l.Record(false, "SUB")
	l.Record(true, "AND")

	require.Len(t, l.Records, 3)
	assert.Equal(t, Assertion{OK: true, Label: "ADD"}, l.Records[0])
	assert.Equal(t, Assertion{OK: false, Label: "SUB"}, l.Records[1])
	assert.Equal(t, Assertion{OK: true, Label: "AND"}, l.Records[2])
}

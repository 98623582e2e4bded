package contingency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shapelet-mining/tarone/contingency"
)

func TestTableInsertAdvancesAOrD(t *testing.T) {
	table := contingency.New(4, 2, 0.5, false)

	table.Insert(0.1, true)  // a++
	table.Insert(0.1, false) // d++
	table.Insert(0.9, true)  // neither
	table.Insert(0.9, false) // neither

	assert.True(t, table.Complete())
	assert.Equal(t, 1, table.A())
	assert.Equal(t, 1, table.D())
	assert.Equal(t, 1, table.B())
	assert.Equal(t, 1, table.C())
}

func TestTableIncompleteUntilEveryElementInserted(t *testing.T) {
	table := contingency.New(3, 1, 0.5, false)
	table.Insert(0.1, true)
	assert.False(t, table.Complete())
}

func TestTableEqualIgnoresThreshold(t *testing.T) {
	a := contingency.New(4, 2, 0.1, false)
	a.Insert(0.05, true)
	a.Insert(0.05, false)
	a.Insert(0.9, true)
	a.Insert(0.9, false)

	b := contingency.New(4, 2, 0.9, false)
	b.Insert(0.05, true)
	b.Insert(0.05, false)
	b.Insert(0.9, true)
	b.Insert(0.9, false)

	assert.True(t, a.Equal(b))
}

func TestTablePWithNoAssociationIsHigh(t *testing.T) {
	// every element falls on the same side of the threshold: RS == N,
	// chi-squared statistic is 0, p must be 1.
	table := contingency.New(4, 2, 1, false)
	table.Insert(0.1, true)
	table.Insert(0.1, false)
	table.Insert(0.1, true)
	table.Insert(0.1, false)

	assert.Equal(t, 1.0, table.P())
}

func TestTablePWithPerfectAssociationIsLow(t *testing.T) {
	table := contingency.New(4, 2, 0.5, false)
	table.Insert(0.1, true)
	table.Insert(0.1, true)
	table.Insert(0.9, false)
	table.Insert(0.9, false)

	assert.Less(t, table.P(), 0.05)
}

func TestTableWithPseudocountsInflatesMarginals(t *testing.T) {
	table := contingency.New(10, 5, 0.5, true)
	assert.Equal(t, 14, table.N())
	assert.Equal(t, 7, table.N1())
	assert.Equal(t, 7, table.N0())
	assert.Equal(t, 1, table.A())
	assert.Equal(t, 1, table.D())
}

func TestMinAttainablePBoundaryIsOne(t *testing.T) {
	table := contingency.New(10, 5, 0.5, false)
	assert.Equal(t, 1.0, table.MinAttainablePAt(0))
	assert.Equal(t, 1.0, table.MinAttainablePAt(10))
}

func TestMinOptimisticPNeverExceedsEventualP(t *testing.T) {
	table := contingency.New(6, 3, 0.5, false)
	table.Insert(0.1, true)
	table.Insert(0.1, false)

	optimistic := table.MinOptimisticP()

	table.Insert(0.9, true)
	table.Insert(0.9, false)
	table.Insert(0.9, true)
	table.Insert(0.9, false)

	assert.LessOrEqual(t, optimistic, table.P()+1e-12)
}

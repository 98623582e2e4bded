package contingency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shapelet-mining/tarone/contingency"
)

func TestMinPTableSortedAscending(t *testing.T) {
	table := contingency.Build(10, 4, false)
	for i := 1; i < table.Len(); i++ {
		assert.LessOrEqual(t, table.At(i-1), table.At(i))
	}
}

func TestMinPTableSmallestMatchesFirstEntry(t *testing.T) {
	table := contingency.Build(12, 6, false)
	assert.Equal(t, table.At(0), table.Smallest())
}

func TestMinPTableCountAtMostIsConsistentWithLinearScan(t *testing.T) {
	table := contingency.Build(20, 8, false)
	threshold := table.At(table.Len() / 2)

	want := 0
	for i := 0; i < table.Len(); i++ {
		if table.At(i) <= threshold {
			want++
		}
	}

	assert.Equal(t, want, table.CountAtMost(threshold))
}

func TestMinPTableEmptyTableSmallestIsOne(t *testing.T) {
	table := contingency.Build(1, 0, false)
	assert.Equal(t, 1.0, table.Smallest())
}

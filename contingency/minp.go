package contingency

import "sort"

// MinPTable is the precomputed, ascending-sorted vector of minimum
// attainable p-values M = [m(1), ..., m(n-1)] for a fixed (n, n1)
// problem instance, per spec.md §4.4. It is built once per mining run
// and is read-only afterward, so it may be shared freely across
// goroutines.
type MinPTable struct {
	values []float64
	n, n1  int
}

// Build precomputes M for the given dataset marginals. When
// withPseudocounts is set, n/n1/n0 are inflated exactly as Table.New
// inflates them, per the pseudocount-accounting open question in
// spec.md §9 (resolved here by computing against the same marginals the
// driver's tables actually use, rather than the nominal, uninflated
// ones — see DESIGN.md).
func Build(n, n1 int, withPseudocounts bool) *MinPTable {
	// A single table is constructed and reused purely to keep this
	// package's only source of truth for marginal inflation in one
	// place (Table.New); MinAttainablePAt itself does not depend on the
	// table's mutable state.
	reference := New(n, n1, 0, withPseudocounts)

	values := make([]float64, 0, reference.n-1)
	for rs := 1; rs <= reference.n-1; rs++ {
		values = append(values, reference.MinAttainablePAt(rs))
	}
	sort.Float64s(values)

	return &MinPTable{values: values, n: n, n1: n1}
}

// Len returns the number of precomputed entries (n-1, using the
// inflated n when pseudocounts were requested).
func (m *MinPTable) Len() int { return len(m.values) }

// At returns the i-th smallest precomputed minimum attainable p-value.
func (m *MinPTable) At(i int) float64 { return m.values[i] }

// Smallest returns the smallest value in M, i.e. the best-case minimum
// attainable p-value over every possible column marginal for this
// dataset. No hypothesis can ever beat this bound.
func (m *MinPTable) Smallest() float64 {
	if len(m.values) == 0 {
		return 1
	}
	return m.values[0]
}

// CountAtMost returns the number of entries in M that are <= threshold.
// Because M is sorted ascending this is a single binary search, per
// spec.md §4.4's O(log n) requirement.
func (m *MinPTable) CountAtMost(threshold float64) int {
	return sort.Search(len(m.values), func(i int) bool {
		return m.values[i] > threshold
	})
}

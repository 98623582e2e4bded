// Package contingency implements the 2x2 contingency table at the heart
// of the mining core (spec component B) and the minimum-attainable-p
// lookup table used to drive Tarone's adjustment (component C).
package contingency

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// chiSquared1 is the one-degree-of-freedom Chi-squared distribution used
// for every p-value computed by this package. It is immutable after
// construction and safe to share across goroutines, per the teacher's
// pattern of process-wide read-only statistical parameters.
var chiSquared1 = distuv.ChiSquared{K: 1}

// Table is a (possibly partially filled) 2x2 contingency table cross
// tabulating class label against the predicate "distance <= threshold".
// Only A and D are advanced by Insert; B and C are derived on demand as
// N1-A and N0-D, per spec.md §4.3.
type Table struct {
	// n, n1, n0 are the dataset marginals. When withPseudocounts is set
	// they are inflated by 4/2/2 respectively, per spec.md §3.
	n, n1, n0 int

	a, d int

	threshold    float64
	pseudocounts bool

	// inserted counts real Insert calls (pseudocounts are not inserted,
	// they are part of the initial state), so completeness can be judged
	// against the real dataset size regardless of inflation.
	inserted int
	actualN  int
}

// New creates an empty table for a dataset with n total instances, n1 of
// which are class 1, evaluated at distance threshold. When
// withPseudocounts is true every cell starts at 1 and the marginals are
// inflated accordingly, guaranteeing P is always defined.
func New(n, n1 int, threshold float64, withPseudocounts bool) *Table {
	t := &Table{
		threshold:    threshold,
		pseudocounts: withPseudocounts,
		actualN:      n,
	}
	if withPseudocounts {
		t.n = n + 4
		t.n1 = n1 + 2
		t.n0 = (n - n1) + 2
		t.a = 1
		t.d = 1
	} else {
		t.n = n
		t.n1 = n1
		t.n0 = n - n1
	}
	return t
}

// Insert records one dataset element. Exactly one of A or D is advanced
// when distance <= the table's threshold and nothing else changes
// otherwise; B and C are always derived, never stored.
func (t *Table) Insert(distance float64, label bool) {
	if distance <= t.threshold {
		if label {
			t.a++
		} else {
			t.d++
		}
	}
	t.inserted++
}

// Complete reports whether every dataset element has been inserted.
func (t *Table) Complete() bool {
	return t.inserted == t.actualN
}

// A, B, C, D return the four cells of the table. B and C are derived
// from the fixed marginals and the current A/D.
func (t *Table) A() int { return t.a }
func (t *Table) D() int { return t.d }
func (t *Table) B() int { return t.n1 - t.a }
func (t *Table) C() int { return t.n0 - t.d }

// N, N1, N0 return the (possibly pseudocount-inflated) dataset marginals.
func (t *Table) N() int  { return t.n }
func (t *Table) N1() int { return t.n1 }
func (t *Table) N0() int { return t.n0 }

// RS and QS return the column marginals: RS = A+D, QS = B+C = N-RS.
func (t *Table) RS() int { return t.a + t.d }
func (t *Table) QS() int { return t.n - t.RS() }

// Threshold returns the distance threshold this table was built for.
func (t *Table) Threshold() float64 { return t.threshold }

// Pseudocounts reports whether this table was built with pseudocounts.
func (t *Table) Pseudocounts() bool { return t.pseudocounts }

// Equal reports whether two tables hold the same four cell values. The
// threshold is deliberately excluded, per spec.md §4.3.
func (t *Table) Equal(other *Table) bool {
	return t.A() == other.A() && t.B() == other.B() &&
		t.C() == other.C() && t.D() == other.D()
}

// String renders the table as "a, b, d, c", matching the column order of
// the original implementation's output operator.
func (t *Table) String() string {
	return fmt.Sprintf("%d, %d, %d, %d", t.A(), t.B(), t.D(), t.C())
}

// t statistic (Pearson Chi-squared, one degree of freedom) for arbitrary
// (possibly virtual) cell values under fixed marginals n, n1, n0.
func chiSquaredStatistic(n, n1, n0, a, d int) float64 {
	b := n1 - a
	c := n0 - d
	rs := a + d
	qs := b + c
	if rs == 0 || qs == 0 {
		return 0
	}

	num := float64(a)*float64(c) - float64(b)*float64(d)
	num *= num

	denom := float64(n1) * float64(n0) * float64(rs) * float64(qs)
	return float64(n) * num / denom
}

// pValue returns the upper-tail probability of the Chi-squared(1)
// distribution at statistic t, clamped to [0, 1] to absorb the floating
// point underflow/overflow spec.md §4.6 asks for.
func pValue(t float64) float64 {
	if t <= 0 {
		return 1
	}
	p := chiSquared1.Survival(t)
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func pValueFor(n, n1, n0, a, d int) float64 {
	b := n1 - a
	c := n0 - d
	rs := a + d
	qs := b + c
	if rs == 0 || qs == 0 {
		return 1
	}
	return pValue(chiSquaredStatistic(n, n1, n0, a, d))
}

// P computes the table's p-value. It requires a complete table; calling
// it on an incomplete table yields a meaningless result, since B and C
// are derived from marginals that assume every element has been seen.
func (t *Table) P() float64 {
	return pValueFor(t.n, t.n1, t.n0, t.a, t.d)
}

// MinAttainablePAt returns the smallest p-value any complete table with
// this table's n, n1, n0 and the given column marginal rs can yield, per
// spec.md §4.3. By convention m(0) = m(n) = 1.
func (t *Table) MinAttainablePAt(rs int) float64 {
	return minAttainableP(t.n, t.n1, t.n0, rs)
}

// MinAttainableP returns MinAttainablePAt for the table's current column
// marginal RS.
func (t *Table) MinAttainableP() float64 {
	return t.MinAttainablePAt(t.RS())
}

func minAttainableP(n, n1, n0, rs int) float64 {
	if rs <= 0 || rs >= n {
		return 1
	}

	a1 := rs
	if a1 > n1 {
		a1 = n1
	}
	d1 := rs - a1
	if d1 > n0 {
		d1 = n0
		a1 = rs - d1
	}

	d2 := rs
	if d2 > n0 {
		d2 = n0
	}
	a2 := rs - d2
	if a2 > n1 {
		a2 = n1
		d2 = rs - a2
	}

	p1 := pValueFor(n, n1, n0, a1, d1)
	p2 := pValueFor(n, n1, n0, a2, d2)
	if p1 < p2 {
		return p1
	}
	return p2
}

// MinOptimisticP returns the smallest p-value any completion of this
// (possibly incomplete) table could yield, by pushing all remaining
// elements to whichever extreme maximises association, per spec.md §4.3.
func (t *Table) MinOptimisticP() float64 {
	p1 := pValueFor(t.n, t.n1, t.n0, t.n1, t.d)
	p2 := pValueFor(t.n, t.n1, t.n0, t.a, t.n0)
	if p1 < p2 {
		return p1
	}
	return p2
}

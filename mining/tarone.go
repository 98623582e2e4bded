package mining

import (
	"sync"

	"github.com/shapelet-mining/tarone/contingency"
)

// taroneState tracks the running Tarone adjustment: the count K of
// hypotheses (contingency tables) found testable so far, and the
// corrected significance level derived from it.
//
// Resolution of the spec's open question on what "the testability index
// k" actually tracks (spec.md §4.5/§9): this implementation keeps k
// identically equal to K, the count of hypotheses confirmed testable so
// far. K only ever increases, so k is trivially monotone non-decreasing
// and alpha/K is trivially non-increasing once K > 0, satisfying
// spec.md §8 invariant 3. Each candidate's own minimum attainable p is
// computed directly off its own table rather than looked up in the
// precomputed contingency.MinPTable; that table instead backs Exhausted
// below, the §4.4 O(log n) search applied globally rather than
// per-candidate: it tells the driver when no future hypothesis,
// regardless of its own marginals, could possibly become testable, so
// the remaining candidates can be skipped outright. See DESIGN.md for
// the full writeup.
type taroneState struct {
	mu    sync.Mutex
	alpha float64
	k     int
	minP  *contingency.MinPTable
}

func newTaroneState(alpha float64, minP *contingency.MinPTable) *taroneState {
	return &taroneState{alpha: alpha, minP: minP}
}

// correctedAlphaLocked returns alpha/K, or alpha itself while K is still
// zero (no hypothesis has been tested yet, so no correction has been
// earned), matching the "all labels identical" boundary scenario in
// spec.md §8 where the reported corrected threshold equals alpha.
func (s *taroneState) correctedAlphaLocked() float64 {
	if s.k == 0 {
		return s.alpha
	}
	return s.alpha / float64(s.k)
}

// Peek returns the current corrected threshold without mutating state.
func (s *taroneState) Peek() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correctedAlphaLocked()
}

// Evaluate records a hypothesis with the given minimum attainable
// p-value against the current corrected threshold. If it beats the
// threshold it is counted as testable (K is incremented) and the new,
// tighter corrected threshold is returned; otherwise the hypothesis is
// untestable and the threshold is left unchanged.
func (s *taroneState) Evaluate(minAttainableP float64) (testable bool, correctedAlpha float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	threshold := s.correctedAlphaLocked()
	if minAttainableP > threshold {
		return false, threshold
	}

	s.k++
	return true, s.correctedAlphaLocked()
}

// MergeBatch folds a worker-local testable count into the shared state
// in one step, per the parallelisation strategy in spec.md §5: local
// tallies are merged, then the corrected threshold is recomputed once
// per batch rather than once per candidate.
func (s *taroneState) MergeBatch(testableDelta int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.k += testableDelta
	return s.correctedAlphaLocked()
}

// K returns the current testable-hypothesis count.
func (s *taroneState) K() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.k
}

// Exhausted reports whether the current corrected threshold already
// excludes every precomputed minimum attainable p-value, i.e. whether
// CountAtMost finds zero entries of M at or below the threshold a new
// candidate would be compared against. Since every candidate's own
// minimum attainable p is bounded below by M's smallest entry, this
// means no future candidate, no matter how favourable its marginals,
// could ever be admitted as testable. Callers use it to stop mining
// early once the testability frontier is provably closed.
func (s *taroneState) Exhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.minP.Len() == 0 {
		return true
	}
	return s.minP.CountAtMost(s.correctedAlphaLocked()) == 0
}

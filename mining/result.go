package mining

import (
	"github.com/shapelet-mining/tarone/contingency"
	"github.com/shapelet-mining/tarone/timeseries"
)

// SignificantShapelet is one surviving candidate: the shapelet itself,
// the p-value of the table that produced it, and that table, together
// with the provenance spec.md §6's JSON output wants ("size", "start").
type SignificantShapelet struct {
	Shapelet   timeseries.Shapelet
	P          float64
	Table      *contingency.Table
	WindowSize int
	SeriesIdx  int
	Offset     int
}

// ThresholdSet records, for one candidate, every distance threshold the
// driver evaluated — the introspection spec.md §4.5 asks the driver to
// expose to callers.
type ThresholdSet struct {
	SeriesIdx  int
	Offset     int
	WindowSize int
	Thresholds []float64
}

// Result is the outcome of one Mine call.
type Result struct {
	Significant          []SignificantShapelet
	CorrectedThreshold   float64
	ThresholdsConsidered []ThresholdSet
	CandidatesEvaluated  int
	TestableHypotheses   int

	// Complete is false only when mining was stopped early by
	// cooperative cancellation (spec.md §7's Cancelled case); the
	// result up to that point is still valid and usable.
	Complete bool

	// Exhausted is true when mining stopped before considering every
	// candidate because the Tarone bound proved no further hypothesis
	// could ever become testable (see mining/tarone.go's Exhausted).
	// Unlike Complete being false, this is not a partial result: every
	// candidate that could possibly contribute a significant shapelet
	// was already evaluated.
	Exhausted bool

	// Diagnostic carries a human-readable note for one of spec.md §7's
	// non-error outcomes: errors.ErrDegenerateStatistics.Error() when
	// every label is identical, or errors.ErrCancelled.Error() when
	// Complete is false. Empty when there is nothing to report.
	Diagnostic string
}

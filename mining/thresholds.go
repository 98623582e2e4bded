package mining

import (
	"math"
	"sort"
)

// computeThresholds builds the set of distance thresholds to evaluate
// for one candidate, per spec.md §4.5 step 2: every distinct distance
// value observed, plus the midpoint between each pair of consecutive
// sorted distinct values, so that every possible bipartition of the
// dataset by distance is represented by some threshold.
//
// When defaultFactor is set the upper bound of the threshold range is
// scaled by 1/sqrt(windowSize) instead of 1, per the parameter table in
// spec.md §6 — shrinking the candidate set for longer shapelets, where
// the raw distance range grows roughly with sqrt(windowSize).
func computeThresholds(distances []float64, windowSize int, defaultFactor bool) []float64 {
	if len(distances) == 0 {
		return nil
	}

	sorted := make([]float64, len(distances))
	copy(sorted, distances)
	sort.Float64s(sorted)

	distinct := sorted[:0:0]
	for i, d := range sorted {
		if i == 0 || d != sorted[i-1] {
			distinct = append(distinct, d)
		}
	}

	thresholds := make([]float64, 0, 2*len(distinct))
	for i, d := range distinct {
		thresholds = append(thresholds, d)
		if i+1 < len(distinct) {
			thresholds = append(thresholds, (d+distinct[i+1])/2)
		}
	}

	if !defaultFactor || windowSize <= 0 {
		return thresholds
	}

	factor := 1.0 / math.Sqrt(float64(windowSize))
	upperBound := distinct[len(distinct)-1] * factor

	filtered := thresholds[:0]
	for _, t := range thresholds {
		if t <= upperBound {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		filtered = append(filtered, thresholds[0])
	}
	return filtered
}

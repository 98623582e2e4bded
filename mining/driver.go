// Package mining implements the mining driver (spec component E): the
// per-candidate workflow that turns a dataset and a candidate generator
// into a set of statistically significant shapelets, via Tarone's
// adaptive multiple-testing correction and optimistic-bound pruning.
package mining

import (
	"context"
	"math"

	"github.com/shapelet-mining/tarone/candidates"
	"github.com/shapelet-mining/tarone/contingency"
	"github.com/shapelet-mining/tarone/errors"
	"github.com/shapelet-mining/tarone/logging"
	"github.com/shapelet-mining/tarone/timeseries"
)

// Mine runs the full extraction process over series with the given
// parameters, per spec.md §6's mine(series, labels, α, params) entry
// point (labels live on each TimeSeries here, rather than as a parallel
// slice). A nil logger falls back to the package's component-scoped
// logger over the global default.
//
// Mine fails fast with errors.ErrInvalidInput if the dataset or the
// parameters are malformed. An all-identical-labels dataset and
// cooperative cancellation are not errors: both are reported on the
// returned Result, per spec.md §7.
func Mine(ctx context.Context, series []timeseries.TimeSeries, params Params, logger logging.Logger) (Result, error) {
	if logger == nil {
		logger = logging.WithFields(logging.Fields{"component": "mining"})
	}

	if err := params.Validate(); err != nil {
		return Result{}, err
	}

	ds, err := timeseries.NewDataset(series)
	if err != nil {
		return Result{}, err
	}
	if params.MaxSize > ds.Length {
		return Result{}, errors.InvalidInput("maxSize must not exceed series length")
	}

	if ds.N1 == 0 || ds.N0 == 0 {
		logger.Warn("all labels identical, nothing to test", logging.Fields{"n": ds.N})
		return Result{
			CorrectedThreshold: params.Alpha,
			Complete:           true,
			Diagnostic:         errors.ErrDegenerateStatistics.Error(),
		}, nil
	}

	cands, err := candidates.Generate(ds, params.MinSize, params.MaxSize, params.Stride, params.KeepNormalOnly)
	if err != nil {
		return Result{}, err
	}

	minP := contingency.Build(ds.N, ds.N1, params.Pseudocounts)
	state := newTaroneState(params.Alpha, minP)
	dist := timeseries.Minkowski{P: params.P}

	logger.Debug("generated candidates", logging.Fields{
		"count": len(cands), "n": ds.N, "n1": ds.N1,
	})

	result := Result{Complete: true}

	for _, cand := range cands {
		select {
		case <-ctx.Done():
			result.Complete = false
			result.CorrectedThreshold = state.Peek()
			result.TestableHypotheses = state.K()
			result.Diagnostic = errors.ErrCancelled.Error()
			logger.Warn("mining cancelled", logging.Fields{
				"evaluated": result.CandidatesEvaluated,
			})
			sortSignificant(result.Significant)
			return result, nil
		default:
		}

		result.CandidatesEvaluated++

		distances, err := candidateDistances(dist, cand, ds)
		if err != nil {
			return Result{}, err
		}

		thresholds := computeThresholds(distances, cand.WindowSize, params.DefaultFactor)
		result.ThresholdsConsidered = append(result.ThresholdsConsidered, ThresholdSet{
			SeriesIdx:  cand.SeriesIdx,
			Offset:     cand.Offset,
			WindowSize: cand.WindowSize,
			Thresholds: thresholds,
		})

		entry, testable, recorded := evaluateCandidate(ds, cand, thresholds, distances, params, state.Peek(), state.Evaluate)
		if testable {
			result.TestableHypotheses++
		}
		if recorded {
			result.Significant = append(result.Significant, entry)
		}

		if !params.ReportAllShapelets && state.Exhausted() {
			result.Exhausted = true
			logger.Debug("testability frontier exhausted, stopping early", logging.Fields{
				"evaluated": result.CandidatesEvaluated, "total": len(cands),
			})
			break
		}
	}

	result.CorrectedThreshold = state.Peek()

	logger.Debug("mining finished", logging.Fields{
		"candidates_evaluated": result.CandidatesEvaluated,
		"testable":             result.TestableHypotheses,
		"significant":          len(result.Significant),
		"corrected_alpha":      result.CorrectedThreshold,
	})

	sortSignificant(result.Significant)

	if params.MergeTables {
		result.Significant = mergeTables(result.Significant)
	}
	if params.RemoveDuplicates {
		result.Significant = removeDuplicates(result.Significant)
	}

	return result, nil
}

func candidateDistances(dist timeseries.Distance, cand candidates.Candidate, ds timeseries.Dataset) ([]float64, error) {
	distances := make([]float64, ds.N)
	for i, s := range ds.Series {
		d, err := timeseries.SubsequenceDistance(dist, cand.Shapelet.Values, s.Values)
		if err != nil {
			return nil, err
		}
		distances[i] = d
	}
	return distances, nil
}

// bestCandidateTable builds one complete contingency table per
// threshold in thresholds and returns the one with the smallest
// p-value, per spec.md §9's resolution that one shapelet yields at
// most one tested table (mirroring the original model's
// SignificantShapelet, which holds a single best table per shapelet).
// Each table is pruned mid-construction against bound, the current
// best-known corrected significance level: once its optimistic bound
// can no longer beat bound, construction for that threshold stops and
// the threshold is discarded. Returns nil if every threshold was
// either pruned or yielded an incomplete table.
func bestCandidateTable(ds timeseries.Dataset, distances []float64, thresholds []float64, params Params, bound float64) *contingency.Table {
	var best *contingency.Table
	bestP := math.Inf(1)

	for _, tau := range thresholds {
		table := contingency.New(ds.N, ds.N1, tau, params.Pseudocounts)
		pruned := false

		for i := 0; i < ds.N; i++ {
			table.Insert(distances[i], ds.Series[i].Label)
			if !params.DisablePruning && !table.Complete() && table.MinOptimisticP() > bound {
				pruned = true
				break
			}
		}

		if pruned || !table.Complete() {
			continue
		}

		if p := table.P(); p < bestP {
			bestP = p
			best = table
		}
	}

	return best
}

// evaluateCandidate finds one candidate's best table (if any survived
// pruning), submits its minimum attainable p-value for Tarone
// testability via evaluate, and decides whether to record it. Mine
// passes taroneState.Evaluate, an immediate shared-state update.
// MineConcurrent does not use this function: evaluateBatch calls
// bestCandidateTable itself and tallies testability locally for its
// per-batch fold.
func evaluateCandidate(
	ds timeseries.Dataset,
	cand candidates.Candidate,
	thresholds []float64,
	distances []float64,
	params Params,
	bound float64,
	evaluate func(minAttainableP float64) (testable bool, correctedAlpha float64),
) (entry SignificantShapelet, testable bool, recorded bool) {
	best := bestCandidateTable(ds, distances, thresholds, params, bound)
	if best == nil {
		return SignificantShapelet{}, false, false
	}

	entry = SignificantShapelet{
		Shapelet:   cand.Shapelet,
		P:          best.P(),
		Table:      best,
		WindowSize: cand.WindowSize,
		SeriesIdx:  cand.SeriesIdx,
		Offset:     cand.Offset,
	}

	isTestable, corrected := evaluate(best.MinAttainableP())
	if !isTestable {
		return entry, false, params.ReportAllShapelets
	}

	return entry, true, entry.P <= corrected || params.ReportAllShapelets
}

package mining

import (
	"context"
	"runtime"
	"sync"

	"github.com/shapelet-mining/tarone/candidates"
	"github.com/shapelet-mining/tarone/contingency"
	"github.com/shapelet-mining/tarone/errors"
	"github.com/shapelet-mining/tarone/logging"
	"github.com/shapelet-mining/tarone/timeseries"
)

// concurrentBatchSize bounds how many candidates a worker processes
// against one cached Tarone bound before folding its local testable
// tally into the shared state, per spec.md §5's batch-fold strategy.
const concurrentBatchSize = 16

// MineConcurrent is the parallel counterpart to Mine, per spec.md §5's
// worker-pool strategy: candidates are fanned out in fixed-size batches
// across runtime.GOMAXPROCS(0) workers. Within a batch a worker prunes
// and scores every candidate against a single cached corrected
// threshold (taken once, at the start of the batch), tallies how many
// of its candidates are locally testable, and only then folds that
// tally into the shared Tarone state via MergeBatch — one shared-state
// update per batch rather than one per candidate.
//
// Because the corrected threshold can tighten between when a batch
// starts and when it is folded in, testability is an approximation of
// what a strictly sequential Mine run would find at the same candidate:
// candidates near the decision boundary can be classified differently
// depending on how batches interleave across workers. Each reported
// table's own p-value is exact; which borderline hypotheses are admitted
// as "testable", and the batch at which the exhaustion early exit stops
// the run (and so CandidatesEvaluated), can differ from a sequential run.
func MineConcurrent(ctx context.Context, series []timeseries.TimeSeries, params Params, logger logging.Logger) (Result, error) {
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

	batches := batchCandidates(cands, concurrentBatchSize)

	workers := runtime.GOMAXPROCS(0)
	if workers > len(batches) {
		workers = len(batches)
	}
	if workers < 1 {
		workers = 1
	}

	logger.Debug("generated candidates", logging.Fields{
		"count": len(cands), "n": ds.N, "n1": ds.N1, "workers": workers, "batches": len(batches),
	})

	type outcome struct {
		batchOutcome
		err error
	}

	jobs := make(chan []candidates.Candidate)
	results := make(chan outcome)
	var wg sync.WaitGroup
	var cancelled atomicBool
	var exhausted atomicBool

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range jobs {
				select {
				case <-ctx.Done():
					cancelled.set()
					continue
				default:
				}

				o, err := evaluateBatch(ds, dist, batch, params, state)
				if err != nil {
					results <- outcome{err: err}
					continue
				}
				if !params.ReportAllShapelets && state.Exhausted() {
					exhausted.set()
				}
				results <- outcome{batchOutcome: o}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, b := range batches {
			if exhausted.get() {
				return
			}
			select {
			case <-ctx.Done():
				cancelled.set()
				return
			case jobs <- b:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	result := Result{Complete: true}
	for o := range results {
		if o.err != nil {
			return Result{}, o.err
		}
		result.CandidatesEvaluated += o.evaluated
		result.TestableHypotheses += o.testable
		result.Significant = append(result.Significant, o.found...)
		result.ThresholdsConsidered = append(result.ThresholdsConsidered, o.thresholds...)
	}

	result.CorrectedThreshold = state.Peek()

	if cancelled.get() {
		result.Complete = false
		result.Diagnostic = errors.ErrCancelled.Error()
		logger.Warn("mining cancelled", logging.Fields{"evaluated": result.CandidatesEvaluated})
	} else if exhausted.get() {
		result.Exhausted = true
		logger.Debug("testability frontier exhausted, stopping early", logging.Fields{
			"evaluated": result.CandidatesEvaluated, "total": len(cands),
		})
	}

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

type batchOutcome struct {
	thresholds []ThresholdSet
	found      []SignificantShapelet
	testable   int
	evaluated  int
}

// evaluateBatch scores every candidate in batch against a single
// cached bound (state.Peek(), taken once), tallies how many cleared it,
// then folds that tally into state in one call to MergeBatch before
// deciding which entries to keep against the freshly merged threshold.
func evaluateBatch(
	ds timeseries.Dataset,
	dist timeseries.Distance,
	batch []candidates.Candidate,
	params Params,
	state *taroneState,
) (batchOutcome, error) {
	bound := state.Peek()

	type scored struct {
		cand  candidates.Candidate
		table *contingency.Table
		mp    float64
	}

	var out batchOutcome
	var survivors []scored

	for _, cand := range batch {
		out.evaluated++

		distances, err := candidateDistances(dist, cand, ds)
		if err != nil {
			return batchOutcome{}, err
		}

		thresholds := computeThresholds(distances, cand.WindowSize, params.DefaultFactor)
		out.thresholds = append(out.thresholds, ThresholdSet{
			SeriesIdx:  cand.SeriesIdx,
			Offset:     cand.Offset,
			WindowSize: cand.WindowSize,
			Thresholds: thresholds,
		})

		best := bestCandidateTable(ds, distances, thresholds, params, bound)
		if best == nil {
			continue
		}
		survivors = append(survivors, scored{cand: cand, table: best, mp: best.MinAttainableP()})
	}

	localTestable := 0
	for _, s := range survivors {
		if s.mp <= bound {
			localTestable++
		}
	}

	corrected := state.MergeBatch(localTestable)
	out.testable = localTestable

	for _, s := range survivors {
		testable := s.mp <= bound
		entry := SignificantShapelet{
			Shapelet:   s.cand.Shapelet,
			P:          s.table.P(),
			Table:      s.table,
			WindowSize: s.cand.WindowSize,
			SeriesIdx:  s.cand.SeriesIdx,
			Offset:     s.cand.Offset,
		}
		if (testable && entry.P <= corrected) || params.ReportAllShapelets {
			out.found = append(out.found, entry)
		}
	}

	return out, nil
}

// batchCandidates splits cands into consecutive chunks of at most size
// elements each.
func batchCandidates(cands []candidates.Candidate, size int) [][]candidates.Candidate {
	if len(cands) == 0 {
		return nil
	}
	batches := make([][]candidates.Candidate, 0, (len(cands)+size-1)/size)
	for i := 0; i < len(cands); i += size {
		end := i + size
		if end > len(cands) {
			end = len(cands)
		}
		batches = append(batches, cands[i:end])
	}
	return batches
}

// atomicBool is a minimal race-free boolean flag, used to record whether
// cancellation or testability-frontier exhaustion was observed.
type atomicBool struct {
	mu sync.Mutex
	v  bool
}

func (a *atomicBool) set() {
	a.mu.Lock()
	a.v = true
	a.mu.Unlock()
}

func (a *atomicBool) get() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.v
}

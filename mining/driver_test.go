package mining_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapelet-mining/tarone/candidates"
	tarerrors "github.com/shapelet-mining/tarone/errors"
	"github.com/shapelet-mining/tarone/mining"
	"github.com/shapelet-mining/tarone/timeseries"
)

func separableDataset() []timeseries.TimeSeries {
	positive := []float64{0, 0, 0, 10, 10, 10, 0, 0}
	negative := []float64{1, 1, 1, 1, 1, 1, 1, 1}

	series := make([]timeseries.TimeSeries, 0, 12)
	for i := 0; i < 6; i++ {
		series = append(series, timeseries.New(positive, true))
		series = append(series, timeseries.New(negative, false))
	}
	return series
}

func TestMineFindsSignificantShapeletOnSeparableData(t *testing.T) {
	params := mining.DefaultParams()
	params.MinSize = 3
	params.MaxSize = 3

	result, err := mining.Mine(context.Background(), separableDataset(), params, nil)
	require.NoError(t, err)

	assert.True(t, result.Complete)
	assert.NotEmpty(t, result.Significant)
	assert.Greater(t, result.TestableHypotheses, 0)

	for i := 1; i < len(result.Significant); i++ {
		assert.LessOrEqual(t, result.Significant[i-1].P, result.Significant[i].P)
	}
}

func TestMineReportsDegenerateWhenLabelsIdentical(t *testing.T) {
	series := []timeseries.TimeSeries{
		timeseries.New([]float64{1, 2, 3}, true),
		timeseries.New([]float64{4, 5, 6}, true),
	}

	params := mining.DefaultParams()
	params.MinSize = 2
	params.MaxSize = 2

	result, err := mining.Mine(context.Background(), series, params, nil)
	require.NoError(t, err)

	assert.True(t, result.Complete)
	assert.Equal(t, tarerrors.ErrDegenerateStatistics.Error(), result.Diagnostic)
	assert.True(t, tarerrors.IsDegenerate(result.Diagnostic))
	assert.Equal(t, params.Alpha, result.CorrectedThreshold)
}

func TestMineHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	params := mining.DefaultParams()
	params.MinSize = 2
	params.MaxSize = 2

	result, err := mining.Mine(ctx, separableDataset(), params, nil)
	require.NoError(t, err)
	assert.False(t, result.Complete)
	assert.True(t, tarerrors.IsCancelled(result.Diagnostic))
}

func TestMineRejectsInvalidParams(t *testing.T) {
	params := mining.DefaultParams()
	params.MinSize = 0

	_, err := mining.Mine(context.Background(), separableDataset(), params, nil)
	assert.Error(t, err)
}

func TestMineConcurrentFindsSignificanceLikeSequential(t *testing.T) {
	params := mining.DefaultParams()
	params.MinSize = 3
	params.MaxSize = 3

	series := separableDataset()

	seq, err := mining.Mine(context.Background(), series, params, nil)
	require.NoError(t, err)

	par, err := mining.MineConcurrent(context.Background(), series, params, nil)
	require.NoError(t, err)

	// The batch-fold strategy trades exact agreement for throughput (see
	// mining/concurrent.go): which borderline hypotheses are "testable"
	// can differ, and the testability-frontier early exit now checks in
	// at per-candidate granularity for Mine but per-batch for
	// MineConcurrent, so the two need not stop at the same candidate
	// either. Only bounded coverage and non-emptiness are compared here.
	assert.Greater(t, seq.CandidatesEvaluated, 0)
	assert.Greater(t, par.CandidatesEvaluated, 0)
	assert.NotEmpty(t, par.Significant)
}

func TestMineStopsEarlyOnceTestabilityFrontierIsExhausted(t *testing.T) {
	positive := []float64{0, 0, 0, 5, 5, 5}
	negative := []float64{1, 1, 1, 1, 1, 1}

	series := make([]timeseries.TimeSeries, 0, 8)
	for i := 0; i < 4; i++ {
		series = append(series, timeseries.New(positive, true))
		series = append(series, timeseries.New(negative, false))
	}

	params := mining.DefaultParams()
	params.MinSize = 3
	params.MaxSize = 3

	ds, err := timeseries.NewDataset(series)
	require.NoError(t, err)
	totalCandidates, err := candidates.Generate(ds, params.MinSize, params.MaxSize, params.Stride, params.KeepNormalOnly)
	require.NoError(t, err)

	result, err := mining.Mine(context.Background(), series, params, nil)
	require.NoError(t, err)

	assert.True(t, result.Complete)
	assert.True(t, result.Exhausted)
	assert.Less(t, result.CandidatesEvaluated, len(totalCandidates))
	assert.NotEmpty(t, result.Significant)
}

func TestMineReportAllShapeletsEmitsExactlyOneRowPerCandidate(t *testing.T) {
	params := mining.DefaultParams()
	params.MinSize = 2
	params.MaxSize = 3
	params.ReportAllShapelets = true

	result, err := mining.Mine(context.Background(), separableDataset(), params, nil)
	require.NoError(t, err)

	assert.Equal(t, result.CandidatesEvaluated, len(result.Significant))
}

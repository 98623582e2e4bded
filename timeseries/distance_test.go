package timeseries_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapelet-mining/tarone/errors"
	"github.com/shapelet-mining/tarone/timeseries"
)

func TestEuclideanDistance(t *testing.T) {
	d, err := timeseries.Euclidean().Apply([]float64{0, 0}, []float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-9)
}

func TestManhattanDistance(t *testing.T) {
	d, err := timeseries.Manhattan().Apply([]float64{0, 0}, []float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, d, 1e-9)
}

func TestChebyshevDistance(t *testing.T) {
	d, err := timeseries.Minkowski{P: math.Inf(1)}.Apply([]float64{0, 0}, []float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, d, 1e-9)
}

func TestMinkowskiRejectsShapeMismatch(t *testing.T) {
	_, err := timeseries.Euclidean().Apply([]float64{1, 2}, []float64{1})
	assert.True(t, errors.IsShapeMismatch(err))
}

func TestMinkowskiString(t *testing.T) {
	assert.Equal(t, "Minkowski:2", timeseries.Euclidean().String())
	assert.Equal(t, "Minkowski:1", timeseries.Manhattan().String())
}

func TestSubsequenceDistancePicksBestWindow(t *testing.T) {
	shapelet := []float64{0, 0}
	series := []float64{10, 10, 0, 0, 10, 10}

	d, err := timeseries.SubsequenceDistance(timeseries.Euclidean(), shapelet, series)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, d, 1e-9)
}

func TestSubsequenceDistanceRejectsOversizedShapelet(t *testing.T) {
	_, err := timeseries.SubsequenceDistance(timeseries.Euclidean(), []float64{1, 2, 3, 4}, []float64{1, 2})
	assert.True(t, errors.IsShapeMismatch(err))
}

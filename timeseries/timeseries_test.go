package timeseries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapelet-mining/tarone/errors"
	"github.com/shapelet-mining/tarone/timeseries"
)

func TestNewCopiesValues(t *testing.T) {
	values := []float64{1, 2, 3}
	ts := timeseries.New(values, true)
	values[0] = 99

	assert.Equal(t, []float64{1, 2, 3}, ts.Values)
	assert.True(t, ts.Label)
}

func TestWindowReturnsCopy(t *testing.T) {
	ts := timeseries.New([]float64{1, 2, 3, 4, 5}, false)
	shapelet := ts.Window(1, 3)

	assert.Equal(t, []float64{2, 3, 4}, shapelet.Values)

	shapelet.Values[0] = -1
	assert.Equal(t, 2.0, ts.Values[1])
}

func TestNewDatasetComputesMarginals(t *testing.T) {
	series := []timeseries.TimeSeries{
		timeseries.New([]float64{1, 2, 3}, true),
		timeseries.New([]float64{4, 5, 6}, false),
		timeseries.New([]float64{7, 8, 9}, true),
	}

	ds, err := timeseries.NewDataset(series)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.N)
	assert.Equal(t, 2, ds.N1)
	assert.Equal(t, 1, ds.N0)
	assert.Equal(t, 3, ds.Length)
}

func TestNewDatasetRejectsEmpty(t *testing.T) {
	_, err := timeseries.NewDataset(nil)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestNewDatasetRejectsUnequalLengths(t *testing.T) {
	series := []timeseries.TimeSeries{
		timeseries.New([]float64{1, 2, 3}, true),
		timeseries.New([]float64{1, 2}, false),
	}
	_, err := timeseries.NewDataset(series)
	assert.True(t, errors.IsInvalidInput(err))
}

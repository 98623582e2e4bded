// Package timeseries models the length-equal, binary-labeled sequences
// that the mining core operates on, along with the distance functors
// used to compare them and the shapelets extracted from them.
package timeseries

import (
	"github.com/shapelet-mining/tarone/errors"
)

// TimeSeries is an ordered, immutable sequence of real-valued samples
// together with a binary class label.
type TimeSeries struct {
	Values []float64
	Label  bool
}

// New creates a TimeSeries from a copy of values, so that later mutation
// of the caller's slice cannot violate the "immutable after load"
// invariant.
func New(values []float64, label bool) TimeSeries {
	v := make([]float64, len(values))
	copy(v, values)
	return TimeSeries{Values: v, Label: label}
}

// Len returns the number of samples in the series.
func (t TimeSeries) Len() int {
	return len(t.Values)
}

// Window returns a copy of the contiguous subsequence of length w starting
// at offset o. The caller is responsible for ensuring o+w <= t.Len().
func (t TimeSeries) Window(o, w int) Shapelet {
	values := make([]float64, w)
	copy(values, t.Values[o:o+w])
	return Shapelet{Values: values}
}

// Shapelet is a contiguous subsequence extracted from a source series,
// represented by value. Its provenance (source series index, offset,
// window size) is tracked by the candidate generator, not by Shapelet
// itself.
type Shapelet struct {
	Values []float64
}

// Len returns the number of samples in the shapelet.
func (s Shapelet) Len() int {
	return len(s.Values)
}

// Dataset is a collection of TimeSeries that all share the same length,
// plus the class marginals derived from their labels. Dataset is built
// once per mining run and is read-only afterward.
type Dataset struct {
	Series []TimeSeries
	Length int
	N      int
	N1     int
	N0     int
}

// NewDataset validates that series is non-empty and of uniform length and
// computes the class marginals. It fails with errors.ErrInvalidInput
// otherwise.
func NewDataset(series []TimeSeries) (Dataset, error) {
	if len(series) == 0 {
		return Dataset{}, errors.InvalidInput("dataset must contain at least one series")
	}

	length := series[0].Len()
	n1 := 0
	for _, s := range series {
		if s.Len() != length {
			return Dataset{}, errors.InvalidInput("all series must have equal length")
		}
		if s.Len() == 0 {
			return Dataset{}, errors.InvalidInput("series must be non-empty")
		}
		if s.Label {
			n1++
		}
	}

	return Dataset{
		Series: series,
		Length: length,
		N:      len(series),
		N1:     n1,
		N0:     len(series) - n1,
	}, nil
}

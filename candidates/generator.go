// Package candidates implements sliding-window shapelet candidate
// generation over a range of window sizes (spec component D).
package candidates

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/shapelet-mining/tarone/errors"
	"github.com/shapelet-mining/tarone/timeseries"
)

// normalEpsilon bounds how far a candidate's sample mean and standard
// deviation may stray from 0 and 1 respectively before it is considered
// non-normalised, per spec.md §4.2.
const normalEpsilon = 1e-9

// Candidate is a shapelet together with the provenance the output layer
// needs (spec.md §6's optional "start" field and window-size ordering
// for tie-breaking in spec.md §4.5), even though the core statistical
// machinery only ever looks at Candidate.Shapelet.
type Candidate struct {
	Shapelet   timeseries.Shapelet
	SeriesIdx  int
	Offset     int
	WindowSize int
}

// Generate enumerates every candidate shapelet in the dataset across
// window sizes minSize..maxSize (inclusive, stepping by stride) and
// offsets 0..L-w (stepping by stride), in the traversal order required
// by spec.md §4.2: window size ascending, then series in input order,
// then offset ascending.
//
// When keepNormalOnly is set, candidates whose sample mean or standard
// deviation is not approximately 0/1 are skipped.
func Generate(ds timeseries.Dataset, minSize, maxSize, stride int, keepNormalOnly bool) ([]Candidate, error) {
	if minSize <= 0 || maxSize < minSize {
		return nil, errors.InvalidInput("minSize must be positive and <= maxSize")
	}
	if stride <= 0 {
		return nil, errors.InvalidInput("stride must be positive")
	}
	if maxSize > ds.Length {
		return nil, errors.InvalidInput("maxSize must not exceed series length")
	}

	var out []Candidate
	for w := minSize; w <= maxSize; w += stride {
		for si, s := range ds.Series {
			for o := 0; o+w <= ds.Length; o += stride {
				shapelet := s.Window(o, w)
				if keepNormalOnly && !isApproximatelyNormal(shapelet.Values) {
					continue
				}
				out = append(out, Candidate{
					Shapelet:   shapelet,
					SeriesIdx:  si,
					Offset:     o,
					WindowSize: w,
				})
			}
		}
	}

	return out, nil
}

func isApproximatelyNormal(values []float64) bool {
	if len(values) == 0 {
		return false
	}
	mean := stat.Mean(values, nil)
	if math.Abs(mean) > normalEpsilon {
		return false
	}
	if len(values) < 2 {
		return true
	}
	std := stat.StdDev(values, nil)
	return math.Abs(std-1) <= normalEpsilon
}

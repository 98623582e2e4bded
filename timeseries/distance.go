package timeseries

import (
	"math"
	"strconv"

	"github.com/shapelet-mining/tarone/errors"
)

// Distance is the capability implemented by every member of the distance
// functor family: apply it to two equal-length sequences, and render a
// name suitable for reproducible console/log output.
type Distance interface {
	Apply(a, b []float64) (float64, error)
	String() string
}

// Minkowski implements the Minkowski-p distance:
//
//	d_p(S, T) = (Σ |S_i - T_i|^P)^(1/P)
//
// The root is always taken, even for P == 2: callers reuse the same
// threshold across many calls, so a squared-distance shortcut would
// silently break threshold comparisons elsewhere in the pipeline.
type Minkowski struct {
	P float64
}

// Apply computes the Minkowski-P distance between a and b. It fails with
// errors.ErrShapeMismatch if the two sequences have different lengths.
func (m Minkowski) Apply(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.ShapeMismatch(len(a), len(b))
	}

	if math.IsInf(m.P, 1) {
		max := 0.0
		for i := range a {
			if d := math.Abs(a[i] - b[i]); d > max {
				max = d
			}
		}
		return max, nil
	}

	sum := 0.0
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), m.P)
	}
	return math.Pow(sum, 1.0/m.P), nil
}

// String renders the functor name followed by a colon and the parameter
// in shortest round-trip decimal form, e.g. "Minkowski:2", never
// "Minkowski:2.000000".
func (m Minkowski) String() string {
	return "Minkowski:" + strconv.FormatFloat(m.P, 'g', -1, 64)
}

// Euclidean is Minkowski with P == 2, named for readability at call sites.
func Euclidean() Minkowski { return Minkowski{P: 2} }

// Manhattan is Minkowski with P == 1, named for readability at call sites.
func Manhattan() Minkowski { return Minkowski{P: 1} }

// SubsequenceDistance is the distance from a shapelet to a full series:
// the minimum distance, under dist, between the shapelet and any
// contiguous window of the series with the same length as the shapelet.
// This is the standard shapelet-to-series distance (the series is
// usually much longer than the shapelet, so the equal-length primitive
// in Distance cannot be applied directly); every window is scored and
// the best alignment wins.
func SubsequenceDistance(dist Distance, shapelet, series []float64) (float64, error) {
	w := len(shapelet)
	if w == 0 || w > len(series) {
		return 0, errors.ShapeMismatch(w, len(series))
	}

	best := math.Inf(1)
	for o := 0; o+w <= len(series); o++ {
		d, err := dist.Apply(shapelet, series[o:o+w])
		if err != nil {
			return 0, err
		}
		if d < best {
			best = d
		}
	}
	return best, nil
}

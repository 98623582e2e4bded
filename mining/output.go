package mining

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// sortSignificant orders results by p ascending, ties broken by
// window-size ascending then source (generation) order, per spec.md
// §4.5. Source order is series index then offset, compared explicitly so
// that the order does not depend on the order entries were appended in
// (MineConcurrent appends in batch completion order).
func sortSignificant(sig []SignificantShapelet) {
	sort.SliceStable(sig, func(i, j int) bool {
		if sig[i].P != sig[j].P {
			return sig[i].P < sig[j].P
		}
		if sig[i].WindowSize != sig[j].WindowSize {
			return sig[i].WindowSize < sig[j].WindowSize
		}
		if sig[i].SeriesIdx != sig[j].SeriesIdx {
			return sig[i].SeriesIdx < sig[j].SeriesIdx
		}
		return sig[i].Offset < sig[j].Offset
	})
}

// mergeTables groups shapelets whose tables hold identical (a,b,c,d) and
// keeps only the representative with the smallest p-value, per the
// mergeTables flag in spec.md §4.5. Purely an output-shaping step; it
// never touches the mining core's statistics.
func mergeTables(sig []SignificantShapelet) []SignificantShapelet {
	kept := make([]SignificantShapelet, 0, len(sig))

	for _, s := range sig {
		idx := -1
		for i, k := range kept {
			if k.Table.Equal(s.Table) {
				idx = i
				break
			}
		}
		if idx == -1 {
			kept = append(kept, s)
			continue
		}
		if s.P < kept[idx].P {
			kept[idx] = s
		}
	}

	return kept
}

// removeDuplicates suppresses shapelets whose numeric content equals a
// previously kept shapelet's, per the removeDuplicates flag in spec.md
// §4.5. Equality is exact: shapelets are copies of the original
// float64 samples, so two equal shapelets come from a true repeat in
// the source data, not from floating point drift.
func removeDuplicates(sig []SignificantShapelet) []SignificantShapelet {
	kept := make([]SignificantShapelet, 0, len(sig))

	for _, s := range sig {
		duplicate := false
		for _, k := range kept {
			if len(k.Shapelet.Values) == len(s.Shapelet.Values) &&
				floats.Equal(k.Shapelet.Values, s.Shapelet.Values) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, s)
		}
	}

	return kept
}

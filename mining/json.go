package mining

import (
	"encoding/json"
	"strconv"
)

// tableJSON is the wire form of a contingency table, per spec.md §6: the
// four cells plus the marginals and threshold needed to reproduce it.
type tableJSON struct {
	A         int     `json:"a"`
	B         int     `json:"b"`
	C         int     `json:"c"`
	D         int     `json:"d"`
	N         int     `json:"n"`
	N1        int     `json:"n1"`
	Threshold float64 `json:"threshold"`
}

// shapeletJSON is the wire form of one SignificantShapelet. P is rendered
// as a scientific-notation string rather than a JSON number, per spec.md
// §6, so that very small p-values survive round-tripping through
// consumers with limited floating point parsers without losing
// precision or silently flattening to 0.
// Start has no omitempty: an offset of 0 is a real, valid candidate
// position, not an absent one, so suppressing zero values would make
// "start" indistinguishable from "not reported" for every leftmost
// candidate.
type shapeletJSON struct {
	Shapelet []float64 `json:"shapelet"`
	P        string    `json:"p"`
	Table    tableJSON `json:"table"`
	Size     int       `json:"size"`
	Start    int       `json:"start"`
}

// MarshalJSON renders a SignificantShapelet per spec.md §6's output
// contract.
func (s SignificantShapelet) MarshalJSON() ([]byte, error) {
	dto := shapeletJSON{
		Shapelet: s.Shapelet.Values,
		P:        strconv.FormatFloat(s.P, 'e', -1, 64),
		Size:     s.WindowSize,
		Start:    s.Offset,
	}
	if s.Table != nil {
		dto.Table = tableJSON{
			A:         s.Table.A(),
			B:         s.Table.B(),
			C:         s.Table.C(),
			D:         s.Table.D(),
			N:         s.Table.N(),
			N1:        s.Table.N1(),
			Threshold: s.Table.Threshold(),
		}
	}
	return json.Marshal(dto)
}

// ResultJSON renders every significant shapelet in result as a JSON
// array, per spec.md §6. It is the driver-level counterpart of
// SignificantShapelet's own MarshalJSON, kept separate so that Result's
// diagnostic fields (CorrectedThreshold, Complete, ...) are not
// accidentally exposed on the per-shapelet wire format.
func (r Result) ResultJSON() ([]byte, error) {
	return json.Marshal(r.Significant)
}

package mining

import "github.com/shapelet-mining/tarone/errors"

// Params holds every knob of the mining process described in spec.md §6,
// following the teacher's flat, JSON-tagged configuration-struct
// pattern (fingerprint.FingerprintConfig / config.FeatureConfig).
type Params struct {
	MinSize int `json:"min_size"`
	MaxSize int `json:"max_size"`
	Stride  int `json:"stride"`

	P     float64 `json:"p"`
	Alpha float64 `json:"alpha"`

	Pseudocounts   bool `json:"pseudocounts"`
	DefaultFactor  bool `json:"default_factor"`
	DisablePruning bool `json:"disable_pruning"`
	KeepNormalOnly bool `json:"keep_normal_only"`

	MergeTables        bool `json:"merge_tables"`
	RemoveDuplicates   bool `json:"remove_duplicates"`
	ReportAllShapelets bool `json:"report_all_shapelets"`
}

// DefaultParams returns the defaults named in spec.md §6 for every knob
// that is not dataset-dependent. MinSize and MaxSize have no sensible
// dataset-independent default and are left at zero; Validate rejects
// them until the caller sets them.
func DefaultParams() Params {
	return Params{
		Stride:             1,
		P:                  2,
		Alpha:              0.01,
		Pseudocounts:       false,
		DefaultFactor:      false,
		DisablePruning:     false,
		KeepNormalOnly:     false,
		MergeTables:        false,
		RemoveDuplicates:   false,
		ReportAllShapelets: false,
	}
}

// Validate checks the parameters for internal consistency, ahead of any
// enumeration, per spec.md §4.6. It also applies the one normalisation
// rule spec.md §4.5 requires: ReportAllShapelets forces DisablePruning.
func (p *Params) Validate() error {
	if p.MinSize <= 0 {
		return errors.InvalidInput("minSize must be positive")
	}
	if p.MaxSize < p.MinSize {
		return errors.InvalidInput("maxSize must be >= minSize")
	}
	if p.Stride <= 0 {
		return errors.InvalidInput("stride must be positive")
	}
	if p.P <= 0 {
		return errors.InvalidInput("p must be positive")
	}
	if p.Alpha <= 0 || p.Alpha > 1 {
		return errors.InvalidInput("alpha must be in (0, 1]")
	}

	if p.ReportAllShapelets {
		p.DisablePruning = true
	}

	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Reduction selects how hourly samples are combined within a bucket.
type Reduction string

const (
	// ReductionSum totals the samples in a bucket. Used for accumulation
	// quantities such as precipitation.
	ReductionSum Reduction = "sum"

	// ReductionMean averages the samples in a bucket. Used for state
	// quantities such as temperature.
	ReductionMean Reduction = "mean"
)

// VariableSpec holds the catalog entry for one archive variable: its
// human-readable name, the archive-internal code, and the unit and
// reduction policy that follow from the kind of quantity it is.
type VariableSpec struct {
	// DisplayName is the human-readable name users supply (e.g. "Total Precipitation").
	DisplayName string `json:"display_name" yaml:"display_name"`

	// Code is the archive-internal variable code (e.g. "RAINRATE").
	Code string `json:"code" yaml:"code"`

	// IsAccumulation marks flux/rate quantities that are summed over a
	// period to yield a period total. State quantities are averaged.
	IsAccumulation bool `json:"is_accumulation" yaml:"is_accumulation"`

	// CanonicalUnit is the base unit of the aggregated output (e.g. "mm"
	// for precipitation). For state variables the archive's declared unit
	// is passed through instead.
	CanonicalUnit string `json:"canonical_unit" yaml:"canonical_unit"`

	// ConversionMultiplier is applied to each sample before reduction.
	// Accumulation variables stored as per-second rates use 3600 to turn
	// a rate into a per-hour total; 1 means no conversion.
	ConversionMultiplier float64 `json:"conversion_multiplier" yaml:"conversion_multiplier"`
}

// Reduction returns the bucket reduction implied by the variable kind.
func (v VariableSpec) Reduction() Reduction {
	if v.IsAccumulation {
		return ReductionSum
	}
	return ReductionMean
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog maps human-readable variable names to archive variable
// codes, unit metadata, and reduction policy, and aggregation interval
// names to archive-native resample tokens. Both mappings are exact fixed
// tables: adding a variable is one table edit, not a pipeline change.
package catalog

import (
	"sort"

	"github.com/pdiddy/gridpoint/pkg/types"
)

// Interval is a supported aggregation interval.
type Interval string

const (
	IntervalHour  Interval = "hour"
	IntervalDay   Interval = "day"
	IntervalMonth Interval = "month"
	IntervalYear  Interval = "year"
)

// variables is the fixed catalog. Keys are exact display names; there is
// no case-insensitive or partial matching.
var variables = map[string]types.VariableSpec{
	"Total Precipitation": {
		DisplayName:          "Total Precipitation",
		Code:                 "RAINRATE",
		IsAccumulation:       true,
		CanonicalUnit:        "mm",
		ConversionMultiplier: 3600, // native unit is mm s-1; per-hour total
	},
	"Air Temperature": {
		DisplayName:          "Air Temperature",
		Code:                 "T2D",
		CanonicalUnit:        "K",
		ConversionMultiplier: 1,
	},
	"Specific Humidity": {
		DisplayName:          "Specific Humidity",
		Code:                 "Q2D",
		CanonicalUnit:        "kg kg-1",
		ConversionMultiplier: 1,
	},
	"Surface Pressure": {
		DisplayName:          "Surface Pressure",
		Code:                 "PSFC",
		CanonicalUnit:        "Pa",
		ConversionMultiplier: 1,
	},
	"Downward Shortwave Radiation": {
		DisplayName:          "Downward Shortwave Radiation",
		Code:                 "SWDOWN",
		CanonicalUnit:        "W m-2",
		ConversionMultiplier: 1,
	},
	"Downward Longwave Radiation": {
		DisplayName:          "Downward Longwave Radiation",
		Code:                 "LWDOWN",
		CanonicalUnit:        "W m-2",
		ConversionMultiplier: 1,
	},
	"Eastward Wind": {
		DisplayName:          "Eastward Wind",
		Code:                 "U2D",
		CanonicalUnit:        "m s-1",
		ConversionMultiplier: 1,
	},
	"Northward Wind": {
		DisplayName:          "Northward Wind",
		Code:                 "V2D",
		CanonicalUnit:        "m s-1",
		ConversionMultiplier: 1,
	},
}

// resampleCodes maps intervals to the archive-native resample tokens.
var resampleCodes = map[Interval]string{
	IntervalHour:  "1H",
	IntervalDay:   "1D",
	IntervalMonth: "MS",
	IntervalYear:  "YS",
}

// Resolve looks up a variable by its exact display name.
func Resolve(displayName string) (types.VariableSpec, error) {
	spec, ok := variables[displayName]
	if !ok {
		return types.VariableSpec{}, &types.UnknownVariableError{
			Name:  displayName,
			Known: DisplayNames(),
		}
	}
	return spec, nil
}

// ParseInterval validates an interval name.
func ParseInterval(name string) (Interval, error) {
	iv := Interval(name)
	if _, ok := resampleCodes[iv]; !ok {
		return "", &types.UnsupportedIntervalError{
			Name:      name,
			Supported: IntervalNames(),
		}
	}
	return iv, nil
}

// ResampleCode returns the archive-native resampling token for an interval.
func ResampleCode(iv Interval) string {
	return resampleCodes[iv]
}

// DisplayNames returns all catalog display names, sorted.
func DisplayNames() []string {
	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IntervalNames returns the supported interval names in ascending span order.
func IntervalNames() []string {
	return []string{
		string(IntervalHour),
		string(IntervalDay),
		string(IntervalMonth),
		string(IntervalYear),
	}
}

// All returns all catalog entries ordered by display name.
func All() []types.VariableSpec {
	specs := make([]types.VariableSpec, 0, len(variables))
	for _, name := range DisplayNames() {
		specs = append(specs, variables[name])
	}
	return specs
}

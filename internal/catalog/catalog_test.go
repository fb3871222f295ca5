// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/gridpoint/pkg/types"
)

func TestResolve(t *testing.T) {
	spec, err := Resolve("Total Precipitation")
	require.NoError(t, err)
	assert.Equal(t, "RAINRATE", spec.Code)
	assert.True(t, spec.IsAccumulation)
	assert.Equal(t, "mm", spec.CanonicalUnit)
	assert.Equal(t, 3600.0, spec.ConversionMultiplier)

	spec, err = Resolve("Air Temperature")
	require.NoError(t, err)
	assert.Equal(t, "T2D", spec.Code)
	assert.False(t, spec.IsAccumulation)
	assert.Equal(t, 1.0, spec.ConversionMultiplier)
}

func TestResolveUnknownName(t *testing.T) {
	// Matching is by exact display name.
	for _, name := range []string{"total precipitation", "RAINRATE", "Rainfall", ""} {
		_, err := Resolve(name)
		var unknown *types.UnknownVariableError
		require.True(t, errors.As(err, &unknown), "want UnknownVariableError for %q, got %v", name, err)
		assert.Equal(t, name, unknown.Name)
		assert.Equal(t, DisplayNames(), unknown.Known)
	}
}

func TestReductionPolicy(t *testing.T) {
	for _, spec := range All() {
		want := types.ReductionMean
		if spec.IsAccumulation {
			want = types.ReductionSum
		}
		assert.Equal(t, want, spec.Reduction(), "variable %s", spec.DisplayName)
	}
}

func TestParseInterval(t *testing.T) {
	for _, name := range IntervalNames() {
		iv, err := ParseInterval(name)
		require.NoError(t, err)
		assert.Equal(t, Interval(name), iv)
		assert.NotEmpty(t, ResampleCode(iv))
	}

	_, err := ParseInterval("week")
	var unsupported *types.UnsupportedIntervalError
	require.True(t, errors.As(err, &unsupported), "want UnsupportedIntervalError, got %v", err)
	assert.Equal(t, "week", unsupported.Name)
	assert.Equal(t, IntervalNames(), unsupported.Supported)
}

func TestResampleCodes(t *testing.T) {
	assert.Equal(t, "1H", ResampleCode(IntervalHour))
	assert.Equal(t, "1D", ResampleCode(IntervalDay))
	assert.Equal(t, "MS", ResampleCode(IntervalMonth))
	assert.Equal(t, "YS", ResampleCode(IntervalYear))
}

func TestAllIsSortedByDisplayName(t *testing.T) {
	all := All()
	require.Len(t, all, len(DisplayNames()))
	for i, name := range DisplayNames() {
		assert.Equal(t, name, all[i].DisplayName)
	}
}

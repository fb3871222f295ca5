// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/gridpoint/internal/catalog"
	"github.com/pdiddy/gridpoint/pkg/types"
)

// hourlySeries builds an hourly series starting at the given instant.
func hourlySeries(start time.Time, values []float64, unit string) types.GridCellSeries {
	s := types.GridCellSeries{Values: values, Unit: unit}
	for i := range values {
		s.Timestamps = append(s.Timestamps, start.Add(time.Duration(i)*time.Hour))
	}
	return s
}

func TestAggregateDailySum(t *testing.T) {
	start := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 48)
	for i := range values {
		values[i] = 1 // 1 mm s-1 each hour
	}
	series := hourlySeries(start, values, "mm s^-1")

	out, omitted, err := Aggregate(series, Options{
		Reduction:      types.ReductionSum,
		Interval:       catalog.IntervalDay,
		Conversion:     3600,
		BaseUnit:       "mm",
		IsAccumulation: true,
	})
	require.NoError(t, err)
	assert.Zero(t, omitted)

	require.Len(t, out.Values, 2)
	assert.Equal(t, start, out.Timestamps[0])
	assert.Equal(t, start.AddDate(0, 0, 1), out.Timestamps[1])
	assert.InDelta(t, 24*3600.0, out.Values[0], 1e-9)
	assert.InDelta(t, 24*3600.0, out.Values[1], 1e-9)
	assert.Equal(t, "mm/day", out.Unit)
}

func TestAggregateDailyMean(t *testing.T) {
	start := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 24)
	for i := range values {
		values[i] = float64(i) // mean of 0..23 is 11.5
	}
	series := hourlySeries(start, values, "K")

	out, omitted, err := Aggregate(series, Options{
		Reduction:  types.ReductionMean,
		Interval:   catalog.IntervalDay,
		Conversion: 1,
		BaseUnit:   "K",
	})
	require.NoError(t, err)
	assert.Zero(t, omitted)
	require.Len(t, out.Values, 1)
	assert.InDelta(t, 11.5, out.Values[0], 1e-9)
	assert.Equal(t, "K", out.Unit)
}

func TestAggregateHourlyIsPassthrough(t *testing.T) {
	start := time.Date(1990, 1, 1, 6, 0, 0, 0, time.UTC)
	series := hourlySeries(start, []float64{280.5, 281.0, 281.5}, "K")

	out, omitted, err := Aggregate(series, Options{
		Reduction: types.ReductionMean,
		Interval:  catalog.IntervalHour,
	})
	require.NoError(t, err)
	assert.Zero(t, omitted)
	assert.Equal(t, series.Timestamps, out.Timestamps)
	assert.Equal(t, series.Values, out.Values)
}

func TestAggregateZeroConversionMeansNone(t *testing.T) {
	start := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	series := hourlySeries(start, []float64{2, 4}, "K")

	out, _, err := Aggregate(series, Options{
		Reduction: types.ReductionMean,
		Interval:  catalog.IntervalDay,
	})
	require.NoError(t, err)
	require.Len(t, out.Values, 1)
	assert.InDelta(t, 3, out.Values[0], 1e-9)
}

func TestAggregateExcludesNaN(t *testing.T) {
	start := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	nan := math.NaN()
	series := hourlySeries(start, []float64{10, nan, 20, nan}, "K")

	out, omitted, err := Aggregate(series, Options{
		Reduction: types.ReductionMean,
		Interval:  catalog.IntervalDay,
	})
	require.NoError(t, err)
	assert.Zero(t, omitted)
	require.Len(t, out.Values, 1)
	assert.InDelta(t, 15, out.Values[0], 1e-9)
}

func TestAggregateOmitsEmptyBuckets(t *testing.T) {
	start := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	nan := math.NaN()
	values := make([]float64, 72)
	for i := range values {
		values[i] = 1
	}
	// Day two is all fill.
	for i := 24; i < 48; i++ {
		values[i] = nan
	}
	series := hourlySeries(start, values, "mm s^-1")

	out, omitted, err := Aggregate(series, Options{
		Reduction:      types.ReductionSum,
		Interval:       catalog.IntervalDay,
		Conversion:     3600,
		BaseUnit:       "mm",
		IsAccumulation: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, omitted)
	require.Len(t, out.Timestamps, 2)
	assert.Equal(t, start, out.Timestamps[0])
	assert.Equal(t, start.AddDate(0, 0, 2), out.Timestamps[1])
}

func TestAggregateMonthBuckets(t *testing.T) {
	// Last hour of January followed by the first two of February.
	series := types.GridCellSeries{
		Timestamps: []time.Time{
			time.Date(1990, 1, 31, 23, 0, 0, 0, time.UTC),
			time.Date(1990, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(1990, 2, 1, 1, 0, 0, 0, time.UTC),
		},
		Values: []float64{10, 20, 40},
		Unit:   "K",
	}

	out, _, err := Aggregate(series, Options{
		Reduction: types.ReductionMean,
		Interval:  catalog.IntervalMonth,
	})
	require.NoError(t, err)
	require.Len(t, out.Values, 2)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), out.Timestamps[0])
	assert.Equal(t, time.Date(1990, 2, 1, 0, 0, 0, 0, time.UTC), out.Timestamps[1])
	assert.InDelta(t, 10, out.Values[0], 1e-9)
	assert.InDelta(t, 30, out.Values[1], 1e-9)
}

func TestAggregateYearBuckets(t *testing.T) {
	series := types.GridCellSeries{
		Timestamps: []time.Time{
			time.Date(1990, 12, 31, 23, 0, 0, 0, time.UTC),
			time.Date(1991, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Values: []float64{1, 1},
		Unit:   "mm s^-1",
	}

	out, _, err := Aggregate(series, Options{
		Reduction:      types.ReductionSum,
		Interval:       catalog.IntervalYear,
		Conversion:     3600,
		BaseUnit:       "mm",
		IsAccumulation: true,
	})
	require.NoError(t, err)
	require.Len(t, out.Values, 2)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), out.Timestamps[0])
	assert.Equal(t, time.Date(1991, 1, 1, 0, 0, 0, 0, time.UTC), out.Timestamps[1])
	assert.Equal(t, "mm/year", out.Unit)
}

func TestAggregateEmptySeries(t *testing.T) {
	out, omitted, err := Aggregate(types.GridCellSeries{Unit: "K"}, Options{
		Reduction: types.ReductionMean,
		Interval:  catalog.IntervalDay,
	})
	require.NoError(t, err)
	assert.Zero(t, omitted)
	assert.Empty(t, out.Timestamps)
	assert.Empty(t, out.Values)
}

func TestAggregateUnknownInterval(t *testing.T) {
	series := hourlySeries(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), []float64{1}, "K")
	_, _, err := Aggregate(series, Options{Reduction: types.ReductionSum, Interval: "fortnight"})
	require.Error(t, err)
}

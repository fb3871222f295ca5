// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate resamples an hourly grid-cell series to a coarser
// interval with the reduction the variable kind dictates: sum for
// accumulation quantities, mean for state quantities.
//
// Buckets are calendar-aware in the archive's timezone (UTC): a day
// bucket spans midnight to midnight, a month bucket a full calendar
// month. NaN samples (archive fill values) are excluded from both sums
// and mean denominators, and buckets left with no finite samples are
// omitted from the output rather than coerced to zero.
package aggregate

import (
	"fmt"
	"math"
	"time"

	"github.com/pdiddy/gridpoint/internal/catalog"
	"github.com/pdiddy/gridpoint/pkg/types"
)

// Options controls one aggregation.
type Options struct {
	// Reduction combines the samples of a bucket.
	Reduction types.Reduction

	// Interval sets the bucket boundaries.
	Interval catalog.Interval

	// Conversion is applied to each sample before reduction. Zero is
	// treated as 1 (no conversion).
	Conversion float64

	// BaseUnit and IsAccumulation derive the output unit string:
	// accumulation output is "<BaseUnit>/<Interval>", state output passes
	// the series' declared unit through unchanged.
	BaseUnit       string
	IsAccumulation bool
}

// Aggregate resamples the series. The returned omitted count is the
// number of encountered buckets dropped for having no finite samples.
func Aggregate(series types.GridCellSeries, opts Options) (types.AggregatedSeries, int, error) {
	conversion := opts.Conversion
	if conversion == 0 {
		conversion = 1
	}

	out := types.AggregatedSeries{Unit: unitString(series, opts)}
	omitted := 0

	var (
		bucket time.Time
		sum    float64
		count  int
		open   bool
	)

	flush := func() {
		if !open {
			return
		}
		if count == 0 {
			omitted++
			return
		}
		v := sum
		if opts.Reduction == types.ReductionMean {
			v = sum / float64(count)
		}
		out.Timestamps = append(out.Timestamps, bucket)
		out.Values = append(out.Values, v)
	}

	for i, t := range series.Timestamps {
		start, err := bucketStart(t, opts.Interval)
		if err != nil {
			return types.AggregatedSeries{}, 0, err
		}
		if !open || !start.Equal(bucket) {
			flush()
			bucket, sum, count, open = start, 0, 0, true
		}

		v := series.Values[i]
		if math.IsNaN(v) {
			continue
		}
		sum += v * conversion
		count++
	}
	flush()

	return out, omitted, nil
}

// bucketStart truncates a timestamp to its period start in UTC.
func bucketStart(t time.Time, interval catalog.Interval) (time.Time, error) {
	t = t.UTC()
	switch interval {
	case catalog.IntervalHour:
		return t.Truncate(time.Hour), nil
	case catalog.IntervalDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	case catalog.IntervalMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	case catalog.IntervalYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("no bucket rule for interval %q", interval)
}

func unitString(series types.GridCellSeries, opts Options) string {
	if opts.IsAccumulation {
		return opts.BaseUnit + "/" + string(opts.Interval)
	}
	return series.Unit
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package run composes the extraction pipeline: catalog lookup, archive
// open, reprojection, nearest-cell extraction, aggregation. One call, one
// complete result or one typed failure; nothing is retried and no partial
// result is produced.
package run

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/gridpoint/internal/aggregate"
	"github.com/pdiddy/gridpoint/internal/archive"
	"github.com/pdiddy/gridpoint/internal/catalog"
	"github.com/pdiddy/gridpoint/internal/crs"
	"github.com/pdiddy/gridpoint/internal/extract"
	"github.com/pdiddy/gridpoint/pkg/types"
)

// Params are the user-supplied inputs of one extraction.
type Params struct {
	// Variable is the catalog display name.
	Variable string

	// Interval is the aggregation interval name (hour, day, month, year).
	Interval string

	// Point is the query coordinate in its source CRS.
	Point types.GeoPoint

	// Window is the extraction date range.
	Window types.TimeWindow
}

// Result is the complete outcome of one extraction.
type Result struct {
	// Spec is the resolved catalog entry.
	Spec types.VariableSpec

	// Interval is the validated aggregation interval.
	Interval catalog.Interval

	// ResampleCode is the archive-native token for Interval.
	ResampleCode string

	// ProjectedX and ProjectedY are the query point in the archive's
	// native system.
	ProjectedX, ProjectedY float64

	// Series is the extracted hourly cell series.
	Series types.GridCellSeries

	// Aggregated is the resampled output series.
	Aggregated types.AggregatedSeries

	// OmittedBuckets counts buckets dropped for having no finite samples.
	OmittedBuckets int
}

// Run executes the pipeline. The context bounds both blocking steps: the
// metadata open and the cell materialization.
func Run(ctx context.Context, client *http.Client, cfg types.ArchiveConfig, p Params) (*Result, error) {
	if !p.Window.Valid() {
		return nil, fmt.Errorf("window start %s is after end %s",
			p.Window.Start.Format("2006-01-02"), p.Window.End.Format("2006-01-02"))
	}

	spec, err := catalog.Resolve(p.Variable)
	if err != nil {
		return nil, err
	}
	interval, err := catalog.ParseInterval(p.Interval)
	if err != nil {
		return nil, err
	}

	handle, err := archive.Open(ctx, client, cfg, spec.Code)
	if err != nil {
		return nil, err
	}

	x, y, err := crs.Reproject(p.Point, handle.Proj4)
	if err != nil {
		return nil, err
	}

	series, err := extract.Extract(ctx, handle, x, y, p.Window)
	if err != nil {
		return nil, err
	}

	aggregated, omitted, err := aggregate.Aggregate(series, aggregate.Options{
		Reduction:      spec.Reduction(),
		Interval:       interval,
		Conversion:     spec.ConversionMultiplier,
		BaseUnit:       spec.CanonicalUnit,
		IsAccumulation: spec.IsAccumulation,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Spec:           spec,
		Interval:       interval,
		ResampleCode:   catalog.ResampleCode(interval),
		ProjectedX:     x,
		ProjectedY:     y,
		Series:         series,
		Aggregated:     aggregated,
		OmittedBuckets: omitted,
	}, nil
}

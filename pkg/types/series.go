// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// GridCellSeries is the materialized hourly time series for the single
// grid cell nearest the query point. Timestamps and Values are parallel
// slices in ascending time order. Values use NaN for archive fill values.
type GridCellSeries struct {
	// Timestamps are the hourly sample times, UTC, ascending.
	Timestamps []time.Time `json:"timestamps" yaml:"timestamps"`

	// Values are the samples in archive-native units, parallel to Timestamps.
	Values []float64 `json:"values" yaml:"values"`

	// CellX and CellY are the resolved cell-center coordinates in the
	// archive's projected system. These are the true grid coordinates,
	// not the requested point, so callers can verify resolution error.
	CellX float64 `json:"cell_x" yaml:"cell_x"`
	CellY float64 `json:"cell_y" yaml:"cell_y"`

	// Unit is the archive's declared unit for the variable.
	Unit string `json:"unit" yaml:"unit"`
}

// Len returns the number of samples.
func (s GridCellSeries) Len() int { return len(s.Timestamps) }

// AggregatedSeries is the resampled output of the pipeline. Timestamps
// hold the period-start instant of each bucket; buckets with no finite
// samples are omitted entirely rather than reported as zero.
type AggregatedSeries struct {
	// Timestamps are period-start instants, UTC, ascending.
	Timestamps []time.Time `json:"timestamps" yaml:"timestamps"`

	// Values are the reduced per-bucket values, parallel to Timestamps.
	Values []float64 `json:"values" yaml:"values"`

	// Unit annotates Values: "<base-unit>/<interval>" for accumulation
	// variables, the archive's declared unit for state variables.
	Unit string `json:"unit" yaml:"unit"`
}

// Len returns the number of buckets.
func (s AggregatedSeries) Len() int { return len(s.Timestamps) }

// PlotPoint is one (timestamp, value) pair of the plot-ready sequence
// handed to presentation collaborators.
type PlotPoint struct {
	Time  time.Time `json:"time" yaml:"time"`
	Value float64   `json:"value" yaml:"value"`
}

// PlotPoints returns the series as a plot-ready pair sequence.
func (s AggregatedSeries) PlotPoints() []PlotPoint {
	points := make([]PlotPoint, len(s.Timestamps))
	for i, t := range s.Timestamps {
		points[i] = PlotPoint{Time: t, Value: s.Values[i]}
	}
	return points
}

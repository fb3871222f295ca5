// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the gridpoint pipeline:
// the query point, the extraction window, variable metadata, the extracted
// and aggregated series, stage configuration, and the failure taxonomy.
package types

import "time"

// GeoPoint is a user-supplied coordinate pair in a named coordinate
// reference system. It is immutable once constructed from input.
type GeoPoint struct {
	// X is the easting or longitude, in the units of CRS.
	X float64 `json:"x" yaml:"x"`

	// Y is the northing or latitude, in the units of CRS.
	Y float64 `json:"y" yaml:"y"`

	// CRS identifies the coordinate reference system, either an EPSG-style
	// code (e.g. "EPSG:4326") or a raw proj4 definition string.
	CRS string `json:"crs" yaml:"crs"`
}

// TimeWindow is a date range for extraction. Both bounds are dates; the
// window covers [Start 00:00, End 24:00) in the archive's timezone (UTC),
// so the End date's full day of hourly samples is included.
type TimeWindow struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Valid reports whether Start is on or before End.
func (w TimeWindow) Valid() bool {
	return !w.Start.After(w.End)
}

// EndExclusive returns the first instant after the window: midnight
// following the End date.
func (w TimeWindow) EndExclusive() time.Time {
	return w.End.AddDate(0, 0, 1)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// The pipeline fails fast with one of the typed errors below. Each carries
// the offending value and the valid set or range, so callers can correct
// input without inspecting internals. None are retried by the pipeline;
// retry policy belongs to the caller.

// UnknownVariableError reports a display name with no catalog entry.
type UnknownVariableError struct {
	Name  string
	Known []string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable %q: known variables are %s",
		e.Name, strings.Join(e.Known, ", "))
}

// UnsupportedIntervalError reports an aggregation interval outside the
// supported set.
type UnsupportedIntervalError struct {
	Name      string
	Supported []string
}

func (e *UnsupportedIntervalError) Error() string {
	return fmt.Sprintf("unsupported interval %q: supported intervals are %s",
		e.Name, strings.Join(e.Supported, ", "))
}

// ArchiveUnavailableError reports that the archive store could not be
// reached or its metadata could not be understood. Single attempt; the
// caller may retry.
type ArchiveUnavailableError struct {
	URL string
	Err error
}

func (e *ArchiveUnavailableError) Error() string {
	return fmt.Sprintf("archive unavailable at %s: %v", e.URL, e.Err)
}

func (e *ArchiveUnavailableError) Unwrap() error { return e.Err }

// InvalidCoordinateSystemError reports a coordinate reference system that
// could not be resolved or parsed.
type InvalidCoordinateSystemError struct {
	CRS string
	Err error
}

func (e *InvalidCoordinateSystemError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid coordinate system %q: %v", e.CRS, e.Err)
	}
	return fmt.Sprintf("invalid coordinate system %q", e.CRS)
}

func (e *InvalidCoordinateSystemError) Unwrap() error { return e.Err }

// ProjectionDomainError reports a point outside the valid domain of the
// projection, surfaced instead of a silent NaN result.
type ProjectionDomainError struct {
	X, Y float64
	CRS  string
	Err  error
}

func (e *ProjectionDomainError) Error() string {
	return fmt.Sprintf("point (%g, %g) is outside the valid domain of %q: %v",
		e.X, e.Y, e.CRS, e.Err)
}

func (e *ProjectionDomainError) Unwrap() error { return e.Err }

// TimeWindowOutOfRangeError reports a window that falls entirely outside
// the archive's temporal coverage.
type TimeWindowOutOfRangeError struct {
	Start, End       time.Time
	Earliest, Latest time.Time
}

func (e *TimeWindowOutOfRangeError) Error() string {
	return fmt.Sprintf("window %s to %s is outside archive coverage %s to %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"),
		e.Earliest.Format(time.RFC3339), e.Latest.Format(time.RFC3339))
}

// PointOutsideCoverageError reports a query point whose nearest grid
// coordinate is more than one mesh length away on some axis, surfaced
// instead of silently selecting a distant cell.
type PointOutsideCoverageError struct {
	X, Y       float64
	NearestX   float64
	NearestY   float64
	MeshLength float64
}

func (e *PointOutsideCoverageError) Error() string {
	return fmt.Sprintf("point (%g, %g) is outside archive coverage: nearest grid coordinate (%g, %g) is more than one mesh length (%g) away",
		e.X, e.Y, e.NearestX, e.NearestY, e.MeshLength)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract resolves a projected point to the nearest grid cell and
// materializes that cell's hourly series over a time window. Only the
// selected cell and window are transferred, never the full spatial grid.
package extract

import (
	"context"
	"math"
	"sort"

	"github.com/pdiddy/gridpoint/internal/archive"
	"github.com/pdiddy/gridpoint/pkg/types"
)

// Extract selects the window's time slice and the single grid cell
// nearest (x, y), then materializes the 1-D series.
//
// The time slice is inclusive of both window bounds; a window partially
// overlapping the archive's coverage yields the overlapping portion, a
// window with no overlap fails with TimeWindowOutOfRange. The nearest
// coordinate on each axis is the one with minimum absolute distance,
// lowest index winning ties. A point whose nearest coordinate is more
// than one mesh length away on either axis fails with
// PointOutsideCoverage instead of silently selecting a distant cell.
func Extract(ctx context.Context, h *archive.Handle, x, y float64, window types.TimeWindow) (types.GridCellSeries, error) {
	t0, t1, err := timeSlice(h, window)
	if err != nil {
		return types.GridCellSeries{}, err
	}

	xi, xDist := nearestIndex(h.X, x)
	yi, yDist := nearestIndex(h.Y, y)
	if xDist > meshLength(h.X) || yDist > meshLength(h.Y) {
		return types.GridCellSeries{}, &types.PointOutsideCoverageError{
			X: x, Y: y,
			NearestX:   h.X[xi],
			NearestY:   h.Y[yi],
			MeshLength: math.Max(meshLength(h.X), meshLength(h.Y)),
		}
	}

	values, err := h.ReadSeries(ctx, t0, t1, yi, xi)
	if err != nil {
		return types.GridCellSeries{}, err
	}

	return types.GridCellSeries{
		Timestamps: h.Times[t0 : t1+1],
		Values:     values,
		CellX:      h.X[xi],
		CellY:      h.Y[yi],
		Unit:       h.Unit,
	}, nil
}

// timeSlice maps the window onto inclusive time indices [t0, t1].
func timeSlice(h *archive.Handle, window types.TimeWindow) (int, int, error) {
	end := window.EndExclusive()

	t0 := sort.Search(len(h.Times), func(i int) bool {
		return !h.Times[i].Before(window.Start)
	})
	t1 := sort.Search(len(h.Times), func(i int) bool {
		return !h.Times[i].Before(end)
	}) - 1

	if t0 > t1 {
		return 0, 0, &types.TimeWindowOutOfRangeError{
			Start:    window.Start,
			End:      window.End,
			Earliest: h.Times[0],
			Latest:   h.Times[len(h.Times)-1],
		}
	}
	return t0, t1, nil
}

// nearestIndex returns the index of the coordinate with minimum absolute
// distance to target. Strict comparison keeps the lowest index on ties,
// matching the archive convention.
func nearestIndex(coords []float64, target float64) (int, float64) {
	best := 0
	bestDist := math.Abs(coords[0] - target)
	for i := 1; i < len(coords); i++ {
		if d := math.Abs(coords[i] - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// meshLength is the grid spacing of a coordinate axis. A degenerate
// single-coordinate axis cannot bound coverage, so it never rejects.
func meshLength(coords []float64) float64 {
	if len(coords) < 2 {
		return math.Inf(1)
	}
	return math.Abs(coords[1] - coords[0])
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive opens lazy handles on the remote climate archive. Each
// variable lives in its own chunked array store, addressed by a fixed URL
// template keyed on the variable code. Opening a handle reads dimension
// sizes, coordinate arrays, and attributes; bulk values move only when
// the extractor materializes a selection.
package archive

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/gridpoint/internal/zarr"
	"github.com/pdiddy/gridpoint/pkg/types"
)

// NoUnits is the unit sentinel used when a variable declares none.
const NoUnits = "No units specified"

// Handle is a read-only lazy reference to one variable's store. It is
// created per pipeline run and safe for sequential reuse within that run.
type Handle struct {
	// Code is the archive variable code the handle was opened for.
	Code string

	// URL is the resolved store location.
	URL string

	// X and Y are the spatial coordinate arrays in the archive's
	// projected system, in native storage order.
	X, Y []float64

	// Times are the decoded time coordinates, UTC, ascending.
	Times []time.Time

	// Proj4 is the archive's native CRS descriptor.
	Proj4 string

	// Unit is the variable's declared unit, or NoUnits.
	Unit string

	data *zarr.Array
}

// Open resolves the store for a variable code and reads its metadata.
// A single attempt is made; any network, storage, or metadata failure is
// reported as ArchiveUnavailable and left to the caller to retry.
func Open(ctx context.Context, client *http.Client, cfg types.ArchiveConfig, code string) (*Handle, error) {
	url := strings.ReplaceAll(cfg.StoreURLTemplate, "{code}", code)

	opts := []zarr.Option{zarr.WithUserAgent(cfg.UserAgent)}
	if cfg.BearerToken != "" {
		opts = append(opts, zarr.WithBearerToken(cfg.BearerToken))
	}

	store, err := zarr.Open(ctx, client, url, opts...)
	if err != nil {
		return nil, &types.ArchiveUnavailableError{URL: url, Err: err}
	}

	h, err := newHandle(ctx, store, code, cfg.Proj4)
	if err != nil {
		return nil, &types.ArchiveUnavailableError{URL: url, Err: err}
	}
	h.URL = url
	return h, nil
}

func newHandle(ctx context.Context, store *zarr.Store, code, fallbackProj4 string) (*Handle, error) {
	data, err := store.Array(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(data.Shape()) != 3 {
		return nil, fmt.Errorf("variable %s: rank %d, want 3 (time, y, x)", code, len(data.Shape()))
	}

	x, err := readCoord(ctx, store, "x")
	if err != nil {
		return nil, err
	}
	y, err := readCoord(ctx, store, "y")
	if err != nil {
		return nil, err
	}

	timeArr, err := store.Array(ctx, "time")
	if err != nil {
		return nil, err
	}
	rawTimes, err := timeArr.Read1D(ctx)
	if err != nil {
		return nil, err
	}
	times, err := decodeCFTimes(rawTimes, timeArr.StringAttr("units"))
	if err != nil {
		return nil, err
	}

	if len(x) == 0 || len(y) == 0 || len(times) == 0 {
		return nil, fmt.Errorf("variable %s: empty coordinate arrays (time %d, y %d, x %d)",
			code, len(times), len(y), len(x))
	}

	shape := data.Shape()
	if shape[0] != len(times) || shape[1] != len(y) || shape[2] != len(x) {
		return nil, fmt.Errorf("variable %s: shape %v does not match coordinates (%d, %d, %d)",
			code, shape, len(times), len(y), len(x))
	}

	proj4 := stringAttr(store.Attrs(), "proj4")
	if proj4 == "" {
		proj4 = data.StringAttr("proj4")
	}
	if proj4 == "" {
		proj4 = fallbackProj4
	}
	if proj4 == "" {
		return nil, fmt.Errorf("store declares no proj4 attribute and no fallback is configured")
	}

	unit := data.StringAttr("units")
	if unit == "" {
		unit = NoUnits
	}

	return &Handle{
		Code:  code,
		X:     x,
		Y:     y,
		Times: times,
		Proj4: proj4,
		Unit:  unit,
		data:  data,
	}, nil
}

// ReadSeries materializes the hourly values for one grid cell over the
// inclusive time-index range [t0, t1]. This is the handle's only
// bulk-data transfer.
func (h *Handle) ReadSeries(ctx context.Context, t0, t1, yi, xi int) ([]float64, error) {
	values, err := h.data.ReadSeries(ctx, t0, t1, yi, xi)
	if err != nil {
		return nil, &types.ArchiveUnavailableError{URL: h.URL, Err: err}
	}
	return values, nil
}

func readCoord(ctx context.Context, store *zarr.Store, name string) ([]float64, error) {
	arr, err := store.Array(ctx, name)
	if err != nil {
		return nil, err
	}
	return arr.Read1D(ctx)
}

func stringAttr(attrs map[string]any, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/gridpoint/internal/zarr/zarrtest"
	"github.com/pdiddy/gridpoint/pkg/types"
)

func testConfig(url string) types.ArchiveConfig {
	return types.ArchiveConfig{
		HTTPConfig:       types.HTTPConfig{Timeout: 10 * time.Second, UserAgent: "test/0.1"},
		StoreURLTemplate: url + "/{code}",
	}
}

func serveClimate(t *testing.T, code string, varAttrs map[string]any) *httptest.Server {
	t.Helper()
	store := zarrtest.ClimateStore(code, 48,
		[]float64{0, 1000, 2000},
		[]float64{2000, 1000, 0},
		func(h, y, x int) float64 { return float64(h) },
		varAttrs)

	mux := http.NewServeMux()
	mux.Handle("/"+code+"/", http.StripPrefix("/"+code, zarrtest.Handler(store)))
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestOpenReadsHandleMetadata(t *testing.T) {
	ts := serveClimate(t, "T2D", map[string]any{"units": "K"})

	h, err := Open(context.Background(), ts.Client(), testConfig(ts.URL), "T2D")
	require.NoError(t, err)

	assert.Equal(t, "T2D", h.Code)
	assert.Equal(t, []float64{0, 1000, 2000}, h.X)
	assert.Equal(t, []float64{2000, 1000, 0}, h.Y)
	assert.Equal(t, "K", h.Unit)
	assert.Equal(t, "+proj=longlat +datum=WGS84 +no_defs", h.Proj4)

	require.Len(t, h.Times, 48)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), h.Times[0])
	assert.Equal(t, time.Date(1990, 1, 2, 23, 0, 0, 0, time.UTC), h.Times[47])
}

func TestOpenUnitSentinel(t *testing.T) {
	ts := serveClimate(t, "Q2D", nil)

	h, err := Open(context.Background(), ts.Client(), testConfig(ts.URL), "Q2D")
	require.NoError(t, err)
	assert.Equal(t, NoUnits, h.Unit)
}

func TestOpenUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := Open(context.Background(), ts.Client(), testConfig(ts.URL), "T2D")
	var unavailable *types.ArchiveUnavailableError
	require.True(t, errors.As(err, &unavailable), "want ArchiveUnavailableError, got %v", err)
	assert.Contains(t, unavailable.URL, "/T2D")
}

func TestOpenMissingVariable(t *testing.T) {
	ts := serveClimate(t, "T2D", nil)

	cfg := testConfig(ts.URL)
	cfg.StoreURLTemplate = ts.URL + "/T2D"
	_, err := Open(context.Background(), ts.Client(), cfg, "LWDOWN")
	var unavailable *types.ArchiveUnavailableError
	require.True(t, errors.As(err, &unavailable), "want ArchiveUnavailableError, got %v", err)
}

func TestOpenEmptyTimeAxis(t *testing.T) {
	// A store whose time axis has no samples is malformed metadata, not
	// a panic in the extractor later.
	empty := zarrtest.ClimateStore("T2D", 0, []float64{0, 1000}, []float64{1000, 0},
		func(h, y, x int) float64 { return 0 }, nil)
	srv := zarrtest.Serve(empty)
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	cfg.StoreURLTemplate = srv.URL
	_, err := Open(context.Background(), srv.Client(), cfg, "T2D")
	var unavailable *types.ArchiveUnavailableError
	require.True(t, errors.As(err, &unavailable), "want ArchiveUnavailableError, got %v", err)
}

func TestReadSeries(t *testing.T) {
	ts := serveClimate(t, "T2D", map[string]any{"units": "K"})

	h, err := Open(context.Background(), ts.Client(), testConfig(ts.URL), "T2D")
	require.NoError(t, err)

	values, err := h.ReadSeries(context.Background(), 10, 13, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 11, 12, 13}, values)
}

func TestDecodeCFTimes(t *testing.T) {
	tests := []struct {
		name   string
		units  string
		values []float64
		want   []time.Time
		errMsg string
	}{
		{
			name:   "hours since datetime",
			units:  "hours since 1990-01-01 00:00:00",
			values: []float64{0, 1, 25},
			want: []time.Time{
				time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1990, 1, 1, 1, 0, 0, 0, time.UTC),
				time.Date(1990, 1, 2, 1, 0, 0, 0, time.UTC),
			},
		},
		{
			name:   "seconds since date only",
			units:  "seconds since 2000-06-15",
			values: []float64{3600},
			want:   []time.Time{time.Date(2000, 6, 15, 1, 0, 0, 0, time.UTC)},
		},
		{
			name:   "days with T separator",
			units:  "days since 1979-01-01T12:00:00",
			values: []float64{2},
			want:   []time.Time{time.Date(1979, 1, 3, 12, 0, 0, 0, time.UTC)},
		},
		{
			name:   "missing since",
			units:  "hours",
			errMsg: "since",
		},
		{
			name:   "unsupported unit",
			units:  "fortnights since 1990-01-01",
			errMsg: "unsupported unit",
		},
		{
			name:   "bad epoch",
			units:  "hours since yesterday",
			errMsg: "unparseable epoch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeCFTimes(tt.values, tt.units)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package zarr

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// arrayMeta is the shape of a .zarray document.
type arrayMeta struct {
	ZarrFormat         int             `json:"zarr_format"`
	Shape              []int           `json:"shape"`
	Chunks             []int           `json:"chunks"`
	DType              string          `json:"dtype"`
	Compressor         *compressorMeta `json:"compressor"`
	FillValue          json.RawMessage `json:"fill_value"`
	Order              string          `json:"order"`
	Filters            json.RawMessage `json:"filters"`
	DimensionSeparator string          `json:"dimension_separator"`
}

type compressorMeta struct {
	ID string `json:"id"`
}

// Array is one array within a store. Metadata only; values are fetched
// per chunk on materialization.
type Array struct {
	store *Store
	name  string
	meta  arrayMeta
	attrs map[string]any
	dt    dtype
	fill  float64
	sep   string
}

func newArray(s *Store, name string, meta arrayMeta, attrs map[string]any) (*Array, error) {
	if meta.ZarrFormat != 2 {
		return nil, fmt.Errorf("array %s: unsupported zarr format %d", name, meta.ZarrFormat)
	}
	if meta.Order != "" && meta.Order != "C" {
		return nil, fmt.Errorf("array %s: unsupported element order %q", name, meta.Order)
	}
	if len(meta.Filters) > 0 && string(meta.Filters) != "null" {
		return nil, fmt.Errorf("array %s: filters are not supported", name)
	}
	if len(meta.Shape) != len(meta.Chunks) {
		return nil, fmt.Errorf("array %s: shape rank %d does not match chunk rank %d",
			name, len(meta.Shape), len(meta.Chunks))
	}
	for d := range meta.Shape {
		if meta.Shape[d] <= 0 || meta.Chunks[d] <= 0 {
			return nil, fmt.Errorf("array %s: non-positive extent in shape %v, chunks %v",
				name, meta.Shape, meta.Chunks)
		}
	}
	if meta.Compressor != nil {
		if _, ok := codecs[meta.Compressor.ID]; !ok {
			return nil, fmt.Errorf("array %s: unsupported compressor %q", name, meta.Compressor.ID)
		}
	}

	dt, err := parseDType(meta.DType)
	if err != nil {
		return nil, fmt.Errorf("array %s: %w", name, err)
	}

	fill, err := parseFillValue(meta.FillValue)
	if err != nil {
		return nil, fmt.Errorf("array %s: %w", name, err)
	}

	sep := meta.DimensionSeparator
	if sep == "" {
		sep = "."
	}

	return &Array{store: s, name: name, meta: meta, attrs: attrs, dt: dt, fill: fill, sep: sep}, nil
}

// Name returns the array's name within the store.
func (a *Array) Name() string { return a.name }

// Shape returns the array's dimension sizes.
func (a *Array) Shape() []int { return a.meta.Shape }

// Attrs returns the array's attributes.
func (a *Array) Attrs() map[string]any { return a.attrs }

// StringAttr returns a string-valued attribute, or "" when absent or not
// a string.
func (a *Array) StringAttr(key string) string {
	if v, ok := a.attrs[key].(string); ok {
		return v
	}
	return ""
}

// Read1D materializes a full 1-D array. Intended for coordinate arrays,
// which are metadata-scale.
func (a *Array) Read1D(ctx context.Context) ([]float64, error) {
	if len(a.meta.Shape) != 1 {
		return nil, fmt.Errorf("array %s: Read1D on rank-%d array", a.name, len(a.meta.Shape))
	}

	n := a.meta.Shape[0]
	chunkLen := a.meta.Chunks[0]
	out := make([]float64, n)

	for chunk := 0; chunk*chunkLen < n; chunk++ {
		raw, err := a.chunk(ctx, []int{chunk})
		if err != nil {
			return nil, err
		}
		for local := 0; local < chunkLen; local++ {
			i := chunk*chunkLen + local
			if i >= n {
				break
			}
			out[i] = a.element(raw, local)
		}
	}
	return out, nil
}

// ReadSeries materializes values[t0..t1] at fixed spatial indices (yi, xi)
// from a rank-3 array dimensioned (time, y, x). The time bounds are
// inclusive. Only the chunks covering the selection are fetched.
func (a *Array) ReadSeries(ctx context.Context, t0, t1, yi, xi int) ([]float64, error) {
	if len(a.meta.Shape) != 3 {
		return nil, fmt.Errorf("array %s: ReadSeries on rank-%d array", a.name, len(a.meta.Shape))
	}
	shape, chunks := a.meta.Shape, a.meta.Chunks
	if t0 < 0 || t1 >= shape[0] || t0 > t1 {
		return nil, fmt.Errorf("array %s: time selection [%d, %d] outside [0, %d]", a.name, t0, t1, shape[0]-1)
	}
	if yi < 0 || yi >= shape[1] || xi < 0 || xi >= shape[2] {
		return nil, fmt.Errorf("array %s: cell (%d, %d) outside grid %dx%d", a.name, yi, xi, shape[1], shape[2])
	}

	yChunk, yLocal := yi/chunks[1], yi%chunks[1]
	xChunk, xLocal := xi/chunks[2], xi%chunks[2]

	out := make([]float64, 0, t1-t0+1)
	for tChunk := t0 / chunks[0]; tChunk <= t1/chunks[0]; tChunk++ {
		raw, err := a.chunk(ctx, []int{tChunk, yChunk, xChunk})
		if err != nil {
			return nil, err
		}

		lo := max(t0, tChunk*chunks[0])
		hi := min(t1, (tChunk+1)*chunks[0]-1)
		for t := lo; t <= hi; t++ {
			tLocal := t - tChunk*chunks[0]
			offset := (tLocal*chunks[1]+yLocal)*chunks[2] + xLocal
			out = append(out, a.element(raw, offset))
		}
	}
	return out, nil
}

// chunk fetches and decompresses one chunk. A missing chunk key returns
// nil, which element treats as all fill values.
func (a *Array) chunk(ctx context.Context, indices []int) ([]byte, error) {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	key := a.name + "/" + strings.Join(parts, a.sep)

	raw, found, err := a.store.get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	if a.meta.Compressor != nil {
		raw, err = codecs[a.meta.Compressor.ID](raw)
		if err != nil {
			return nil, fmt.Errorf("decompressing chunk %s: %w", key, err)
		}
	}

	want := a.dt.size
	for _, c := range a.meta.Chunks {
		want *= c
	}
	if len(raw) != want {
		return nil, fmt.Errorf("chunk %s: %d bytes, want %d", key, len(raw), want)
	}
	return raw, nil
}

// element decodes one element of a decompressed chunk, mapping missing
// chunks and fill values to NaN.
func (a *Array) element(raw []byte, offset int) float64 {
	if raw == nil {
		return math.NaN()
	}
	v := a.dt.at(raw, offset)
	if !math.IsNaN(a.fill) && v == a.fill {
		return math.NaN()
	}
	return v
}

// parseFillValue decodes the .zarray fill_value field: a number, null, or
// one of the JSON-unrepresentable float strings.
func parseFillValue(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return math.NaN(), nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("unsupported fill_value %s", raw)
	}
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	return 0, fmt.Errorf("unsupported fill_value %q", s)
}

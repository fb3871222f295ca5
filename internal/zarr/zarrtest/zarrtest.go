// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package zarrtest serves synthetic chunked array stores over httptest
// for store-backed tests.
package zarrtest

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// Array describes one synthetic array. Values holds the full array in
// C order; its length must be the product of Shape.
type Array struct {
	Shape  []int
	Chunks []int
	// DType defaults to "<f8".
	DType string
	// Compressor is "" (raw) or "zlib".
	Compressor string
	// FillValue is the raw JSON fill_value field; defaults to null.
	FillValue string
	Attrs     map[string]any
	Values    []float64
	// Omit lists chunk keys (e.g. "0.0.0") to leave out of the store,
	// which a reader must treat as fill-value chunks.
	Omit []string
}

// Store describes a synthetic store.
type Store struct {
	Attrs  map[string]any
	Arrays map[string]*Array
	// Unconsolidated suppresses .zmetadata, forcing per-array fetches.
	Unconsolidated bool
}

// Serve builds the store's objects and serves them from an httptest
// server. The caller owns the server and must Close it.
func Serve(s Store) *httptest.Server {
	return httptest.NewServer(Handler(s))
}

// Handler returns an http.Handler serving the store's objects, so tests
// can wrap it to count or fail requests.
func Handler(s Store) http.Handler {
	objects := Objects(s)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := objects[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	})
}

// Objects renders the store into a key-to-bytes map.
func Objects(s Store) map[string][]byte {
	objects := map[string][]byte{}
	meta := map[string]json.RawMessage{}

	if s.Attrs != nil {
		meta[".zattrs"] = mustJSON(s.Attrs)
	}

	for name, a := range s.Arrays {
		zarray := a.zarrayDoc()
		meta[name+"/.zarray"] = zarray
		objects[name+"/.zarray"] = zarray
		if a.Attrs != nil {
			zattrs := mustJSON(a.Attrs)
			meta[name+"/.zattrs"] = zattrs
			objects[name+"/.zattrs"] = zattrs
		}
		for key, chunk := range a.chunks() {
			objects[name+"/"+key] = chunk
		}
	}

	if !s.Unconsolidated {
		objects[".zmetadata"] = mustJSON(map[string]any{
			"zarr_consolidated_format": 1,
			"metadata":                 meta,
		})
	} else if s.Attrs != nil {
		objects[".zattrs"] = mustJSON(s.Attrs)
	}
	return objects
}

func (a *Array) dtype() string {
	if a.DType == "" {
		return "<f8"
	}
	return a.DType
}

func (a *Array) zarrayDoc() json.RawMessage {
	fill := a.FillValue
	if fill == "" {
		fill = "null"
	}
	var compressor any
	if a.Compressor != "" {
		compressor = map[string]any{"id": a.Compressor}
	}
	return mustJSON(map[string]any{
		"zarr_format": 2,
		"shape":       a.Shape,
		"chunks":      a.Chunks,
		"dtype":       a.dtype(),
		"compressor":  compressor,
		"fill_value":  json.RawMessage(fill),
		"order":       "C",
		"filters":     nil,
	})
}

// chunks renders every chunk of the array, padding edge chunks to the
// nominal chunk size.
func (a *Array) chunks() map[string][]byte {
	total := 1
	for _, n := range a.Shape {
		total *= n
	}
	if len(a.Values) != total {
		panic(fmt.Sprintf("zarrtest: %d values for shape %v", len(a.Values), a.Shape))
	}

	grid := make([]int, len(a.Shape))
	for d := range a.Shape {
		grid[d] = (a.Shape[d] + a.Chunks[d] - 1) / a.Chunks[d]
	}

	out := map[string][]byte{}
	for _, indices := range cartesian(grid) {
		key := chunkKey(indices)
		if a.omitted(key) {
			continue
		}
		out[key] = a.encodeChunk(indices)
	}
	return out
}

func (a *Array) omitted(key string) bool {
	for _, o := range a.Omit {
		if o == key {
			return true
		}
	}
	return false
}

func (a *Array) encodeChunk(indices []int) []byte {
	chunkLen := 1
	for _, c := range a.Chunks {
		chunkLen *= c
	}

	var buf bytes.Buffer
	local := make([]int, len(a.Chunks))
	for i := 0; i < chunkLen; i++ {
		rem := i
		for d := len(a.Chunks) - 1; d >= 0; d-- {
			local[d] = rem % a.Chunks[d]
			rem /= a.Chunks[d]
		}

		v, inBounds := 0.0, true
		global := 0
		for d := range a.Shape {
			g := indices[d]*a.Chunks[d] + local[d]
			if g >= a.Shape[d] {
				inBounds = false
				break
			}
			global = global*a.Shape[d] + g
		}
		if inBounds {
			v = a.Values[global]
		}
		writeElem(&buf, a.dtype(), v)
	}

	if a.Compressor == "zlib" {
		var z bytes.Buffer
		w := zlib.NewWriter(&z)
		w.Write(buf.Bytes())
		w.Close()
		return z.Bytes()
	}
	return buf.Bytes()
}

func writeElem(buf *bytes.Buffer, dtype string, v float64) {
	switch dtype {
	case "<f8":
		binary.Write(buf, binary.LittleEndian, math.Float64bits(v))
	case "<f4":
		binary.Write(buf, binary.LittleEndian, math.Float32bits(float32(v)))
	case ">f4":
		binary.Write(buf, binary.BigEndian, math.Float32bits(float32(v)))
	case "<i4":
		binary.Write(buf, binary.LittleEndian, int32(v))
	default:
		panic("zarrtest: unsupported dtype " + dtype)
	}
}

func chunkKey(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return strings.Join(parts, ".")
}

// cartesian enumerates every index tuple of a chunk grid.
func cartesian(grid []int) [][]int {
	total := 1
	for _, n := range grid {
		total *= n
	}
	out := make([][]int, 0, total)
	for i := 0; i < total; i++ {
		indices := make([]int, len(grid))
		rem := i
		for d := len(grid) - 1; d >= 0; d-- {
			indices[d] = rem % grid[d]
			rem /= grid[d]
		}
		out = append(out, indices)
	}
	return out
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package zarrtest

// ClimateStore builds a synthetic hourly archive store for one variable:
// coordinate arrays x, y, and time (hours since 1990-01-01), plus the
// variable itself with value(hour, yIdx, xIdx) samples. The native CRS is
// geographic WGS84 so tests can reason about coordinates directly.
func ClimateStore(code string, hours int, xs, ys []float64, value func(h, y, x int) float64, varAttrs map[string]any) Store {
	times := make([]float64, hours)
	for h := range times {
		times[h] = float64(h)
	}

	values := make([]float64, hours*len(ys)*len(xs))
	for h := 0; h < hours; h++ {
		for y := 0; y < len(ys); y++ {
			for x := 0; x < len(xs); x++ {
				values[(h*len(ys)+y)*len(xs)+x] = value(h, y, x)
			}
		}
	}

	return Store{
		Attrs: map[string]any{"proj4": "+proj=longlat +datum=WGS84 +no_defs"},
		Arrays: map[string]*Array{
			"x": {Shape: []int{len(xs)}, Chunks: []int{len(xs)}, Values: xs},
			"y": {Shape: []int{len(ys)}, Chunks: []int{len(ys)}, Values: ys},
			"time": {
				Shape:  []int{hours},
				Chunks: []int{24},
				Attrs:  map[string]any{"units": "hours since 1990-01-01 00:00:00"},
				Values: times,
			},
			code: {
				Shape:  []int{hours, len(ys), len(xs)},
				Chunks: []int{24, 2, 2},
				Attrs:  varAttrs,
				Values: values,
			},
		},
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the extraction artifacts: the CSV time series and
// a YAML run manifest. Presentation beyond these files (plots, maps) is a
// downstream collaborator's job; the data here is shaped to feed it.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gridpoint/internal/run"
	"github.com/pdiddy/gridpoint/pkg/types"
)

// Manifest records one extraction run next to its CSV.
type Manifest struct {
	Variable       string         `yaml:"variable"`
	Code           string         `yaml:"code"`
	Interval       string         `yaml:"interval"`
	ResampleCode   string         `yaml:"resample_code"`
	Point          types.GeoPoint `yaml:"point"`
	ProjectedX     float64        `yaml:"projected_x"`
	ProjectedY     float64        `yaml:"projected_y"`
	CellX          float64        `yaml:"cell_x"`
	CellY          float64        `yaml:"cell_y"`
	Start          string         `yaml:"start"`
	End            string         `yaml:"end"`
	Unit           string         `yaml:"unit"`
	Rows           int            `yaml:"rows"`
	OmittedBuckets int            `yaml:"omitted_buckets"`
	CreatedAt      time.Time      `yaml:"created_at"`
}

// Slug derives the artifact base name from the run inputs, e.g.
// "total-precipitation-day-1990-01-01-1990-01-03".
func Slug(result *run.Result, window types.TimeWindow) string {
	name := strings.ToLower(strings.ReplaceAll(result.Spec.DisplayName, " ", "-"))
	return fmt.Sprintf("%s-%s-%s-%s", name, result.Interval,
		window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))
}

// WriteCSV writes the aggregated series as a tabular time series with
// columns [time, cell_y, cell_x, value]. The value column header names
// the variable and its unit. Returns the written path.
func WriteCSV(dir, slug string, result *run.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, slug+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	valueHeader := fmt.Sprintf("%s (%s)", result.Spec.DisplayName, result.Aggregated.Unit)
	if err := w.Write([]string{"time", "cell_y", "cell_x", valueHeader}); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}

	cellY := strconv.FormatFloat(result.Series.CellY, 'f', -1, 64)
	cellX := strconv.FormatFloat(result.Series.CellX, 'f', -1, 64)
	for i, t := range result.Aggregated.Timestamps {
		row := []string{
			t.UTC().Format(time.RFC3339),
			cellY,
			cellX,
			strconv.FormatFloat(result.Aggregated.Values[i], 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing %s: %w", path, err)
	}
	return path, nil
}

// WriteManifest writes the run manifest beside the CSV. Returns the
// written path.
func WriteManifest(dir, slug string, result *run.Result, params run.Params) (string, error) {
	window := params.Window
	m := Manifest{
		Variable:       result.Spec.DisplayName,
		Code:           result.Spec.Code,
		Interval:       string(result.Interval),
		ResampleCode:   result.ResampleCode,
		Point:          params.Point,
		ProjectedX:     result.ProjectedX,
		ProjectedY:     result.ProjectedY,
		CellX:          result.Series.CellX,
		CellY:          result.Series.CellY,
		Start:          window.Start.Format("2006-01-02"),
		End:            window.End.Format("2006-01-02"),
		Unit:           result.Aggregated.Unit,
		Rows:           result.Aggregated.Len(),
		OmittedBuckets: result.OmittedBuckets,
		CreatedAt:      time.Now().UTC(),
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}

	path := filepath.Join(dir, slug+"-manifest.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

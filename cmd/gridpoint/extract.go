// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gridpoint/internal/export"
	"github.com/pdiddy/gridpoint/internal/history"
	"github.com/pdiddy/gridpoint/internal/run"
	"github.com/pdiddy/gridpoint/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract and aggregate a point time series from the archive",
	Long: `Extract reprojects the supplied coordinate into the archive's native grid,
selects the nearest grid cell, pulls that cell's hourly series over the date
range, and aggregates it to the requested interval. Accumulation variables
(precipitation) are summed per bucket, state variables (temperature) are
averaged. The result is written as CSV with a run manifest, and the run is
recorded in the local history database.`,
	Example: `  gridpoint extract --var "Total Precipitation" --interval day \
    --from 1990-01-01 --to 1990-01-03 \
    --crs EPSG:4326 --x -111.96503 --y 40.77069`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("var", "", "variable display name (see 'gridpoint variables')")
	extractCmd.Flags().String("interval", "day", "aggregation interval: hour, day, month, or year")
	extractCmd.Flags().String("from", "", "window start date (YYYY-MM-DD)")
	extractCmd.Flags().String("to", "", "window end date (YYYY-MM-DD, inclusive)")
	extractCmd.Flags().String("crs", "EPSG:4326", "coordinate reference system of --x/--y")
	extractCmd.Flags().Float64("x", 0, "easting or longitude in --crs units")
	extractCmd.Flags().Float64("y", 0, "northing or latitude in --crs units")
	extractCmd.Flags().String("out", "", "output directory (default from config)")
	extractCmd.Flags().Bool("json", false, "print aggregated rows as JSON instead of writing a summary")

	extractCmd.MarkFlagRequired("var")
	extractCmd.MarkFlagRequired("from")
	extractCmd.MarkFlagRequired("to")
	extractCmd.MarkFlagRequired("x")
	extractCmd.MarkFlagRequired("y")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	params, err := extractParams(cmd)
	if err != nil {
		return err
	}

	cfg := pipelineConfig()
	if outDir, _ := cmd.Flags().GetString("out"); outDir != "" {
		cfg.Export.OutputDir = outDir
	}

	client := &http.Client{Timeout: cfg.Archive.Timeout}
	result, err := run.Run(context.Background(), client, cfg.Archive, params)
	if err != nil {
		return err
	}

	slug := export.Slug(result, params.Window)
	csvPath, err := export.WriteCSV(cfg.Export.OutputDir, slug, result)
	if err != nil {
		return err
	}
	manifestPath, err := export.WriteManifest(cfg.Export.OutputDir, slug, result, params)
	if err != nil {
		return err
	}

	if err := recordRun(cfg.History, params, result, csvPath); err != nil {
		// History is bookkeeping; a failure there should not discard a
		// completed extraction.
		fmt.Fprintf(os.Stderr, "warning: could not record run history: %v\n", err)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Aggregated.PlotPoints())
	}

	fmt.Fprintf(os.Stdout, "%s at cell (y=%g, x=%g), %d %s row(s), unit %s\n",
		result.Spec.DisplayName, result.Series.CellY, result.Series.CellX,
		result.Aggregated.Len(), result.Interval, result.Aggregated.Unit)
	if result.OmittedBuckets > 0 {
		fmt.Fprintf(os.Stdout, "omitted %d bucket(s) with no finite samples\n", result.OmittedBuckets)
	}
	fmt.Fprintf(os.Stdout, "wrote %s\nwrote %s\n", csvPath, manifestPath)
	return nil
}

func extractParams(cmd *cobra.Command) (run.Params, error) {
	variable, _ := cmd.Flags().GetString("var")
	interval, _ := cmd.Flags().GetString("interval")
	crsID, _ := cmd.Flags().GetString("crs")
	x, _ := cmd.Flags().GetFloat64("x")
	y, _ := cmd.Flags().GetFloat64("y")

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	start, err := time.ParseInLocation("2006-01-02", from, time.UTC)
	if err != nil {
		return run.Params{}, fmt.Errorf("invalid --from date %q: want YYYY-MM-DD", from)
	}
	end, err := time.ParseInLocation("2006-01-02", to, time.UTC)
	if err != nil {
		return run.Params{}, fmt.Errorf("invalid --to date %q: want YYYY-MM-DD", to)
	}

	return run.Params{
		Variable: variable,
		Interval: interval,
		Point:    types.GeoPoint{X: x, Y: y, CRS: crsID},
		Window:   types.TimeWindow{Start: start, End: end},
	}, nil
}

func recordRun(cfg types.HistoryConfig, params run.Params, result *run.Result, csvPath string) error {
	store, err := history.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(context.Background(), history.Run{
		Variable:       result.Spec.DisplayName,
		Interval:       string(result.Interval),
		CRS:            params.Point.CRS,
		X:              params.Point.X,
		Y:              params.Point.Y,
		CellX:          result.Series.CellX,
		CellY:          result.Series.CellY,
		Start:          params.Window.Start.Format("2006-01-02"),
		End:            params.Window.End.Format("2006-01-02"),
		Rows:           result.Aggregated.Len(),
		OmittedBuckets: result.OmittedBuckets,
		OutputPath:     csvPath,
	})
}

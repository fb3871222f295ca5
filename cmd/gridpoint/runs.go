// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gridpoint/internal/history"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent extraction runs",
	Long: `Runs lists recent extractions from the local history database: variable,
point, resolved cell, window, and where the CSV was written.`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	runsCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-28s  %-8s  %-22s  %s\n",
		"ID", "When", "Variable", "Interval", "Window", "Output")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-28s  %-8s  %s to %s  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Variable, r.Interval,
			r.Start, r.End, r.OutputPath)
	}
	return nil
}

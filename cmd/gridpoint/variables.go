// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gridpoint/internal/catalog"
)

var variablesCmd = &cobra.Command{
	Use:   "variables",
	Short: "List the variable catalog",
	Long: `Variables lists every archive variable the catalog knows: its display
name (the exact string 'extract --var' expects), archive code, base unit,
and whether it is summed or averaged when aggregated.`,
	RunE: runVariables,
}

func init() {
	variablesCmd.Flags().Bool("json", false, "output the catalog as JSON")

	rootCmd.AddCommand(variablesCmd)
}

func runVariables(cmd *cobra.Command, args []string) error {
	specs := catalog.All()

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(specs)
	}

	fmt.Fprintf(os.Stdout, "%-30s  %-10s  %-10s  %s\n", "Variable", "Code", "Unit", "Reduction")
	for _, spec := range specs {
		fmt.Fprintf(os.Stdout, "%-30s  %-10s  %-10s  %s\n",
			spec.DisplayName, spec.Code, spec.CanonicalUnit, spec.Reduction())
	}
	fmt.Fprintf(os.Stdout, "\nIntervals: %v\n", catalog.IntervalNames())
	return nil
}

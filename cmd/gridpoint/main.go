// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gridpoint CLI, which pulls
// single-point hourly series out of the remote gridded climate archive
// and aggregates them to a requested interval.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/gridpoint/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds archive credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the gridpoint CLI.
var rootCmd = &cobra.Command{
	Use:   "gridpoint",
	Short: "Point extraction from a cloud-hosted gridded climate archive",
	Long: `gridpoint retrieves the hourly time series of one meteorological variable
at the grid cell nearest a supplied coordinate, aggregates it to a chosen
interval (hour, day, month, year) with the reduction the variable kind
dictates, and exports the result as CSV plus a run manifest.

The archive lives in one remote chunked array store per variable; only the
selected cell and time window are ever transferred.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gridpoint.yaml or ~/.config/gridpoint/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gridpoint")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gridpoint"))
		}
	}

	viper.SetEnvPrefix("GRIDPOINT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/gridpoint/pkg/types"
)

// Defaults for the archive convention. The URL template and native-CRS
// fallback are deployment configuration, not pipeline constants; anything
// here can be overridden in gridpoint.yaml or via GRIDPOINT_* env vars.
const (
	defaultStoreURLTemplate = "https://gridpoint-archive.s3.us-west-2.amazonaws.com/hourly/{code}.zarr"
	defaultProj4            = "+proj=lcc +lat_1=30 +lat_2=60 +lat_0=40.0000076 +lon_0=-97 +x_0=0 +y_0=0 +a=6370000 +b=6370000 +units=m +no_defs"
	defaultTimeout          = 60 * time.Second
	defaultUserAgent        = "gridpoint/0.1"
	defaultOutputDir        = "output"
	defaultHistoryDir       = "history"
)

// pipelineConfig assembles stage configuration from viper with defaults,
// and attaches credentials from .secrets/.
func pipelineConfig() types.PipelineConfig {
	viper.SetDefault("archive.store_url_template", defaultStoreURLTemplate)
	viper.SetDefault("archive.proj4", defaultProj4)
	viper.SetDefault("archive.timeout", defaultTimeout)
	viper.SetDefault("archive.user_agent", defaultUserAgent)
	viper.SetDefault("export.output_dir", defaultOutputDir)
	viper.SetDefault("history.dir", defaultHistoryDir)

	userAgent := viper.GetString("archive.user_agent")
	if email := loadedSecrets["contact-email"]; email != "" {
		userAgent += " (" + email + ")"
	}

	return types.PipelineConfig{
		Archive: types.ArchiveConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("archive.timeout"),
				UserAgent: userAgent,
			},
			StoreURLTemplate: viper.GetString("archive.store_url_template"),
			Proj4:            viper.GetString("archive.proj4"),
			BearerToken:      loadedSecrets["archive-bearer-token"],
		},
		Export: types.ExportConfig{
			OutputDir: viper.GetString("export.output_dir"),
		},
		History: types.HistoryConfig{
			Dir: viper.GetString("history.dir"),
		},
	}
}

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that talk to the archive.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with archive requests
	// (e.g. "gridpoint/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ArchiveConfig holds settings for the archive accessor.
type ArchiveConfig struct {
	HTTPConfig `yaml:",inline"`

	// StoreURLTemplate is the store location convention: one chunked array
	// store per variable, with "{code}" replaced by the variable code
	// (e.g. "https://bucket.example.com/forcing/{code}.zarr").
	StoreURLTemplate string `json:"store_url_template" yaml:"store_url_template"`

	// Proj4 is the fallback native-CRS definition used when the store
	// metadata carries no proj4 attribute.
	Proj4 string `json:"proj4" yaml:"proj4"`

	// BearerToken, when set, is sent as an Authorization header on store
	// requests. Loaded from .secrets/archive-bearer-token.
	BearerToken string `json:"-" yaml:"-"`
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// OutputDir is the directory CSV files and run manifests are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// Dir is the directory containing the history database.
	Dir string `json:"dir" yaml:"dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
	Export  ExportConfig  `json:"export" yaml:"export"`
	History HistoryConfig `json:"history" yaml:"history"`
}

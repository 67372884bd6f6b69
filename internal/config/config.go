// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath points at the local results CSV. Ignored when DataURL is set.
	DataPath string `koanf:"data_path"`

	// DataURL fetches the results CSV over HTTP instead of the local path.
	DataURL string `koanf:"data_url"`

	// TopPerGroup caps entries rendered per age band.
	TopPerGroup int `koanf:"top_per_group"`

	// MaxSearchLimit caps GET /search results.
	MaxSearchLimit int `koanf:"max_search_limit"`

	// MinBins and MaxBins bound the histogram bin count.
	MinBins int `koanf:"min_bins"`
	MaxBins int `koanf:"max_bins"`

	// YearPivot disambiguates two-digit years: values >= pivot map to
	// 1900+value, values below to 2000+value. The archive spans the
	// 1990s-2020s, hence the default of 50.
	YearPivot int `koanf:"year_pivot"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		DataPath:       "results.csv",
		DataURL:        "",
		TopPerGroup:    3,
		MaxSearchLimit: 5000,
		MinBins:        8,
		MaxBins:        24,
		YearPivot:      50,
	}
	return c
}

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if PACELINE_CONFIG is set
//  3. env (prefix PACELINE_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("PACELINE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PACELINE_ADDR, PACELINE_DATA_PATH, ...
	// Map env keys like PACELINE_TOP_PER_GROUP -> top_per_group (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("PACELINE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "paceline_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.DataPath == "" && cfg.DataURL == "" {
		return nil, fmt.Errorf("%w: one of data_path or data_url must be set", ErrInvalidConfig)
	}
	if cfg.TopPerGroup < 1 {
		return nil, fmt.Errorf("%w: top_per_group must be positive", ErrInvalidConfig)
	}
	if cfg.MinBins < 1 || cfg.MaxBins < cfg.MinBins {
		return nil, fmt.Errorf("%w: bin bounds must satisfy 1 <= min_bins <= max_bins", ErrInvalidConfig)
	}
	if cfg.YearPivot < 0 || cfg.YearPivot > 99 {
		return nil, fmt.Errorf("%w: year_pivot must be in [0, 99]", ErrInvalidConfig)
	}
	return &cfg, nil
}

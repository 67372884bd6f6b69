package config

import (
	"errors"
)

// Sentinel kinds for configuration failures, matchable with errors.Is.
var (
	// ErrInvalidConfig marks a config that loaded but failed validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a file/env layer that could not be read.
	ErrLoadConfig = errors.New("load config failed")
)

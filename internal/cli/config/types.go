// Package config provides configuration management for the sqltree CLI.
//
// This package layers CLI-only settings (verbosity, the project root that
// was found) over the shared project settings of internal/config.
package config

import (
	sharedcfg "github.com/leapstack-labs/sqltree/internal/config"
)

// ProjectConfig is an alias for the shared project configuration.
// This allows CLI code to use config.ProjectConfig without importing internal/config.
type ProjectConfig = sharedcfg.ProjectConfig

// Config holds all CLI configuration options.
type Config struct {
	ProjectConfig `koanf:",squash"`

	Verbose bool `koanf:"verbose"`

	// ProjectRoot is the directory the config file was found in, or the
	// working directory when there is none.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultOutput        = sharedcfg.DefaultOutput // Auto-detect: TTY=text, non-TTY=markdown
	DefaultWatchDebounce = sharedcfg.DefaultWatchDebounce
	DefaultParallelism   = sharedcfg.DefaultParallelism
)

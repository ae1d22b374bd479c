// Package config provides configuration loading for pageporter.
package config

import (
	"fmt"
)

// Config is the full pageporter configuration.
type Config struct {
	Paths   PathsConfig   `koanf:"paths"`
	Run     RunConfig     `koanf:"run"`
	Logging LoggingConfig `koanf:"logging"`
}

// PathsConfig holds the filesystem layout of a migration run.
type PathsConfig struct {
	// Source is the origin tree root to discover pages under.
	Source string `koanf:"source"`
	// Templates is the destination-template root, mirroring Source.
	Templates string `koanf:"templates"`
	// Output is where migrated pages are written, mirroring Source.
	Output string `koanf:"output"`
	// GlobalLog is the cross-run append-only audit log.
	GlobalLog string `koanf:"global_log"`
	// AssetTable is the TOML filename-to-asset-id table.
	AssetTable string `koanf:"asset_table"`
}

// RunConfig holds batch execution knobs.
type RunConfig struct {
	// Workers is the parallel file fan-out width.
	Workers int `koanf:"workers"`
	// MaxFailures bounds the failure-description list in the batch result.
	MaxFailures int `koanf:"max_failures"`
	// Apply writes destination files; false is preview mode.
	Apply bool `koanf:"apply"`
}

// LoggingConfig holds process-log settings (zap), not the migration audit
// log.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Paths.Output == "" {
		cfg.Paths.Output = "migrated"
	}
	if cfg.Paths.GlobalLog == "" {
		cfg.Paths.GlobalLog = "migration.log"
	}
	if cfg.Run.Workers == 0 {
		cfg.Run.Workers = 4
	}
	if cfg.Run.MaxFailures == 0 {
		cfg.Run.MaxFailures = 10
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// Validate checks configuration for errors. Paths.Source is filled from
// the CLI argument before validation.
func (c *Config) Validate() error {
	if c.Paths.Source == "" {
		return fmt.Errorf("paths.source is required")
	}
	if c.Paths.Templates == "" {
		return fmt.Errorf("paths.templates is required")
	}
	if c.Run.Workers < 1 {
		return fmt.Errorf("run.workers must be >= 1, got %d", c.Run.Workers)
	}
	if c.Run.MaxFailures < 1 {
		return fmt.Errorf("run.max_failures must be >= 1, got %d", c.Run.MaxFailures)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", c.Logging.Format)
	}
	return nil
}

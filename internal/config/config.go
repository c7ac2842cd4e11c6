// Package config resolves application settings from flags, environment
// variables and an optional YAML config file.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/ollxel/document-duplicate/internal/report"
)

// EnvPrefix prefixes environment variables, e.g. LINKDUP_WORKERS.
const EnvPrefix = "LINKDUP"

// DefaultMaxFiles is the largest batch accepted by default.
const DefaultMaxFiles = 20

// Config holds the resolved settings.
type Config struct {
	Workers   int    `mapstructure:"workers"`
	MaxFiles  int    `mapstructure:"max_files"`
	Format    string `mapstructure:"format"`
	Progress  bool   `mapstructure:"progress"`
	Recursive bool   `mapstructure:"recursive"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("max_files", DefaultMaxFiles)
	v.SetDefault("format", report.FormatHuman)
	v.SetDefault("progress", true)
	v.SetDefault("recursive", false)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")
}

// BindEnv makes every key readable from LINKDUP_* variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings for values the application cannot use.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	if c.MaxFiles < 1 {
		return fmt.Errorf("max_files must be at least 1, got %d", c.MaxFiles)
	}

	if !report.IsFormat(c.Format) {
		return fmt.Errorf("unsupported output format: %s (expected one of %s)",
			c.Format, strings.Join(report.Formats, ", "))
	}

	return nil
}

// CheckBatchSize enforces the accepted number of files for one run.
func (c *Config) CheckBatchSize(n int) error {
	if n == 0 {
		return fmt.Errorf("please select at least one file to analyze")
	}

	if n > c.MaxFiles {
		return fmt.Errorf("you can analyze a maximum of %d files at a time, got %d", c.MaxFiles, n)
	}

	return nil
}

// Package config loads the resolved primitive settings the owning
// application feeds an accumulator: where to save, under what base name,
// whether file names carry a timestamp, the distinct-name cap, and whether
// diagnostics are logged.
//
// The accumulator core itself has no dependency on this package; it accepts
// primitives through options. config exists for applications that want the
// conventional YAML file plus validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries the settings for one logging session.
type Config struct {
	// LogDiagnostics enables the accumulator's diagnostics logging (the
	// one-time series-cap warning and per-save debug entries).
	LogDiagnostics bool `yaml:"log_diagnostics"`

	// Dir is the directory trace files are saved into. Created recursively
	// on save if missing.
	Dir string `yaml:"dir"`

	// BaseName is the file name without extension or timestamp suffix.
	BaseName string `yaml:"base_name"`

	// TimestampSuffix appends "_YYYY_MM_DD-HHMM" to saved file names. The
	// stamp is fixed per accumulator instance at its first save.
	TimestampSuffix bool `yaml:"timestamp_suffix"`

	// MaxSeries caps the number of distinct series names. 0 means
	// unlimited.
	MaxSeries int `yaml:"max_series"`
}

// Default returns the default configuration: save to "traces/trace.txt",
// no timestamp suffix, unlimited series, diagnostics off.
func Default() *Config {
	return &Config{
		Dir:      "traces",
		BaseName: "trace",
	}
}

// Load reads a YAML configuration file, applies defaults for absent fields,
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Dir == "" {
		errs = append(errs, errors.New("dir is required"))
	}

	if c.BaseName == "" {
		errs = append(errs, errors.New("base_name is required"))
	} else if strings.ContainsAny(c.BaseName, `/\`) {
		errs = append(errs, fmt.Errorf("base_name must not contain path separators: %q", c.BaseName))
	}

	if c.MaxSeries < 0 {
		errs = append(errs, fmt.Errorf("max_series must not be negative: %d", c.MaxSeries))
	}

	return errors.Join(errs...)
}

// Package config holds the settings of the urdfimport host: which geometry to import, how many
// meshes to decode at once, and how to log.
package config

import (
	"github.com/pkg/errors"

	"go.viam.com/urdfimport/logging"
)

// Config holds all importer host settings.
type Config struct {
	Import  ImportConfig  `yaml:"import" json:"import"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ImportConfig controls which mesh references are decoded and how.
type ImportConfig struct {
	Visual      bool `yaml:"visual" json:"visual"`
	Collision   bool `yaml:"collision" json:"collision"`
	Parallelism int  `yaml:"parallelism" json:"parallelism"`
	// Strict makes the host fail an import that produced any warning.
	Strict bool `yaml:"strict" json:"strict"`
}

// LoggingConfig holds logging settings. An empty File logs to stdout only.
type LoggingConfig struct {
	Level      string                        `yaml:"level" json:"level"`
	File       string                        `yaml:"file" json:"file"`
	MaxSizeMB  int                           `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int                           `yaml:"max_backups" json:"max_backups"`
	Patterns   []logging.LoggerPatternConfig `yaml:"patterns,omitempty" json:"patterns,omitempty"`
}

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Visual:      true,
			Collision:   true,
			Parallelism: 4,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Validate checks that the config can be used.
func (c *Config) Validate() error {
	if c.Import.Parallelism < 1 {
		return errors.Errorf("import.parallelism must be at least 1, got %d", c.Import.Parallelism)
	}
	if _, err := logging.LevelFromString(c.Logging.Level); err != nil {
		return errors.Wrap(err, "logging.level")
	}
	if c.Logging.File != "" && c.Logging.MaxSizeMB < 1 {
		return errors.Errorf("logging.max_size_mb must be at least 1, got %d", c.Logging.MaxSizeMB)
	}
	for i, p := range c.Logging.Patterns {
		if !logging.ValidatePattern(p.Pattern) {
			return errors.Errorf("logging.patterns[%d]: invalid pattern %q", i, p.Pattern)
		}
		if _, err := logging.LevelFromString(p.Level); err != nil {
			return errors.Wrapf(err, "logging.patterns[%d]", i)
		}
	}
	return nil
}

// Level returns the parsed logging level. Callers should Validate first.
func (c *Config) Level() logging.Level {
	level, err := logging.LevelFromString(c.Logging.Level)
	if err != nil {
		return logging.INFO
	}
	return level
}

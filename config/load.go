package config

import (
	"os"
	"path/filepath"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up when no explicit path is given.
const FileName = "urdfimport.yaml"

// Overrides are command line values applied on top of the file. Zero values leave the loaded
// setting alone.
type Overrides struct {
	Debug       bool
	LogFile     string
	Parallelism int
	Strict      bool
	VisualOnly  bool
}

// Load loads configuration with priority: defaults < file < overrides. An empty path searches
// the working directory and then the user config directory; finding no file is not an error.
func Load(path string, overrides Overrides) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, errors.Wrapf(err, "loading config from %s", path)
		}
	}

	cfg.apply(overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(o Overrides) {
	if o.Debug {
		c.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		c.Logging.File = o.LogFile
	}
	if o.Parallelism > 0 {
		c.Import.Parallelism = o.Parallelism
	}
	if o.Strict {
		c.Import.Strict = true
	}
	if o.VisualOnly {
		c.Import.Visual = true
		c.Import.Collision = false
	}
}

func findConfigFile() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "urdfimport", FileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadFromFile merges a YAML file into cfg; keys absent from the file keep their values.
// Environment references such as ${HOME} are expanded before decoding.
func loadFromFile(cfg *Config, path string) error {
	data, err := envsubst.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// SaveTo writes the config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"go.viam.com/urdfimport/logging"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	test.That(t, cfg.Import.Visual, test.ShouldBeTrue)
	test.That(t, cfg.Import.Collision, test.ShouldBeTrue)
	test.That(t, cfg.Import.Parallelism, test.ShouldEqual, 4)
	test.That(t, cfg.Import.Strict, test.ShouldBeFalse)
	test.That(t, cfg.Logging.Level, test.ShouldEqual, "info")
	test.That(t, cfg.Logging.File, test.ShouldBeEmpty)
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg.Level(), test.ShouldEqual, logging.INFO)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	test.That(t, os.WriteFile(path, []byte(content), 0o644), test.ShouldBeNil)
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
import:
  collision: false
  parallelism: 8
logging:
  level: warn
  file: import.log
  patterns:
    - pattern: "urdfimport.*"
      level: debug
`)

	cfg, err := Load(path, Overrides{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Import.Visual, test.ShouldBeTrue)
	test.That(t, cfg.Import.Collision, test.ShouldBeFalse)
	test.That(t, cfg.Import.Parallelism, test.ShouldEqual, 8)
	test.That(t, cfg.Logging.Level, test.ShouldEqual, "warn")
	test.That(t, cfg.Logging.File, test.ShouldEqual, "import.log")
	test.That(t, cfg.Logging.MaxSizeMB, test.ShouldEqual, 10)
	test.That(t, cfg.Logging.Patterns, test.ShouldResemble,
		[]logging.LoggerPatternConfig{{Pattern: "urdfimport.*", Level: "debug"}})
	test.That(t, cfg.Level(), test.ShouldEqual, logging.WARN)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("URDFIMPORT_LOG_DIR", "/var/log/robots")
	path := writeConfig(t, "logging:\n  file: ${URDFIMPORT_LOG_DIR}/import.log\n")

	cfg, err := Load(path, Overrides{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Logging.File, test.ShouldEqual, "/var/log/robots/import.log")
}

func TestOverridesWin(t *testing.T) {
	path := writeConfig(t, "import:\n  parallelism: 8\nlogging:\n  level: error\n")

	cfg, err := Load(path, Overrides{Debug: true, LogFile: "out.log", Parallelism: 2, Strict: true, VisualOnly: true})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Logging.Level, test.ShouldEqual, "debug")
	test.That(t, cfg.Logging.File, test.ShouldEqual, "out.log")
	test.That(t, cfg.Import.Parallelism, test.ShouldEqual, 2)
	test.That(t, cfg.Import.Strict, test.ShouldBeTrue)
	test.That(t, cfg.Import.Collision, test.ShouldBeFalse)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Overrides{})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "loading config from")

	_, err = Load(writeConfig(t, "import: [1, 2"), Overrides{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"parallelism", func(c *Config) { c.Import.Parallelism = 0 }, "import.parallelism"},
		{"level", func(c *Config) { c.Logging.Level = "chatty" }, "logging.level"},
		{"file size", func(c *Config) { c.Logging.File = "x.log"; c.Logging.MaxSizeMB = 0 }, "max_size_mb"},
		{"pattern", func(c *Config) {
			c.Logging.Patterns = []logging.LoggerPatternConfig{{Pattern: "a..b", Level: "info"}}
		}, "invalid pattern"},
		{"pattern level", func(c *Config) {
			c.Logging.Patterns = []logging.LoggerPatternConfig{{Pattern: "a.b", Level: "chatty"}}
		}, "logging.patterns[0]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errMsg)
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	cfg.Import.Strict = true
	test.That(t, cfg.SaveTo(path), test.ShouldBeNil)

	loaded, err := Load(path, Overrides{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, loaded, test.ShouldResemble, cfg)
}

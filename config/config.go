package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/domscript/binding"
)

// FileName is the configuration file looked up by LoadOptional.
const FileName = "domscript.yaml"

// Config represents the optional domscript.yaml configuration.
type Config struct {
	Script ScriptConfig `yaml:"script"`
	Log    LogConfig    `yaml:"log"`
}

// ScriptConfig contains script host settings.
type ScriptConfig struct {
	// Level is the scripting level: dom0, dom1 or dom2.
	Level string `yaml:"level,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // text or json
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Script: ScriptConfig{Level: binding.DefaultLevel.String()},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the configuration at path. Unset fields take their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return cfg, nil
}

// LoadOptional reads domscript.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	return Load(path)
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	c.Script.Level = strings.TrimSpace(c.Script.Level)
	if c.Script.Level == "" {
		c.Script.Level = def.Script.Level
	}
	c.Log.Level = strings.TrimSpace(c.Log.Level)
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// Validate checks the values that have a fixed vocabulary.
func (c *Config) Validate() error {
	if _, err := c.ScriptLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// ScriptLevel parses script.level.
func (c *Config) ScriptLevel() (binding.Level, error) {
	return binding.ParseLevel(c.Script.Level)
}

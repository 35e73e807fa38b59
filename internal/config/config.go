package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"prettify-type/internal/typetree"
)

// FileName is the conventional configuration file name.
const FileName = ".prettify-type.yaml"

// Config is the tool configuration.
type Config struct {
	Version string           `yaml:"version"`
	Options typetree.Options `yaml:"options"`
	Cache   Cache            `yaml:"cache"`
	// IndentWidth is the number of spaces per level of rendered
	// declarations. Zero or less disables reflowing.
	IndentWidth int `yaml:"indentWidth"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
}

// Cache bounds the session cache.
type Cache struct {
	Capacity int           `yaml:"capacity"`
	TTL      time.Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version: "1",
		Options: typetree.DefaultOptions(),
		Cache: Cache{
			Capacity: 5,
			TTL:      30 * time.Minute,
		},
		IndentWidth: 4,
		LogLevel:    "info",
	}
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// LoadOptional loads path when it exists and returns Default otherwise.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Parse parses YAML data over the defaults, so a file only needs the keys it
// changes.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults restores defaults for keys set to empty values.
func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Version == "" {
		cfg.Version = def.Version
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}

	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = def.Cache.Capacity
	}
}

// Validate reports invalid settings.
func (c *Config) Validate() error {
	if err := c.Options.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	if c.Cache.Capacity < 1 {
		return fmt.Errorf("cache capacity must be positive, got %d", c.Cache.Capacity)
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got %s", c.Cache.TTL)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes a Config to the given path.
func WriteFile(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/dyluth/fathom/internal/export"
)

// DefaultPath is where the CLI looks for configuration when --config is not given.
const DefaultPath = "fathom.yml"

const (
	defaultOutput   = "table"
	defaultLogLevel = "warn"
	defaultInstance = "default"
)

// ExportConfig specifies where catalog snapshots are published
type ExportConfig struct {
	RedisURL string `yaml:"redis_url,omitempty"`
	Instance string `yaml:"instance,omitempty"` // Key namespace, default = "default"
}

// FathomConfig represents the top-level fathom.yml configuration
type FathomConfig struct {
	Version   string        `yaml:"version"`
	ThemeDirs []string      `yaml:"theme_dirs,omitempty"` // Extra theme directories, loaded after the built-in themes
	Output    string        `yaml:"output,omitempty"`     // "table" or "jsonl"
	Seed      *uint64       `yaml:"seed,omitempty"`       // Fixed seed for random selection
	LogLevel  string        `yaml:"log_level,omitempty"`
	Export    *ExportConfig `yaml:"export,omitempty"`
}

// Default returns the configuration used when no fathom.yml exists.
func Default() *FathomConfig {
	cfg := &FathomConfig{Version: "1.0"}
	// Defaults always validate
	_ = cfg.Validate()
	return cfg
}

// Validate performs strict validation on the configuration and applies defaults
func (c *FathomConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Output == "" {
		c.Output = defaultOutput
	}
	if c.Output != "table" && c.Output != "jsonl" {
		return fmt.Errorf("invalid output: %s (must be 'table' or 'jsonl')", c.Output)
	}

	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}

	for i, dir := range c.ThemeDirs {
		if dir == "" {
			return fmt.Errorf("theme_dirs[%d]: path is required", i)
		}
	}

	// Apply default export config if missing
	if c.Export == nil {
		c.Export = &ExportConfig{}
	}
	if c.Export.Instance == "" {
		c.Export.Instance = defaultInstance
	}
	if err := export.ValidateInstanceName(c.Export.Instance); err != nil {
		return fmt.Errorf("export.instance: %w", err)
	}

	return nil
}

// Load reads and validates fathom.yml from the specified path.
// Relative theme_dirs are resolved against the config file's directory.
func Load(path string) (*FathomConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config FathomConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	base := filepath.Dir(path)
	for i, dir := range config.ThemeDirs {
		if !filepath.IsAbs(dir) {
			config.ThemeDirs[i] = filepath.Join(base, dir)
		}
	}

	return &config, nil
}

// LoadOrDefault loads the config at path. When path is empty the
// DefaultPath is tried, and its absence yields Default().
func LoadOrDefault(path string) (*FathomConfig, error) {
	if path != "" {
		return Load(path)
	}

	cfg, err := Load(DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

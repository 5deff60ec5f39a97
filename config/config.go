// Package config loads spweights settings from YAML.
//
// Config file locations (priority order):
//  1. $SPWEIGHTS_CONFIG
//  2. ./spweights.yaml
//  3. <user config dir>/spweights/config.yaml
//
// Command-line flags override file values only when explicitly set.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/spweights/automodel"
	"github.com/katalvlaran/spweights/builder"
)

// ErrInvalidConfig indicates a value outside its allowed range.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config is the spweights configuration file.
type Config struct {
	// Significance is the p-value threshold of the model search.
	Significance float64 `yaml:"significance"`
	// ModelType is GMM_COMBO or GMM_HAC.
	ModelType string        `yaml:"model_type"`
	Kernel    KernelConfig  `yaml:"kernel"`
	Weights   WeightsConfig `yaml:"weights"`
	Log       LogConfig     `yaml:"log"`
	Output    OutputConfig  `yaml:"output"`
}

// KernelConfig selects the HAC kernel.
type KernelConfig struct {
	Function string `yaml:"function"`
	K        int    `yaml:"k"`
}

// WeightsConfig holds builder defaults.
type WeightsConfig struct {
	RowStandardize bool   `yaml:"row_standardize"`
	IDField        string `yaml:"id_field,omitempty"`
}

// LogConfig selects the log level and format (text or json).
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OutputConfig controls result reporting.
type OutputConfig struct {
	// JSON prints decision reports as JSON instead of text.
	JSON bool `yaml:"json"`
	// Store is a SQLite database that receives output fields and runs.
	Store string `yaml:"store,omitempty"`
}

const (
	// EnvConfigPath is the environment variable for an explicit config path.
	EnvConfigPath = "SPWEIGHTS_CONFIG"
	// ConfigFileName is the config file looked up in the working directory.
	ConfigFileName = "spweights.yaml"
	// ConfigDirName is the directory under the user config dir.
	ConfigDirName = "spweights"
)

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load finds and loads the config file, or returns defaults if none is
// found. The second return value is the path used.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return Default(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads and validates the config at path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return &cfg, path, nil
}

// Save writes c to path, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyDefaults() {
	if c.Significance == 0 {
		c.Significance = automodel.DefaultP
	}
	if c.ModelType == "" {
		c.ModelType = string(automodel.DefaultModelType)
	}
	if c.Kernel.Function == "" {
		c.Kernel.Function = automodel.DefaultKernel
	}
	if c.Kernel.K == 0 {
		c.Kernel.K = automodel.DefaultKernelK
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Significance <= 0 || c.Significance >= 1 {
		return fmt.Errorf("%w: significance %v outside (0, 1)", ErrInvalidConfig, c.Significance)
	}
	if _, err := automodel.ParseModelType(c.ModelType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := builder.ParseKernel(c.Kernel.Function); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Kernel.K < builder.MinK {
		return fmt.Errorf("%w: kernel.k %d below %d", ErrInvalidConfig, c.Kernel.K, builder.MinK)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// ModelTypeValue returns the parsed model type; call after Validate.
func (c *Config) ModelTypeValue() automodel.ModelType {
	m, err := automodel.ParseModelType(c.ModelType)
	if err != nil {
		return automodel.DefaultModelType
	}
	return m
}

// FindConfigPath returns the first existing config file, or "".
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" && fileExists(path) {
		return path
	}
	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Package config loads the algowiki tool configuration.
//
// The configuration file is optional: every field has a default matching the
// behavior of a bare `algowiki <root>` invocation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/algowiki/internal/foundation/errors"
)

// DefaultConfigFile is looked up in the working directory when -c is not given.
const DefaultConfigFile = "algowiki.yaml"

// Config represents the application configuration.
type Config struct {
	ClassifierFile string        `yaml:"classifier_file"`
	Site           SiteConfig    `yaml:"site"`
	Output         OutputConfig  `yaml:"output"`
	Build          BuildConfig   `yaml:"build"`
	Logging        LoggingConfig `yaml:"logging"`
}

// SiteConfig controls the shared page layout. Asset locations are referenced
// verbatim; the compiler never generates them.
type SiteConfig struct {
	Title          string `yaml:"title"`
	Footer         string `yaml:"footer"`
	Stylesheet     string `yaml:"stylesheet"`
	TabScript      string `yaml:"tab_script"`
	MathStylesheet string `yaml:"math_stylesheet"`
	MathScript     string `yaml:"math_script"`
}

// OutputConfig controls where pages are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	StaticDir string `yaml:"static_dir,omitempty"` // copied verbatim into Directory
}

// BuildConfig controls compile behavior.
type BuildConfig struct {
	Workers         int             `yaml:"workers"`
	Theme           string          `yaml:"theme"` // chroma style name
	GenericPages    GenericPolicy   `yaml:"generic_pages"`
	DuplicateLabels DuplicatePolicy `yaml:"duplicate_labels"`
	StrictLinks     bool            `yaml:"strict_links"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands and validates the configuration at configPath.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").WithContext("path", configPath).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").WithContext("path", configPath).Build()
	}
	return Parse(data, configPath)
}

// LoadOptional behaves like Load but returns defaults when the file does not exist.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(configPath)
}

// Parse decodes YAML configuration content. Environment variables in the
// content are expanded before decoding.
func Parse(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").WithContext("path", source).Build()
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid configuration").WithContext("path", source).Build()
	}
	return &cfg, nil
}

// Init writes an example configuration with all defaults to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	return os.WriteFile(configPath, data, 0o600)
}

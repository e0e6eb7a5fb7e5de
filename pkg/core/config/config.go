// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultModel is used when neither the config file nor the environment
	// names a model.
	DefaultModel = "gpt-4o-mini"

	// DefaultBaseURL is the public OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"
)

// Environment variables read by FromEnv and Load.
const (
	EnvAPIKey   = "OPENAI_API_KEY"
	EnvBaseURL  = "OPENAI_BASE_URL"
	EnvModel    = "OPENAI_MODEL"
	EnvLogLevel = "OPENRESPONSES_LOG_LEVEL"
)

var (
	// ErrAPIKeyNotSet is returned when OPENAI_API_KEY is missing.
	ErrAPIKeyNotSet = errors.New("OPENAI_API_KEY environment variable not set")
	// ErrAPIKeyEmpty is returned when OPENAI_API_KEY is blank.
	ErrAPIKeyEmpty = errors.New("OPENAI_API_KEY environment variable is empty")
)

// Config represents the CLI configuration
type Config struct {
	APIKey       string        `yaml:"api_key"`
	DefaultModel string        `yaml:"default_model"`
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"` // 0 keeps the HTTP client default
	Log          LogConfig     `yaml:"log"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Default returns the built-in configuration without consulting the
// environment.
func Default() *Config {
	return &Config{
		DefaultModel: DefaultModel,
		BaseURL:      DefaultBaseURL,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file, then applies environment
// overrides. The API key is not validated; call Validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// FromEnv builds the configuration from the environment alone. A .env file
// in the working directory is loaded first when present. The API key must be
// set and non-blank.
func FromEnv() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := Default()
	applyEnv(cfg)
	if _, ok := os.LookupEnv(EnvAPIKey); !ok {
		return nil, ErrAPIKeyNotSet
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads the file at path when it exists, falls back to defaults
// otherwise, and validates the result. An empty path skips the file.
func Resolve(path string) (*Config, error) {
	if path == "" {
		return FromEnv()
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return FromEnv()
	}
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		if _, ok := os.LookupEnv(EnvAPIKey); !ok {
			return nil, ErrAPIKeyNotSet
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields every API call depends on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrAPIKeyEmpty
	}
	return nil
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load .env: %w", err)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.DefaultModel = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
}

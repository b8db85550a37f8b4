// Package config reads and writes the bahtbuddy.yaml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file bahtbuddy looks for in its data
// directory.
const DefaultFileName = "bahtbuddy.yaml"

// EnvDatabasePath overrides the configured database path when set.
const EnvDatabasePath = "BAHTBUDDY_DB"

// Config represents the top-level bahtbuddy.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// DatabaseConfig locates the SQLite ledger file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultsConfig holds user preferences applied when flags are omitted.
type DefaultsConfig struct {
	Currency    string `yaml:"currency"`
	SearchLimit int    `yaml:"search_limit"`
}

// Load reads a bahtbuddy.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults rooted at dir.
func Default(dir string) *Config {
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(dir, "bahtbuddy.db")},
		Log:      LogConfig{Level: "info"},
		Defaults: DefaultsConfig{Currency: "THB", SearchLimit: 200},
	}
}

// DatabasePath resolves the ledger file location: the BAHTBUDDY_DB
// environment variable wins over the configured path.
func (c *Config) DatabasePath() string {
	if p := os.Getenv(EnvDatabasePath); p != "" {
		return p
	}
	return c.Database.Path
}

// Package config loads and persists the qrsnap CLI configuration.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI defaults. Flags override individual fields per run.
type Config struct {
	LogLevel        string `yaml:"loglevel"`
	Mode            string `yaml:"mode"`             // 8, A, or N
	ECLevel         string `yaml:"ec_level"`         // L, M, Q, or H
	PixelsPerModule int    `yaml:"pixels_per_module"`
	Aggressive      bool   `yaml:"aggressive"`
	HistoryDB       string `yaml:"history_db"`
}

// Defaults returns a Config populated with all default values.
func Defaults() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		LogLevel:        "warn",
		Mode:            "8",
		ECLevel:         "M",
		PixelsPerModule: 4,
	}
}

// Load reads path, merging the file over the defaults. Missing fields keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path in YAML format, creating parent directories as
// needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Package config provides configuration loading and validation for the CLI
// and server. Ambient configuration (files, environment) is resolved exactly
// once at the process boundary; the scan pipeline only ever sees explicit
// values handed to it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values fall back to environment
// variables and defaults via Resolve.
type Config struct {
	// APIKey is the Gemini API key used by the candidate scorer.
	APIKey string `json:"api_key,omitempty"`

	// HistoryDB is the path of the SQLite file holding scan history and
	// checkpoints.
	HistoryDB string `json:"history_db,omitempty"`

	// Port is the HTTP listen port for serve mode.
	Port int `json:"port,omitempty"`

	// LogLevel and LogFormat configure logging output.
	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Resolve fills unset fields from the environment and defaults. This is the
// single place the environment is consulted.
func (c *Config) Resolve() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.HistoryDB == "" {
		c.HistoryDB = "recruiter.db"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config error: api_key is required (set GEMINI_API_KEY or api_key in the config file)")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	return nil
}

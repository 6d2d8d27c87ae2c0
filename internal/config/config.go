// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults, environment
// variables, or must be provided via CLI flags.
type Config struct {
	// Services
	DatabaseURL        string `json:"database_url,omitempty"`          // PostgreSQL connection URL
	GeminiAPIKey       string `json:"gemini_api_key,omitempty"`        // Gemini API key
	GoogleSearchAPIKey string `json:"google_search_api_key,omitempty"` // Custom Search API key
	GoogleSearchCX     string `json:"google_search_cx,omitempty"`      // Custom Search engine ID
	EnrichAPIKey       string `json:"enrich_api_key,omitempty"`        // Contact enrichment API key
	EnrichBaseURL      string `json:"enrich_base_url,omitempty"`       // Contact enrichment endpoint

	// Server
	Port      int    `json:"port,omitempty"`       // HTTP listen port
	JWTSecret string `json:"jwt_secret,omitempty"` // Secret for verifying bearer tokens

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA sites
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// DefaultPort is used when no port is configured.
const DefaultPort = 8080

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

// FromEnv returns a Config populated from environment variables.
// Callers typically load a .env file first, then merge this over file values.
func FromEnv() Config {
	return Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GoogleSearchAPIKey: os.Getenv("GOOGLE_SEARCH_API_KEY"),
		GoogleSearchCX:     os.Getenv("GOOGLE_SEARCH_CX"),
		EnrichAPIKey:       os.Getenv("ENRICH_API_KEY"),
		EnrichBaseURL:      os.Getenv("ENRICH_BASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
	}
}

// Validate checks that the configuration has valid values.
// Required fields are checked by callers after merging, since different
// commands need different subsets of the configuration.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply environment or config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GoogleSearchAPIKey == "" {
		result.GoogleSearchAPIKey = defaults.GoogleSearchAPIKey
	}
	if result.GoogleSearchCX == "" {
		result.GoogleSearchCX = defaults.GoogleSearchCX
	}
	if result.EnrichAPIKey == "" {
		result.EnrichAPIKey = defaults.EnrichAPIKey
	}
	if result.EnrichBaseURL == "" {
		result.EnrichBaseURL = defaults.EnrichBaseURL
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}

	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

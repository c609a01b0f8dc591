package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds all runtime configuration parameters
type Config struct {
	MaxPages         int    `json:"max_pages"`
	DefaultDepth     int    `json:"default_depth"`
	RequestTimeoutMs int    `json:"request_timeout_ms"`
	UserAgent        string `json:"user_agent"`
	CachePath        string `json:"cache_path"`
	CacheTTLHours    int    `json:"cache_ttl_hours"`
	CacheDisabled    bool   `json:"cache_disabled"`
	GeminiModel      string `json:"gemini_model"`
	GeminiAPIKey     string `json:"-"`
	LogLevel         string `json:"log_level"`
}

// LoadConfig reads configuration from a JSON file, falling back to defaults
// when the file does not exist. The server takes no CLI arguments, so the
// config file and environment are the only tuning knobs.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	file, err := os.Open(path)
	switch {
	case os.IsNotExist(err):
		// No config file is fine - run on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	default:
		defer file.Close()
		decoder := json.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	// Extraction API key comes from the environment only, never the file.
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for unspecified fields
func applyDefaults(cfg *Config) {
	if cfg.MaxPages == 0 {
		cfg.MaxPages = 50
	}
	if cfg.DefaultDepth == 0 {
		cfg.DefaultDepth = 2
	}
	if cfg.RequestTimeoutMs == 0 {
		cfg.RequestTimeoutMs = 15000
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "docweaver/1.0 (+documentation knowledge graph)"
	}
	if cfg.CachePath == "" {
		cfg.CachePath = "docweaver-cache.db"
	}
	if cfg.CacheTTLHours == 0 {
		cfg.CacheTTLHours = 24
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// validate checks that values are sensible
func validate(cfg *Config) error {
	if cfg.MaxPages < 1 {
		return fmt.Errorf("max_pages must be >= 1")
	}
	// 50 is a hard ceiling on pages visited per crawl; config may only
	// tighten it.
	if cfg.MaxPages > 50 {
		return fmt.Errorf("max_pages must be <= 50")
	}
	if cfg.DefaultDepth < 0 {
		return fmt.Errorf("default_depth must be >= 0")
	}
	if cfg.RequestTimeoutMs < 1000 {
		return fmt.Errorf("request_timeout_ms must be >= 1000")
	}
	return nil
}

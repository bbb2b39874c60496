package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Catalog service configuration
	Catalog CatalogConfig `toml:"catalog"`

	// Card cache configuration
	Cache CacheConfig `toml:"cache"`

	// Proof sheet configuration
	Sheet SheetConfig `toml:"sheet"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// CatalogConfig contains catalog client settings.
type CatalogConfig struct {
	BaseURL        string `toml:"base_url"`         // Catalog API base URL
	UserAgent      string `toml:"user_agent"`       // User-Agent header
	RateLimitDelay string `toml:"rate_limit_delay"` // Minimum delay per request (e.g., "100ms")
	MaxInFlight    int    `toml:"max_in_flight"`    // Max simultaneous requests
	RequestTimeout string `toml:"request_timeout"`  // Per-card timeout in the legality path (e.g., "10s")
}

// CacheConfig contains card caching settings.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`  // Enable in-memory card caching
	MaxSize int  `toml:"max_size"` // Max cached cards (0 = unlimited)
}

// SheetConfig contains proof sheet output settings.
type SheetConfig struct {
	OutputDir string `toml:"output_dir"` // Base directory for rendered pages
	Gap       int    `toml:"gap"`        // Pixel gap between cards
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:        "https://api.scryfall.com",
			UserAgent:      "deckproof/1.0",
			RateLimitDelay: "100ms",
			MaxInFlight:    10,
			RequestTimeout: "10s",
		},
		Cache: CacheConfig{
			Enabled: true,
			MaxSize: 1000,
		},
		Sheet: SheetConfig{
			OutputDir: "Decks",
			Gap:       0,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".deckproof")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Catalog.RateLimitDelay); err != nil {
		return fmt.Errorf("invalid rate limit delay %q: %w", c.Catalog.RateLimitDelay, err)
	}

	if _, err := time.ParseDuration(c.Catalog.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request timeout %q: %w", c.Catalog.RequestTimeout, err)
	}

	if c.Catalog.MaxInFlight < 1 {
		return fmt.Errorf("max in-flight requests must be at least 1: %d", c.Catalog.MaxInFlight)
	}

	if c.Cache.MaxSize < 0 {
		return fmt.Errorf("cache max size cannot be negative: %d", c.Cache.MaxSize)
	}

	if c.Sheet.Gap < 0 {
		return fmt.Errorf("sheet gap cannot be negative: %d", c.Sheet.Gap)
	}

	return nil
}

// GetRateLimitDelay returns the catalog rate limit delay as a duration.
func (c *Config) GetRateLimitDelay() (time.Duration, error) {
	return time.ParseDuration(c.Catalog.RateLimitDelay)
}

// GetRequestTimeout returns the per-card request timeout as a duration.
func (c *Config) GetRequestTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Catalog.RequestTimeout)
}

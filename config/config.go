// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"yahoofs/history"
	"yahoofs/utils"
)

// Fetch modes
const (
	FetchHTTP    = "http"
	FetchBrowser = "browser"
)

// Default values
const (
	DefaultPort            = "8000"
	DefaultUserAgent       = "Mozilla/5.0 (X11; Linux x86_64; rv:134.0) Gecko/20100101 Firefox/134.0"
	DefaultFetchTimeout    = 30 * time.Second
	DefaultBrowserPoolSize = 2
	DefaultCacheTTL        = 5 * time.Minute
)

// Config holds the application configuration
type Config struct {
	Port    string
	BaseURL string

	// Page fetching
	FetchMode       string
	UserAgent       string
	FetchTimeout    time.Duration
	BrowserPoolSize int

	// History paging
	ChunkDays int

	// Response cache, disabled when RedisAddr is empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	LogLevel  slog.Level
	LogFormat string

	AnchorsFile string
	Anchors     Anchors
}

// Load reads the configuration from environment variables, falling back to
// defaults, and loads the anchor overrides file if one is set.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        envOr("PORT", DefaultPort),
		BaseURL:     envOr("BASE_URL", utils.DefaultBaseURL),
		FetchMode:   strings.ToLower(envOr("FETCH_MODE", FetchHTTP)),
		UserAgent:   envOr("USER_AGENT", DefaultUserAgent),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		LogFormat:   strings.ToLower(envOr("LOG_FORMAT", "text")),
		AnchorsFile: os.Getenv("ANCHORS_FILE"),

		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.FetchTimeout, err = envDuration("FETCH_TIMEOUT", DefaultFetchTimeout); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = envDuration("CACHE_TTL", DefaultCacheTTL); err != nil {
		return nil, err
	}
	if cfg.BrowserPoolSize, err = envInt("BROWSER_POOL_SIZE", DefaultBrowserPoolSize); err != nil {
		return nil, err
	}
	if cfg.ChunkDays, err = envInt("CHUNK_DAYS", history.DefaultChunkDays); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(envOr("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL value: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Anchors, err = LoadAnchors(cfg.AnchorsFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.FetchMode {
	case FetchHTTP, FetchBrowser:
	default:
		return fmt.Errorf("invalid FETCH_MODE value: %q", c.FetchMode)
	}
	if c.ChunkDays <= 0 {
		return fmt.Errorf("CHUNK_DAYS must be positive, got %d", c.ChunkDays)
	}
	if c.BrowserPoolSize <= 0 {
		return fmt.Errorf("BROWSER_POOL_SIZE must be positive, got %d", c.BrowserPoolSize)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT value: %q", c.LogFormat)
	}
	return nil
}

// NewLogger builds the process logger from LogLevel and LogFormat.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func envOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

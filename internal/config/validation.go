package config

import (
	"fmt"

	urlutil "github.com/law-makers/phonecrawl/internal/utils/url"
)

func validate(c *Config) error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must be >= 0")
	}
	if c.RenderTimeout <= 0 {
		return fmt.Errorf("render timeout must be > 0")
	}
	if c.RenderSettle < 0 {
		return fmt.Errorf("render settle time must be >= 0")
	}
	if c.BrowserPoolSize < 0 || c.BrowserPoolSize > MaxBrowserPoolSize {
		return fmt.Errorf("browser pool size must be between 0 and %d", MaxBrowserPoolSize)
	}
	if c.CacheMaxSizeBytes <= 0 {
		return fmt.Errorf("cache max size must be > 0")
	}
	if c.FallbackURL != "" {
		if err := urlutil.ValidateURL(c.FallbackURL); err != nil {
			return fmt.Errorf("fallback url: %w", err)
		}
		if c.FallbackSelector == "" {
			return fmt.Errorf("fallback selector is required when a fallback url is set")
		}
	}
	return nil
}

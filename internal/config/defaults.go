package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel          = "error"
	DefaultJSONLog           = false
	DefaultUserAgent         = "PhoneCrawl/1.0 (https://github.com/law-makers/phonecrawl)"
	DefaultConcurrency       = 5
	DefaultMaxSites          = 0
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultRateLimitRPS      = 0.0
	DefaultRateLimitBurst    = 5
	DefaultFallbackURL       = "https://hands.ru/company/about"
	DefaultFallbackSelector  = "#root > div > footer > div > div.footer__block.footer__block_phone > button"
	DefaultRenderTimeout     = 30 * time.Second
	DefaultRenderSettle      = 500 * time.Millisecond
	DefaultBrowserPoolSize   = 0
	MaxBrowserPoolSize       = 10
	DefaultBrowserHeadless   = true
	DefaultCacheTTL          = 5 * time.Minute
	DefaultCacheMaxSizeBytes = 32 * 1024 * 1024 // 32MB
	DefaultDatabaseTable     = "site_paths"
	EnvPrefix                = "PHONECRAWL"
)

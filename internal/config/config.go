package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string `mapstructure:"log_level"`
	JSONLog  bool   `mapstructure:"json"`

	// Scan
	Concurrency int `mapstructure:"concurrency"`
	MaxSites    int `mapstructure:"max_sites"`

	// HTTP
	HTTPTimeout time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	Proxy       string        `mapstructure:"proxy"`

	// Rate limiting
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`

	// Render fallback
	FallbackURL      string        `mapstructure:"fallback_url"`
	FallbackSelector string        `mapstructure:"fallback_selector"`
	RenderTimeout    time.Duration `mapstructure:"render_timeout"`
	RenderSettle     time.Duration `mapstructure:"render_settle"`

	// Browser
	BrowserPoolSize int    `mapstructure:"browser_pool_size"`
	BrowserHeadless bool   `mapstructure:"browser_headless"`
	ChromePath      string `mapstructure:"chrome_path"`

	// Caching
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
	CacheMaxSizeBytes int64         `mapstructure:"cache_max_bytes"`

	// Metrics
	MetricsAddr string `mapstructure:"metrics_addr"`

	// Targets database
	DatabaseDSN   string `mapstructure:"database_dsn"`
	DatabaseTable string `mapstructure:"database_table"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("json", DefaultJSONLog)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("max_sites", DefaultMaxSites)
	v.SetDefault("timeout", DefaultHTTPTimeout)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("proxy", "")
	v.SetDefault("rate_limit_rps", DefaultRateLimitRPS)
	v.SetDefault("rate_limit_burst", DefaultRateLimitBurst)
	v.SetDefault("fallback_url", DefaultFallbackURL)
	v.SetDefault("fallback_selector", DefaultFallbackSelector)
	v.SetDefault("render_timeout", DefaultRenderTimeout)
	v.SetDefault("render_settle", DefaultRenderSettle)
	v.SetDefault("browser_pool_size", DefaultBrowserPoolSize)
	v.SetDefault("browser_headless", DefaultBrowserHeadless)
	v.SetDefault("chrome_path", "")
	v.SetDefault("cache_ttl", DefaultCacheTTL)
	v.SetDefault("cache_max_bytes", DefaultCacheMaxSizeBytes)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_table", DefaultDatabaseTable)
}

// Load builds a Config by combining defaults, an optional config file, a .env file,
// environment variables (PHONECRAWL_*) and CLI flags, in increasing precedence.
// Caller should pass the executing *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	configFile := ""
	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("phonecrawl")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.phonecrawl")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug().Str("path", used).Msg("Using config file")
	}

	if cmd != nil {
		for name, key := range flagKeys {
			f := cmd.Flags().Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil && f.Value.String() == "true" {
			v.Set("log_level", "debug")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

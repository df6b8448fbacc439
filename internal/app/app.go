// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/law-makers/phonecrawl/internal/cache"
	"github.com/law-makers/phonecrawl/internal/config"
	"github.com/law-makers/phonecrawl/internal/engine/batch"
	"github.com/law-makers/phonecrawl/internal/engine/dynamic"
	"github.com/law-makers/phonecrawl/internal/engine/extract"
	"github.com/law-makers/phonecrawl/internal/engine/static"
	"github.com/law-makers/phonecrawl/internal/metrics"
	"github.com/law-makers/phonecrawl/internal/ratelimit"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	Cache       cache.Cache
	BrowserPool *dynamic.BrowserPool
	RateLimiter ratelimit.RateLimiter
	HTTPClient  *http.Client
	Fetcher     *static.Fetcher
	Renderer    *dynamic.Renderer
	Extractor   *extract.Extractor
	Runner      *batch.SiteRunner
	Driver      *batch.Driver
	startTime   time.Time
}

// Option customizes an Application after the defaults are built
type Option func(*Application)

// WithHeaders adds custom request headers to every fetch
func WithHeaders(headers map[string]string) Option {
	return func(a *Application) {
		a.Fetcher = static.New(a.HTTPClient, a.RateLimiter, a.Config.UserAgent, headers)
		a.Runner = batch.NewSiteRunner(a.Fetcher, a.Extractor, a.Config.Concurrency)
		a.Driver = newDriver(a.Runner, a.Config)
	}
}

// New creates and initializes a new Application with all dependencies.
//
// The browser is never started here: without a pool the renderer launches
// Chrome per render, and a configured pool starts on first use.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := initLogger(cfg)

	// Create cache
	memCache := cache.NewMemoryCache(cfg.CacheMaxSizeBytes)
	logger.Debug().
		Int64("max_size_bytes", cfg.CacheMaxSizeBytes).
		Msg("Render cache initialized")

	// Create rate limiter
	rateLimiter := ratelimit.NewDomainLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	// Create HTTP client
	proxy := http.ProxyFromEnvironment
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			memCache.Close()
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		proxy = http.ProxyURL(proxyURL)
	}
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &http.Transport{
			Proxy:               proxy,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Str("proxy", cfg.Proxy).
		Msg("HTTP client initialized")

	fetcher := static.New(httpClient, rateLimiter, cfg.UserAgent, nil)

	allocCfg := dynamic.AllocatorConfig{
		ChromePath: cfg.ChromePath,
		Headless:   cfg.BrowserHeadless,
		UserAgent:  cfg.UserAgent,
		Proxy:      cfg.Proxy,
	}
	renderer := dynamic.New(dynamic.Options{
		Allocator: allocCfg,
		Timeout:   cfg.RenderTimeout,
		Settle:    cfg.RenderSettle,
		Cache:     memCache,
		CacheTTL:  cfg.CacheTTL,
	})

	var browserPool *dynamic.BrowserPool
	if cfg.BrowserPoolSize > 0 {
		browserPool = dynamic.NewBrowserPool(cfg.BrowserPoolSize, allocCfg)
		renderer.SetBrowserPool(browserPool)
		logger.Debug().Int("pool_size", browserPool.Size()).Msg("Browser pool configured")
	}

	extractor := extract.New(renderer, extract.Fallback{
		URL:      cfg.FallbackURL,
		Selector: cfg.FallbackSelector,
	})

	runner := batch.NewSiteRunner(fetcher, extractor, cfg.Concurrency)

	metrics.Init()

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		Cache:       memCache,
		BrowserPool: browserPool,
		RateLimiter: rateLimiter,
		HTTPClient:  httpClient,
		Fetcher:     fetcher,
		Renderer:    renderer,
		Extractor:   extractor,
		Runner:      runner,
		Driver:      newDriver(runner, cfg),
		startTime:   time.Now(),
	}
	for _, opt := range opts {
		opt(app)
	}

	logger.Info().Msg("Application initialized successfully")
	return app, nil
}

func initLogger(cfg *config.Config) zerolog.Logger {
	logLevel := zerolog.ErrorLevel // default: suppress non-verbose info logs
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		// JSON logs to stderr
		logWriter = os.Stderr
	} else {
		// Human-friendly console output otherwise
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")
	return logger
}

func newDriver(runner *batch.SiteRunner, cfg *config.Config) *batch.Driver {
	d := batch.NewDriver(runner)
	d.MaxSites = cfg.MaxSites
	return d
}

// ServeMetrics exposes Prometheus metrics in the background when an address is configured.
// The endpoint stops when ctx is done.
func (a *Application) ServeMetrics(ctx context.Context) {
	if a.Config.MetricsAddr == "" {
		return
	}
	go func() {
		if err := metrics.Serve(ctx, a.Config.MetricsAddr); err != nil {
			a.Logger.Warn().Err(err).Str("addr", a.Config.MetricsAddr).Msg("Metrics endpoint stopped")
		}
	}()
}

// Close gracefully shuts down the application and all its resources.
// Any errors during shutdown are logged but do not prevent other shutdown steps.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Msg("Shutting down application")

	// Close browser pool (will interrupt any running renders)
	if a.BrowserPool != nil {
		if err := a.BrowserPool.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing browser pool")
		}
	}

	if a.Cache != nil {
		a.Cache.Close()
	}

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}

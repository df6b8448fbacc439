package app

import (
	"context"
	"testing"
	"time"

	"github.com/law-makers/phonecrawl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:          "error",
		Concurrency:       4,
		MaxSites:          2,
		HTTPTimeout:       5 * time.Second,
		UserAgent:         "phonecrawl-test",
		RenderTimeout:     5 * time.Second,
		CacheTTL:          time.Minute,
		CacheMaxSizeBytes: 1024,
		FallbackURL:       config.DefaultFallbackURL,
		FallbackSelector:  config.DefaultFallbackSelector,
	}
}

func TestNew(t *testing.T) {
	a, err := New(context.Background(), testConfig())
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.NotNil(t, a.Fetcher)
	assert.NotNil(t, a.Renderer)
	assert.NotNil(t, a.Extractor)
	assert.Nil(t, a.BrowserPool, "no pool unless configured")
	assert.Equal(t, 4, a.Runner.Concurrency())
	assert.Equal(t, 2, a.Driver.MaxSites)
}

func TestNew_WithBrowserPool(t *testing.T) {
	cfg := testConfig()
	cfg.BrowserPoolSize = 2

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close(context.Background())

	require.NotNil(t, a.BrowserPool)
	assert.Equal(t, 2, a.BrowserPool.Size())
	assert.Zero(t, a.BrowserPool.Available(), "pool starts lazily")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)

	cfg := testConfig()
	cfg.Proxy = "://bad"
	_, err = New(context.Background(), cfg)
	assert.ErrorContains(t, err, "proxy")
}

func TestWithHeaders(t *testing.T) {
	a, err := New(context.Background(), testConfig(), WithHeaders(map[string]string{"X-Test": "1"}))
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.Equal(t, 4, a.Runner.Concurrency())
	assert.Equal(t, 2, a.Driver.MaxSites)
}

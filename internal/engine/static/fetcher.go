// internal/engine/static/fetcher.go
package static

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/law-makers/phonecrawl/internal/engine"
	"github.com/law-makers/phonecrawl/internal/metrics"
	"github.com/law-makers/phonecrawl/internal/ratelimit"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// Fetcher retrieves raw page bodies over plain HTTP.
// It performs exactly one request per call and never retries.
type Fetcher struct {
	client    *http.Client
	limiter   ratelimit.RateLimiter
	userAgent string
	headers   map[string]string
}

// New creates a Fetcher with dependency injection. limiter may be nil.
func New(client *http.Client, lim ratelimit.RateLimiter, ua string, headers map[string]string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client:    client,
		limiter:   lim,
		userAgent: ua,
		headers:   headers,
	}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "StaticFetcher"
}

// Fetch performs a GET request and returns the body decoded to UTF-8
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()

	log.Debug().
		Str("url", url).
		Str("fetcher", f.Name()).
		Msg("Starting fetch")

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, url); err != nil {
			return "", fmt.Errorf("%w: rate limit wait for %s: %v", engine.ErrFetch, url, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w: %v", engine.ErrFetch, engine.ErrInvalidURL, err)
	}

	// Set default headers
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7")

	// Add custom headers
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.ObserveFetch("error", time.Since(start))
		return "", fmt.Errorf("%w: %v", engine.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ObserveFetch(statusClass(resp.StatusCode), time.Since(start))
		log.Debug().
			Str("url", url).
			Int("status", resp.StatusCode).
			Msg("Fetch returned non-success status")
		return "", &engine.FetchError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	// Decode according to the declared or sniffed charset (many .ru sites still serve windows-1251)
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		metrics.ObserveFetch("error", time.Since(start))
		return "", fmt.Errorf("%w: decode body of %s: %v", engine.ErrFetch, url, err)
	}

	content, err := io.ReadAll(body)
	if err != nil {
		metrics.ObserveFetch("error", time.Since(start))
		return "", fmt.Errorf("%w: read body of %s: %v", engine.ErrFetch, url, err)
	}

	elapsed := time.Since(start)
	metrics.ObserveFetch(statusClass(resp.StatusCode), elapsed)

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(content)).
		Int64("response_time_ms", elapsed.Milliseconds()).
		Msg("Fetch completed")

	return string(content), nil
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

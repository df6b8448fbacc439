// internal/engine/batch/site.go
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/law-makers/phonecrawl/internal/engine"
	"github.com/law-makers/phonecrawl/internal/metrics"
	"github.com/law-makers/phonecrawl/internal/reqctx"
	urlutil "github.com/law-makers/phonecrawl/internal/utils/url"
	"github.com/law-makers/phonecrawl/pkg/models"
)

// SiteRunner fetches every path of one site and extracts a phone number from each page
type SiteRunner struct {
	fetcher     engine.Fetcher
	extractor   engine.Extractor
	concurrency int
}

// NewSiteRunner creates a SiteRunner. concurrency bounds in-flight fetches and,
// separately, in-flight extractions within one site; <= 0 uses DefaultConcurrency.
func NewSiteRunner(fetcher engine.Fetcher, extractor engine.Extractor, concurrency int) *SiteRunner {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &SiteRunner{
		fetcher:     fetcher,
		extractor:   extractor,
		concurrency: concurrency,
	}
}

// Concurrency returns the per-site gate size
func (s *SiteRunner) Concurrency() int {
	return s.concurrency
}

// Run fetches all pages of target, then extracts from all fetched pages.
// Results[i] always belongs to target.Paths[i]; a path that fails carries its error
// and the site error joins all of them.
func (s *SiteRunner) Run(ctx context.Context, target models.SiteTarget) models.SiteResult {
	start := time.Now()
	logger := reqctx.Logger(ctx).With().Str("site", target.Site).Logger()

	results := make([]models.PathResult, len(target.Paths))
	for i, path := range target.Paths {
		results[i].Path = path
	}

	// Stage 1: fetch
	bodies := make([]string, len(target.Paths))
	gate := NewGate(s.concurrency)
	var wg sync.WaitGroup
	for i, path := range target.Paths {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()

			if err := gate.Acquire(ctx); err != nil {
				results[i].Err = fmt.Errorf("fetch %s: %w", url, err)
				return
			}
			defer gate.Release()

			body, err := s.fetcher.Fetch(ctx, url)
			if err != nil {
				logger.Debug().Err(err).Str("url", url).Msg("Fetch failed")
				results[i].Err = err
				return
			}
			bodies[i] = body
		}(i, urlutil.Join(target.Site, path))
	}
	wg.Wait()

	// Stage 2: extract
	gate = NewGate(s.concurrency)
	for i := range target.Paths {
		if results[i].Err != nil {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			if err := gate.Acquire(ctx); err != nil {
				results[i].Err = fmt.Errorf("extract %s: %w", results[i].Path, err)
				return
			}
			defer gate.Release()

			ex, err := s.extractor.Extract(ctx, bodies[i])
			if err != nil {
				logger.Debug().Err(err).Str("path", results[i].Path).Msg("Extraction failed")
				results[i].Err = fmt.Errorf("extract %s: %w", results[i].Path, err)
				return
			}
			results[i].Phone = ex.Phone
			results[i].Tier = ex.Tier
		}(i)
	}
	wg.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}

	res := models.SiteResult{
		Site:     target.Site,
		Results:  results,
		Err:      errors.Join(errs...),
		Duration: time.Since(start),
	}
	metrics.ObserveSite(res.Err != nil)

	event := logger.Info()
	if res.Err != nil {
		event = logger.Warn().Err(res.Err)
	}
	event.
		Int("paths", len(results)).
		Int("failed", len(errs)).
		Dur("duration", res.Duration).
		Msg("Site processed")

	return res
}

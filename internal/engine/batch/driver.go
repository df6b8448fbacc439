// internal/engine/batch/driver.go
package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/law-makers/phonecrawl/internal/reqctx"
	"github.com/law-makers/phonecrawl/pkg/models"
	"golang.org/x/sync/errgroup"
)

// TargetSource yields the sites and paths to scan
type TargetSource interface {
	Targets(ctx context.Context) (map[string]models.SiteTarget, error)
}

// Driver runs a SiteRunner over many sites at once
type Driver struct {
	runner *SiteRunner

	// MaxSites caps the sites processed at once: 0 means no cap, < 0 picks AutoSiteLimit
	MaxSites int

	// OnSite is called after each site completes, from the site's goroutine
	OnSite func(models.SiteResult)
}

// NewDriver creates a Driver around runner
func NewDriver(runner *SiteRunner) *Driver {
	return &Driver{runner: runner}
}

// Run processes every site concurrently and waits for all of them. A failing site
// never stops the others; its error is carried in its SiteResult.
func (d *Driver) Run(ctx context.Context, sites map[string]models.SiteTarget) models.AggregateResult {
	logger := reqctx.Logger(ctx)

	agg := make(models.AggregateResult, len(sites))
	var mu sync.Mutex

	// A plain group: goroutines never return an error, so no sibling is cancelled
	var g errgroup.Group
	switch {
	case d.MaxSites > 0:
		g.SetLimit(d.MaxSites)
	case d.MaxSites < 0:
		g.SetLimit(AutoSiteLimit())
	}

	logger.Info().Int("sites", len(sites)).Int("max_sites", d.MaxSites).Msg("Starting batch")

	for id, target := range sites {
		g.Go(func() error {
			res := d.runner.Run(ctx, target)

			mu.Lock()
			agg[id] = res
			mu.Unlock()

			if d.OnSite != nil {
				d.OnSite(res)
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Info().
		Int("sites", len(agg)).
		Int("failed", agg.Failed()).
		Dur("elapsed", reqctx.Elapsed(ctx)).
		Msg("Batch complete")

	return agg
}

// RunFrom loads targets from src and runs them
func (d *Driver) RunFrom(ctx context.Context, src TargetSource) (models.AggregateResult, error) {
	sites, err := src.Targets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load targets: %w", err)
	}
	return d.Run(ctx, sites), nil
}

// internal/engine/dynamic/renderer.go
package dynamic

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/phonecrawl/internal/cache"
	"github.com/law-makers/phonecrawl/internal/engine"
	"github.com/law-makers/phonecrawl/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Options configures a Renderer
type Options struct {
	Allocator AllocatorConfig
	Timeout   time.Duration
	// Settle is how long to wait after the click for client-side scripts to update the DOM
	Settle   time.Duration
	Cache    cache.Cache
	CacheTTL time.Duration
}

// Renderer implements engine.Renderer with headless Chrome via chromedp.
//
// Without a pool every Render launches a fresh browser and tears it down
// afterwards. With a pool (SetBrowserPool) tabs are reused.
type Renderer struct {
	opts Options
	pool *BrowserPool
	mu   sync.Mutex
}

// New creates a Renderer
func New(opts Options) *Renderer {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Renderer{opts: opts}
}

// SetBrowserPool updates the browser pool used by the renderer (thread-safe)
func (r *Renderer) SetBrowserPool(bp *BrowserPool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pool = bp
}

func (r *Renderer) browserPool() *BrowserPool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pool
}

// Name returns the name of this renderer
func (r *Renderer) Name() string {
	return "ChromeRenderer"
}

// Render navigates to url, clicks clickSelector and returns the rendered HTML
func (r *Renderer) Render(ctx context.Context, url, clickSelector string) (string, error) {
	key := cache.KeyFor(url, clickSelector)
	if r.opts.Cache != nil {
		if source, ok := r.opts.Cache.Get(key); ok {
			metrics.ObserveRender("cached")
			return source, nil
		}
	}

	start := time.Now()
	log.Debug().
		Str("url", url).
		Str("selector", clickSelector).
		Str("renderer", r.Name()).
		Msg("Starting render")

	tabCtx, release, err := r.tab(ctx)
	if err != nil {
		metrics.ObserveRender("error")
		return "", err
	}
	defer release()

	var status atomic.Int64
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, resp.Response.Status)
		}
	})

	var html string
	err = chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitVisible(clickSelector, chromedp.ByQuery),
		chromedp.Click(clickSelector, chromedp.ByQuery),
		chromedp.Sleep(r.opts.Settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		metrics.ObserveRender("error")
		return "", engine.NewEngineError(engine.ErrCodeRender, "chromedp execution failed", fmt.Errorf("%w: %w", engine.ErrRender, err)).
			WithDetail("url", url).
			WithDetail("selector", clickSelector)
	}

	metrics.ObserveRender("ok")
	if r.opts.Cache != nil {
		if err := r.opts.Cache.Set(key, html, r.opts.CacheTTL); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("Failed to cache rendered source")
		}
	}

	log.Debug().
		Str("url", url).
		Int64("status", status.Load()).
		Int("bytes", len(html)).
		Dur("elapsed", time.Since(start)).
		Msg("Render completed")

	return html, nil
}

// tab returns a browser tab context bounded by the render timeout and ctx,
// plus the function that gives it back
func (r *Renderer) tab(ctx context.Context) (context.Context, func(), error) {
	if pool := r.browserPool(); pool != nil {
		bc, err := pool.Acquire(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to acquire browser from pool: %w", engine.ErrRender, err)
		}

		tabCtx, cancel := context.WithTimeout(bc.Ctx, r.opts.Timeout)
		stop := context.AfterFunc(ctx, cancel)
		return tabCtx, func() {
			stop()
			cancel()
			pool.Release(bc)
		}, nil
	}

	if r.opts.Allocator.ChromePath == "" && defaultChrome() == "" {
		return nil, nil, fmt.Errorf("%w: %w", engine.ErrRender, engine.ErrBrowserNotFound)
	}

	// One-shot browser: launched for this render only
	baseCtx, baseCancel := context.WithTimeout(ctx, r.opts.Timeout)
	allocCtx, allocCancel := chromedp.NewExecAllocator(baseCtx, allocatorOptions(r.opts.Allocator)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	log.Debug().Msg("Created new browser context")

	return tabCtx, func() {
		tabCancel()
		allocCancel()
		baseCancel()
	}, nil
}

// internal/engine/dynamic/browser_pool.go
package dynamic

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// MaxBrowserPoolSize caps the number of warm browser tabs
const MaxBrowserPoolSize = 10

// BrowserPool keeps a set of warm browser tabs so repeated renders skip the
// Chrome startup cost. The browser is launched on the first Acquire, not on
// construction, so runs that never reach the render fallback never start Chrome.
type BrowserPool struct {
	cfg         AllocatorConfig
	size        int
	contexts    chan *BrowserContext
	allocCtx    context.Context
	allocCancel context.CancelFunc
	mu          sync.Mutex
	closed      bool
	startOnce   sync.Once
	startErr    error
}

// BrowserContext wraps a chromedp tab context with its cancel function
type BrowserContext struct {
	Ctx    context.Context
	Cancel context.CancelFunc
}

// NewBrowserPool creates a pool of size tabs; size is clamped to [1, MaxBrowserPoolSize]
func NewBrowserPool(size int, cfg AllocatorConfig) *BrowserPool {
	if size <= 0 {
		size = 1
	}
	if size > MaxBrowserPoolSize {
		size = MaxBrowserPoolSize
	}

	return &BrowserPool{
		cfg:      cfg,
		size:     size,
		contexts: make(chan *BrowserContext, size),
	}
}

func (bp *BrowserPool) start() error {
	bp.startOnce.Do(func() {
		log.Debug().Int("size", bp.size).Msg("Starting browser pool")

		bp.allocCtx, bp.allocCancel = chromedp.NewExecAllocator(context.Background(), allocatorOptions(bp.cfg)...)

		for i := 0; i < bp.size; i++ {
			browserCtx, browserCancel := chromedp.NewContext(bp.allocCtx)

			// Warm up the tab so the first real render does not pay for the launch
			if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
				browserCancel()
				bp.startErr = fmt.Errorf("failed to warm up browser context %d: %w", i, err)
				return
			}

			bp.contexts <- &BrowserContext{Ctx: browserCtx, Cancel: browserCancel}
			log.Debug().Int("context_id", i).Msg("Browser context initialized")
		}

		log.Info().Int("pool_size", bp.size).Msg("Browser pool ready")
	})
	return bp.startErr
}

// Acquire takes a tab from the pool, starting the browser on first use.
// It blocks until a tab is free or ctx is done.
func (bp *BrowserPool) Acquire(ctx context.Context) (*BrowserContext, error) {
	bp.mu.Lock()
	closed := bp.closed
	bp.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("browser pool is closed")
	}

	if err := bp.start(); err != nil {
		return nil, err
	}

	select {
	case bc, ok := <-bp.contexts:
		if !ok {
			return nil, fmt.Errorf("browser pool is closed")
		}
		log.Debug().Msg("Browser context acquired from pool")
		return bc, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for browser context: %w", ctx.Err())
	}
}

// Release navigates the tab back to a blank page and returns it to the pool
func (bp *BrowserPool) Release(bc *BrowserContext) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		bc.Cancel()
		return
	}

	// Best effort cleanup; a tab that cannot reset is dropped
	if err := chromedp.Run(bc.Ctx, chromedp.Navigate("about:blank")); err != nil {
		log.Warn().Err(err).Msg("Discarding browser context that failed to reset")
		bc.Cancel()
		return
	}

	select {
	case bp.contexts <- bc:
		log.Debug().Msg("Browser context released to pool")
	default:
		bc.Cancel()
		log.Warn().Msg("Browser pool full, discarding context")
	}
}

// Close shuts down all tabs and the browser process
func (bp *BrowserPool) Close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return nil
	}
	bp.closed = true

	close(bp.contexts)
	for bc := range bp.contexts {
		bc.Cancel()
	}

	if bp.allocCancel != nil {
		bp.allocCancel()
	}

	log.Debug().Msg("Browser pool closed")
	return nil
}

// Size returns the pool size
func (bp *BrowserPool) Size() int {
	return bp.size
}

// Available returns the number of idle tabs
func (bp *BrowserPool) Available() int {
	return len(bp.contexts)
}

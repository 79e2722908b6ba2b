// Package browser fetches pages whose content is drawn by client-side
// script. Live-results pages are empty shells until their script runs, so
// a plain GET cannot see the tables the extractors need.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// Pool keeps a fixed number of headless browser contexts warm for reuse.
type Pool struct {
	contexts    chan context.Context
	cancels     map[context.Context]context.CancelFunc
	size        int
	allocCtx    context.Context
	allocCancel context.CancelFunc
	initOnce    sync.Once
	mu          sync.Mutex
}

// New creates a pool of size browser contexts. Contexts are created
// lazily on first use.
func New(size int) *Pool {
	return &Pool{
		size:     size,
		contexts: make(chan context.Context, size),
		cancels:  make(map[context.Context]context.CancelFunc),
	}
}

func (p *Pool) initialize() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1280, 960),
	)
	p.allocCtx, p.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := 0; i < p.size; i++ {
		ctx, cancel := chromedp.NewContext(p.allocCtx)
		if err := chromedp.Run(ctx, chromedp.Navigate("about:blank")); err != nil {
			cancel()
			continue
		}
		p.contexts <- ctx
		p.cancels[ctx] = cancel
	}
}

// acquire takes a browser context from the pool, blocking until one is
// free or ctx is done.
func (p *Pool) acquire(ctx context.Context) (context.Context, func(), error) {
	p.initOnce.Do(p.initialize)

	select {
	case bctx := <-p.contexts:
		release := func() {
			// Clear page state before the next caller sees this browser.
			resetCtx, cancel := context.WithTimeout(bctx, 3*time.Second)
			defer cancel()
			_ = chromedp.Run(resetCtx, chromedp.Navigate("about:blank"))
			p.contexts <- bctx
		}
		return bctx, release, nil
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

// FetchURL renders url in a pooled browser and returns the final HTML
// once the page's tables have been drawn.
func (p *Pool) FetchURL(ctx context.Context, url string, timeout time.Duration) (string, error) {
	bctx, release, err := p.acquire(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get browser context: %w", err)
	}
	defer release()

	runCtx, cancel := context.WithTimeout(bctx, timeout)
	defer cancel()

	var html string
	err = chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("table", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL content: %w", err)
	}
	return html, nil
}

// Shutdown closes every browser in the pool.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ctx, cancel := range p.cancels {
		cancel()
		delete(p.cancels, ctx)
	}
	if p.allocCancel != nil {
		p.allocCancel()
	}
	for len(p.contexts) > 0 {
		<-p.contexts
	}
}

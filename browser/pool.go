// Package browser fetches pages through a pool of headless Chrome tabs for
// sites that only render their markup client-side.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// ErrClosed is returned by Fetch after Shutdown.
var ErrClosed = errors.New("browser pool is shut down")

// settle is how long a page may run scripts before its markup is read.
const settle = time.Second

// Pool hands out a fixed number of browser tabs sharing one Chrome process.
// Tabs are started on first use.
type Pool struct {
	size      int
	userAgent string
	timeout   time.Duration
	logger    *slog.Logger

	initOnce    sync.Once
	initErr     error
	tabs        chan context.Context
	cancelFuncs []context.CancelFunc
	allocCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// New creates a pool of size tabs. Each Fetch is bounded by timeout.
func New(size int, userAgent string, timeout time.Duration, logger *slog.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		size:      size,
		userAgent: userAgent,
		timeout:   timeout,
		logger:    logger,
		tabs:      make(chan context.Context, size),
	}
}

func (p *Pool) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.WindowSize(1920, 1080),
	)
	if p.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(p.userAgent))
	}
	return opts
}

func (p *Pool) initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), p.allocatorOptions()...)
	p.allocCancel = allocCancel

	for i := 0; i < p.size; i++ {
		ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
		if err := chromedp.Run(ctx, chromedp.Navigate("about:blank")); err != nil {
			cancel()
			p.logger.Warn("failed to start browser tab", "error", err)
			continue
		}
		p.cancelFuncs = append(p.cancelFuncs, cancel)
		p.tabs <- ctx
	}

	if len(p.cancelFuncs) == 0 {
		allocCancel()
		return fmt.Errorf("failed to start any browser tab")
	}
	p.logger.Info("browser pool initialized", "tabs", len(p.cancelFuncs))
	return nil
}

// acquire waits for a free tab until ctx is done.
func (p *Pool) acquire(ctx context.Context) (context.Context, error) {
	p.initOnce.Do(func() {
		p.initErr = p.initialize()
	})
	if p.initErr != nil {
		return nil, p.initErr
	}

	select {
	case tab, ok := <-p.tabs:
		if !ok {
			return nil, ErrClosed
		}
		return tab, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for browser tab: %w", ctx.Err())
	}
}

// release clears the tab's state and puts it back.
func (p *Pool) release(tab context.Context) {
	refreshCtx, cancel := context.WithTimeout(tab, 3*time.Second)
	defer cancel()
	_ = chromedp.Run(refreshCtx,
		network.ClearBrowserCookies(),
		chromedp.Navigate("about:blank"),
	)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.tabs <- tab
	}
}

// Fetch navigates a pooled tab to url and returns the rendered markup.
func (p *Pool) Fetch(ctx context.Context, url string) ([]byte, error) {
	tab, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.release(tab)

	runCtx, cancel := context.WithTimeout(tab, p.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err = chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", url, err)
	}
	return []byte(html), nil
}

// Shutdown closes every tab and the browser process.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	for _, cancel := range p.cancelFuncs {
		cancel()
	}
	p.cancelFuncs = nil
	if p.allocCancel != nil {
		p.allocCancel()
	}
	close(p.tabs)
	p.logger.Info("browser pool shut down")
}

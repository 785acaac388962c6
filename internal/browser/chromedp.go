// Package browser provides page-automation drivers: a headless Chrome
// driver for script-rendered pages and a static HTTP driver for plain
// HTML.
package browser

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a single page-automation action.
const DefaultTimeout = 60 * time.Second

// ChromeDriver drives a headless Chrome instance. The vendor download
// page renders its links client-side, so a real browser is required
// for it.
type ChromeDriver struct {
	ctx    context.Context
	cancel []context.CancelFunc
}

// NewChromeDriver launches a headless browser. Close must be called to
// tear the browser down.
func NewChromeDriver() (*ChromeDriver, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.NoFirstRun,
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Starting the browser eagerly surfaces a missing Chrome binary
	// here instead of on the first Navigate.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, err
	}

	return &ChromeDriver{
		ctx:    browserCtx,
		cancel: []context.CancelFunc{cancelBrowser, cancelAlloc},
	}, nil
}

// Close shuts the browser down.
func (d *ChromeDriver) Close() {
	for _, cancel := range d.cancel {
		cancel()
	}
}

func (d *ChromeDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(d.ctx, DefaultTimeout)
	defer cancel()

	// Honor the caller's cancellation alongside the driver lifetime.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()

	return chromedp.Run(runCtx, actions...)
}

// Navigate loads the page at url.
func (d *ChromeDriver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, chromedp.Navigate(url))
}

// WaitVisible blocks until an element matching selector renders.
func (d *ChromeDriver) WaitVisible(ctx context.Context, selector string) error {
	return d.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// Attributes returns the named attribute of every element matching
// selector. Elements without the attribute are skipped.
func (d *ChromeDriver) Attributes(ctx context.Context, selector, name string) ([]string, error) {
	var attrs []map[string]string
	err := d.run(ctx, chromedp.AttributesAll(selector, &attrs, chromedp.ByQueryAll))
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(attrs))
	for _, m := range attrs {
		if v, ok := m[name]; ok {
			values = append(values, v)
		}
	}
	return values, nil
}

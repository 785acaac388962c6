// Package download implements chunked parallel HTTP downloads with
// resume-friendly range requests and a byte progress bar.
package download

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/schollz/progressbar/v3"

	"github.com/naveend/fapack/internal/config"
	"github.com/naveend/fapack/internal/httpclient"
	"github.com/naveend/fapack/internal/logging"
)

// DefaultWorkers is the number of parallel range requests when the
// server supports them.
const DefaultWorkers = 4

// Downloader fetches a URL to a local file, splitting the transfer
// into byte ranges when the server advertises Accept-Ranges.
type Downloader struct {
	client  *nethttp.Client
	workers int
	quiet   bool
	log     *logging.Logger
}

// Option customizes a Downloader.
type Option func(*Downloader)

// WithWorkers sets the number of parallel range workers.
func WithWorkers(n int) Option {
	return func(d *Downloader) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithQuiet suppresses the progress bar.
func WithQuiet() Option {
	return func(d *Downloader) {
		d.quiet = true
	}
}

// New creates a Downloader using the proxy settings in cfg. Transient
// failures are retried with exponential backoff.
func New(cfg *config.Config, opts ...Option) (*Downloader, error) {
	httpClient, err := httpclient.NewOptimized(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpClient
	retryClient.RetryMax = 4
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.Logger = nil

	d := &Downloader{
		client:  retryClient.StandardClient(),
		workers: cfg.DownloadWorkers,
		log:     logging.NewDefaultLogger(),
	}
	if d.workers <= 0 {
		d.workers = DefaultWorkers
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// probe describes what a HEAD request revealed about the resource.
type probe struct {
	size         int64
	acceptRanges bool
}

func (d *Downloader) probe(ctx context.Context, url string) (probe, error) {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodHead, url, nil)
	if err != nil {
		return probe{}, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return probe{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return probe{}, fmt.Errorf("HEAD %s: unexpected status %s", url, resp.Status)
	}
	return probe{
		size:         resp.ContentLength,
		acceptRanges: resp.Header.Get("Accept-Ranges") == "bytes",
	}, nil
}

// Fetch downloads url into dest, creating parent directories as
// needed. A partial file is removed on failure.
func (d *Downloader) Fetch(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	info, err := d.probe(ctx, url)
	if err != nil {
		return err
	}

	if info.acceptRanges && info.size > 0 && d.workers > 1 {
		d.log.Debugf("ranged download: %d bytes, %d workers", info.size, d.workers)
		err = d.fetchRanged(ctx, url, dest, info.size)
	} else {
		d.log.Debugf("server does not support ranges, streaming sequentially")
		err = d.fetchSequential(ctx, url, dest, info.size)
	}
	if err != nil {
		os.Remove(dest)
		return err
	}
	return nil
}

// fetchRanged preallocates the file and fills it with parallel range
// requests, the last worker absorbing any remainder.
func (d *Downloader) fetchRanged(ctx context.Context, url, dest string, size int64) error {
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := out.Truncate(size); err != nil {
		return fmt.Errorf("failed to preallocate %s: %w", dest, err)
	}

	bar := d.newBar(size, "downloading "+filepath.Base(dest))

	chunk := size / int64(d.workers)
	var wg sync.WaitGroup
	errs := make([]error, d.workers)

	for i := 0; i < d.workers; i++ {
		start := int64(i) * chunk
		end := start + chunk - 1
		if i == d.workers-1 {
			end = size - 1
		}

		wg.Add(1)
		go func(idx int, start, end int64) {
			defer wg.Done()
			errs[idx] = d.fetchRange(ctx, url, out, bar, start, end)
		}(i, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	_ = bar.Finish()
	return out.Sync()
}

func (d *Downloader) fetchRange(ctx context.Context, url string, out *os.File, bar *progressbar.ProgressBar, start, end int64) error {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", start, end))

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusPartialContent {
		return fmt.Errorf("range %d-%d: unexpected status %s", start, end, resp.Status)
	}

	w := io.MultiWriter(&sectionWriter{f: out, off: start}, bar)
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("range %d-%d: %w", start, end, err)
	}
	return nil
}

// sectionWriter writes sequentially starting at off using WriteAt, so
// concurrent workers never share a file offset.
type sectionWriter struct {
	f   *os.File
	off int64
}

func (s *sectionWriter) Write(p []byte) (int, error) {
	n, err := s.f.WriteAt(p, s.off)
	s.off += int64(n)
	return n, err
}

// fetchSequential streams the body in one request. size may be -1 when
// the server does not report Content-Length.
func (d *Downloader) fetchSequential(ctx context.Context, url, dest string, size int64) error {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	bar := d.newBar(size, "downloading "+filepath.Base(dest))
	if _, err := io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		return err
	}
	_ = bar.Finish()
	return out.Sync()
}

func (d *Downloader) newBar(size int64, description string) *progressbar.ProgressBar {
	if d.quiet {
		return progressbar.DefaultBytesSilent(size)
	}
	return progressbar.NewOptions64(size,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

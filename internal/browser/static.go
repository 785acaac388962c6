package browser

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/PuerkitoBio/goquery"
)

// StaticDriver fetches pages over plain HTTP and queries the parsed
// document. It cannot see script-rendered content; use it for mirrors
// serving static HTML.
type StaticDriver struct {
	client *nethttp.Client
	doc    *goquery.Document
}

// NewStaticDriver creates a driver using client for page fetches.
func NewStaticDriver(client *nethttp.Client) *StaticDriver {
	if client == nil {
		client = nethttp.DefaultClient
	}
	return &StaticDriver{client: client}
}

// Navigate fetches and parses the page at url.
func (d *StaticDriver) Navigate(ctx context.Context, url string) error {
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

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", url, err)
	}
	d.doc = doc
	return nil
}

// WaitVisible checks that at least one element matches selector. A
// static page never renders late, so there is nothing to wait for.
func (d *StaticDriver) WaitVisible(_ context.Context, selector string) error {
	if d.doc == nil {
		return fmt.Errorf("no page loaded")
	}
	if d.doc.Find(selector).Length() == 0 {
		return fmt.Errorf("no element matches selector %q", selector)
	}
	return nil
}

// Attributes returns the named attribute of every element matching
// selector, in document order.
func (d *StaticDriver) Attributes(_ context.Context, selector, name string) ([]string, error) {
	if d.doc == nil {
		return nil, fmt.Errorf("no page loaded")
	}

	var values []string
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr(name); ok {
			values = append(values, v)
		}
	})
	return values, nil
}

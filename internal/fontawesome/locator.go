// Package fontawesome locates FontAwesome 6 desktop release archives
// on the vendor's download page.
package fontawesome

import (
	"context"
	"errors"
	"regexp"
)

// DownloadPageURL is the vendor page listing release archives.
const DownloadPageURL = "https://fontawesome.com/download"

// DownloadLinkSelector matches the download buttons on the page.
const DownloadLinkSelector = "a.button"

// linkRe matches desktop release archive names anywhere in an URL,
// capturing the flavor (free/pro) and the semantic version.
var linkRe = regexp.MustCompile(`fontawesome-(\w+)-(\d+\.\d+\.\d+)-desktop\.zip`)

// ErrNoRelease is returned when no candidate link on the page matches
// a desktop release archive.
var ErrNoRelease = errors.New("no desktop release link found on download page")

// Release describes a located desktop release archive.
type Release struct {
	URL     string
	Flavor  string
	Version string
}

// Driver abstracts the page-automation backend. Implementations load
// a page and read attributes from matching elements.
type Driver interface {
	// Navigate loads the page at url.
	Navigate(ctx context.Context, url string) error
	// WaitVisible blocks until an element matching selector renders.
	WaitVisible(ctx context.Context, selector string) error
	// Attributes returns the named attribute of every element
	// matching selector, in document order.
	Attributes(ctx context.Context, selector, name string) ([]string, error)
}

// MatchLink reports whether href points at a desktop release archive.
func MatchLink(href string) bool {
	return linkRe.MatchString(href)
}

// Parse extracts the release described by a desktop archive URL.
func Parse(href string) (Release, bool) {
	m := linkRe.FindStringSubmatch(href)
	if m == nil {
		return Release{}, false
	}
	return Release{URL: href, Flavor: m[1], Version: m[2]}, true
}

// Locate loads the download page and returns the first link that
// matches a desktop release archive.
func Locate(ctx context.Context, d Driver) (Release, error) {
	return LocateAt(ctx, d, DownloadPageURL)
}

// LocateAt is Locate against an explicit page URL, useful for mirrors
// and tests.
func LocateAt(ctx context.Context, d Driver, pageURL string) (Release, error) {
	if err := d.Navigate(ctx, pageURL); err != nil {
		return Release{}, err
	}
	if err := d.WaitVisible(ctx, DownloadLinkSelector); err != nil {
		return Release{}, err
	}

	hrefs, err := d.Attributes(ctx, DownloadLinkSelector, "href")
	if err != nil {
		return Release{}, err
	}
	for _, href := range hrefs {
		if rel, ok := Parse(href); ok {
			return rel, nil
		}
	}
	return Release{}, ErrNoRelease
}

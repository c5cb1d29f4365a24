package scrape

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/bloom"
)

// Compile-time interface verification.
var _ sitekit.URLFrontier = (*Frontier)(nil)

// Frontier is a first-in first-out URL queue with Bloom filter
// deduplication. URLs are normalized before they are compared, so
// "/about/", "/about#team" and "/about?ref=nav" are the same page.
type Frontier struct {
	seen  *bloom.Filter
	queue []sitekit.DiscoveredLink
}

// NewFrontier creates a new Frontier sized for n expected URLs with the
// given false positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{seen: bloom.NewFilter(n, fpRate)}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen.
func (f *Frontier) Push(link sitekit.DiscoveredLink) bool {
	key := NormalizeURL(link.URL)
	if f.seen.TestAndAdd(key) {
		return false
	}
	link.URL = key
	f.queue = append(f.queue, link)
	return true
}

// Pop returns the oldest queued link.
func (f *Frontier) Pop() (sitekit.DiscoveredLink, bool) {
	if len(f.queue) == 0 {
		return sitekit.DiscoveredLink{}, false
	}
	link := f.queue[0]
	f.queue[0] = sitekit.DiscoveredLink{}
	f.queue = f.queue[1:]
	return link, true
}

// Len returns the number of queued links.
func (f *Frontier) Len() int {
	return len(f.queue)
}

// Seen returns true if the URL has been queued before.
func (f *Frontier) Seen(rawURL string) bool {
	return f.seen.Test(NormalizeURL(rawURL))
}

// NormalizeURL reduces a page URL to the form used for deduplication:
// lowercase host, no query or fragment, no trailing slash except on the root.
// Unparseable URLs are returned unchanged.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

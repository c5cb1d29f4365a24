package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitekit"
)

// SelectorConfig defines a CSS selector for anchors and its source label.
type SelectorConfig struct {
	Selector string
	Source   string
}

// DefaultLinkConfigs returns the anchor selectors used for brochure sites,
// in the order their links are reported.
func DefaultLinkConfigs() []SelectorConfig {
	return []SelectorConfig{
		{Selector: "nav a[href], header a[href], [role='navigation'] a[href]", Source: "nav"},
		{Selector: "main a[href], article a[href], .content a[href]", Source: "content"},
		{Selector: "footer a[href]", Source: "footer"},
	}
}

var _ sitekit.LinkSelector = (*LinkSelector)(nil)

// LinkSelector extracts same-site page links from HTML.
type LinkSelector struct {
	configs []SelectorConfig
}

// NewLinkSelector creates a LinkSelector using DefaultLinkConfigs.
func NewLinkSelector() *LinkSelector {
	return &LinkSelector{configs: DefaultLinkConfigs()}
}

// ExtractLinks parses HTML and returns discovered links.
// Links are deduplicated by URL and reported in selector order, then
// document order. Any remaining same-host anchor is reported last with
// the "fallback" source.
func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]sitekit.DiscoveredLink, error) {
	return ExtractLinksWithConfigs(html, baseURL, s.configs)
}

// ExtractLinksWithConfigs extracts links from HTML using the provided selector configurations.
// External links (different host than baseURL), non-HTTP links and links to
// static assets are filtered out.
func ExtractLinksWithConfigs(html string, baseURL string, configs []SelectorConfig) ([]sitekit.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitekit.Errorf(sitekit.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitekit.Errorf(sitekit.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []sitekit.DiscoveredLink

	collect := func(selector, source string) {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}

			// Skip non-HTTP links (javascript:, mailto:, tel:, etc.)
			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" || seen[resolved] {
				return
			}

			// Filter external links (exact host match, subdomains are filtered)
			if !isSameHost(base, resolved) || isAssetLink(resolved) {
				return
			}

			seen[resolved] = true
			links = append(links, sitekit.DiscoveredLink{
				URL:    resolved,
				Text:   strings.TrimSpace(sel.Text()),
				Source: source,
			})
		})
	}

	for _, config := range configs {
		collect(config.Selector, config.Source)
	}
	collect("a[href]", "fallback")

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// A leading "www." is ignored on both sides since brochure sites commonly
// link to both forms.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return strings.TrimPrefix(u.Host, "www.") == strings.TrimPrefix(base.Host, "www.")
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "sms:") ||
		strings.HasPrefix(href, "data:")
}

var assetExtensions = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".svg": true, ".webp": true, ".css": true, ".js": true, ".ico": true,
	".zip": true, ".doc": true, ".docx": true, ".mp4": true, ".mp3": true,
}

// isAssetLink reports whether the URL points at a static file rather than a page.
func isAssetLink(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	return assetExtensions[strings.ToLower(path.Ext(u.Path))]
}

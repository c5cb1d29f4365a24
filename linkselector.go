package sitekit

// DiscoveredLink represents a same-site URL found on a page.
type DiscoveredLink struct {
	URL    string
	Text   string
	Source string // "nav", "content", "footer", "fallback"
}

// LinkSelector extracts links from HTML.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns same-host links in document order.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}

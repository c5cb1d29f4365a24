package sitekit

import "time"

// Metadata is the per-page metadata carried from the old site into the
// generated page component.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Canonical   string `json:"canonical"`
}

// Content is the main content subtree of a page together with its metadata.
type Content struct {
	// Markup is the serialized main content. Script, style, link, meta and
	// noscript elements have been removed.
	Markup string

	Meta Metadata
}

// ContentExtractor locates the main content subtree of a page.
type ContentExtractor interface {
	// ExtractContent returns the page's main content and metadata.
	// Returns ENOTFOUND when no candidate subtree qualifies, either because
	// nothing matched or because every match looked like an error page.
	ExtractContent(html string) (*Content, error)
}

// Article holds a blog article extracted from an HTML page.
type Article struct {
	Title       string
	Description string

	// ContentHTML is the article body as clean HTML.
	ContentHTML string

	// PublishedAt is zero when the page carries no publication date.
	PublishedAt time.Time
}

// ArticleExtractor extracts a blog article from HTML pages, removing boilerplate.
type ArticleExtractor interface {
	// Extract processes raw HTML and returns the article.
	Extract(html string) (*Article, error)
}

// Package goquery implements HTML content and link extraction with
// CSS selectors using github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitekit"
)

// DefaultMinTextLength is the minimum trimmed text length of a candidate
// subtree. Shorter candidates are treated as placeholders.
const DefaultMinTextLength = 200

// DefaultSelectors returns the main-content selectors tried in order.
func DefaultSelectors() []string {
	return []string{
		"main",
		"[role='main']",
		"article",
		"#main-content",
		"#content",
		".main-content",
		".entry-content",
		".content",
		"#main",
	}
}

// DefaultErrorMarkers returns the substrings that identify an error or
// placeholder page. Matching is case-insensitive.
func DefaultErrorMarkers() []string {
	return []string{"404", "Page Not Found"}
}

// strippedTags are removed from the extracted subtree.
const strippedTags = "script, style, link, meta, noscript"

var _ sitekit.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor finds the main content of a page by trying an ordered
// list of selectors and rejecting candidates that look like error pages.
type ContentExtractor struct {
	selectors     []string
	errorMarkers  []string
	minTextLength int
	detector      sitekit.PlatformDetector
}

// Option configures a ContentExtractor.
type Option func(*ContentExtractor)

// WithSelectors replaces the default selector list.
func WithSelectors(selectors []string) Option {
	return func(e *ContentExtractor) {
		e.selectors = selectors
	}
}

// WithErrorMarkers replaces the default error-page markers.
func WithErrorMarkers(markers []string) Option {
	return func(e *ContentExtractor) {
		e.errorMarkers = markers
	}
}

// WithMinTextLength sets the minimum text length of an accepted candidate.
// Defaults to DefaultMinTextLength.
func WithMinTextLength(n int) Option {
	return func(e *ContentExtractor) {
		e.minTextLength = n
	}
}

// WithPlatformDetection enables platform-specific selectors, which are tried
// before the configured ones when the page's platform is recognized.
func WithPlatformDetection(d sitekit.PlatformDetector) Option {
	return func(e *ContentExtractor) {
		e.detector = d
	}
}

// NewContentExtractor creates a new ContentExtractor.
func NewContentExtractor(opts ...Option) *ContentExtractor {
	e := &ContentExtractor{
		selectors:     DefaultSelectors(),
		errorMarkers:  DefaultErrorMarkers(),
		minTextLength: DefaultMinTextLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractContent returns the main content and metadata of a page.
func (e *ContentExtractor) ExtractContent(html string) (*sitekit.Content, error) {
	if strings.TrimSpace(html) == "" {
		return nil, sitekit.Errorf(sitekit.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitekit.Errorf(sitekit.EINVALID, "failed to parse HTML: %v", err)
	}

	meta := ExtractMetadata(doc)

	for _, selector := range e.candidateSelectors(html) {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}

		cleaned := sel.Clone()
		cleaned.Find(strippedTags).Remove()

		text := strings.TrimSpace(cleaned.Text())
		if e.isErrorPage(text) {
			continue
		}
		if utf8.RuneCountInString(text) < e.minTextLength {
			continue
		}

		markup, err := cleaned.Html()
		if err != nil {
			return nil, sitekit.Errorf(sitekit.EINTERNAL, "failed to render content: %v", err)
		}

		return &sitekit.Content{
			Markup: strings.TrimSpace(markup),
			Meta:   meta,
		}, nil
	}

	return nil, sitekit.Errorf(sitekit.ENOTFOUND, "no content found")
}

// candidateSelectors returns platform-specific selectors (when detection is
// enabled) followed by the configured selectors.
func (e *ContentExtractor) candidateSelectors(html string) []string {
	if e.detector == nil {
		return e.selectors
	}
	platform := e.detector.Detect(html)
	specific := platformSelectors[platform]
	if len(specific) == 0 {
		return e.selectors
	}
	selectors := make([]string, 0, len(specific)+len(e.selectors))
	selectors = append(selectors, specific...)
	return append(selectors, e.selectors...)
}

// isErrorPage reports whether text contains any error-page marker.
func (e *ContentExtractor) isErrorPage(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range e.errorMarkers {
		if marker != "" && strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// ExtractMetadata reads the title, description and canonical URL of a page,
// falling back to Open Graph tags when the primary tag is missing.
func ExtractMetadata(doc *goquery.Document) sitekit.Metadata {
	return sitekit.Metadata{
		Title: firstNonEmpty(
			strings.TrimSpace(doc.Find("head title").First().Text()),
			attr(doc, "meta[property='og:title']", "content"),
		),
		Description: firstNonEmpty(
			attr(doc, "meta[name='description']", "content"),
			attr(doc, "meta[property='og:description']", "content"),
		),
		Canonical: firstNonEmpty(
			attr(doc, "link[rel='canonical']", "href"),
			attr(doc, "meta[property='og:url']", "content"),
		),
	}
}

func attr(doc *goquery.Document, selector, name string) string {
	value, _ := doc.Find(selector).First().Attr(name)
	return strings.TrimSpace(value)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

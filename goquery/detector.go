package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitekit"
)

var _ sitekit.PlatformDetector = (*Detector)(nil)

// Detector identifies the site builder behind a page from its HTML.
// It checks the meta generator tag first, then platform-specific class
// names, ids and asset hosts.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified platform.
// Returns PlatformUnknown if the platform cannot be determined.
func (d *Detector) Detect(html string) sitekit.Platform {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return sitekit.PlatformUnknown
	}
	return d.detectDocument(doc)
}

func (d *Detector) detectDocument(doc *goquery.Document) sitekit.Platform {
	// Meta generator tags are the most reliable signal when present
	if platform := d.detectFromMetaGenerator(doc); platform != sitekit.PlatformUnknown {
		return platform
	}

	if d.hasSelector(doc, "link[href*='/wp-content/']") ||
		d.hasSelector(doc, "script[src*='/wp-includes/']") ||
		d.hasSelector(doc, "body.wp-singular, body[class*='page-template']") {
		return sitekit.PlatformWordPress
	}

	if d.hasSelector(doc, ".sqs-layout") ||
		d.hasSelector(doc, "script[src*='static1.squarespace.com']") {
		return sitekit.PlatformSquarespace
	}

	if d.hasSelector(doc, "#PAGES_CONTAINER") ||
		d.hasSelector(doc, "#SITE_CONTAINER") {
		return sitekit.PlatformWix
	}

	if d.hasSelector(doc, "html[data-wf-site]") ||
		d.hasSelector(doc, "html[data-wf-page]") {
		return sitekit.PlatformWebflow
	}

	return sitekit.PlatformUnknown
}

// detectFromMetaGenerator checks the meta generator tag for platform identification.
func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) sitekit.Platform {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	switch {
	case generator == "":
		return sitekit.PlatformUnknown
	case strings.Contains(generator, "wordpress"):
		return sitekit.PlatformWordPress
	case strings.Contains(generator, "squarespace"):
		return sitekit.PlatformSquarespace
	case strings.Contains(generator, "wix"):
		return sitekit.PlatformWix
	case strings.Contains(generator, "webflow"):
		return sitekit.PlatformWebflow
	}

	return sitekit.PlatformUnknown
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

// platformSelectors lists main-content selectors that are specific to a
// platform. They are tried before the configured generic selectors.
var platformSelectors = map[sitekit.Platform][]string{
	sitekit.PlatformWordPress:   {".entry-content", "#primary .site-main"},
	sitekit.PlatformSquarespace: {"#page .sqs-layout", "article .sqs-layout"},
	sitekit.PlatformWix:         {"#PAGES_CONTAINER"},
	sitekit.PlatformWebflow:     {".main-wrapper"},
}

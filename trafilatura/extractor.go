// Package trafilatura extracts blog articles with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/sitekit"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitekit.ArticleExtractor at compile time.
var _ sitekit.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract blog articles from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article with its title,
// description and publication date when the page carries them.
func (e *Extractor) Extract(rawHTML string) (*sitekit.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitekit.Errorf(sitekit.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, sitekit.Errorf(sitekit.ENOTFOUND, "no article found: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &sitekit.Article{
		Title:       strings.TrimSpace(result.Metadata.Title),
		Description: strings.TrimSpace(result.Metadata.Description),
		ContentHTML: contentHTML,
		PublishedAt: result.Metadata.Date,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

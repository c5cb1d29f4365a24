// Package readability extracts blog articles with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/sitekit"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements sitekit.ArticleExtractor at compile time.
var _ sitekit.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract blog articles from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article. The excerpt
// readability derives from the page is used as the description.
func (e *Extractor) Extract(rawHTML string) (*sitekit.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitekit.Errorf(sitekit.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, sitekit.Errorf(sitekit.ENOTFOUND, "no article found: %v", err)
	}

	result := &sitekit.Article{
		Title:       strings.TrimSpace(article.Title),
		Description: strings.TrimSpace(article.Excerpt),
		ContentHTML: article.Content,
	}
	if article.PublishedTime != nil {
		result.PublishedAt = *article.PublishedTime
	}
	return result, nil
}

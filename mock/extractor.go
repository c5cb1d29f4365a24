package mock

import "github.com/fwojciec/sitekit"

var (
	_ sitekit.ContentExtractor = (*ContentExtractor)(nil)
	_ sitekit.ArticleExtractor = (*ArticleExtractor)(nil)
	_ sitekit.Converter        = (*Converter)(nil)
	_ sitekit.LinkSelector     = (*LinkSelector)(nil)
	_ sitekit.PlatformDetector = (*PlatformDetector)(nil)
)

// ContentExtractor is a mock implementation of sitekit.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html string) (*sitekit.Content, error)
}

func (e *ContentExtractor) ExtractContent(html string) (*sitekit.Content, error) {
	return e.ExtractContentFn(html)
}

// ArticleExtractor is a mock implementation of sitekit.ArticleExtractor.
type ArticleExtractor struct {
	ExtractFn func(html string) (*sitekit.Article, error)
}

func (e *ArticleExtractor) Extract(html string) (*sitekit.Article, error) {
	return e.ExtractFn(html)
}

// Converter is a mock implementation of sitekit.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// LinkSelector is a mock implementation of sitekit.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]sitekit.DiscoveredLink, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]sitekit.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}

// PlatformDetector is a mock implementation of sitekit.PlatformDetector.
type PlatformDetector struct {
	DetectFn func(html string) sitekit.Platform
}

func (d *PlatformDetector) Detect(html string) sitekit.Platform {
	return d.DetectFn(html)
}

package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/sitekit"
)

// Ensure LoggingContentExtractor implements sitekit.ContentExtractor.
var _ sitekit.ContentExtractor = (*LoggingContentExtractor)(nil)

// LoggingContentExtractor wraps a ContentExtractor with debug logging.
type LoggingContentExtractor struct {
	next   sitekit.ContentExtractor
	logger *slog.Logger
}

// NewLoggingContentExtractor creates a new LoggingContentExtractor.
func NewLoggingContentExtractor(next sitekit.ContentExtractor, logger *slog.Logger) *LoggingContentExtractor {
	return &LoggingContentExtractor{next: next, logger: logger}
}

// ExtractContent delegates to the wrapped extractor and logs the result size.
func (e *LoggingContentExtractor) ExtractContent(html string) (content *sitekit.Content, err error) {
	defer func(begin time.Time) {
		var n int
		var title string
		if content != nil {
			n = len(content.Markup)
			title = content.Meta.Title
		}
		e.logger.Debug("extract content",
			"bytes", len(html),
			"markup", n,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractContent(html)
}

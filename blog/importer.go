// Package blog imports scraped blog pages into the post database and
// exports stored posts as Markdown files.
package blog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fwojciec/sitekit"
)

// DefaultPrefix is the route prefix of the blog section.
const DefaultPrefix = "/blog"

// listingSegments mark archive and pagination routes inside the blog
// section. They list posts rather than hold one.
var listingSegments = map[string]bool{
	"page":     true,
	"category": true,
	"tag":      true,
	"author":   true,
}

// Importer turns scraped blog pages into posts.
type Importer struct {
	Articles  sitekit.ArticleExtractor
	Converter sitekit.Converter
	Posts     sitekit.PostService
	Logger    *slog.Logger

	// Prefix is the route prefix of the blog section. Empty means DefaultPrefix.
	Prefix string

	// SourceBaseURL is the old site's URL, recorded as each post's source.
	SourceBaseURL string
}

// Result holds the outcome of an import.
type Result struct {
	Created int
	Updated int
	Skipped int
	Failed  int
}

// EventType indicates what happened to a page.
type EventType int

const (
	EventCreated EventType = iota
	EventUpdated
	EventSkipped
	EventFailed
)

// Event reports the outcome of one page.
type Event struct {
	Type  EventType
	Route string
	Slug  string
	Error error
}

// ProgressFunc is a callback for reporting import progress.
type ProgressFunc func(event Event)

// Import imports every post page among files. Files outside the blog
// section and listing pages inside it are ignored. A page that fails is
// logged and counted; only context cancellation stops the import.
func (i *Importer) Import(ctx context.Context, files []sitekit.SourceFile, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(Event) {}
	}
	logger := i.logger()
	result := &Result{}

	for _, file := range files {
		if !i.IsPost(file.Route) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		post, updated, err := i.ImportPage(ctx, file)
		switch {
		case sitekit.ErrorCode(err) == sitekit.ENOTFOUND:
			result.Skipped++
			logger.Warn("post skipped", "route", file.Route, "reason", err)
			progress(Event{Type: EventSkipped, Route: file.Route, Error: err})
		case err != nil:
			result.Failed++
			logger.Warn("post failed", "route", file.Route, "error", err)
			progress(Event{Type: EventFailed, Route: file.Route, Error: err})
		case updated:
			result.Updated++
			progress(Event{Type: EventUpdated, Route: file.Route, Slug: post.Slug})
		default:
			result.Created++
			progress(Event{Type: EventCreated, Route: file.Route, Slug: post.Slug})
		}
	}
	return result, nil
}

// ImportPage imports a single source file and reports whether an existing
// post was replaced. Pages without a publication date are left undated so
// that the post service keeps the date of an earlier import.
func (i *Importer) ImportPage(ctx context.Context, file sitekit.SourceFile) (*sitekit.Post, bool, error) {
	slug := SlugFromRoute(file.Route)
	if slug == "" {
		return nil, false, sitekit.Errorf(sitekit.EINVALID, "route %q has no slug", file.Route)
	}

	html, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", file.Path, err)
	}
	article, err := i.Articles.Extract(string(html))
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(article.ContentHTML) == "" {
		return nil, false, sitekit.Errorf(sitekit.ENOTFOUND, "no article body on %s", file.Route)
	}
	markdown, err := i.Converter.Convert(article.ContentHTML)
	if err != nil {
		return nil, false, fmt.Errorf("convert %s: %w", file.Route, err)
	}

	post := &sitekit.Post{
		Slug:        slug,
		Title:       article.Title,
		Description: article.Description,
		Content:     markdown,
		SourceURL:   i.sourceURL(file.Route),
		PublishedAt: article.PublishedAt,
	}
	if post.Title == "" {
		post.Title = titleFromSlug(slug)
	}

	updated, err := i.Posts.UpsertPost(ctx, post)
	if err != nil {
		return nil, false, err
	}
	return post, updated, nil
}

// IsPost reports whether route is a post page inside the blog section.
func (i *Importer) IsPost(route string) bool {
	prefix := strings.TrimSuffix(i.prefix(), "/")
	rest, ok := strings.CutPrefix(route, prefix+"/")
	if !ok || prefix == "" {
		return false
	}
	segments := sitekit.RouteSegments(rest)
	if len(segments) == 0 {
		return false
	}
	for _, seg := range segments {
		if listingSegments[seg] {
			return false
		}
	}
	return true
}

// SlugFromRoute derives a post slug from the last segment of a route.
func SlugFromRoute(route string) string {
	segments := sitekit.RouteSegments(route)
	if len(segments) == 0 {
		return ""
	}
	return sitekit.Slugify(segments[len(segments)-1])
}

// titleFromSlug turns "what-to-do-after-a-dui" into "What to do after a dui".
func titleFromSlug(slug string) string {
	title := strings.ReplaceAll(slug, "-", " ")
	return strings.ToUpper(title[:1]) + title[1:]
}

func (i *Importer) sourceURL(route string) string {
	if i.SourceBaseURL == "" {
		return ""
	}
	return strings.TrimSuffix(i.SourceBaseURL, "/") + route
}

func (i *Importer) prefix() string {
	if i.Prefix == "" {
		return DefaultPrefix
	}
	return i.Prefix
}

func (i *Importer) logger() *slog.Logger {
	if i.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return i.Logger
}

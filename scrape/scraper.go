// Package scrape snapshots the pages of an existing site to local HTML files.
// Pages are fetched one at a time through a per-domain rate limiter. URLs
// come from the site's sitemaps; when there are none, links are followed
// breadth-first from the start page.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/sitekit"
)

// Frontier sizing for link walks.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// DefaultMaxPages bounds the number of pages fetched in one scrape.
const DefaultMaxPages = 500

// Source names how URLs were discovered.
const (
	SourceSitemap = "sitemap"
	SourceLinks   = "links"
)

// Scraper snapshots a site.
type Scraper struct {
	Sitemaps    sitekit.SitemapService
	Fetcher     sitekit.Fetcher
	Links       sitekit.LinkSelector
	RateLimiter sitekit.DomainLimiter
	Logger      *slog.Logger

	// MaxPages bounds the number of pages fetched. Zero means DefaultMaxPages.
	MaxPages int

	// RetryDelays are waited between attempts to fetch a page.
	// Nil means a single attempt.
	RetryDelays []time.Duration
}

// Result holds the outcome of a scrape.
type Result struct {
	Source string
	Saved  int
	Failed int
}

// EventType indicates the kind of progress event.
type EventType int

const (
	EventStarted EventType = iota
	EventSaved
	EventFailed
	EventFinished
)

// Event reports progress during a scrape. Total is zero while walking links
// because the number of pages is not known in advance.
type Event struct {
	Type      EventType
	URL       string
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event Event)

// Scrape saves every discovered page of the site at startURL to store.
// The store is committed when at least one page was saved and aborted
// otherwise, so a failed scrape never replaces an earlier snapshot.
func (s *Scraper) Scrape(ctx context.Context, startURL string, filter *sitekit.URLFilter, store sitekit.SnapshotStore, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(Event) {}
	}
	start, err := url.Parse(startURL)
	if err != nil || start.Host == "" || (start.Scheme != "http" && start.Scheme != "https") {
		return nil, sitekit.Errorf(sitekit.EINVALID, "invalid start URL %q", startURL)
	}

	result, err := s.scrape(ctx, start, filter, store, progress)
	if err != nil {
		_ = store.Abort()
		return result, err
	}
	if result.Saved == 0 {
		_ = store.Abort()
		return result, sitekit.Errorf(sitekit.ENOTFOUND, "no pages saved from %s", startURL)
	}
	if err := store.Commit(); err != nil {
		return result, fmt.Errorf("commit snapshot: %w", err)
	}
	return result, nil
}

func (s *Scraper) scrape(ctx context.Context, start *url.URL, filter *sitekit.URLFilter, store sitekit.SnapshotStore, progress ProgressFunc) (*Result, error) {
	urls, err := s.Sitemaps.DiscoverURLs(ctx, start.String(), filter)
	if err != nil {
		if ctx.Err() != nil {
			return &Result{}, ctx.Err()
		}
		s.logger().Warn("sitemap discovery failed, walking links", "url", start.String(), "error", err)
	}
	if len(urls) > 0 {
		return s.scrapeURLs(ctx, urls, store, progress)
	}
	return s.walkLinks(ctx, start, filter, store, progress)
}

// scrapeURLs fetches a known list of URLs.
func (s *Scraper) scrapeURLs(ctx context.Context, urls []string, store sitekit.SnapshotStore, progress ProgressFunc) (*Result, error) {
	if len(urls) > s.maxPages() {
		s.logger().Warn("sitemap lists more pages than the limit", "pages", len(urls), "limit", s.maxPages())
		urls = urls[:s.maxPages()]
	}

	result := &Result{Source: SourceSitemap}
	total := len(urls)
	progress(Event{Type: EventStarted, Total: total})

	for i, u := range urls {
		if _, err := s.fetchAndSave(ctx, u, store); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			progress(Event{Type: EventFailed, URL: u, Completed: i + 1, Total: total, Error: err})
			continue
		}
		result.Saved++
		progress(Event{Type: EventSaved, URL: u, Completed: i + 1, Total: total})
	}

	progress(Event{Type: EventFinished, Completed: total, Total: total})
	return result, nil
}

// walkLinks follows same-site links breadth-first from start.
func (s *Scraper) walkLinks(ctx context.Context, start *url.URL, filter *sitekit.URLFilter, store sitekit.SnapshotStore, progress ProgressFunc) (*Result, error) {
	result := &Result{Source: SourceLinks}
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(sitekit.DiscoveredLink{URL: start.String()})
	progress(Event{Type: EventStarted})

	processed := 0
	for processed < s.maxPages() {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		processed++

		html, err := s.fetchAndSave(ctx, link.URL, store)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			progress(Event{Type: EventFailed, URL: link.URL, Completed: processed, Error: err})
			continue
		}
		result.Saved++
		progress(Event{Type: EventSaved, URL: link.URL, Completed: processed})

		links, err := s.Links.ExtractLinks(html, link.URL)
		if err != nil {
			s.logger().Warn("link extraction failed", "url", link.URL, "error", err)
			continue
		}
		for _, discovered := range links {
			// The filter applies to discovered pages only; the start page
			// is always scraped.
			if !filter.Match(discovered.URL) {
				continue
			}
			frontier.Push(discovered)
		}
	}

	if frontier.Len() > 0 {
		s.logger().Warn("page limit reached", "limit", s.maxPages(), "queued", frontier.Len())
	}
	progress(Event{Type: EventFinished, Completed: processed})
	return result, nil
}

// fetchAndSave fetches a page through the rate limiter and saves it.
func (s *Scraper) fetchAndSave(ctx context.Context, rawURL string, store sitekit.SnapshotStore) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", sitekit.Errorf(sitekit.EINVALID, "invalid URL %q", rawURL)
	}
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	html, err := fetchWithRetry(ctx, s.Fetcher, rawURL, s.RetryDelays, s.logger())
	if err != nil {
		return "", err
	}
	if err := store.Save(ctx, &sitekit.SourcePage{URL: rawURL, HTML: html}); err != nil {
		return "", fmt.Errorf("save %s: %w", rawURL, err)
	}
	return html, nil
}

func (s *Scraper) maxPages() int {
	if s.MaxPages <= 0 {
		return DefaultMaxPages
	}
	return s.MaxPages
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

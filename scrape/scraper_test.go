package scrape_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/mock"
	"github.com/fwojciec/sitekit/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore records saved pages and whether the snapshot was committed.
type memoryStore struct {
	mu        sync.Mutex
	pages     []string
	committed bool
	aborted   bool
	saveErr   error
}

func (s *memoryStore) mock() *mock.SnapshotStore {
	return &mock.SnapshotStore{
		SaveFn: func(_ context.Context, page *sitekit.SourcePage) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.saveErr != nil {
				return s.saveErr
			}
			s.pages = append(s.pages, page.URL)
			return nil
		},
		CommitFn: func() error { s.committed = true; return nil },
		AbortFn:  func() error { s.aborted = true; return nil },
	}
}

func noSitemap() *mock.SitemapService {
	return &mock.SitemapService{
		DiscoverURLsFn: func(context.Context, string, *sitekit.URLFilter) ([]string, error) {
			return []string{}, nil
		},
	}
}

func sitemapOf(urls ...string) *mock.SitemapService {
	return &mock.SitemapService{
		DiscoverURLsFn: func(context.Context, string, *sitekit.URLFilter) ([]string, error) {
			return urls, nil
		},
	}
}

// siteFetcher serves pages from a map of URL to HTML.
func siteFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", sitekit.Errorf(sitekit.ENOTFOUND, "HTTP 404 for %s", url)
			}
			return html, nil
		},
	}
}

// hrefLinks returns every link listed in the page as "href:" lines.
func hrefLinks() *mock.LinkSelector {
	return &mock.LinkSelector{
		ExtractLinksFn: func(html string, _ string) ([]sitekit.DiscoveredLink, error) {
			var links []sitekit.DiscoveredLink
			for _, line := range strings.Split(html, "\n") {
				if u, ok := strings.CutPrefix(line, "href:"); ok {
					links = append(links, sitekit.DiscoveredLink{URL: u})
				}
			}
			return links, nil
		},
	}
}

func TestScraper_Scrape_FromSitemap(t *testing.T) {
	t.Parallel()

	var waited []string
	store := &memoryStore{}
	s := &scrape.Scraper{
		Sitemaps: sitemapOf("https://smithlaw.com/", "https://smithlaw.com/about", "https://smithlaw.com/missing"),
		Fetcher: siteFetcher(map[string]string{
			"https://smithlaw.com/":      "<html>home</html>",
			"https://smithlaw.com/about": "<html>about</html>",
		}),
		RateLimiter: &mock.DomainLimiter{WaitFn: func(_ context.Context, domain string) error {
			waited = append(waited, domain)
			return nil
		}},
	}

	var events []scrape.Event
	result, err := s.Scrape(context.Background(), "https://smithlaw.com", nil, store.mock(), func(e scrape.Event) {
		events = append(events, e)
	})

	require.NoError(t, err)
	assert.Equal(t, &scrape.Result{Source: scrape.SourceSitemap, Saved: 2, Failed: 1}, result)
	assert.Equal(t, []string{"https://smithlaw.com/", "https://smithlaw.com/about"}, store.pages)
	assert.True(t, store.committed)
	assert.False(t, store.aborted)
	assert.Equal(t, []string{"smithlaw.com", "smithlaw.com", "smithlaw.com"}, waited)

	require.Len(t, events, 5)
	assert.Equal(t, scrape.EventStarted, events[0].Type)
	assert.Equal(t, 3, events[0].Total)
	assert.Equal(t, scrape.EventFailed, events[3].Type)
	assert.Equal(t, "https://smithlaw.com/missing", events[3].URL)
	assert.Equal(t, scrape.EventFinished, events[4].Type)
}

func TestScraper_Scrape_WalksLinksWithoutSitemap(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	s := &scrape.Scraper{
		Sitemaps: noSitemap(),
		Fetcher: siteFetcher(map[string]string{
			"https://smithlaw.com/":               "href:https://smithlaw.com/about\nhref:https://smithlaw.com/practice-areas",
			"https://smithlaw.com/about":          "href:https://smithlaw.com/\nhref:https://smithlaw.com/about/#team",
			"https://smithlaw.com/practice-areas": "href:https://smithlaw.com/practice-areas/dui",
			"https://smithlaw.com/practice-areas/dui": "",
		}),
		Links: hrefLinks(),
	}

	result, err := s.Scrape(context.Background(), "https://smithlaw.com/", nil, store.mock(), nil)

	require.NoError(t, err)
	assert.Equal(t, scrape.SourceLinks, result.Source)
	assert.Equal(t, 4, result.Saved)
	assert.Equal(t, []string{
		"https://smithlaw.com/",
		"https://smithlaw.com/about",
		"https://smithlaw.com/practice-areas",
		"https://smithlaw.com/practice-areas/dui",
	}, store.pages)
	assert.True(t, store.committed)
}

func TestScraper_Scrape_WalkHonorsFilterAndLimit(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"https://smithlaw.com/": "href:https://smithlaw.com/wp-admin\nhref:https://smithlaw.com/a\nhref:https://smithlaw.com/b\nhref:https://smithlaw.com/c",
		"https://smithlaw.com/a": "", "https://smithlaw.com/b": "", "https://smithlaw.com/c": "",
		"https://smithlaw.com/wp-admin": "",
	}
	store := &memoryStore{}
	s := &scrape.Scraper{
		Sitemaps: noSitemap(),
		Fetcher:  siteFetcher(pages),
		Links:    hrefLinks(),
		MaxPages: 3,
	}
	filter := &sitekit.URLFilter{Exclude: []*regexp.Regexp{regexp.MustCompile(`/wp-admin`)}}

	result, err := s.Scrape(context.Background(), "https://smithlaw.com/", filter, store.mock(), nil)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Saved)
	assert.Equal(t, []string{"https://smithlaw.com/", "https://smithlaw.com/a", "https://smithlaw.com/b"}, store.pages)
}

func TestScraper_Scrape_FallsBackWhenSitemapFails(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	s := &scrape.Scraper{
		Sitemaps: &mock.SitemapService{DiscoverURLsFn: func(context.Context, string, *sitekit.URLFilter) ([]string, error) {
			return nil, errors.New("parsing sitemap: XML syntax error")
		}},
		Fetcher: siteFetcher(map[string]string{"https://smithlaw.com/": "home"}),
		Links:   hrefLinks(),
	}

	result, err := s.Scrape(context.Background(), "https://smithlaw.com/", nil, store.mock(), nil)

	require.NoError(t, err)
	assert.Equal(t, scrape.SourceLinks, result.Source)
	assert.Equal(t, 1, result.Saved)
}

func TestScraper_Scrape_AbortsWhenNothingSaved(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	s := &scrape.Scraper{
		Sitemaps: sitemapOf("https://smithlaw.com/gone"),
		Fetcher:  siteFetcher(map[string]string{}),
	}

	result, err := s.Scrape(context.Background(), "https://smithlaw.com/", nil, store.mock(), nil)

	require.Error(t, err)
	assert.Equal(t, sitekit.ENOTFOUND, sitekit.ErrorCode(err))
	assert.Equal(t, 1, result.Failed)
	assert.True(t, store.aborted)
	assert.False(t, store.committed)
}

func TestScraper_Scrape_CountsSaveFailures(t *testing.T) {
	t.Parallel()

	store := &memoryStore{saveErr: errors.New("disk full")}
	s := &scrape.Scraper{
		Sitemaps: sitemapOf("https://smithlaw.com/"),
		Fetcher:  siteFetcher(map[string]string{"https://smithlaw.com/": "home"}),
	}

	result, err := s.Scrape(context.Background(), "https://smithlaw.com/", nil, store.mock(), nil)

	require.Error(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, store.aborted)
}

func TestScraper_Scrape_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var attempts int
	store := &memoryStore{}
	s := &scrape.Scraper{
		Sitemaps: sitemapOf("https://smithlaw.com/"),
		Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("connection reset by peer")
			}
			return "home", nil
		}},
		RetryDelays: []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond},
	}

	result, err := s.Scrape(context.Background(), "https://smithlaw.com/", nil, store.mock(), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	assert.Equal(t, 3, attempts)
}

func TestScraper_Scrape_SingleAttemptWithoutRetryDelays(t *testing.T) {
	t.Parallel()

	var attempts int
	s := &scrape.Scraper{
		Sitemaps: sitemapOf("https://smithlaw.com/", "https://smithlaw.com/flaky"),
		Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, url string) (string, error) {
			if url == "https://smithlaw.com/flaky" {
				attempts++
				return "", errors.New("connection reset by peer")
			}
			return "home", nil
		}},
	}

	result, err := s.Scrape(context.Background(), "https://smithlaw.com/", nil, (&memoryStore{}).mock(), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, attempts)
}

func TestScraper_Scrape_DoesNotRetryMissingPages(t *testing.T) {
	t.Parallel()

	var attempts int
	s := &scrape.Scraper{
		Sitemaps: sitemapOf("https://smithlaw.com/gone"),
		Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			attempts++
			return "", sitekit.Errorf(sitekit.ENOTFOUND, "HTTP 404")
		}},
		RetryDelays: []time.Duration{time.Millisecond, time.Millisecond},
	}

	_, err := s.Scrape(context.Background(), "https://smithlaw.com/", nil, (&memoryStore{}).mock(), nil)

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestScraper_Scrape_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	store := &memoryStore{}
	s := &scrape.Scraper{
		Sitemaps: sitemapOf("https://smithlaw.com/", "https://smithlaw.com/about"),
		Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", ctx.Err()
		}},
	}

	_, err := s.Scrape(ctx, "https://smithlaw.com/", nil, store.mock(), nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, store.aborted)
}

func TestScraper_Scrape_InvalidStartURL(t *testing.T) {
	t.Parallel()

	s := &scrape.Scraper{}

	_, err := s.Scrape(context.Background(), "smithlaw.com", nil, (&memoryStore{}).mock(), nil)

	assert.Equal(t, sitekit.EINVALID, sitekit.ErrorCode(err))
}

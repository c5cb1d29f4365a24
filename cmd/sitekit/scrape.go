package main

import (
	"fmt"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	startURL := c.URL
	if startURL == "" {
		startURL = deps.Config.Site.SourceURL
	}
	if startURL == "" {
		fmt.Fprintln(deps.Stderr, "error: no site URL. Pass one or set site.source_url in the config file")
		return sitekit.Errorf(sitekit.EINVALID, "site URL required")
	}
	if c.MaxPages > 0 {
		deps.Scraper.MaxPages = c.MaxPages
	}

	filter, err := deps.Config.URLFilter()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}

	progress := func(event scrape.Event) {
		switch event.Type {
		case scrape.EventStarted:
			if event.Total > 0 {
				fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
			} else {
				fmt.Fprintln(deps.Stdout, "  No sitemap, following links")
			}
		case scrape.EventFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Scraper.Scrape(deps.Ctx, startURL, filter, deps.Snapshot, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %s\n", sitekit.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages from %s (%d failed) to %s\n",
		result.Saved, result.Source, result.Failed, deps.Config.Site.SnapshotDir)
	return nil
}

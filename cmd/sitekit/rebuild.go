package main

import (
	"fmt"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/fs"
	"github.com/fwojciec/sitekit/rebuild"
)

// Run executes the rebuild command.
func (c *RebuildCmd) Run(deps *Dependencies) error {
	files, err := fs.SourceFiles(deps.Config.Site.SnapshotDir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		fmt.Fprintln(deps.Stderr, "Hint: Run 'sitekit scrape' first")
		return err
	}

	progress := func(event rebuild.Event) {
		switch event.Type {
		case rebuild.EventWritten:
			fmt.Fprintf(deps.Stdout, "  wrote %s\n", event.Path)
		case rebuild.EventUnchanged:
			if c.Verbose {
				fmt.Fprintf(deps.Stdout, "  unchanged %s\n", event.Path)
			}
		case rebuild.EventSkipped:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.Route, sitekit.ErrorMessage(event.Error))
		case rebuild.EventFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", event.Route, event.Error)
		}
	}

	result, err := deps.Pipeline.Run(deps.Ctx, files, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Rebuilt %d pages: %d written, %d unchanged, %d skipped, %d failed\n",
		result.Total(), result.Written, result.Unchanged, result.Skipped, result.Failed)
	return nil
}

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	result, err := deps.Pipeline.RebuildPage(deps.Ctx, sitekit.SourceFile{Path: c.File, Route: c.Route})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "%s %s\n", result.Status, result.Path)
	return nil
}

package sitekit

import "context"

// FileChange reports the outcome of rewriting one file.
type FileChange struct {
	Path         string
	Replacements int
	Err          error
}

// RewriteResult summarizes a rewrite over a directory tree.
type RewriteResult struct {
	Scanned int
	Changed []FileChange
	Failed  []FileChange
}

// Rewriter applies text replacement rules across a directory tree.
type Rewriter interface {
	// RewriteTree rewrites every eligible file under root. Per-file failures
	// are collected in the result rather than returned.
	// When dryRun is true, changes are reported but not written.
	RewriteTree(ctx context.Context, root string, dryRun bool) (*RewriteResult, error)
}

package sitekit

import "context"

// SourcePage is a raw page captured from the old live site.
type SourcePage struct {
	URL  string
	HTML string
}

// SnapshotStore persists source pages with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type SnapshotStore interface {
	Save(ctx context.Context, page *SourcePage) error
	Commit() error
	Abort() error
}

// SourceFile is a snapshot file paired with the route it was captured from.
type SourceFile struct {
	Path  string
	Route string
}

package mock

import (
	"context"

	"github.com/fwojciec/sitekit"
)

var (
	_ sitekit.PageEmitter   = (*PageEmitter)(nil)
	_ sitekit.SnapshotStore = (*SnapshotStore)(nil)
	_ sitekit.Rewriter      = (*Rewriter)(nil)
)

// PageEmitter is a mock implementation of sitekit.PageEmitter.
type PageEmitter struct {
	EmitPageFn func(ctx context.Context, route string, content *sitekit.Content) (*sitekit.EmitResult, error)
}

func (e *PageEmitter) EmitPage(ctx context.Context, route string, content *sitekit.Content) (*sitekit.EmitResult, error) {
	return e.EmitPageFn(ctx, route, content)
}

// SnapshotStore is a mock implementation of sitekit.SnapshotStore.
type SnapshotStore struct {
	SaveFn   func(ctx context.Context, page *sitekit.SourcePage) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *SnapshotStore) Save(ctx context.Context, page *sitekit.SourcePage) error {
	return s.SaveFn(ctx, page)
}

func (s *SnapshotStore) Commit() error {
	return s.CommitFn()
}

func (s *SnapshotStore) Abort() error {
	return s.AbortFn()
}

// Rewriter is a mock implementation of sitekit.Rewriter.
type Rewriter struct {
	RewriteTreeFn func(ctx context.Context, root string, dryRun bool) (*sitekit.RewriteResult, error)
}

func (r *Rewriter) RewriteTree(ctx context.Context, root string, dryRun bool) (*sitekit.RewriteResult, error) {
	return r.RewriteTreeFn(ctx, root, dryRun)
}

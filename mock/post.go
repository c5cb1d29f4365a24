package mock

import (
	"context"

	"github.com/fwojciec/sitekit"
)

var (
	_ sitekit.PostService  = (*PostService)(nil)
	_ sitekit.PostExporter = (*PostExporter)(nil)
)

// PostService is a mock implementation of sitekit.PostService.
type PostService struct {
	CreatePostFn     func(ctx context.Context, post *sitekit.Post) error
	UpsertPostFn     func(ctx context.Context, post *sitekit.Post) (bool, error)
	FindPostBySlugFn func(ctx context.Context, slug string) (*sitekit.Post, error)
	FindPostsFn      func(ctx context.Context, filter sitekit.PostFilter) ([]*sitekit.Post, error)
	DeletePostFn     func(ctx context.Context, slug string) error
}

func (s *PostService) CreatePost(ctx context.Context, post *sitekit.Post) error {
	return s.CreatePostFn(ctx, post)
}

func (s *PostService) UpsertPost(ctx context.Context, post *sitekit.Post) (bool, error) {
	return s.UpsertPostFn(ctx, post)
}

func (s *PostService) FindPostBySlug(ctx context.Context, slug string) (*sitekit.Post, error) {
	return s.FindPostBySlugFn(ctx, slug)
}

func (s *PostService) FindPosts(ctx context.Context, filter sitekit.PostFilter) ([]*sitekit.Post, error) {
	return s.FindPostsFn(ctx, filter)
}

func (s *PostService) DeletePost(ctx context.Context, slug string) error {
	return s.DeletePostFn(ctx, slug)
}

// PostExporter is a mock implementation of sitekit.PostExporter.
type PostExporter struct {
	ExportPostFn func(ctx context.Context, post *sitekit.Post) (string, error)
}

func (e *PostExporter) ExportPost(ctx context.Context, post *sitekit.Post) (string, error) {
	return e.ExportPostFn(ctx, post)
}

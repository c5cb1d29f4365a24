package sitekit

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Post is a blog post stored in the site database.
type Post struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"` // Markdown
	ContentHash string    `json:"contentHash"`
	SourceURL   string    `json:"sourceUrl"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.Slug == "" {
		return Errorf(EINVALID, "post slug required")
	}
	if !slugRe.MatchString(p.Slug) {
		return Errorf(EINVALID, "post slug %q must be lowercase letters, digits and dashes", p.Slug)
	}
	if p.Title == "" {
		return Errorf(EINVALID, "post title required")
	}
	return nil
}

var (
	slugRe      = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	slugCleanRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify converts arbitrary text (a title or a route segment) into a post slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSuffix(s, ".html"))
	s = slugCleanRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// PostService represents a service for managing blog posts.
type PostService interface {
	// CreatePost creates a new post.
	// Returns ECONFLICT if the slug is taken.
	CreatePost(ctx context.Context, post *Post) error

	// UpsertPost creates the post or replaces the post with the same slug.
	// Returns true when an existing post was replaced.
	UpsertPost(ctx context.Context, post *Post) (bool, error)

	// FindPostBySlug retrieves a post by slug.
	// Returns ENOTFOUND if the post does not exist.
	FindPostBySlug(ctx context.Context, slug string) (*Post, error)

	// FindPosts retrieves posts matching the filter, newest first.
	FindPosts(ctx context.Context, filter PostFilter) ([]*Post, error)

	// DeletePost permanently removes a post.
	// Returns ENOTFOUND if the post does not exist.
	DeletePost(ctx context.Context, slug string) error
}

// PostFilter represents a filter for FindPosts.
type PostFilter struct {
	Slug *string `json:"slug"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PostExporter writes posts outside the database, such as Markdown files
// for the site's content directory.
type PostExporter interface {
	// ExportPost writes the post and returns where it was written.
	ExportPost(ctx context.Context, post *Post) (string, error)
}

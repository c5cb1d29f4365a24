package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitekit"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ sitekit.PostService = (*PostService)(nil)

// PostService implements sitekit.PostService using SQLite.
type PostService struct {
	db *DB

	// Now returns the current time. Posts without a publication date are
	// published at the time they are first stored.
	Now func() time.Time
}

// NewPostService creates a new PostService.
func NewPostService(db *DB) *PostService {
	return &PostService{db: db}
}

const postColumns = "id, slug, title, description, content, content_hash, source_url, published_at, created_at, updated_at"

// hashContent returns the hex encoded xxHash of content.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

func (s *PostService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// CreatePost creates a new post.
func (s *PostService) CreatePost(ctx context.Context, post *sitekit.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}

	post.ID = uuid.New().String()
	post.ContentHash = hashContent(post.Content)
	now := s.now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.PublishedAt.IsZero() {
		post.PublishedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (`+postColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, post.ID, post.Slug, post.Title, post.Description, post.Content, post.ContentHash, post.SourceURL,
		post.PublishedAt.UTC().Format(time.RFC3339), post.CreatedAt.Format(time.RFC3339),
		post.UpdatedAt.Format(time.RFC3339))

	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return sitekit.Errorf(sitekit.ECONFLICT, "post %q already exists", post.Slug)
	}
	return err
}

// UpsertPost creates the post or replaces the post with the same slug.
// A replaced post keeps its ID and creation time, and its publication date
// when the new post has none. Replacing a post with identical fields leaves
// the row untouched.
func (s *PostService) UpsertPost(ctx context.Context, post *sitekit.Post) (bool, error) {
	if err := post.Validate(); err != nil {
		return false, err
	}

	existing, err := s.FindPostBySlug(ctx, post.Slug)
	if sitekit.ErrorCode(err) == sitekit.ENOTFOUND {
		return false, s.CreatePost(ctx, post)
	}
	if err != nil {
		return false, err
	}

	post.ID = existing.ID
	post.CreatedAt = existing.CreatedAt
	post.ContentHash = hashContent(post.Content)
	if post.PublishedAt.IsZero() {
		post.PublishedAt = existing.PublishedAt
	}

	if post.ContentHash == existing.ContentHash &&
		post.Title == existing.Title &&
		post.Description == existing.Description &&
		post.SourceURL == existing.SourceURL &&
		post.PublishedAt.Equal(existing.PublishedAt) {
		post.UpdatedAt = existing.UpdatedAt
		return true, nil
	}
	post.UpdatedAt = s.now()

	_, err = s.db.ExecContext(ctx, `
		UPDATE posts
		SET title = ?, description = ?, content = ?, content_hash = ?, source_url = ?, published_at = ?, updated_at = ?
		WHERE id = ?
	`, post.Title, post.Description, post.Content, post.ContentHash, post.SourceURL,
		post.PublishedAt.UTC().Format(time.RFC3339), post.UpdatedAt.Format(time.RFC3339), post.ID)
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindPostBySlug retrieves a post by slug.
func (s *PostService) FindPostBySlug(ctx context.Context, slug string) (*sitekit.Post, error) {
	posts, err := s.FindPosts(ctx, sitekit.PostFilter{Slug: &slug, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, sitekit.Errorf(sitekit.ENOTFOUND, "post %q not found", slug)
	}
	return posts[0], nil
}

// FindPosts retrieves posts matching the filter, newest first.
func (s *PostService) FindPosts(ctx context.Context, filter sitekit.PostFilter) ([]*sitekit.Post, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + postColumns + " FROM posts WHERE 1=1")

	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}

	query.WriteString(" ORDER BY published_at DESC, slug")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*sitekit.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// DeletePost permanently removes a post.
func (s *PostService) DeletePost(ctx context.Context, slug string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE slug = ?", slug)
	if err != nil {
		return err
	}
	return requireAffected(result, "post %q not found", slug)
}

func scanPost(rows *sql.Rows) (*sitekit.Post, error) {
	var post sitekit.Post
	var publishedAt, createdAt, updatedAt string

	if err := rows.Scan(&post.ID, &post.Slug, &post.Title, &post.Description, &post.Content,
		&post.ContentHash, &post.SourceURL, &publishedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if post.PublishedAt, err = parseRFC3339(publishedAt, "published_at"); err != nil {
		return nil, err
	}
	if post.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if post.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &post, nil
}

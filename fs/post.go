package fs

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/fwojciec/sitekit"
	"gopkg.in/yaml.v3"
)

// FormatPost formats a post as Markdown with YAML frontmatter.
func FormatPost(post *sitekit.Post) (string, error) {
	front, err := yaml.Marshal(postFrontmatter{
		Slug:        post.Slug,
		Title:       post.Title,
		Description: post.Description,
		Source:      post.SourceURL,
		Date:        post.PublishedAt.UTC().Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n")
	b.WriteString(post.Content)
	return b.String(), nil
}

type postFrontmatter struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Source      string `yaml:"source,omitempty"`
	Date        string `yaml:"date"`
}

// Ensure PostExporter implements sitekit.PostExporter at compile time.
var _ sitekit.PostExporter = (*PostExporter)(nil)

// PostExporter writes posts as Markdown files to a directory.
type PostExporter struct {
	baseDir string
}

// NewPostExporter creates a new PostExporter that writes to the given base directory.
func NewPostExporter(baseDir string) *PostExporter {
	return &PostExporter{baseDir: baseDir}
}

// ExportPost writes a post to <baseDir>/<slug>.md and returns the file path.
func (e *PostExporter) ExportPost(ctx context.Context, post *sitekit.Post) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := post.Validate(); err != nil {
		return "", err
	}

	content, err := FormatPost(post)
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.baseDir, post.Slug+".md")
	return path, writeFile(path, []byte(content))
}

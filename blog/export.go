package blog

import (
	"context"

	"github.com/fwojciec/sitekit"
)

// exportPageSize is the number of posts read from the database at a time.
const exportPageSize = 100

// Export writes every stored post through exporter and returns the paths
// written, newest post first. It stops at the first error.
func Export(ctx context.Context, posts sitekit.PostService, exporter sitekit.PostExporter) ([]string, error) {
	var paths []string
	for offset := 0; ; offset += exportPageSize {
		page, err := posts.FindPosts(ctx, sitekit.PostFilter{Offset: offset, Limit: exportPageSize})
		if err != nil {
			return paths, err
		}
		for _, post := range page {
			path, err := exporter.ExportPost(ctx, post)
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		if len(page) < exportPageSize {
			return paths, nil
		}
	}
}

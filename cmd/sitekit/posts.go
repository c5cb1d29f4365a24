package main

import (
	"fmt"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/blog"
	"github.com/fwojciec/sitekit/fs"
)

// Run executes the posts import command.
func (c *PostsImportCmd) Run(deps *Dependencies) error {
	files, err := fs.SourceFiles(deps.Config.Site.SnapshotDir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		fmt.Fprintln(deps.Stderr, "Hint: Run 'sitekit scrape' first")
		return err
	}

	progress := func(event blog.Event) {
		switch event.Type {
		case blog.EventCreated:
			fmt.Fprintf(deps.Stdout, "  created %s\n", event.Slug)
		case blog.EventUpdated:
			fmt.Fprintf(deps.Stdout, "  updated %s\n", event.Slug)
		case blog.EventSkipped, blog.EventFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.Route, sitekit.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Importer.Import(deps.Ctx, files, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported posts: %d created, %d updated, %d skipped, %d failed\n",
		result.Created, result.Updated, result.Skipped, result.Failed)
	return nil
}

// Run executes the posts list command.
func (c *PostsListCmd) Run(deps *Dependencies) error {
	posts, err := deps.Posts.FindPosts(deps.Ctx, sitekit.PostFilter{Limit: c.Limit, Offset: c.Offset})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintln(deps.Stdout, "No posts found. Use 'sitekit posts import' to import the old blog.")
		return nil
	}

	for _, p := range posts {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", p.PublishedAt.Format("2006-01-02"), p.Slug, p.Title)
	}
	return nil
}

// Run executes the posts export command.
func (c *PostsExportCmd) Run(deps *Dependencies) error {
	paths, err := blog.Export(deps.Ctx, deps.Posts, deps.Exporter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Exported %d posts to %s\n", len(paths), deps.Config.Site.ContentDir)
	return nil
}

// Run executes the posts delete command.
func (c *PostsDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return sitekit.Errorf(sitekit.EINVALID, "use --force to confirm deletion")
	}
	if err := deps.Posts.DeletePost(deps.Ctx, c.Slug); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted post %q\n", c.Slug)
	return nil
}

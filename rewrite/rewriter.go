package rewrite

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/sitekit"
)

var _ sitekit.Rewriter = (*Rewriter)(nil)

// DefaultExtensions returns the file extensions rewritten when none are
// configured.
func DefaultExtensions() []string {
	return []string{".tsx", ".ts", ".jsx", ".js", ".md", ".mdx", ".html", ".json"}
}

// DefaultSkipDirs returns the directory names never descended into.
func DefaultSkipDirs() []string {
	return []string{".git", ".next", "node_modules"}
}

// Rewriter implements sitekit.Rewriter.
type Rewriter struct {
	rules []compiledRule

	// Extensions lists the file extensions (with dot) eligible for rewriting.
	Extensions []string

	// SkipDirs lists directory names that are not walked.
	SkipDirs []string

	Logger *slog.Logger
}

// NewRewriter compiles rules into a Rewriter.
// Returns EINVALID if a rule does not compile or is not idempotent.
func NewRewriter(rules []Rule) (*Rewriter, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Rewriter{
		rules:      compiled,
		Extensions: DefaultExtensions(),
		SkipDirs:   DefaultSkipDirs(),
		Logger:     slog.New(slog.DiscardHandler),
	}, nil
}

// Rewrite applies every rule in order and returns the result together with
// the number of replacements made.
func (r *Rewriter) Rewrite(s string) (string, int) {
	var total int
	for _, rule := range r.rules {
		var n int
		s, n = rule.apply(s)
		total += n
	}
	return s, total
}

// RewriteTree rewrites every eligible file under root.
func (r *Rewriter) RewriteTree(ctx context.Context, root string, dryRun bool) (*sitekit.RewriteResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, sitekit.Errorf(sitekit.EINVALID, "%s is not a directory", root)
	}

	result := &sitekit.RewriteResult{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && slices.Contains(r.SkipDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !r.eligible(path) {
			return nil
		}

		result.Scanned++
		change := r.rewriteFile(path, dryRun)
		switch {
		case change.Err != nil:
			r.Logger.Warn("rewrite failed", "path", path, "error", change.Err)
			result.Failed = append(result.Failed, change)
		case change.Replacements > 0:
			r.Logger.Debug("rewrote file", "path", path, "replacements", change.Replacements, "dry_run", dryRun)
			result.Changed = append(result.Changed, change)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Rewriter) eligible(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(r.Extensions, ext)
}

// rewriteFile rewrites a single file, writing it only when the content
// actually changed.
func (r *Rewriter) rewriteFile(path string, dryRun bool) sitekit.FileChange {
	change := sitekit.FileChange{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		change.Err = err
		return change
	}

	original := string(data)
	updated, n := r.Rewrite(original)
	if updated == original {
		return change
	}
	// Group expansion can produce text the rules match again; such a file
	// would keep changing on every run.
	if again, _ := r.Rewrite(updated); again != updated {
		change.Err = sitekit.Errorf(sitekit.EINVALID, "rules are not idempotent on %s: a second pass changes it again", path)
		return change
	}
	change.Replacements = n

	if dryRun {
		return change
	}

	info, err := os.Stat(path)
	if err != nil {
		change.Err = err
		return change
	}
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		change.Err = err
	}
	return change
}

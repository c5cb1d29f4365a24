package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sitekit"
)

// SourceFileName is the file a snapshot page is stored as inside its route directory.
const SourceFileName = "index.html"

// URLToPath converts a page URL to a snapshot file path relative to the
// snapshot directory.
// Example: https://example.com/about/team → about/team/index.html
// An index.html page maps to its directory's route.
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", sitekit.Errorf(sitekit.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	p := strings.TrimSuffix(u.Path, ".html")
	if p == "index" || strings.HasSuffix(p, "/index") {
		p = strings.TrimSuffix(p, "index")
	}
	route, err := sitekit.CleanRoute(p)
	if err != nil {
		return "", err
	}
	segments := append(sitekit.RouteSegments(route), SourceFileName)
	return filepath.Join(segments...), nil
}

// Ensure SnapshotStore implements sitekit.SnapshotStore at compile time.
var _ sitekit.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore implements sitekit.SnapshotStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved into place on Commit.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates a new SnapshotStore.
// Files are saved to dir.tmp and moved to dir on Commit.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: filepath.Clean(dir)}
}

func (s *SnapshotStore) tempDir() string {
	return s.dir + ".tmp"
}

// Save writes the page's raw HTML into the temporary directory.
func (s *SnapshotStore) Save(ctx context.Context, page *sitekit.SourcePage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.tempDir(), relPath), []byte(page.HTML))
}

// Commit replaces the snapshot directory with the pages saved so far.
func (s *SnapshotStore) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.dir); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.dir)
}

// Abort discards the pages saved so far.
func (s *SnapshotStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// SourceFiles lists the HTML files under dir with the route each one maps to.
// "index.html" maps to its directory's route and any other "name.html" maps
// to the route "name" inside its directory. Results are sorted by path.
// Returns ENOTFOUND if dir does not exist.
func SourceFiles(dir string) ([]sitekit.SourceFile, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, sitekit.Errorf(sitekit.ENOTFOUND, "snapshot directory %q not found", dir)
	}

	var files []sitekit.SourceFile
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		route, err := PathToRoute(rel)
		if err != nil {
			return err
		}
		files = append(files, sitekit.SourceFile{Path: path, Route: route})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// PathToRoute converts a snapshot-relative HTML file path to its route.
// Example: about/index.html → /about, contact.html → /contact, index.html → /
func PathToRoute(relPath string) (string, error) {
	p := filepath.ToSlash(relPath)
	p = strings.TrimSuffix(p, filepath.Ext(p))
	if p == "index" || strings.HasSuffix(p, "/index") {
		p = strings.TrimSuffix(p, "index")
	}
	return sitekit.CleanRoute(p)
}

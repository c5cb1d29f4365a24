// Package fs provides file-based storage for generated pages, site
// snapshots and exported posts.
package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/jsx"
)

// PageFileName is the file the router loads for a route directory.
const PageFileName = "page.tsx"

// RouteToPath converts a route to the page file path relative to the app
// directory.
// Example: /practice-areas/dui → practice-areas/dui/page.tsx
func RouteToPath(route string) (string, error) {
	cleaned, err := sitekit.CleanRoute(route)
	if err != nil {
		return "", err
	}
	segments := append(sitekit.RouteSegments(cleaned), PageFileName)
	return filepath.Join(segments...), nil
}

// Ensure PageWriter implements sitekit.PageEmitter at compile time.
var _ sitekit.PageEmitter = (*PageWriter)(nil)

// PageWriter renders pages and writes them into the app directory.
// Files whose content would not change are left untouched.
type PageWriter struct {
	appDir   string
	renderer *jsx.Renderer
}

// NewPageWriter creates a new PageWriter writing under appDir.
func NewPageWriter(appDir string, renderer *jsx.Renderer) *PageWriter {
	return &PageWriter{appDir: appDir, renderer: renderer}
}

// EmitPage renders content for route and writes it to disk.
func (w *PageWriter) EmitPage(ctx context.Context, route string, content *sitekit.Content) (*sitekit.EmitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned, err := sitekit.CleanRoute(route)
	if err != nil {
		return nil, err
	}
	relPath, err := RouteToPath(cleaned)
	if err != nil {
		return nil, err
	}
	fullPath := filepath.Join(w.appDir, relPath)

	page, err := w.renderer.Render(cleaned, content)
	if err != nil {
		return nil, err
	}

	result := &sitekit.EmitResult{Route: cleaned, Path: fullPath}

	if sameContent(fullPath, page) {
		result.Status = sitekit.EmitUnchanged
		return result, nil
	}

	if err := writeFile(fullPath, page); err != nil {
		return nil, err
	}
	result.Status = sitekit.EmitWritten
	return result, nil
}

// sameContent reports whether the file at path already holds data.
func sameContent(path string, data []byte) bool {
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(existing, data)
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

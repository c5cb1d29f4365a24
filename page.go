package sitekit

import (
	"context"
	"path"
	"strings"
)

// EmitStatus reports what happened to a page file.
type EmitStatus int

const (
	EmitWritten EmitStatus = iota
	EmitUnchanged
)

func (s EmitStatus) String() string {
	switch s {
	case EmitWritten:
		return "written"
	case EmitUnchanged:
		return "unchanged"
	}
	return "unknown"
}

// EmitResult describes a single emitted page.
type EmitResult struct {
	Route  string
	Path   string
	Status EmitStatus
}

// PageEmitter renders extracted content as a page component and writes it
// where the framework's file-system router expects the route.
type PageEmitter interface {
	// EmitPage renders content for route and writes it to disk.
	// Returns EINVALID for routes that cannot be mapped to a file.
	EmitPage(ctx context.Context, route string, content *Content) (*EmitResult, error)
}

// CleanRoute normalizes a route to its canonical form: a leading slash, no
// trailing slash, no query or fragment. The root route is "/".
// Returns EINVALID for routes containing ".." segments.
func CleanRoute(route string) (string, error) {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	route = strings.TrimSpace(route)
	for _, seg := range strings.Split(route, "/") {
		if seg == ".." {
			return "", Errorf(EINVALID, "route %q escapes the app directory", route)
		}
	}
	cleaned := path.Clean("/" + route)
	return cleaned, nil
}

// RouteSegments splits a cleaned route into its path segments.
// The root route has no segments.
func RouteSegments(route string) []string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

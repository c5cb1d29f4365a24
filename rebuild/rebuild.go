// Package rebuild turns scraped source pages into page components.
// Pages are processed one at a time; a page that fails is logged and skipped
// so that one bad page never stops a rebuild.
package rebuild

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fwojciec/sitekit"
)

// Pipeline extracts content from source pages and emits page components.
type Pipeline struct {
	Extractor sitekit.ContentExtractor
	Emitter   sitekit.PageEmitter
	Logger    *slog.Logger

	// Exclude lists route prefixes that are not rebuilt, such as the blog
	// section whose posts live in the database.
	Exclude []string
}

// Result holds the outcome of a rebuild.
type Result struct {
	Written   int
	Unchanged int
	Skipped   int
	Failed    int
}

// Total returns the number of pages processed.
func (r *Result) Total() int {
	return r.Written + r.Unchanged + r.Skipped + r.Failed
}

// EventType indicates what happened to a page.
type EventType int

const (
	EventWritten EventType = iota
	EventUnchanged
	EventSkipped
	EventFailed
)

// Event reports the outcome of one page.
type Event struct {
	Type  EventType
	Route string
	Path  string
	Error error
}

// ProgressFunc is a callback for reporting rebuild progress.
type ProgressFunc func(event Event)

// Run rebuilds every source file in order.
// Only context cancellation stops the run early.
func (p *Pipeline) Run(ctx context.Context, files []sitekit.SourceFile, progress ProgressFunc) (*Result, error) {
	logger := p.logger()
	result := &Result{}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		event := p.rebuildFile(ctx, file)
		switch event.Type {
		case EventWritten:
			result.Written++
		case EventUnchanged:
			result.Unchanged++
		case EventSkipped:
			result.Skipped++
			logger.Warn("page skipped", "route", file.Route, "path", file.Path, "reason", event.Error)
		case EventFailed:
			result.Failed++
			logger.Warn("page failed", "route", file.Route, "path", file.Path, "error", event.Error)
		}
		if progress != nil {
			progress(event)
		}
	}
	return result, nil
}

// RebuildPage rebuilds a single source file and returns the emitted page.
// Unlike Run, failures are returned to the caller.
func (p *Pipeline) RebuildPage(ctx context.Context, file sitekit.SourceFile) (*sitekit.EmitResult, error) {
	html, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Path, err)
	}
	content, err := p.Extractor.ExtractContent(string(html))
	if err != nil {
		return nil, err
	}
	return p.Emitter.EmitPage(ctx, file.Route, content)
}

func (p *Pipeline) rebuildFile(ctx context.Context, file sitekit.SourceFile) Event {
	event := Event{Route: file.Route}

	if p.excluded(file.Route) {
		event.Type = EventSkipped
		event.Error = sitekit.Errorf(sitekit.EINVALID, "route %s is excluded", file.Route)
		return event
	}

	emitted, err := p.RebuildPage(ctx, file)
	switch {
	case sitekit.ErrorCode(err) == sitekit.ENOTFOUND:
		event.Type = EventSkipped
		event.Error = err
	case err != nil:
		event.Type = EventFailed
		event.Error = err
	case emitted.Status == sitekit.EmitUnchanged:
		event.Type = EventUnchanged
		event.Route = emitted.Route
		event.Path = emitted.Path
	default:
		event.Type = EventWritten
		event.Route = emitted.Route
		event.Path = emitted.Path
	}
	return event
}

func (p *Pipeline) excluded(route string) bool {
	for _, prefix := range p.Exclude {
		prefix = strings.TrimSuffix(prefix, "/")
		if prefix == "" {
			continue
		}
		if route == prefix || strings.HasPrefix(route, prefix+"/") {
			return true
		}
	}
	return false
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

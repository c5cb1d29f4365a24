package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/sitekit"
)

// Ensure LoggingPlatformDetector implements sitekit.PlatformDetector.
var _ sitekit.PlatformDetector = (*LoggingPlatformDetector)(nil)

// LoggingPlatformDetector wraps a PlatformDetector with debug logging.
type LoggingPlatformDetector struct {
	next   sitekit.PlatformDetector
	logger *slog.Logger
}

// NewLoggingPlatformDetector creates a new LoggingPlatformDetector.
func NewLoggingPlatformDetector(next sitekit.PlatformDetector, logger *slog.Logger) *LoggingPlatformDetector {
	return &LoggingPlatformDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the detected platform.
func (d *LoggingPlatformDetector) Detect(html string) sitekit.Platform {
	begin := time.Now()
	platform := d.next.Detect(html)
	name := string(platform)
	if platform == sitekit.PlatformUnknown {
		name = "(unknown)"
	}
	d.logger.Debug("platform detection",
		"platform", name,
		"duration", time.Since(begin),
	)
	return platform
}

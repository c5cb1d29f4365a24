package slog_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/mock"
	sitekitslog "github.com/fwojciec/sitekit/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingPlatformDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		platform sitekit.Platform
		want     string
	}{
		{name: "known platform", platform: sitekit.PlatformWordPress, want: "platform=wordpress"},
		{name: "unknown platform", platform: sitekit.PlatformUnknown, want: "platform=(unknown)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			inner := &mock.PlatformDetector{
				DetectFn: func(html string) sitekit.Platform { return tt.platform },
			}

			got := sitekitslog.NewLoggingPlatformDetector(inner, debugLogger(&buf)).Detect("<html></html>")

			assert.Equal(t, tt.platform, got)
			assert.Contains(t, buf.String(), "platform detection")
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "duration=")
		})
	}
}

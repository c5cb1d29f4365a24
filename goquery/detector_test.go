package goquery_test

import (
	"testing"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/goquery"
	"github.com/stretchr/testify/assert"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want sitekit.Platform
	}{
		{
			name: "wordpress generator tag",
			html: `<html><head><meta name="generator" content="WordPress 6.4.2"></head><body></body></html>`,
			want: sitekit.PlatformWordPress,
		},
		{
			name: "wordpress asset paths",
			html: `<html><head><link rel="stylesheet" href="https://smithlaw.com/wp-content/themes/x/style.css"></head><body></body></html>`,
			want: sitekit.PlatformWordPress,
		},
		{
			name: "squarespace layout",
			html: `<html><body><div class="sqs-layout"></div></body></html>`,
			want: sitekit.PlatformSquarespace,
		},
		{
			name: "wix containers",
			html: `<html><body><div id="SITE_CONTAINER"></div></body></html>`,
			want: sitekit.PlatformWix,
		},
		{
			name: "webflow attributes",
			html: `<html data-wf-site="abc123"><body></body></html>`,
			want: sitekit.PlatformWebflow,
		},
		{
			name: "generator wins over markup",
			html: `<html><head><meta name="generator" content="Webflow"></head><body><div class="sqs-layout"></div></body></html>`,
			want: sitekit.PlatformWebflow,
		},
		{
			name: "plain html is unknown",
			html: `<html><body><main><p>Hello</p></main></body></html>`,
			want: sitekit.PlatformUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := goquery.NewDetector().Detect(tt.html)

			assert.Equal(t, tt.want, got)
		})
	}
}

package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/mock"
	sitekitslog "github.com/fwojciec/sitekit/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingContentExtractor_ExtractContent(t *testing.T) {
	t.Parallel()

	t.Run("logs markup size and title", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ContentExtractor{
			ExtractContentFn: func(html string) (*sitekit.Content, error) {
				return &sitekit.Content{Markup: "<p>hi</p>", Meta: sitekit.Metadata{Title: "About"}}, nil
			},
		}

		content, err := sitekitslog.NewLoggingContentExtractor(inner, debugLogger(&buf)).ExtractContent("<main><p>hi</p></main>")

		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", content.Markup)
		output := buf.String()
		assert.Contains(t, output, "extract content")
		assert.Contains(t, output, "bytes=22")
		assert.Contains(t, output, "markup=9")
		assert.Contains(t, output, "title=About")
	})

	t.Run("logs extraction errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ContentExtractor{
			ExtractContentFn: func(html string) (*sitekit.Content, error) {
				return nil, sitekit.Errorf(sitekit.ENOTFOUND, "no main content found")
			},
		}

		_, err := sitekitslog.NewLoggingContentExtractor(inner, debugLogger(&buf)).ExtractContent("<p>404</p>")

		assert.Equal(t, sitekit.ENOTFOUND, sitekit.ErrorCode(err))
		assert.Contains(t, buf.String(), "markup=0")
		assert.Contains(t, buf.String(), "no main content found")
	})

	t.Run("is silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ContentExtractor{
			ExtractContentFn: func(html string) (*sitekit.Content, error) {
				return &sitekit.Content{}, nil
			},
		}

		_, err := sitekitslog.NewLoggingContentExtractor(inner, logger).ExtractContent("<p>x</p>")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

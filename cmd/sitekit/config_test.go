package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/sitekit"
	main "github.com/fwojciec/sitekit/cmd/sitekit"
	"github.com/fwojciec/sitekit/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitekit.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()

		config, err := main.ReadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))

		require.NoError(t, err)
		assert.Equal(t, main.DefaultConfig(), config)
		assert.False(t, config.Scrape.Retry)
		assert.Nil(t, config.ScrapeRetryDelays())
	})

	t.Run("overrides defaults with file values", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
[site]
source_url = "https://www.smithlaw.com"
base_url = "https://smithlaw.com"
app_dir = "web/app"

[scrape]
max_pages = 40
interval = "250ms"
retry = true
exclude = ["/wp-admin", "\\.pdf$"]

[extract]
selectors = [".page-body"]
error_markers = ["Oops"]
min_text_length = 50
platform_detection = true

[blog]
extractor = "readability"

[rewrite.phone]
old = "(555) 123-4567"
new = "(555) 987-6543"

[[rewrite.rules]]
name = "firm name"
pattern = "Smith Law Office"
replacement = "Smith Law Group"
literal = true

[vercel]
project = "smithlaw"
`)

		config, err := main.ReadConfigFile(path)

		require.NoError(t, err)
		assert.Equal(t, "https://www.smithlaw.com", config.Site.SourceURL)
		assert.Equal(t, "web/app", config.Site.AppDir)
		assert.Equal(t, "snapshot", config.Site.SnapshotDir, "unset keys keep defaults")
		assert.Equal(t, 40, config.Scrape.MaxPages)
		assert.True(t, config.Scrape.Retry)
		assert.NotEmpty(t, config.ScrapeRetryDelays())
		assert.Equal(t, []string{".page-body"}, config.Extract.Selectors)
		assert.Equal(t, 50, config.Extract.MinTextLength)
		assert.True(t, config.Extract.PlatformDetection)
		assert.Equal(t, main.ExtractorReadability, config.Blog.Extractor)
		assert.Equal(t, "/blog", config.Blog.Prefix)
		assert.Equal(t, []rewrite.Rule{{Name: "firm name", Pattern: "Smith Law Office", Replacement: "Smith Law Group", Literal: true}}, config.Rewrite.Rules)
		assert.Equal(t, "smithlaw", config.Vercel.Project)

		interval, err := config.ScrapeInterval()
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, interval)
	})

	t.Run("rejects malformed TOML", func(t *testing.T) {
		t.Parallel()

		_, err := main.ReadConfigFile(writeConfig(t, "[site\nsource_url ="))

		assert.Equal(t, sitekit.EINVALID, sitekit.ErrorCode(err))
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Parallel()

		tests := map[string]string{
			"duration":  "[scrape]\ninterval = \"soon\"\n",
			"negative":  "[scrape]\ntimeout = \"-1s\"\n",
			"pattern":   "[scrape]\ninclude = [\"(\"]\n",
			"extractor": "[blog]\nextractor = \"gpt\"\n",
		}
		for name, content := range tests {
			_, err := main.ReadConfigFile(writeConfig(t, content))
			assert.Equal(t, sitekit.EINVALID, sitekit.ErrorCode(err), name)
		}
	})
}

func TestConfig_URLFilter(t *testing.T) {
	t.Parallel()

	t.Run("nil without patterns", func(t *testing.T) {
		t.Parallel()

		config := main.DefaultConfig()

		filter, err := config.URLFilter()

		require.NoError(t, err)
		assert.Nil(t, filter)
	})

	t.Run("compiles include and exclude patterns", func(t *testing.T) {
		t.Parallel()

		config := main.DefaultConfig()
		config.Scrape.Include = []string{"smithlaw\\.com"}
		config.Scrape.Exclude = []string{"/wp-admin"}

		filter, err := config.URLFilter()

		require.NoError(t, err)
		assert.True(t, filter.Match("https://smithlaw.com/about"))
		assert.False(t, filter.Match("https://smithlaw.com/wp-admin/edit"))
		assert.False(t, filter.Match("https://other.com/about"))
	})
}

func TestConfig_RewriteRules(t *testing.T) {
	t.Parallel()

	t.Run("orders phone, domain, then custom rules", func(t *testing.T) {
		t.Parallel()

		config := main.DefaultConfig()
		config.Site.BaseURL = "https://smithlaw.com"
		config.Rewrite.Phone = main.PhoneConfig{Old: "555-123-4567", New: "(555) 987-6543"}
		config.Rewrite.Domain = main.DomainConfig{Old: "oldsmithlaw.com"}
		config.Rewrite.Rules = []rewrite.Rule{{Name: "custom", Pattern: "Esq\\.", Replacement: "Attorney"}}

		rules, err := config.RewriteRules()

		require.NoError(t, err)
		require.Len(t, rules, 4)
		assert.Equal(t, "phone link", rules[0].Name)
		assert.Equal(t, "phone number", rules[1].Name)
		assert.Equal(t, "https://smithlaw.com", rules[2].Replacement)
		assert.Equal(t, "custom", rules[3].Name)
	})

	t.Run("requires at least one rule", func(t *testing.T) {
		t.Parallel()

		config := main.DefaultConfig()

		_, err := config.RewriteRules()

		assert.Equal(t, sitekit.EINVALID, sitekit.ErrorCode(err))
	})

	t.Run("rewrite root defaults to the project directory", func(t *testing.T) {
		t.Parallel()

		config := main.DefaultConfig()
		assert.Equal(t, ".", config.RewriteRoot())

		config.Rewrite.Root = "web"
		assert.Equal(t, "web", config.RewriteRoot())
	})
}

package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/sitekit"
	main "github.com/fwojciec/sitekit/cmd/sitekit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lorem returns n characters of ordinary paragraph text.
func lorem(n int) string {
	const text = "Our attorneys have represented clients in criminal and family courts across the county for decades. "
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(text)
	}
	return b.String()[:n]
}

// run executes the CLI and returns its output.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	m := main.NewMain()
	defer m.Close()

	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	t.Run("prints usage and fails without a command", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout, "scrape")
		assert.Contains(t, stdout, "rebuild")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, "--help")

		require.NoError(t, err)
		assert.Contains(t, stdout, "Usage: sitekit")
	})

	t.Run("unknown command fails", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, "publish")

		require.Error(t, err)
	})
}

func TestMain_Run_HostingRequiresToken(t *testing.T) {
	t.Setenv("VERCEL_TOKEN", "")
	config := writeConfig(t, "[vercel]\nproject = \"smithlaw\"\n")

	_, stderr, err := run(t, "--config", config, "domains", "list")

	require.Error(t, err)
	assert.Equal(t, sitekit.EUNAUTHORIZED, sitekit.ErrorCode(err))
	assert.Contains(t, stderr, "VERCEL_TOKEN")
}

func TestMain_Run_InvalidConfig(t *testing.T) {
	t.Parallel()

	config := writeConfig(t, "[scrape]\ninterval = \"often\"\n")

	_, _, err := run(t, "--config", config, "rebuild")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestMain_Run_Admin(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "site.db")
	config := filepath.Join(t.TempDir(), "missing.toml")

	stdout, _, err := run(t, "--config", config, "--db", dbPath, "admin", "create", "Jane", "--password", "correct-horse")
	require.NoError(t, err)
	assert.Contains(t, stdout, `Created admin "jane"`)

	stdout, _, err = run(t, "--config", config, "--db", dbPath, "admin", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "jane")

	_, stderr, err := run(t, "--config", config, "--db", dbPath, "admin", "create", "jane", "--password", "another-pass")
	require.Error(t, err)
	assert.Equal(t, sitekit.ECONFLICT, sitekit.ErrorCode(err))
	assert.Contains(t, stderr, "already exists")
}

func TestMain_Run_RebuildAndRewrite(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	snapshot := filepath.Join(project, "snapshot")
	require.NoError(t, os.MkdirAll(filepath.Join(snapshot, "about"), 0755))
	body := "<p>" + lorem(300) + " Call (555) 123-4567 today.</p>"
	require.NoError(t, os.WriteFile(filepath.Join(snapshot, "about", "index.html"),
		[]byte(`<html><head><title>About</title></head><body><main>`+body+`</main></body></html>`), 0644))

	config := writeConfig(t, `
[site]
base_url = "https://smithlaw.com"
snapshot_dir = "`+filepath.ToSlash(snapshot)+`"
app_dir = "`+filepath.ToSlash(filepath.Join(project, "app"))+`"
project_dir = "`+filepath.ToSlash(project)+`"

[rewrite]
skip_dirs = ["snapshot"]

[rewrite.phone]
old = "555-123-4567"
new = "(555) 987-6543"
`)

	stdout, _, err := run(t, "--config", config, "rebuild")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 written")

	page := filepath.Join(project, "app", "about", "page.tsx")
	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(555) 123-4567")

	stdout, _, err = run(t, "--config", config, "rewrite", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "would rewrite")
	data, err = os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(555) 123-4567")

	stdout, _, err = run(t, "--config", config, "rewrite")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 changed")
	data, err = os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(555) 987-6543")
	assert.NotContains(t, string(data), "123-4567")

	stdout, _, err = run(t, "--config", config, "rewrite")
	require.NoError(t, err)
	assert.Contains(t, stdout, "0 changed")
}

package htmltomarkdown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "paragraph",
			html: `<p>Call us for a free consultation.</p>`,
			want: []string{"Call us for a free consultation."},
		},
		{
			name: "headings",
			html: `<h1>Probate</h1><h2>Timeline</h2><h3>Filing</h3>`,
			want: []string{"# Probate", "## Timeline", "### Filing"},
		},
		{
			name: "links",
			html: `<p>Read our <a href="https://smithlaw.com/faq">FAQ</a> first.</p>`,
			want: []string{"[FAQ](https://smithlaw.com/faq)"},
		},
		{
			name: "unordered list",
			html: `<ul><li>Citation</li><li>Release papers</li></ul>`,
			want: []string{"- Citation", "- Release papers"},
		},
		{
			name: "ordered list",
			html: `<ol><li>Request a hearing</li><li>Hire counsel</li></ol>`,
			want: []string{"1. Request a hearing", "2. Hire counsel"},
		},
		{
			name: "emphasis",
			html: `<p><strong>Do not</strong> discuss your case <em>online</em>.</p>`,
			want: []string{"**Do not**", "*online*"},
		},
		{
			name: "blockquote",
			html: `<blockquote><p>They fought for us every step.</p></blockquote>`,
			want: []string{"> They fought for us every step."},
		},
		{
			name: "table",
			html: `<table>
<thead><tr><th>Filing</th><th>Fee</th></tr></thead>
<tbody><tr><td>Petition</td><td>435</td></tr></tbody>
</table>`,
			// Table cells may have padding for alignment
			want: []string{"Filing", "Fee", "Petition", "|", "---"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md, err := htmltomarkdown.NewConverter().Convert(tt.html)

			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, md, want)
			}
		})
	}
}

func TestConverter_Convert_EndsWithSingleNewline(t *testing.T) {
	t.Parallel()

	md, err := htmltomarkdown.NewConverter().Convert("<div>\n<p>One.</p>\n\n<p>Two.</p>\n</div>\n\n")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(md, "Two.\n"))
	assert.False(t, strings.HasSuffix(md, "\n\n"))
}

func TestConverter_Convert_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := htmltomarkdown.NewConverter().Convert(" \n ")

	require.Error(t, err)
	assert.Equal(t, sitekit.EINVALID, sitekit.ErrorCode(err))
}

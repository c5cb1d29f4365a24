// Package jsx renders extracted content as Next.js App Router page
// components.
package jsx

import (
	"strings"

	"github.com/fwojciec/sitekit"
)

// EscapeTemplateLiteral escapes s so that it can be placed between the
// backticks of a JavaScript template literal and evaluate back to s.
func EscapeTemplateLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/16)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '`':
			b.WriteString("\\`")
		case '$':
			if i+1 < len(s) && s[i+1] == '{' {
				b.WriteString(`\$`)
			} else {
				b.WriteByte(c)
			}
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// UnescapeTemplateLiteral evaluates the body of a template literal that
// contains no substitutions. It accepts the escapes produced by
// EscapeTemplateLiteral plus \t, and rejects substitutions, stray
// backticks and any other escape sequence.
func UnescapeTemplateLiteral(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '`':
			return "", sitekit.Errorf(sitekit.EINVALID, "unescaped backtick at offset %d", i)
		case c == '$' && i+1 < len(s) && s[i+1] == '{':
			return "", sitekit.Errorf(sitekit.EINVALID, "substitution at offset %d", i)
		case c != '\\':
			b.WriteByte(c)
			continue
		}

		if i+1 >= len(s) {
			return "", sitekit.Errorf(sitekit.EINVALID, "trailing backslash")
		}
		i++
		switch s[i] {
		case '\\', '`', '$':
			b.WriteByte(s[i])
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			return "", sitekit.Errorf(sitekit.EINVALID, "unsupported escape \\%c at offset %d", s[i], i-1)
		}
	}
	return b.String(), nil
}

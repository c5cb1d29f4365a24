package jsx

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"
	"unicode"

	"github.com/fwojciec/sitekit"
)

// pageTemplate is the page component written for every route. It must not
// contain anything that varies between runs with the same input.
var pageTemplate = template.Must(template.New("page").Delims("[[", "]]").Funcs(template.FuncMap{
	"js": jsString,
}).Parse(`import type { Metadata } from "next";

export const metadata: Metadata = {
  title: [[js .Meta.Title]],
  description: [[js .Meta.Description]],
  alternates: {
    canonical: [[js .Meta.Canonical]],
  },
};

const content = ` + "`[[.Markup]]`" + `;

export default function [[.Component]]() {
  return (
    <main className="page-content" dangerouslySetInnerHTML={{ __html: content }} />
  );
}
`))

// contentPrefix and contentSuffix delimit the escaped content blob in a
// rendered page.
const (
	contentPrefix = "const content = `"
	contentSuffix = "`;\n"
)

// Renderer renders page components.
type Renderer struct {
	// BaseURL of the new site. Used to derive canonical URLs for pages whose
	// metadata has none. May be empty.
	BaseURL string
}

// NewRenderer creates a new Renderer.
func NewRenderer(baseURL string) *Renderer {
	return &Renderer{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// Render returns the page component source for route.
// The route must already be cleaned with sitekit.CleanRoute.
func (r *Renderer) Render(route string, content *sitekit.Content) ([]byte, error) {
	if content == nil {
		return nil, sitekit.Errorf(sitekit.EINVALID, "content required")
	}

	meta := content.Meta
	if meta.Canonical == "" && r.BaseURL != "" {
		meta.Canonical = r.canonicalFor(route)
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Meta      sitekit.Metadata
		Markup    string
		Component string
	}{
		Meta:      meta,
		Markup:    EscapeTemplateLiteral(content.Markup),
		Component: ComponentName(route),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) canonicalFor(route string) string {
	if route == "/" {
		return r.BaseURL + "/"
	}
	return r.BaseURL + route
}

// ContentLiteral returns the escaped content blob of a rendered page,
// exactly as it appears between the backticks. The escaped blob never holds
// an unescaped backtick, so the last prefix is the real one even when the
// metadata strings contain the same text.
func ContentLiteral(page []byte) (string, error) {
	s := string(page)
	start := strings.LastIndex(s, contentPrefix)
	if start < 0 {
		return "", sitekit.Errorf(sitekit.EINVALID, "page has no content literal")
	}
	s = s[start+len(contentPrefix):]
	end := strings.Index(s, contentSuffix)
	if end < 0 {
		return "", sitekit.Errorf(sitekit.EINVALID, "content literal is not terminated")
	}
	return s[:end], nil
}

// ComponentName derives the component function name from a route:
// "/practice-areas/dui" becomes "PracticeAreasDuiPage" and "/" becomes "HomePage".
func ComponentName(route string) string {
	var b strings.Builder
	for _, seg := range sitekit.RouteSegments(route) {
		upper := true
		for _, r := range seg {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				upper = true
				continue
			}
			if r > unicode.MaxASCII {
				continue
			}
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}
			b.WriteRune(r)
		}
	}

	name := b.String()
	if name == "" {
		return "HomePage"
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "Page" + name
	}
	return name + "Page"
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

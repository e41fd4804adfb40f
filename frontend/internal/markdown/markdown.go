// Package markdown renders the hackathon description, which organizers
// write in Markdown, into HTML that is safe to embed in a page.
package markdown

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var tagRegex = regexp.MustCompile(`<[^>]*>`)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		// raw HTML passes through goldmark and is cleaned by the policy below
		goldmark.WithRendererOptions(html.WithUnsafe(), html.WithHardWraps()),
		goldmark.WithExtensions(extension.GFM),
	)

	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w-]+$`)).OnElements("code")
	p.RequireNoFollowOnLinks(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.AllowRelativeURLs(true)

	return &Renderer{md: md, policy: p}
}

// Render converts text to sanitized HTML. On a conversion error the text is
// returned escaped.
func (r *Renderer) Render(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text)), err
	}
	safe := r.policy.SanitizeBytes(buf.Bytes())
	return template.HTML(strings.TrimSpace(string(safe))), nil
}

// HasContent reports whether text renders to anything but whitespace.
func (r *Renderer) HasContent(text string) bool {
	rendered, err := r.Render(text)
	if err != nil {
		return strings.TrimSpace(text) != ""
	}
	return strings.TrimSpace(tagRegex.ReplaceAllString(string(rendered), "")) != ""
}

// Excerpt returns the first limit runes of the rendered text with markup
// stripped, for list previews.
func (r *Renderer) Excerpt(text string, limit int) string {
	rendered, err := r.Render(text)
	if err != nil {
		rendered = template.HTML(text)
	}
	plain := strings.Join(strings.Fields(tagRegex.ReplaceAllString(string(rendered), " ")), " ")
	plain = htmlUnescaper.Replace(plain)
	runes := []rune(plain)
	if limit <= 0 || len(runes) <= limit {
		return plain
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

var htmlUnescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&#34;", `"`, "&#39;", "'", "&quot;", `"`)

// Package markdown renders model output for browsers and strips markup from
// user supplied prompts.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts generated markdown to sanitized HTML and removes HTML
// from prompts before they are sent to a provider.
type Renderer interface {
	ToSafeHTML(markdown string) (string, error)
	StripMarkup(text string) string
}

type renderer struct {
	md     goldmark.Markdown
	output *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewRenderer() Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
	)

	output := bluemonday.UGCPolicy()
	output.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")

	return &renderer{
		md:     md,
		output: output,
		strict: bluemonday.StrictPolicy(),
	}
}

func (r *renderer) ToSafeHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return r.output.Sanitize(buf.String()), nil
}

// StripMarkup drops every tag and decodes the entities bluemonday escapes,
// so "Q&A <b>pricing</b>" becomes "Q&A pricing".
func (r *renderer) StripMarkup(text string) string {
	return strings.TrimSpace(html.UnescapeString(r.strict.Sanitize(text)))
}

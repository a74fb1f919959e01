// Package report converts the pipeline's markdown output into HTML that
// is safe to embed in the result page.
package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// The model's output is untrusted text; whatever HTML it smuggles through
// markdown gets stripped before rendering.
var sanitizer = bluemonday.UGCPolicy()

// RenderHTML converts markdown to sanitized HTML, ready for direct
// template embedding.
func RenderHTML(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("report: rendering markdown: %w", err)
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil //nolint:gosec // sanitized above
}

// Package htmltomarkdown converts page HTML to markdown for persisted
// document content and search-result previews.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/fwojciec/docdex"
)

// Ensure Converter implements docdex.Converter at compile time.
var _ docdex.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docdex.Errorf(docdex.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}

// Excerpt returns a single-line preview of markdown content, truncated to
// at most n runes.
func Excerpt(markdown string, n int) string {
	fields := strings.Fields(markdown)
	line := strings.Join(fields, " ")
	runes := []rune(line)
	if len(runes) <= n {
		return line
	}
	if n <= 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

// Package trafilatura provides main-content extraction for theme-heavy
// documentation pages, stripping navigation and chrome that would otherwise
// pollute the term index. It does not detect declared objects; pair it with
// sites where object extraction is not needed.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/fwojciec/docdex"
)

// Ensure Extractor implements docdex.Extractor at compile time.
var _ docdex.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main content of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and main content
// text.
func (e *Extractor) Extract(rawHTML string) (*docdex.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var text string
	if result.ContentNode != nil {
		text = nodeText(result.ContentNode)
	}

	return &docdex.ExtractResult{
		Title: result.Metadata.Title,
		Text:  text,
	}, nil
}

// nodeText collects the text content of a node tree, separating block
// boundaries with spaces.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

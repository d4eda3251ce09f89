package docdex

import (
	"context"
	"regexp"
)

// Page represents a fetched documentation page before indexing.
type Page struct {
	// URL is the page's source location: an http(s) URL or a local path.
	URL string

	// DocName is the page's document identifier within the index, derived
	// from the URL or relative file path without its extension.
	DocName string

	// Filename is the source file path recorded in the index.
	Filename string

	// HTML is the raw page markup.
	HTML string
}

// ExtractResult is the indexable content pulled out of one page.
type ExtractResult struct {
	Title   string
	Text    string
	Objects []PageObject
}

// PageObject is a symbol declared on a page, e.g. a documented function.
type PageObject struct {
	// Name is the fully qualified symbol name.
	Name string

	// Type describes the symbol kind.
	Type ObjectType

	// Anchor is the page fragment for the symbol. Empty means the fragment
	// equals Name.
	Anchor string

	// Priority controls search prominence; see the Priority constants.
	Priority int
}

// URLFilter restricts discovered URLs with include patterns.
// A nil filter, or one with no patterns, matches everything.
type URLFilter struct {
	Include []*regexp.Regexp
}

// Match reports whether the URL passes the filter.
func (f *URLFilter) Match(url string) bool {
	if f == nil || len(f.Include) == 0 {
		return true
	}
	for _, re := range f.Include {
		if re.MatchString(url) {
			return true
		}
	}
	return false
}

// URLSource discovers documentation page URLs from a source location.
// Implementations hide sitemap discovery vs directory walking.
type URLSource interface {
	Discover(ctx context.Context, sourceURL string, filter *URLFilter) ([]string, error)
}

// Fetcher retrieves raw page markup.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	Close() error
}

// Extractor pulls indexable content out of raw page markup.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter transforms page markup into markdown for storage.
type Converter interface {
	Convert(html string) (string, error)
}

// DomainLimiter rate-limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	Wait(ctx context.Context, domain string) error
}

// Package mock provides hand-written mock implementations of docdex
// service interfaces for tests.
package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of docdex.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, sourceURL string, filter *docdex.URLFilter) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, sourceURL string, filter *docdex.URLFilter) ([]string, error) {
	return s.DiscoverFn(ctx, sourceURL, filter)
}

var _ docdex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docdex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ docdex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docdex.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docdex.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docdex.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ docdex.Converter = (*Converter)(nil)

// Converter is a mock implementation of docdex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ docdex.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of docdex.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opt docdex.SearchOptions) ([]docdex.Hit, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opt docdex.SearchOptions) ([]docdex.Hit, error) {
	return s.SearchFn(ctx, query, opt)
}

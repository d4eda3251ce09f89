// Package build generates documentation search indexes. It coordinates URL
// discovery, fetching, content extraction, and assembly of the index
// structure, and optionally persists fetched pages as documents.
package build

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/bloom"
	"github.com/fwojciec/docdex/search"
)

// Builder orchestrates index builds.
type Builder struct {
	Source      docdex.URLSource
	Fetcher     docdex.Fetcher
	Extractor   docdex.Extractor
	Converter   docdex.Converter       // optional; enables markdown document persistence
	Documents   docdex.DocumentService // optional; receives fetched pages
	RateLimiter docdex.DomainLimiter   // optional
	Concurrency int
	RetryDelays []time.Duration
	StopWords   map[string]struct{} // extra stop words beyond the built-in list
	EnvVersion  map[string]int      // defaults to docdex.DefaultEnvVersion()
}

// Result holds the outcome of a build.
type Result struct {
	Indexed int // pages included in the index
	Failed  int // pages that could not be fetched or extracted
	Saved   int // documents persisted
	Bytes   int // total extracted text bytes
}

// ProgressEvent reports progress during a build.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single page.
type pageResult struct {
	position   int
	url        string
	docName    string
	filename   string
	title      string
	markdown   string
	terms      []string
	titleTerms []string
	objects    []docdex.PageObject
	err        error
}

// BuildProject builds the index for a project, reconstructing the URL
// filter from the project's stored patterns and persisting fetched pages
// when a document service is configured.
func (b *Builder) BuildProject(ctx context.Context, project *docdex.Project, progress ProgressFunc) (*docdex.Index, *Result, error) {
	var urlFilter *docdex.URLFilter
	if project.Filter != "" {
		urlFilter = &docdex.URLFilter{}
		for _, pattern := range strings.Split(project.Filter, "\n") {
			if pattern == "" {
				continue
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
			}
			urlFilter.Include = append(urlFilter.Include, re)
		}
	}
	return b.build(ctx, project, project.SourceURL, urlFilter, progress)
}

// Build builds an index directly from a source URL, without a project.
func (b *Builder) Build(ctx context.Context, sourceURL string, filter *docdex.URLFilter, progress ProgressFunc) (*docdex.Index, *Result, error) {
	return b.build(ctx, nil, sourceURL, filter, progress)
}

func (b *Builder) build(ctx context.Context, project *docdex.Project, sourceURL string, filter *docdex.URLFilter, progress ProgressFunc) (*docdex.Index, *Result, error) {
	urls, err := b.Source.Discover(ctx, sourceURL, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("url discovery: %w", err)
	}

	// Deduplicate across sitemaps and discovery passes. A false positive
	// drops a page from the build, which the low rate makes acceptable.
	seen := bloom.NewFilter(uint(len(urls))+1, 1e-6)
	deduped := urls[:0]
	for _, u := range urls {
		if seen.Test(u) {
			continue
		}
		seen.Add(u)
		deduped = append(deduped, u)
	}
	urls = deduped

	if len(urls) == 0 {
		return nil, nil, docdex.Errorf(docdex.ENOTFOUND, "no pages discovered at %q", sourceURL)
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	resultCh := make(chan pageResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- b.processURL(gctx, i, sourceURL, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, len(urls))
	var failed int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			if result.err != nil {
				failed++
			}
			continue
		}
		if result.err != nil {
			failed++
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.url,
				Error:     result.err,
			})
		} else {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.url,
			})
		}
	}

	res := &Result{Failed: failed}
	for _, result := range results {
		if result.err != nil {
			continue
		}
		res.Indexed++
		res.Bytes += len(result.markdown)

		if project == nil || b.Documents == nil {
			continue
		}
		doc := &docdex.Document{
			ProjectID: project.ID,
			DocName:   result.docName,
			SourceURL: result.url,
			Title:     result.title,
			Content:   result.markdown,
			Position:  result.position,
		}
		if err := b.Documents.CreateDocument(ctx, doc); err != nil {
			res.Failed++
			continue
		}
		res.Saved++
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	envVersion := b.EnvVersion
	if envVersion == nil {
		envVersion = docdex.DefaultEnvVersion()
	}
	idx := assemble(results, envVersion)
	return idx, res, nil
}

// processURL fetches and extracts a single page.
func (b *Builder) processURL(ctx context.Context, position int, baseURL, pageURL string) pageResult {
	result := pageResult{position: position, url: pageURL}

	docName, filename, err := PageName(baseURL, pageURL)
	if err != nil {
		result.err = err
		return result
	}
	result.docName = docName
	result.filename = filename

	if b.RateLimiter != nil {
		if domain := urlDomain(pageURL); domain != "" {
			if err := b.RateLimiter.Wait(ctx, domain); err != nil {
				result.err = err
				return result
			}
		}
	}

	html, err := FetchWithRetryDelays(ctx, pageURL, b.Fetcher.Fetch, nil, b.RetryDelays)
	if err != nil {
		result.err = fmt.Errorf("fetch %s: %w", pageURL, err)
		return result
	}

	extracted, err := b.Extractor.Extract(html)
	if err != nil {
		result.err = fmt.Errorf("extract %s: %w", pageURL, err)
		return result
	}

	result.title = extracted.Title
	result.objects = extracted.Objects
	result.terms = search.TokenizeExtra(extracted.Text, b.StopWords)
	result.titleTerms = search.TokenizeExtra(extracted.Title, b.StopWords)

	if b.Converter != nil {
		markdown, err := b.Converter.Convert(html)
		if err != nil {
			result.err = fmt.Errorf("convert %s: %w", pageURL, err)
			return result
		}
		result.markdown = markdown
	} else {
		result.markdown = extracted.Text
	}

	return result
}

// urlDomain extracts the host from a URL, empty for local paths.
func urlDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

package main

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/build"
	"github.com/fwojciec/docdex/codec"
	"github.com/fwojciec/docdex/fs"
	"github.com/fwojciec/docdex/goquery"
	"github.com/fwojciec/docdex/htmltomarkdown"
	"github.com/fwojciec/docdex/http"
	dslog "github.com/fwojciec/docdex/slog"
	"github.com/fwojciec/docdex/trafilatura"
)

// BuildCmd builds a search index, either for a registered project (fetching
// over HTTP and persisting documents and the built index) or directly from a
// local directory of generated HTML.
type BuildCmd struct {
	Name string `arg:"" optional:"" help:"Project name. Omit when building with --dir."`

	Dir       string   `help:"Build from a local HTML directory instead of a project." type:"path"`
	Out       string   `short:"o" default:"searchindex.js" help:"Output path for the index file."`
	Config    string   `short:"c" help:"Path to a YAML build config (default: ./docdex.yaml if present)."`
	Filter    []string `short:"f" help:"URL include pattern (regexp) for --dir builds. Repeatable."`
	Extractor string   `default:"goquery" enum:"goquery,trafilatura" help:"Content extraction strategy."`

	Concurrency int     `default:"0" help:"Concurrent page fetches (default 10)."`
	RateLimit   float64 `default:"0" help:"Max requests per second per domain (default 2)."`

	Watch bool `short:"w" help:"Rebuild on file changes. Requires --dir."`
}

func (c *BuildCmd) Run(deps *Dependencies) error {
	if c.Name == "" && c.Dir == "" {
		return docdex.Errorf(docdex.EINVALID, "Specify a project name or --dir.")
	}
	if c.Name != "" && c.Dir != "" {
		return docdex.Errorf(docdex.EINVALID, "Specify either a project name or --dir, not both.")
	}
	if c.Watch && c.Dir == "" {
		return docdex.Errorf(docdex.EINVALID, "--watch requires --dir.")
	}

	cfg, err := LoadBuildConfig(c.Config)
	if err != nil {
		return err
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = cfg.Concurrency
	}
	rateLimit := c.RateLimit
	if rateLimit <= 0 {
		rateLimit = cfg.RateLimit
	}
	if rateLimit <= 0 {
		rateLimit = 2
	}

	var stopWords map[string]struct{}
	if len(cfg.StopWords) > 0 {
		stopWords = make(map[string]struct{}, len(cfg.StopWords))
		for _, w := range cfg.StopWords {
			stopWords[w] = struct{}{}
		}
	}

	var extractor docdex.Extractor
	switch c.Extractor {
	case "trafilatura":
		extractor = trafilatura.NewExtractor()
	default:
		extractor = goquery.NewExtractor()
	}

	builder := &build.Builder{
		Extractor:   extractor,
		Concurrency: concurrency,
		StopWords:   stopWords,
	}

	if c.Dir != "" {
		builder.Source = dslog.NewLoggingSource(fs.NewDirSource(), deps.Logger)
		builder.Fetcher = fs.NewFileFetcher()
		defer builder.Fetcher.Close()

		filter, err := compileFilter(append(cfg.Filters, c.Filter...))
		if err != nil {
			return err
		}

		buildOnce := func(ctx context.Context) error {
			idx, res, err := builder.Build(ctx, c.Dir, filter, c.progress(deps))
			if err != nil {
				return err
			}
			return c.writeIndex(deps, idx, res)
		}

		if c.Watch {
			if err := buildOnce(deps.Ctx); err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "Watching %s for changes...\n", c.Dir)
			w := &build.Watcher{Dir: c.Dir}
			if cfg.DebounceMs > 0 {
				w.Debounce = time.Duration(cfg.DebounceMs) * time.Millisecond
			}
			return w.Run(deps.Ctx, buildOnce)
		}
		return buildOnce(deps.Ctx)
	}

	project, err := findProjectByName(deps.Ctx, deps.Projects, c.Name)
	if err != nil {
		return err
	}

	builder.Source = dslog.NewLoggingSource(http.NewSitemapSource(nil), deps.Logger)
	builder.Fetcher = http.NewFetcher()
	defer builder.Fetcher.Close()
	builder.Converter = htmltomarkdown.NewConverter()
	builder.Documents = deps.Documents
	builder.RateLimiter = build.NewDomainLimiter(rateLimit)
	builder.RetryDelays = build.DefaultRetryDelays()

	// Replace the previous build's documents so positions stay aligned with
	// the new index.
	if err := deps.Documents.DeleteDocumentsByProject(deps.Ctx, project.ID); err != nil {
		return err
	}

	idx, res, err := builder.BuildProject(deps.Ctx, project, c.progress(deps))
	if err != nil {
		return err
	}

	payload, err := codec.EncodeIndex(codec.Default, idx)
	if err != nil {
		return err
	}
	rec := &docdex.IndexRecord{
		ProjectID:   project.ID,
		Codec:       codec.Default.Name(),
		Payload:     payload,
		DocCount:    idx.DocCount(),
		TermCount:   idx.TermCount(),
		ObjectCount: idx.ObjectCount(),
	}
	if err := deps.Indexes.CreateIndex(deps.Ctx, rec); err != nil {
		return err
	}

	if err := fs.WriteIndex(c.Out, payload); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Indexed %d pages (%d failed, %d documents saved) -> %s\n",
		res.Indexed, res.Failed, res.Saved, c.Out)
	return nil
}

// writeIndex encodes and writes the index for directory builds.
func (c *BuildCmd) writeIndex(deps *Dependencies, idx *docdex.Index, res *build.Result) error {
	payload, err := codec.EncodeIndex(codec.Default, idx)
	if err != nil {
		return err
	}
	if err := fs.WriteIndex(c.Out, payload); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Indexed %d pages (%d failed) -> %s\n", res.Indexed, res.Failed, c.Out)
	return nil
}

// progress reports failed pages on stderr as they happen.
func (c *BuildCmd) progress(deps *Dependencies) build.ProgressFunc {
	return func(event build.ProgressEvent) {
		if event.Type == build.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "warn: %s: %v\n", event.URL, event.Error)
		}
	}
}

// compileFilter compiles include patterns into a URL filter. Nil when no
// patterns are given, which matches everything.
func compileFilter(patterns []string) (*docdex.URLFilter, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	filter := &docdex.URLFilter{}
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, docdex.Errorf(docdex.EINVALID, "Invalid filter pattern %q.", pattern)
		}
		filter.Include = append(filter.Include, re)
	}
	return filter, nil
}

package build_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/build"
	"github.com/fwojciec/docdex/mock"
)

const baseURL = "https://example.com/docs/"

// fixedSource returns the given URLs for any discovery request.
func fixedSource(urls ...string) *mock.URLSource {
	return &mock.URLSource{
		DiscoverFn: func(ctx context.Context, sourceURL string, filter *docdex.URLFilter) ([]string, error) {
			return urls, nil
		},
	}
}

func TestBuilderBuild(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("assembles an index ordered by document name", func(t *testing.T) {
		t.Parallel()

		pages := map[string]struct {
			title   string
			text    string
			objects []docdex.PageObject
		}{
			baseURL + "pyform.returns.html": {
				title: "pyform.returns module",
				text:  "annualized_return computes the annualized return for pyform",
				objects: []docdex.PageObject{
					{
						Name:     "pyform.returns",
						Type:     docdex.ObjectType{Domain: "py", Name: "module", Display: "Python module"},
						Anchor:   "module-pyform.returns",
						Priority: docdex.PriorityImportant,
					},
					{
						Name:     "pyform.returns.annualized_return",
						Type:     docdex.ObjectType{Domain: "py", Name: "function", Display: "Python function"},
						Priority: docdex.PriorityDefault,
					},
				},
			},
			baseURL + "index.html": {
				title: "pyform documentation",
				text:  "pyform documentation and guides",
			},
		}

		builder := &build.Builder{
			// Reversed discovery order must not change the result.
			Source: fixedSource(baseURL+"pyform.returns.html", baseURL+"index.html"),
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) { return url, nil },
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*docdex.ExtractResult, error) {
					page := pages[html]
					return &docdex.ExtractResult{Title: page.title, Text: page.text, Objects: page.objects}, nil
				},
			},
		}

		idx, res, err := builder.Build(ctx, baseURL, nil, nil)
		require.NoError(t, err)
		require.NoError(t, idx.Validate())

		assert.Equal(t, 2, res.Indexed)
		assert.Zero(t, res.Failed)

		assert.Equal(t, []string{"index", "pyform.returns"}, idx.DocNames)
		assert.Equal(t, []string{"index.html", "pyform.returns.html"}, idx.Filenames)
		assert.Equal(t, []string{"pyform documentation", "pyform.returns module"}, idx.Titles)

		// Type codes follow sorted qualified names: py:function before
		// py:module.
		assert.Equal(t, "py:function", idx.ObjTypes[0])
		assert.Equal(t, "py:module", idx.ObjTypes[1])

		module := idx.Objects[""]["pyform.returns"]
		assert.Equal(t, 1, module.Doc)
		assert.Equal(t, "module-pyform.returns", module.Anchor)

		fn := idx.Objects["pyform.returns"]["annualized_return"]
		assert.Equal(t, 1, fn.Doc)
		assert.Equal(t, 0, fn.TypeCode)
		assert.Equal(t, "", fn.Anchor)

		assert.Equal(t, docdex.DocRefs{1}, idx.Terms["annualized_return"])
		assert.Equal(t, docdex.DocRefs{0, 1}, idx.Terms["pyform"])
		assert.Equal(t, docdex.DocRefs{0}, idx.Terms["documentation"])
		assert.Equal(t, docdex.DocRefs{0}, idx.TitleTerms["documentation"])
	})

	t.Run("deduplicates discovered URLs", func(t *testing.T) {
		t.Parallel()

		fetched := 0
		builder := &build.Builder{
			Source: fixedSource(baseURL+"a.html", baseURL+"a.html", baseURL+"b.html"),
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					fetched++
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*docdex.ExtractResult, error) {
					return &docdex.ExtractResult{Title: "t", Text: "content"}, nil
				},
			},
			Concurrency: 1,
		}

		idx, res, err := builder.Build(ctx, baseURL, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, fetched)
		assert.Equal(t, 2, res.Indexed)
		assert.Equal(t, []string{"a", "b"}, idx.DocNames)
	})

	t.Run("failed pages are skipped and reported", func(t *testing.T) {
		t.Parallel()

		builder := &build.Builder{
			Source: fixedSource(baseURL+"good.html", baseURL+"bad.html"),
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					if url == baseURL+"bad.html" {
						return "", errors.New("500")
					}
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*docdex.ExtractResult, error) {
					return &docdex.ExtractResult{Title: "good", Text: "content"}, nil
				},
			},
		}

		var failures []string
		progress := func(event build.ProgressEvent) {
			if event.Type == build.ProgressFailed {
				failures = append(failures, event.URL)
			}
		}

		idx, res, err := builder.Build(ctx, baseURL, nil, progress)
		require.NoError(t, err)

		assert.Equal(t, 1, res.Indexed)
		assert.Equal(t, 1, res.Failed)
		assert.Equal(t, []string{"good"}, idx.DocNames)
		assert.Equal(t, []string{baseURL + "bad.html"}, failures)
	})

	t.Run("returns ENOTFOUND when nothing is discovered", func(t *testing.T) {
		t.Parallel()

		builder := &build.Builder{Source: fixedSource()}
		_, _, err := builder.Build(ctx, baseURL, nil, nil)
		require.Error(t, err)
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})
}

func TestBuilderBuildProject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("persists converted documents in page order", func(t *testing.T) {
		t.Parallel()

		var saved []*docdex.Document
		builder := &build.Builder{
			Source: fixedSource(baseURL+"a.html", baseURL+"b.html"),
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) { return "<p>" + url + "</p>", nil },
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*docdex.ExtractResult, error) {
					return &docdex.ExtractResult{Title: "t", Text: "content"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) { return "markdown of " + html, nil },
			},
			Documents: &mock.DocumentService{
				CreateDocumentFn: func(ctx context.Context, doc *docdex.Document) error {
					saved = append(saved, doc)
					return nil
				},
			},
		}

		project := &docdex.Project{ID: "p1", Name: "pyform", SourceURL: baseURL}
		_, res, err := builder.BuildProject(ctx, project, nil)
		require.NoError(t, err)

		assert.Equal(t, 2, res.Saved)
		require.Len(t, saved, 2)
		for _, doc := range saved {
			assert.Equal(t, "p1", doc.ProjectID)
			assert.Contains(t, doc.Content, "markdown of")
		}
		positions := []int{saved[0].Position, saved[1].Position}
		assert.ElementsMatch(t, []int{0, 1}, positions)
	})

	t.Run("applies the stored URL filter", func(t *testing.T) {
		t.Parallel()

		var gotFilter *docdex.URLFilter
		builder := &build.Builder{
			Source: &mock.URLSource{
				DiscoverFn: func(ctx context.Context, sourceURL string, filter *docdex.URLFilter) ([]string, error) {
					gotFilter = filter
					return []string{baseURL + "api/a.html"}, nil
				},
			},
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) { return "<html></html>", nil },
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*docdex.ExtractResult, error) {
					return &docdex.ExtractResult{Title: "t", Text: "content"}, nil
				},
			},
		}

		project := &docdex.Project{ID: "p1", Name: "pyform", SourceURL: baseURL, Filter: "/api/\n"}
		_, _, err := builder.BuildProject(ctx, project, nil)
		require.NoError(t, err)

		require.NotNil(t, gotFilter)
		assert.True(t, gotFilter.Match(baseURL+"api/a.html"))
		assert.False(t, gotFilter.Match(baseURL+"guide.html"))
	})

	t.Run("rejects invalid filter patterns", func(t *testing.T) {
		t.Parallel()

		builder := &build.Builder{Source: fixedSource()}
		project := &docdex.Project{ID: "p1", Name: "pyform", SourceURL: baseURL, Filter: "[invalid"}
		_, _, err := builder.BuildProject(ctx, project, nil)
		assert.Error(t, err)
	})
}

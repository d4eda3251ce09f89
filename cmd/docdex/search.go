package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/htmltomarkdown"
	"github.com/fwojciec/docdex/search"
	dslog "github.com/fwojciec/docdex/slog"
)

// SearchCmd runs a ranked free-text lookup against a built index.
type SearchCmd struct {
	Query string `arg:"" help:"Search query. All terms must match; the last matches as a prefix."`

	Index   string `short:"i" help:"Path to a searchindex.js file." type:"path"`
	Project string `short:"p" help:"Name of a project with a stored index."`
	Limit   int    `short:"n" default:"10" help:"Maximum number of results."`
	Excerpt bool   `help:"Show a content excerpt per hit. Requires --project."`
}

func (c *SearchCmd) Run(deps *Dependencies) error {
	if c.Excerpt && c.Project == "" {
		return docdex.Errorf(docdex.EINVALID, "--excerpt requires --project.")
	}

	idx, err := loadIndex(deps, c.Index, c.Project)
	if err != nil {
		return err
	}

	searcher, err := search.NewSearcher(idx)
	if err != nil {
		return err
	}
	var svc docdex.SearchService = dslog.NewLoggingSearchService(searcher, deps.Logger)

	hits, err := svc.Search(deps.Ctx, c.Query, docdex.SearchOptions{Limit: c.Limit})
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	var project *docdex.Project
	if c.Excerpt {
		if project, err = findProjectByName(deps.Ctx, deps.Projects, c.Project); err != nil {
			return err
		}
	}

	for i, hit := range hits {
		title := hit.Title
		if title == "" {
			title = hit.DocName
		}
		fmt.Fprintf(deps.Stdout, "%d. %s (%s) score=%.0f\n", i+1, title, hit.DocName, hit.Score)
		if project != nil {
			if excerpt := c.excerptFor(deps, project.ID, hit.DocName); excerpt != "" {
				fmt.Fprintf(deps.Stdout, "   %s\n", excerpt)
			}
		}
	}
	return nil
}

// excerptFor returns a one-line excerpt of the stored document, empty when
// no document is stored for the doc name.
func (c *SearchCmd) excerptFor(deps *Dependencies, projectID, docName string) string {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, docdex.DocumentFilter{
		ProjectID: &projectID,
		DocName:   &docName,
		Limit:     1,
	})
	if err != nil || len(docs) == 0 {
		return ""
	}
	return htmltomarkdown.Excerpt(docs[0].Content, 120)
}

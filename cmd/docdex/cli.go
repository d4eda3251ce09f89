package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/codec"
	"github.com/fwojciec/docdex/sqlite"
)

// CLI defines the command-line interface structure.
type CLI struct {
	Verbose bool `short:"v" help:"Enable informational logging on stderr."`

	Add      AddCmd      `cmd:"" help:"Register a documentation project."`
	List     ListCmd     `cmd:"" help:"List registered projects."`
	Delete   DeleteCmd   `cmd:"" help:"Delete a project and its stored documents and indexes."`
	Build    BuildCmd    `cmd:"" help:"Build a search index from a project or a local directory."`
	Search   SearchCmd   `cmd:"" help:"Search a built index."`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve an API object name to its document and fragment."`
	Validate ValidateCmd `cmd:"" help:"Check an index file for structural problems."`
	Stats    StatsCmd    `cmd:"" help:"Print summary statistics for an index."`
}

// Dependencies holds the services commands run against.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB        *sqlite.DB
	Projects  docdex.ProjectService
	Documents docdex.DocumentService
	Indexes   docdex.IndexService
}

// findProjectByName returns the project with the given name.
func findProjectByName(ctx context.Context, projects docdex.ProjectService, name string) (*docdex.Project, error) {
	matches, err := projects.FindProjects(ctx, docdex.ProjectFilter{Name: &name})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "Project %q not found.", name)
	}
	return matches[0], nil
}

// loadIndex loads an index either from a file on disk or from the latest
// stored build of a named project. Exactly one of indexPath and projectName
// must be set.
func loadIndex(deps *Dependencies, indexPath, projectName string) (*docdex.Index, error) {
	switch {
	case indexPath != "" && projectName != "":
		return nil, docdex.Errorf(docdex.EINVALID, "Specify either --index or --project, not both.")
	case indexPath != "":
		payload, err := os.ReadFile(indexPath)
		if err != nil {
			return nil, docdex.Errorf(docdex.ENOTFOUND, "Cannot read index file %q.", indexPath)
		}
		return codec.DecodeIndex(codec.Default, payload)
	case projectName != "":
		project, err := findProjectByName(deps.Ctx, deps.Projects, projectName)
		if err != nil {
			return nil, err
		}
		rec, err := deps.Indexes.FindLatestIndex(deps.Ctx, project.ID)
		if err != nil {
			return nil, err
		}
		c, ok := codec.ByName(rec.Codec)
		if !ok {
			return nil, docdex.Errorf(docdex.EINTERNAL, "Stored index uses unknown codec %q.", rec.Codec)
		}
		return codec.DecodeIndex(c, rec.Payload)
	default:
		return nil, docdex.Errorf(docdex.EINVALID, "Specify --index or --project.")
	}
}

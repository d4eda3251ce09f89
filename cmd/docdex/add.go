package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docdex"
)

// AddCmd registers a new documentation project.
type AddCmd struct {
	Name   string   `arg:"" help:"Project name, e.g. 'pyform'."`
	URL    string   `arg:"" help:"Root URL of the documentation site."`
	Filter []string `short:"f" help:"URL include pattern (regexp). Repeatable; empty means all pages."`
}

func (c *AddCmd) Run(deps *Dependencies) error {
	project := &docdex.Project{
		Name:      c.Name,
		SourceURL: c.URL,
		Filter:    strings.Join(c.Filter, "\n"),
	}
	if err := deps.Projects.CreateProject(deps.Ctx, project); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Added project %q (%s)\n", project.Name, project.ID)
	return nil
}

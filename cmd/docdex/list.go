package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/docdex"
)

// ListCmd lists registered projects.
type ListCmd struct{}

func (c *ListCmd) Run(deps *Dependencies) error {
	projects, err := deps.Projects.FindProjects(deps.Ctx, docdex.ProjectFilter{})
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintln(deps.Stdout, "No projects registered. Run 'docdex add' to add one.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tURL\tUPDATED")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.SourceURL, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

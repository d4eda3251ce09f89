package main

import (
	"fmt"
)

// DeleteCmd deletes a project along with its documents and stored indexes.
type DeleteCmd struct {
	Name string `arg:"" help:"Name of the project to delete."`
}

func (c *DeleteCmd) Run(deps *Dependencies) error {
	project, err := findProjectByName(deps.Ctx, deps.Projects, c.Name)
	if err != nil {
		return err
	}
	if err := deps.Projects.DeleteProject(deps.Ctx, project.ID); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted project %q\n", c.Name)
	return nil
}

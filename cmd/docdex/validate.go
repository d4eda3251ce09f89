package main

import (
	"fmt"
)

// ValidateCmd checks an index for structural problems.
type ValidateCmd struct {
	Index   string `short:"i" help:"Path to a searchindex.js file." type:"path"`
	Project string `short:"p" help:"Name of a project with a stored index."`
}

func (c *ValidateCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps, c.Index, c.Project)
	if err != nil {
		return err
	}
	if err := idx.Validate(); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "OK: %d documents, %d terms, %d objects\n",
		idx.DocCount(), idx.TermCount(), idx.ObjectCount())
	return nil
}

package main

import (
	"fmt"
)

// ResolveCmd maps a fully qualified API object name to its document and
// page fragment.
type ResolveCmd struct {
	Name string `arg:"" help:"Fully qualified object name, e.g. 'pyform.returns.annualized_return'."`

	Index   string `short:"i" help:"Path to a searchindex.js file." type:"path"`
	Project string `short:"p" help:"Name of a project with a stored index."`
}

func (c *ResolveCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps, c.Index, c.Project)
	if err != nil {
		return err
	}

	loc, err := idx.Resolve(c.Name)
	if err != nil {
		return err
	}

	target := loc.DocName
	if loc.Fragment != "" {
		target += "#" + loc.Fragment
	}
	fmt.Fprintf(deps.Stdout, "%s\t%s\t%s\n", c.Name, loc.KindDisplay, target)
	return nil
}

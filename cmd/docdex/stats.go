package main

import (
	"fmt"
	"sort"
	"text/tabwriter"
)

// StatsCmd prints summary statistics for an index.
type StatsCmd struct {
	Index   string `short:"i" help:"Path to a searchindex.js file." type:"path"`
	Project string `short:"p" help:"Name of a project with a stored index."`
}

func (c *StatsCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps, c.Index, c.Project)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "documents\t%d\n", idx.DocCount())
	fmt.Fprintf(w, "terms\t%d\n", idx.TermCount())
	fmt.Fprintf(w, "title terms\t%d\n", len(idx.TitleTerms))
	fmt.Fprintf(w, "objects\t%d\n", idx.ObjectCount())

	// Object counts per kind, most common first.
	kindCounts := make(map[string]int)
	for _, members := range idx.Objects {
		for _, entry := range members {
			kindCounts[idx.ObjTypes[entry.TypeCode]]++
		}
	}
	kinds := make([]string, 0, len(kindCounts))
	for kind := range kindCounts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if kindCounts[kinds[i]] != kindCounts[kinds[j]] {
			return kindCounts[kinds[i]] > kindCounts[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	for _, kind := range kinds {
		fmt.Fprintf(w, "  %s\t%d\n", kind, kindCounts[kind])
	}
	return w.Flush()
}

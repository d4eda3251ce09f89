package build

import (
	"sort"

	"github.com/fwojciec/docdex"
)

// assemble turns processed pages into an index. Pages are ordered by
// ascending document name so repeated builds over the same content produce
// identical output; failed pages are skipped.
func assemble(results []pageResult, envVersion map[string]int) *docdex.Index {
	pages := make([]pageResult, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			continue
		}
		pages = append(pages, r)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].docName < pages[j].docName })

	idx := &docdex.Index{
		DocNames:   make([]string, len(pages)),
		Filenames:  make([]string, len(pages)),
		Titles:     make([]string, len(pages)),
		EnvVersion: envVersion,
		Objects:    make(map[string]map[string]docdex.ObjectEntry),
		ObjNames:   make(map[int]docdex.ObjectType),
		ObjTypes:   make(map[int]string),
		Terms:      make(map[string]docdex.DocRefs),
		TitleTerms: make(map[string]docdex.DocRefs),
	}

	terms := make(map[string]map[int]struct{})
	titleTerms := make(map[string]map[int]struct{})
	types := make(map[string]docdex.ObjectType)

	type pendingObject struct {
		doc int
		obj docdex.PageObject
	}
	var objects []pendingObject

	for i, page := range pages {
		idx.DocNames[i] = page.docName
		idx.Filenames[i] = page.filename
		idx.Titles[i] = page.title

		for _, term := range page.terms {
			addRef(terms, term, i)
		}
		for _, term := range page.titleTerms {
			addRef(titleTerms, term, i)
		}
		for _, obj := range page.objects {
			types[obj.Type.Qualified()] = obj.Type
			objects = append(objects, pendingObject{doc: i, obj: obj})
		}
	}

	// Dense type codes in sorted qualified-name order, so the code
	// assignment does not depend on page processing order.
	qualified := make([]string, 0, len(types))
	for q := range types {
		qualified = append(qualified, q)
	}
	sort.Strings(qualified)
	codes := make(map[string]int, len(qualified))
	for code, q := range qualified {
		codes[q] = code
		idx.ObjNames[code] = types[q]
		idx.ObjTypes[code] = q
	}

	for _, p := range objects {
		container, member := splitObjectName(p.obj.Name, p.obj.Type)
		members, ok := idx.Objects[container]
		if !ok {
			members = make(map[string]docdex.ObjectEntry)
			idx.Objects[container] = members
		}
		members[member] = docdex.ObjectEntry{
			Doc:      p.doc,
			TypeCode: codes[p.obj.Type.Qualified()],
			Priority: p.obj.Priority,
			Anchor:   p.obj.Anchor,
		}
	}

	idx.Terms = collapseRefs(terms)
	idx.TitleTerms = collapseRefs(titleTerms)
	return idx
}

// splitObjectName places an object in its container. Modules keep their full
// dotted name under the top-level container; everything else splits at the
// last dot.
func splitObjectName(name string, typ docdex.ObjectType) (container, member string) {
	if typ.Name == "module" {
		return "", name
	}
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return "", name
}

func addRef(m map[string]map[int]struct{}, term string, doc int) {
	refs, ok := m[term]
	if !ok {
		refs = make(map[int]struct{})
		m[term] = refs
	}
	refs[doc] = struct{}{}
}

// collapseRefs converts accumulated reference sets into ascending DocRefs.
func collapseRefs(m map[string]map[int]struct{}) map[string]docdex.DocRefs {
	out := make(map[string]docdex.DocRefs, len(m))
	for term, set := range m {
		refs := make(docdex.DocRefs, 0, len(set))
		for doc := range set {
			refs = append(refs, doc)
		}
		sort.Ints(refs)
		out[term] = refs
	}
	return out
}

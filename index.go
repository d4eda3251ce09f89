package docdex

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Object entry priorities, controlling how prominently an object surfaces
// in search results. PriorityHidden objects are resolvable but never
// returned by free-text search.
const (
	PriorityImportant   = 0
	PriorityDefault     = 1
	PriorityUnimportant = 2
	PriorityHidden      = -1
)

// Index is a documentation search index: the payload a documentation build
// emits once and a search widget consumes read-only. DocNames, Filenames
// and Titles are positionally aligned; entry i in each describes the same
// documentation page. The whole structure is rebuilt wholesale on each
// build and replaced atomically; it is never partially updated.
type Index struct {
	DocNames   []string                          `json:"docnames"`
	EnvVersion map[string]int                    `json:"envversion"`
	Filenames  []string                          `json:"filenames"`
	Objects    map[string]map[string]ObjectEntry `json:"objects"`
	ObjNames   map[int]ObjectType                `json:"objnames"`
	ObjTypes   map[int]string                    `json:"objtypes"`
	Terms      map[string]DocRefs                `json:"terms"`
	Titles     []string                          `json:"titles"`
	TitleTerms map[string]DocRefs                `json:"titleterms"`
}

// ObjectEntry describes one public symbol (module, class, function, or
// method) and the page where it is documented. On the wire it is the
// 4-tuple [docIndex, typeCode, priority, anchor].
//
// An empty Anchor means the fragment is the fully qualified object name;
// "-" means the object has no fragment; anything else is a literal
// fragment.
type ObjectEntry struct {
	Doc      int
	TypeCode int
	Priority int
	Anchor   string
}

// MarshalJSON encodes the entry as its wire 4-tuple.
func (e ObjectEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Doc, e.TypeCode, e.Priority, e.Anchor})
}

// UnmarshalJSON decodes the [docIndex, typeCode, priority, anchor] tuple.
func (e *ObjectEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 4 {
		return fmt.Errorf("object entry has %d elements, want 4", len(raw))
	}
	ints := []*int{&e.Doc, &e.TypeCode, &e.Priority}
	for i, dst := range ints {
		if err := json.Unmarshal(raw[i], dst); err != nil {
			return fmt.Errorf("object entry element %d: %w", i, err)
		}
	}
	if err := json.Unmarshal(raw[3], &e.Anchor); err != nil {
		return fmt.Errorf("object entry anchor: %w", err)
	}
	return nil
}

// ObjectType is a decoded object kind: the domain and role an object entry's
// type code stands for. On the wire it is the 3-tuple
// [domain, name, display], e.g. ["py", "function", "Python function"].
type ObjectType struct {
	Domain  string
	Name    string
	Display string
}

// Qualified returns the domain-qualified role name, e.g. "py:function".
func (t ObjectType) Qualified() string {
	return t.Domain + ":" + t.Name
}

// MarshalJSON encodes the type as its wire 3-tuple.
func (t ObjectType) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{t.Domain, t.Name, t.Display})
}

// UnmarshalJSON decodes the [domain, name, display] tuple.
func (t *ObjectType) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("object type has %d elements, want 3", len(raw))
	}
	t.Domain, t.Name, t.Display = raw[0], raw[1], raw[2]
	return nil
}

// DocRefs is an ordered set of document indices. Its wire form is a bare
// integer when it names a single document and an ascending array otherwise,
// so both forms survive a decode/encode round trip unchanged.
type DocRefs []int

// MarshalJSON encodes a single reference as a bare integer and multiple
// references as an array.
func (r DocRefs) MarshalJSON() ([]byte, error) {
	if len(r) == 1 {
		return json.Marshal(r[0])
	}
	return json.Marshal([]int(r))
}

// UnmarshalJSON accepts either a bare integer or an array of integers.
func (r *DocRefs) UnmarshalJSON(data []byte) error {
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		*r = DocRefs{single}
		return nil
	}
	var many []int
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = DocRefs(many)
	return nil
}

// Contains reports whether doc is among the references.
func (r DocRefs) Contains(doc int) bool {
	for _, d := range r {
		if d == doc {
			return true
		}
	}
	return false
}

// DocumentRef is a positional view of one indexed documentation page.
type DocumentRef struct {
	Doc      int    `json:"doc"`
	DocName  string `json:"docname"`
	Filename string `json:"filename"`
	Title    string `json:"title"`
}

// Location is the result of resolving an object name to its documentation
// anchor.
type Location struct {
	DocumentRef

	// Fragment is the page fragment identifying the object, empty when the
	// object has none.
	Fragment string `json:"fragment"`

	// Kind is the domain-qualified object kind, e.g. "py:function".
	Kind string `json:"kind"`

	// KindDisplay is the human-readable kind, e.g. "Python function".
	KindDisplay string `json:"kindDisplay"`
}

// Validate returns an error if the index violates its structural
// invariants: positional alignment of the document sequences, object
// entries referencing valid documents and known type codes, and term
// references that are non-empty, in range, and strictly ascending.
func (idx *Index) Validate() error {
	if len(idx.Filenames) != len(idx.DocNames) {
		return Errorf(EINVALID, "filenames length %d does not match docnames length %d", len(idx.Filenames), len(idx.DocNames))
	}
	if len(idx.Titles) != len(idx.DocNames) {
		return Errorf(EINVALID, "titles length %d does not match docnames length %d", len(idx.Titles), len(idx.DocNames))
	}
	for container, members := range idx.Objects {
		for member, entry := range members {
			name := qualifiedName(container, member)
			if entry.Doc < 0 || entry.Doc >= len(idx.DocNames) {
				return Errorf(EINVALID, "object %q references document index %d, valid range is [0, %d)", name, entry.Doc, len(idx.DocNames))
			}
			if _, ok := idx.ObjNames[entry.TypeCode]; !ok {
				return Errorf(EINVALID, "object %q references type code %d missing from objnames", name, entry.TypeCode)
			}
			if _, ok := idx.ObjTypes[entry.TypeCode]; !ok {
				return Errorf(EINVALID, "object %q references type code %d missing from objtypes", name, entry.TypeCode)
			}
		}
	}
	if err := idx.validateTerms("terms", idx.Terms); err != nil {
		return err
	}
	return idx.validateTerms("titleterms", idx.TitleTerms)
}

func (idx *Index) validateTerms(field string, terms map[string]DocRefs) error {
	for term, refs := range terms {
		if len(refs) == 0 {
			return Errorf(EINVALID, "%s entry %q has no document references", field, term)
		}
		prev := -1
		for _, doc := range refs {
			if doc < 0 || doc >= len(idx.DocNames) {
				return Errorf(EINVALID, "%s entry %q references document index %d, valid range is [0, %d)", field, term, doc, len(idx.DocNames))
			}
			if doc <= prev {
				return Errorf(EINVALID, "%s entry %q has unsorted or duplicate document references", field, term)
			}
			prev = doc
		}
	}
	return nil
}

// Document returns the positional view of document i.
func (idx *Index) Document(i int) (*DocumentRef, error) {
	if i < 0 || i >= len(idx.DocNames) {
		return nil, Errorf(EINVALID, "document index %d out of range [0, %d)", i, len(idx.DocNames))
	}
	return &DocumentRef{
		Doc:      i,
		DocName:  idx.DocNames[i],
		Filename: idx.Filenames[i],
		Title:    idx.Titles[i],
	}, nil
}

// Resolve maps a fully qualified object name to its documentation location.
// It first looks for the name split at its last dot into container and
// member, then falls back to the top-level container. Returns ENOTFOUND if
// the object is not indexed.
func (idx *Index) Resolve(name string) (*Location, error) {
	if name == "" {
		return nil, Errorf(EINVALID, "object name required")
	}

	entry, ok := idx.lookupObject(name)
	if !ok {
		return nil, Errorf(ENOTFOUND, "object %q not found", name)
	}

	ref, err := idx.Document(entry.Doc)
	if err != nil {
		return nil, err
	}

	fragment := entry.Anchor
	switch entry.Anchor {
	case "":
		fragment = name
	case "-":
		fragment = ""
	}

	return &Location{
		DocumentRef: *ref,
		Fragment:    fragment,
		Kind:        idx.ObjTypes[entry.TypeCode],
		KindDisplay: idx.ObjNames[entry.TypeCode].Display,
	}, nil
}

func (idx *Index) lookupObject(name string) (ObjectEntry, bool) {
	if i := strings.LastIndex(name, "."); i > 0 {
		if entry, ok := idx.Objects[name[:i]][name[i+1:]]; ok {
			return entry, true
		}
	}
	entry, ok := idx.Objects[""][name]
	return entry, ok
}

// DocCount returns the number of indexed documents.
func (idx *Index) DocCount() int { return len(idx.DocNames) }

// TermCount returns the number of distinct body search terms.
func (idx *Index) TermCount() int { return len(idx.Terms) }

// ObjectCount returns the number of indexed objects across all containers.
func (idx *Index) ObjectCount() int {
	n := 0
	for _, members := range idx.Objects {
		n += len(members)
	}
	return n
}

// qualifiedName joins a container and member name, handling the top-level
// container.
func qualifiedName(container, member string) string {
	if container == "" {
		return member
	}
	return container + "." + member
}

// DefaultEnvVersion returns the schema versions stamped into freshly built
// indexes, keyed by generator component.
func DefaultEnvVersion() map[string]int {
	return map[string]int{
		"docdex":         1,
		"docdex.domains": 2,
	}
}

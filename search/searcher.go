package search

import (
	"context"
	"sort"
	"strings"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/bloom"
)

// Match weights. Title matches outrank object-name matches, which outrank
// body-term matches; prefix matches score below their exact counterparts.
const (
	weightTitle        = 15.0
	weightObjectName   = 11.0
	weightPartialTitle = 7.0
	weightObjectPart   = 6.0
	weightTerm         = 5.0
	weightPartialTerm  = 2.0
)

// Ensure Searcher implements docdex.SearchService at compile time.
var _ docdex.SearchService = (*Searcher)(nil)

// Searcher answers ranked lookups against one immutable index. The index is
// validated once at construction; any number of goroutines may query the
// searcher concurrently.
type Searcher struct {
	idx    *docdex.Index
	filter *bloom.Filter
}

// NewSearcher validates the index and prepares it for querying.
func NewSearcher(idx *docdex.Index) (*Searcher, error) {
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return &Searcher{
		idx:    idx,
		filter: bloom.FromIndex(idx),
	}, nil
}

// Index returns the underlying index.
func (s *Searcher) Index() *docdex.Index { return s.idx }

// candidate accumulates a document's score across query terms.
type candidate struct {
	score float64
	terms map[string]struct{}
}

// Search returns documents matching query, best first. Every query term
// must match the document through some channel (title term, body term, or
// object name); the final term additionally matches as a prefix.
func (s *Searcher) Search(ctx context.Context, query string, opt docdex.SearchOptions) ([]docdex.Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return []docdex.Hit{}, nil
	}

	// Intersect per-token matches: AND semantics across tokens.
	var docs map[int]*candidate
	for i, tok := range tokens {
		matches := s.matchToken(tok, i == len(tokens)-1)
		if len(matches) == 0 {
			return []docdex.Hit{}, nil
		}
		if docs == nil {
			docs = matches
			continue
		}
		for doc, c := range docs {
			m, ok := matches[doc]
			if !ok {
				delete(docs, doc)
				continue
			}
			c.score += m.score
			for term := range m.terms {
				c.terms[term] = struct{}{}
			}
		}
		if len(docs) == 0 {
			return []docdex.Hit{}, nil
		}
	}

	hits := make([]docdex.Hit, 0, len(docs))
	for doc, c := range docs {
		ref, err := s.idx.Document(doc)
		if err != nil {
			return nil, err
		}
		terms := make([]string, 0, len(c.terms))
		for term := range c.terms {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		hits = append(hits, docdex.Hit{
			DocumentRef: *ref,
			Score:       c.score,
			Terms:       terms,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Doc < hits[j].Doc
	})

	if opt.Limit > 0 && len(hits) > opt.Limit {
		hits = hits[:opt.Limit]
	}
	return hits, nil
}

// matchToken collects per-document match weights for one query token.
// Prefix matching against the term maps only applies to the final token,
// which the user may still be typing.
func (s *Searcher) matchToken(tok string, last bool) map[int]*candidate {
	matches := make(map[int]*candidate)
	add := func(doc int, weight float64, term string) {
		c, ok := matches[doc]
		if !ok {
			c = &candidate{terms: make(map[string]struct{})}
			matches[doc] = c
		}
		c.score += weight
		c.terms[term] = struct{}{}
	}

	// The bloom filter proves absence; a hit still needs the map lookup.
	if s.filter.Test(tok) {
		for _, doc := range s.idx.TitleTerms[tok] {
			add(doc, weightTitle, tok)
		}
		for _, doc := range s.idx.Terms[tok] {
			add(doc, weightTerm, tok)
		}
	}

	if last {
		for term, refs := range s.idx.TitleTerms {
			if len(term) > len(tok) && strings.HasPrefix(term, tok) {
				for _, doc := range refs {
					add(doc, weightPartialTitle, term)
				}
			}
		}
		for term, refs := range s.idx.Terms {
			if len(term) > len(tok) && strings.HasPrefix(term, tok) {
				for _, doc := range refs {
					add(doc, weightPartialTerm, term)
				}
			}
		}
	}

	for container, members := range s.idx.Objects {
		for member, entry := range members {
			if entry.Priority == docdex.PriorityHidden {
				continue
			}
			lower := strings.ToLower(member)
			var weight float64
			switch {
			case lower == tok:
				weight = weightObjectName
			case strings.Contains(lower, tok):
				weight = weightObjectPart
			default:
				continue
			}
			switch entry.Priority {
			case docdex.PriorityImportant:
				weight += 2
			case docdex.PriorityUnimportant:
				weight -= 3
			}
			name := member
			if container != "" {
				name = container + "." + member
			}
			add(entry.Doc, weight, name)
		}
	}

	return matches
}

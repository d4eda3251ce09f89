// Package bloom provides probabilistic membership checks used for page URL
// deduplication during index builds and as a cheap absent-term prefilter
// during search.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"

	"github.com/fwojciec/docdex"
)

// Filter wraps a Bloom filter over string keys.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// FromIndex creates a filter seeded with every body and title term of the
// index. A negative Test then proves the term is not indexed; a positive
// one still requires a map lookup.
func FromIndex(idx *docdex.Index) *Filter {
	n := uint(len(idx.Terms) + len(idx.TitleTerms))
	if n == 0 {
		n = 1
	}
	f := NewFilter(n, 0.001)
	for term := range idx.Terms {
		f.Add(term)
	}
	for term := range idx.TitleTerms {
		f.Add(term)
	}
	return f
}

// Add adds a key to the filter.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Test returns true if the key might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(key string) bool {
	return f.f.TestString(key)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

package docdex

import "context"

// Hit is one ranked search result.
type Hit struct {
	DocumentRef

	// Score is the summed match weight; higher is better.
	Score float64 `json:"score"`

	// Terms lists the index terms that contributed to the score.
	Terms []string `json:"terms"`
}

// SearchOptions controls a free-text lookup.
type SearchOptions struct {
	// Limit caps the number of hits returned. Zero means no limit.
	Limit int
}

// SearchService answers ranked free-text lookups against a search index.
type SearchService interface {
	// Search returns documents matching query, best first. All query terms
	// must match; the final term also matches as a prefix. Returns an empty
	// slice when nothing matches.
	Search(ctx context.Context, query string, opt SearchOptions) ([]Hit, error)
}

// Package search implements ranked free-text lookup against a documentation
// search index. It tokenizes queries the same way the builder tokenizes page
// content, so query terms hit index terms literally.
package search

import (
	"strings"
	"unicode"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "had": {},
	"has": {}, "have": {}, "if": {}, "in": {}, "into": {}, "is": {},
	"it": {}, "its": {}, "no": {}, "not": {}, "of": {}, "on": {},
	"or": {}, "such": {}, "that": {}, "the": {}, "their": {},
	"then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"to": {}, "was": {}, "were": {}, "will": {}, "with": {},
}

// Tokenize lower-cases text and splits it into index terms. Underscores are
// kept so identifier terms like "annualized_return" stay whole. Stop words
// and single characters are dropped. No stemming is applied: stemming only
// one side of the query/index pair would miss literal identifier terms.
func Tokenize(text string) []string {
	return tokenize(text, nil)
}

// TokenizeExtra is Tokenize with additional stop words.
func TokenizeExtra(text string, extraStop map[string]struct{}) []string {
	return tokenize(text, extraStop)
}

func tokenize(text string, extraStop map[string]struct{}) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.Trim(word, "_")
		if len(word) < 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, stop := extraStop[word]; stop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

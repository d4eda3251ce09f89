package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fwojciec/docdex/search"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	t.Run("lower-cases and splits on punctuation", func(t *testing.T) {
		t.Parallel()
		tokens := search.Tokenize("Compute pyform.returns.cum_returns(df)")
		assert.Equal(t, []string{"compute", "pyform", "returns", "cum_returns", "df"}, tokens)
	})

	t.Run("keeps identifier underscores", func(t *testing.T) {
		t.Parallel()
		tokens := search.Tokenize("Annualized_Return rate")
		assert.Equal(t, []string{"annualized_return", "rate"}, tokens)
	})

	t.Run("trims surrounding underscores", func(t *testing.T) {
		t.Parallel()
		tokens := search.Tokenize("__init__")
		assert.Equal(t, []string{"init"}, tokens)
	})

	t.Run("drops stop words and single characters", func(t *testing.T) {
		t.Parallel()
		tokens := search.Tokenize("the rate of a return is x")
		assert.Equal(t, []string{"rate", "return"}, tokens)
	})

	t.Run("keeps digits", func(t *testing.T) {
		t.Parallel()
		tokens := search.Tokenize("resample to 252 periods")
		assert.Equal(t, []string{"resample", "252", "periods"}, tokens)
	})

	t.Run("does not stem", func(t *testing.T) {
		t.Parallel()
		tokens := search.Tokenize("returns")
		assert.Equal(t, []string{"returns"}, tokens)
	})

	t.Run("empty text yields no tokens", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, search.Tokenize("   "))
	})
}

func TestTokenizeExtra(t *testing.T) {
	t.Parallel()

	t.Run("applies additional stop words", func(t *testing.T) {
		t.Parallel()
		extra := map[string]struct{}{"pyform": {}}
		tokens := search.TokenizeExtra("pyform computes returns", extra)
		assert.Equal(t, []string{"computes", "returns"}, tokens)
	})

	t.Run("nil extra behaves like Tokenize", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, search.Tokenize("compute returns"), search.TokenizeExtra("compute returns", nil))
	})
}

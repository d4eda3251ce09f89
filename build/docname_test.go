package build_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/docdex/build"
)

func TestPageName(t *testing.T) {
	t.Parallel()

	t.Run("strips base path and html extension", func(t *testing.T) {
		t.Parallel()

		docName, filename, err := build.PageName("https://example.com/docs/", "https://example.com/docs/api/returns.html")
		require.NoError(t, err)
		assert.Equal(t, "api/returns", docName)
		assert.Equal(t, "api/returns.html", filename)
	})

	t.Run("root URL names the index page", func(t *testing.T) {
		t.Parallel()

		docName, filename, err := build.PageName("https://example.com/docs/", "https://example.com/docs/")
		require.NoError(t, err)
		assert.Equal(t, "index", docName)
		assert.Equal(t, "index.html", filename)
	})

	t.Run("trailing slash names the directory index", func(t *testing.T) {
		t.Parallel()

		docName, filename, err := build.PageName("https://example.com/", "https://example.com/guide/")
		require.NoError(t, err)
		assert.Equal(t, "guide/index", docName)
		assert.Equal(t, "guide/index.html", filename)
	})

	t.Run("htm extension is stripped", func(t *testing.T) {
		t.Parallel()

		docName, _, err := build.PageName("https://example.com/", "https://example.com/old.htm")
		require.NoError(t, err)
		assert.Equal(t, "old", docName)
	})

	t.Run("local paths work as URLs", func(t *testing.T) {
		t.Parallel()

		docName, filename, err := build.PageName("/srv/docs", "/srv/docs/pyform.returns.html")
		require.NoError(t, err)
		assert.Equal(t, "pyform.returns", docName)
		assert.Equal(t, "pyform.returns.html", filename)
	})
}

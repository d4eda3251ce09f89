package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/sqlite"
)

// setupProject creates a project to attach documents and indexes to.
func setupProject(t *testing.T, db *sqlite.DB) *docdex.Project {
	t.Helper()
	project := &docdex.Project{Name: "pyform", SourceURL: "https://example.com/docs"}
	require.NoError(t, sqlite.NewProjectService(db).CreateProject(context.Background(), project))
	return project
}

func TestDocumentService_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("creates document with generated ID and content hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		project := setupProject(t, db)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := &docdex.Document{
			ProjectID: project.ID,
			DocName:   "pyform.returns",
			SourceURL: "https://example.com/docs/pyform.returns.html",
			Title:     "pyform.returns module",
			Content:   "# pyform.returns\n\nReturn calculations.",
			Position:  4,
		}

		require.NoError(t, svc.CreateDocument(ctx, doc))

		assert.NotEmpty(t, doc.ID)
		assert.NotEmpty(t, doc.ContentHash)
		assert.False(t, doc.FetchedAt.IsZero())
	})

	t.Run("identical content hashes identically", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		project := setupProject(t, db)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		a := &docdex.Document{ProjectID: project.ID, SourceURL: "https://example.com/a", Content: "same"}
		b := &docdex.Document{ProjectID: project.ID, SourceURL: "https://example.com/b", Content: "same"}
		require.NoError(t, svc.CreateDocument(ctx, a))
		require.NoError(t, svc.CreateDocument(ctx, b))

		assert.Equal(t, a.ContentHash, b.ContentHash)
	})

	t.Run("returns error for invalid document", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		err := svc.CreateDocument(context.Background(), &docdex.Document{})
		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})
}

func TestDocumentService_FindDocuments(t *testing.T) {
	t.Parallel()

	t.Run("returns documents ordered by position", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		project := setupProject(t, db)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		for i, name := range []string{"pyform.util", "index", "pyform.returns"} {
			require.NoError(t, svc.CreateDocument(ctx, &docdex.Document{
				ProjectID: project.ID,
				DocName:   name,
				SourceURL: "https://example.com/docs/" + name + ".html",
				Position:  []int{2, 0, 1}[i],
			}))
		}

		docs, err := svc.FindDocuments(ctx, docdex.DocumentFilter{ProjectID: &project.ID})
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, "index", docs[0].DocName)
		assert.Equal(t, "pyform.returns", docs[1].DocName)
		assert.Equal(t, "pyform.util", docs[2].DocName)
	})

	t.Run("filters by doc name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		project := setupProject(t, db)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		for _, name := range []string{"index", "pyform.returns"} {
			require.NoError(t, svc.CreateDocument(ctx, &docdex.Document{
				ProjectID: project.ID,
				DocName:   name,
				SourceURL: "https://example.com/docs/" + name + ".html",
			}))
		}

		name := "pyform.returns"
		docs, err := svc.FindDocuments(ctx, docdex.DocumentFilter{ProjectID: &project.ID, DocName: &name})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "pyform.returns", docs[0].DocName)
	})
}

func TestDocumentService_DeleteDocumentsByProject(t *testing.T) {
	t.Parallel()

	t.Run("removes all documents for the project", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		project := setupProject(t, db)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateDocument(ctx, &docdex.Document{
			ProjectID: project.ID,
			SourceURL: "https://example.com/docs/index.html",
		}))

		require.NoError(t, svc.DeleteDocumentsByProject(ctx, project.ID))

		docs, err := svc.FindDocuments(ctx, docdex.DocumentFilter{ProjectID: &project.ID})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

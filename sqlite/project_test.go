package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/sqlite"
)

func TestProjectService_CreateProject(t *testing.T) {
	t.Parallel()

	t.Run("creates project with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProjectService(setupTestDB(t))
		ctx := context.Background()

		project := &docdex.Project{
			Name:      "pyform",
			SourceURL: "https://pyform.readthedocs.io/",
			Filter:    "/en/stable/",
		}

		require.NoError(t, svc.CreateProject(ctx, project))

		assert.NotEmpty(t, project.ID, "ID should be generated")
		assert.False(t, project.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.False(t, project.UpdatedAt.IsZero(), "UpdatedAt should be set")
	})

	t.Run("returns error for invalid project", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProjectService(setupTestDB(t))

		err := svc.CreateProject(context.Background(), &docdex.Project{})
		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("returns ECONFLICT for duplicate name", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProjectService(setupTestDB(t))
		ctx := context.Background()

		first := &docdex.Project{Name: "pyform", SourceURL: "https://example.com/docs"}
		require.NoError(t, svc.CreateProject(ctx, first))

		dup := &docdex.Project{Name: "pyform", SourceURL: "https://other.example.com/docs"}
		err := svc.CreateProject(ctx, dup)
		require.Error(t, err)
		assert.Equal(t, docdex.ECONFLICT, docdex.ErrorCode(err))
	})
}

func TestProjectService_FindProjectByID(t *testing.T) {
	t.Parallel()

	t.Run("returns project when found", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProjectService(setupTestDB(t))
		ctx := context.Background()

		project := &docdex.Project{
			Name:      "pyform",
			SourceURL: "https://pyform.readthedocs.io/",
			Filter:    "/en/stable/\n/api/",
		}
		require.NoError(t, svc.CreateProject(ctx, project))

		found, err := svc.FindProjectByID(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, project.ID, found.ID)
		assert.Equal(t, "pyform", found.Name)
		assert.Equal(t, "https://pyform.readthedocs.io/", found.SourceURL)
		assert.Equal(t, "/en/stable/\n/api/", found.Filter)
	})

	t.Run("returns ENOTFOUND when missing", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProjectService(setupTestDB(t))

		_, err := svc.FindProjectByID(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})
}

func TestProjectService_FindProjects(t *testing.T) {
	t.Parallel()

	t.Run("returns projects ordered by name", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProjectService(setupTestDB(t))
		ctx := context.Background()

		for _, name := range []string{"pandas", "pyform", "numpy"} {
			require.NoError(t, svc.CreateProject(ctx, &docdex.Project{
				Name:      name,
				SourceURL: "https://example.com/" + name,
			}))
		}

		projects, err := svc.FindProjects(ctx, docdex.ProjectFilter{})
		require.NoError(t, err)
		require.Len(t, projects, 3)
		assert.Equal(t, "numpy", projects[0].Name)
		assert.Equal(t, "pandas", projects[1].Name)
		assert.Equal(t, "pyform", projects[2].Name)
	})

	t.Run("filters by name", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProjectService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.CreateProject(ctx, &docdex.Project{Name: "pyform", SourceURL: "https://a.example.com"}))
		require.NoError(t, svc.CreateProject(ctx, &docdex.Project{Name: "numpy", SourceURL: "https://b.example.com"}))

		name := "pyform"
		projects, err := svc.FindProjects(ctx, docdex.ProjectFilter{Name: &name})
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "pyform", projects[0].Name)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProjectService(setupTestDB(t))
		ctx := context.Background()

		for _, name := range []string{"a", "b", "c"} {
			require.NoError(t, svc.CreateProject(ctx, &docdex.Project{Name: name, SourceURL: "https://example.com/" + name}))
		}

		projects, err := svc.FindProjects(ctx, docdex.ProjectFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "b", projects[0].Name)
	})
}

func TestProjectService_DeleteProject(t *testing.T) {
	t.Parallel()

	t.Run("deletes project and cascades to documents and indexes", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		projects := sqlite.NewProjectService(db)
		documents := sqlite.NewDocumentService(db)
		indexes := sqlite.NewIndexService(db)
		ctx := context.Background()

		project := &docdex.Project{Name: "pyform", SourceURL: "https://example.com/docs"}
		require.NoError(t, projects.CreateProject(ctx, project))

		doc := &docdex.Document{ProjectID: project.ID, SourceURL: "https://example.com/docs/index.html"}
		require.NoError(t, documents.CreateDocument(ctx, doc))

		rec := &docdex.IndexRecord{ProjectID: project.ID, Codec: "go-json", Payload: []byte("Search.setIndex({})")}
		require.NoError(t, indexes.CreateIndex(ctx, rec))

		require.NoError(t, projects.DeleteProject(ctx, project.ID))

		_, err := documents.FindDocumentByID(ctx, doc.ID)
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
		_, err = indexes.FindIndexByID(ctx, rec.ID)
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when missing", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProjectService(setupTestDB(t))
		err := svc.DeleteProject(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})
}

package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.ProjectService = (*ProjectService)(nil)

// ProjectService is a mock implementation of docdex.ProjectService.
type ProjectService struct {
	CreateProjectFn   func(ctx context.Context, project *docdex.Project) error
	FindProjectByIDFn func(ctx context.Context, id string) (*docdex.Project, error)
	FindProjectsFn    func(ctx context.Context, filter docdex.ProjectFilter) ([]*docdex.Project, error)
	DeleteProjectFn   func(ctx context.Context, id string) error
}

func (s *ProjectService) CreateProject(ctx context.Context, project *docdex.Project) error {
	return s.CreateProjectFn(ctx, project)
}

func (s *ProjectService) FindProjectByID(ctx context.Context, id string) (*docdex.Project, error) {
	return s.FindProjectByIDFn(ctx, id)
}

func (s *ProjectService) FindProjects(ctx context.Context, filter docdex.ProjectFilter) ([]*docdex.Project, error) {
	return s.FindProjectsFn(ctx, filter)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	return s.DeleteProjectFn(ctx, id)
}

var _ docdex.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of docdex.DocumentService.
type DocumentService struct {
	CreateDocumentFn           func(ctx context.Context, doc *docdex.Document) error
	FindDocumentByIDFn         func(ctx context.Context, id string) (*docdex.Document, error)
	FindDocumentsFn            func(ctx context.Context, filter docdex.DocumentFilter) ([]*docdex.Document, error)
	DeleteDocumentsByProjectFn func(ctx context.Context, projectID string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *docdex.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*docdex.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter docdex.DocumentFilter) ([]*docdex.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocumentsByProject(ctx context.Context, projectID string) error {
	return s.DeleteDocumentsByProjectFn(ctx, projectID)
}

var _ docdex.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of docdex.IndexService.
type IndexService struct {
	CreateIndexFn            func(ctx context.Context, rec *docdex.IndexRecord) error
	FindIndexByIDFn          func(ctx context.Context, id string) (*docdex.IndexRecord, error)
	FindLatestIndexFn        func(ctx context.Context, projectID string) (*docdex.IndexRecord, error)
	DeleteIndexesByProjectFn func(ctx context.Context, projectID string) error
}

func (s *IndexService) CreateIndex(ctx context.Context, rec *docdex.IndexRecord) error {
	return s.CreateIndexFn(ctx, rec)
}

func (s *IndexService) FindIndexByID(ctx context.Context, id string) (*docdex.IndexRecord, error) {
	return s.FindIndexByIDFn(ctx, id)
}

func (s *IndexService) FindLatestIndex(ctx context.Context, projectID string) (*docdex.IndexRecord, error) {
	return s.FindLatestIndexFn(ctx, projectID)
}

func (s *IndexService) DeleteIndexesByProject(ctx context.Context, projectID string) error {
	return s.DeleteIndexesByProjectFn(ctx, projectID)
}

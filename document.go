package docdex

import (
	"context"
	"time"
)

// Document represents a fetched documentation page persisted for a project.
// Content is stored as markdown.
type Document struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	DocName     string    `json:"docName"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ProjectID == "" {
		return Errorf(EINVALID, "document project ID required")
	}
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	return nil
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter, ordered by
	// position.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocumentsByProject removes all documents for a project.
	DeleteDocumentsByProject(ctx context.Context, projectID string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID        *string `json:"id"`
	ProjectID *string `json:"projectId"`
	DocName   *string `json:"docName"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fwojciec/docdex"
)

// Compile-time interface verification.
var _ docdex.DocumentService = (*DocumentService)(nil)

// DocumentService implements docdex.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// CreateDocument creates a new document.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *docdex.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.FetchedAt = time.Now().UTC()
	doc.ContentHash = hashContent([]byte(doc.Content))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, project_id, doc_name, source_url, title, content, content_hash, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.ProjectID, doc.DocName, doc.SourceURL, doc.Title, doc.Content, doc.ContentHash,
		doc.Position, doc.FetchedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*docdex.Document, error) {
	var doc docdex.Document
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, doc_name, source_url, title, content, content_hash, position, fetched_at
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.ProjectID, &doc.DocName, &doc.SourceURL, &doc.Title,
		&doc.Content, &doc.ContentHash, &doc.Position, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	if doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindDocuments retrieves documents matching the filter, ordered by
// position.
func (s *DocumentService) FindDocuments(ctx context.Context, filter docdex.DocumentFilter) ([]*docdex.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, project_id, doc_name, source_url, title, content, content_hash, position, fetched_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ProjectID != nil {
		query.WriteString(" AND project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.DocName != nil {
		query.WriteString(" AND doc_name = ?")
		args = append(args, *filter.DocName)
	}

	query.WriteString(" ORDER BY position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*docdex.Document{}
	for rows.Next() {
		var doc docdex.Document
		var fetchedAt string

		if err := rows.Scan(&doc.ID, &doc.ProjectID, &doc.DocName, &doc.SourceURL, &doc.Title,
			&doc.Content, &doc.ContentHash, &doc.Position, &fetchedAt); err != nil {
			return nil, err
		}
		if doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// DeleteDocumentsByProject removes all documents for a project.
func (s *DocumentService) DeleteDocumentsByProject(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE project_id = ?`, projectID)
	return err
}

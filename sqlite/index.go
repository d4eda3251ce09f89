package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/fwojciec/docdex"
)

// Compile-time interface verification.
var _ docdex.IndexService = (*IndexService)(nil)

// IndexService implements docdex.IndexService using SQLite. Stored indexes
// are immutable: a new build inserts a new row and readers pick the latest.
type IndexService struct {
	db *DB
}

// NewIndexService creates a new IndexService.
func NewIndexService(db *DB) *IndexService {
	return &IndexService{db: db}
}

// CreateIndex stores a built index.
func (s *IndexService) CreateIndex(ctx context.Context, rec *docdex.IndexRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.BuiltAt = time.Now().UTC()
	rec.Fingerprint = hashContent(rec.Payload)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO indexes (id, project_id, codec, payload, fingerprint, doc_count, term_count, object_count, built_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.ProjectID, rec.Codec, rec.Payload, rec.Fingerprint,
		rec.DocCount, rec.TermCount, rec.ObjectCount, rec.BuiltAt.Format(time.RFC3339))

	return err
}

// FindIndexByID retrieves a stored index by ID.
func (s *IndexService) FindIndexByID(ctx context.Context, id string) (*docdex.IndexRecord, error) {
	return s.findIndex(ctx, `
		SELECT id, project_id, codec, payload, fingerprint, doc_count, term_count, object_count, built_at
		FROM indexes
		WHERE id = ?
	`, id)
}

// FindLatestIndex retrieves the most recently built index for a project.
func (s *IndexService) FindLatestIndex(ctx context.Context, projectID string) (*docdex.IndexRecord, error) {
	return s.findIndex(ctx, `
		SELECT id, project_id, codec, payload, fingerprint, doc_count, term_count, object_count, built_at
		FROM indexes
		WHERE project_id = ?
		ORDER BY built_at DESC, rowid DESC
		LIMIT 1
	`, projectID)
}

func (s *IndexService) findIndex(ctx context.Context, query string, arg any) (*docdex.IndexRecord, error) {
	var rec docdex.IndexRecord
	var builtAt string

	err := s.db.QueryRowContext(ctx, query, arg).Scan(&rec.ID, &rec.ProjectID, &rec.Codec,
		&rec.Payload, &rec.Fingerprint, &rec.DocCount, &rec.TermCount, &rec.ObjectCount, &builtAt)

	if err == sql.ErrNoRows {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "index not found")
	}
	if err != nil {
		return nil, err
	}

	if rec.BuiltAt, err = parseRFC3339(builtAt, "built_at"); err != nil {
		return nil, err
	}

	return &rec, nil
}

// DeleteIndexesByProject removes all stored indexes for a project.
func (s *IndexService) DeleteIndexesByProject(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM indexes WHERE project_id = ?`, projectID)
	return err
}

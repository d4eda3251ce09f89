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
var _ docdex.ProjectService = (*ProjectService)(nil)

// ProjectService implements docdex.ProjectService using SQLite.
type ProjectService struct {
	db *DB
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *DB) *ProjectService {
	return &ProjectService{db: db}
}

// CreateProject creates a new project.
func (s *ProjectService) CreateProject(ctx context.Context, project *docdex.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	existing, err := s.FindProjects(ctx, docdex.ProjectFilter{Name: &project.Name})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return docdex.Errorf(docdex.ECONFLICT, "project %q already exists", project.Name)
	}

	project.ID = uuid.New().String()
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, source_url, filter, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, project.ID, project.Name, project.SourceURL, project.Filter,
		project.CreatedAt.Format(time.RFC3339), project.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindProjectByID retrieves a project by ID.
func (s *ProjectService) FindProjectByID(ctx context.Context, id string) (*docdex.Project, error) {
	var project docdex.Project
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, source_url, filter, created_at, updated_at
		FROM projects
		WHERE id = ?
	`, id).Scan(&project.ID, &project.Name, &project.SourceURL, &project.Filter,
		&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "project not found")
	}
	if err != nil {
		return nil, err
	}

	if project.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if project.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &project, nil
}

// FindProjects retrieves projects matching the filter.
func (s *ProjectService) FindProjects(ctx context.Context, filter docdex.ProjectFilter) ([]*docdex.Project, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, source_url, filter, created_at, updated_at FROM projects WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []*docdex.Project{}
	for rows.Next() {
		var project docdex.Project
		var createdAt, updatedAt string

		if err := rows.Scan(&project.ID, &project.Name, &project.SourceURL, &project.Filter,
			&createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if project.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if project.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		projects = append(projects, &project)
	}

	return projects, rows.Err()
}

// DeleteProject permanently removes a project. Documents and stored indexes
// cascade via foreign keys.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return docdex.Errorf(docdex.ENOTFOUND, "project not found")
	}
	return nil
}

package docdex

import (
	"context"
	"time"
)

// Project represents a documentation source whose search index docdex
// builds and tracks.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SourceURL string    `json:"sourceUrl"`
	Filter    string    `json:"filter"` // newline-separated URL include patterns
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the project contains invalid fields.
func (p *Project) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "project name required")
	}
	if p.SourceURL == "" {
		return Errorf(EINVALID, "project source URL required")
	}
	return nil
}

// ProjectService represents a service for managing projects.
type ProjectService interface {
	// CreateProject creates a new project.
	// Returns ECONFLICT if a project with the same name exists.
	CreateProject(ctx context.Context, project *Project) error

	// FindProjectByID retrieves a project by ID.
	// Returns ENOTFOUND if project does not exist.
	FindProjectByID(ctx context.Context, id string) (*Project, error)

	// FindProjects retrieves projects matching the filter.
	FindProjects(ctx context.Context, filter ProjectFilter) ([]*Project, error)

	// DeleteProject permanently removes a project, its documents, and its
	// stored indexes. Returns ENOTFOUND if project does not exist.
	DeleteProject(ctx context.Context, id string) error
}

// ProjectFilter represents a filter for FindProjects.
type ProjectFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

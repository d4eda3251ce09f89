package docdex

import (
	"context"
	"time"
)

// IndexRecord is a persisted built index: the serialized payload plus the
// metadata needed to identify and describe it without decoding.
type IndexRecord struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Codec       string    `json:"codec"`       // codec name used for the payload
	Payload     []byte    `json:"-"`           // serialized Search.setIndex payload
	Fingerprint string    `json:"fingerprint"` // content hash of the payload
	DocCount    int       `json:"docCount"`
	TermCount   int       `json:"termCount"`
	ObjectCount int       `json:"objectCount"`
	BuiltAt     time.Time `json:"builtAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *IndexRecord) Validate() error {
	if r.ProjectID == "" {
		return Errorf(EINVALID, "index record project ID required")
	}
	if len(r.Payload) == 0 {
		return Errorf(EINVALID, "index record payload required")
	}
	return nil
}

// IndexService represents a service for storing built indexes.
type IndexService interface {
	// CreateIndex stores a built index.
	CreateIndex(ctx context.Context, rec *IndexRecord) error

	// FindIndexByID retrieves a stored index by ID.
	// Returns ENOTFOUND if it does not exist.
	FindIndexByID(ctx context.Context, id string) (*IndexRecord, error)

	// FindLatestIndex retrieves the most recently built index for a project.
	// Returns ENOTFOUND if the project has no stored index.
	FindLatestIndex(ctx context.Context, projectID string) (*IndexRecord, error)

	// DeleteIndexesByProject removes all stored indexes for a project.
	DeleteIndexesByProject(ctx context.Context, projectID string) error
}

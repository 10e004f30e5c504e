package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
)

// VersionRepository defines the interface for video version data access.
// Mutations are split into distinct, narrowly-typed operations: creating a
// version, rewriting its link fields, flipping its approval flag and deleting
// it are the only ways a record changes.
type VersionRepository interface {
	// Create creates a new video version
	Create(ctx context.Context, version *entity.VideoVersion) error

	// GetByID retrieves a version by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.VideoVersion, error)

	// ListByProject lists all versions for a project ordered by version number
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.VideoVersion, error)

	// UpdateLinks rewrites the preview/final URLs of the version identified by
	// id and refreshes its updated_at. Approval state is left untouched.
	UpdateLinks(ctx context.Context, id uuid.UUID, links entity.VideoVersionLinks) error

	// SetApproved marks the version as approved by the given user. Approval is
	// one-way; there is no operation to revert it.
	SetApproved(ctx context.Context, id uuid.UUID, approvedBy uuid.UUID) error

	// Delete deletes a version by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// NextVersionNumber returns the next version number for a project
	NextVersionNumber(ctx context.Context, projectID uuid.UUID) (int, error)
}

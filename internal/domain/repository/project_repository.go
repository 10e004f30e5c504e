package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *entity.Project) error

	// GetByID retrieves a project by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)

	// ListByMember lists projects the given user is a member of
	ListByMember(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]entity.Project, int64, error)

	// Update updates a project
	Update(ctx context.Context, project *entity.Project) error

	// Delete deletes a project and its versions
	Delete(ctx context.Context, id uuid.UUID) error
}

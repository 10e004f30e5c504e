package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
)

// MembershipRepository defines the interface for project membership data access
type MembershipRepository interface {
	// Create grants a membership
	Create(ctx context.Context, membership *entity.Membership) error

	// GetByProjectAndUser retrieves a user's membership in a project
	GetByProjectAndUser(ctx context.Context, projectID, userID uuid.UUID) (*entity.Membership, error)

	// ListByProject lists all memberships for a project
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Membership, error)

	// UpdateRole updates the role of a membership
	UpdateRole(ctx context.Context, projectID, userID uuid.UUID, role entity.MemberRole) error

	// Delete revokes a membership
	Delete(ctx context.Context, projectID, userID uuid.UUID) error
}

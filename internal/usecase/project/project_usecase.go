package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
	"github.com/corvidlabs/reviewdesk/internal/domain/repository"
	apperrors "github.com/corvidlabs/reviewdesk/pkg/errors"
)

// UseCase defines the project use case interface
type UseCase interface {
	Create(ctx context.Context, actorID uuid.UUID, input *CreateInput) (*entity.ProjectResponse, error)
	GetByID(ctx context.Context, actorID, projectID uuid.UUID) (*entity.ProjectResponse, error)
	List(ctx context.Context, actorID uuid.UUID, page, pageSize int) ([]entity.ProjectResponse, int64, error)
	Update(ctx context.Context, actorID, projectID uuid.UUID, input *UpdateInput) (*entity.ProjectResponse, error)
	Delete(ctx context.Context, actorID, projectID uuid.UUID) error
}

// CreateInput represents project creation input
type CreateInput struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
}

// UpdateInput represents project update input
type UpdateInput struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *entity.ProjectStatus `json:"status"`
}

type projectUseCase struct {
	projectRepo repository.ProjectRepository
	memberRepo  repository.MembershipRepository
}

// NewUseCase creates a new project use case
func NewUseCase(
	projectRepo repository.ProjectRepository,
	memberRepo repository.MembershipRepository,
) UseCase {
	return &projectUseCase{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
	}
}

func (u *projectUseCase) membership(ctx context.Context, projectID, actorID uuid.UUID) (*entity.Membership, error) {
	m, err := u.memberRepo.GetByProjectAndUser(ctx, projectID, actorID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ForbiddenError("not a member of this project")
		}
		return nil, apperrors.InternalError("failed to check membership", err)
	}
	return m, nil
}

func (u *projectUseCase) Create(ctx context.Context, actorID uuid.UUID, input *CreateInput) (*entity.ProjectResponse, error) {
	if actorID == uuid.Nil {
		return nil, apperrors.UnauthorizedError("not authenticated")
	}

	proj := &entity.Project{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     actorID,
		Status:      entity.ProjectStatusActive,
	}

	if err := u.projectRepo.Create(ctx, proj); err != nil {
		return nil, apperrors.InternalError("failed to create project", err)
	}

	// The creator becomes the owning member.
	member := &entity.Membership{
		ProjectID: proj.ID,
		UserID:    actorID,
		Role:      entity.MemberRoleOwner,
		GrantedBy: actorID,
	}
	if err := u.memberRepo.Create(ctx, member); err != nil {
		return nil, apperrors.InternalError("failed to create owner membership", err)
	}

	return proj.ToResponse(), nil
}

func (u *projectUseCase) GetByID(ctx context.Context, actorID, projectID uuid.UUID) (*entity.ProjectResponse, error) {
	if actorID == uuid.Nil {
		return nil, apperrors.UnauthorizedError("not authenticated")
	}

	if _, err := u.membership(ctx, projectID, actorID); err != nil {
		return nil, err
	}

	proj, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("project")
		}
		return nil, apperrors.InternalError("failed to get project", err)
	}

	return proj.ToResponse(), nil
}

func (u *projectUseCase) List(ctx context.Context, actorID uuid.UUID, page, pageSize int) ([]entity.ProjectResponse, int64, error) {
	if actorID == uuid.Nil {
		return nil, 0, apperrors.UnauthorizedError("not authenticated")
	}

	projects, total, err := u.projectRepo.ListByMember(ctx, actorID, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.InternalError("failed to list projects", err)
	}

	responses := make([]entity.ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = *projects[i].ToResponse()
	}

	return responses, total, nil
}

func (u *projectUseCase) Update(ctx context.Context, actorID, projectID uuid.UUID, input *UpdateInput) (*entity.ProjectResponse, error) {
	if actorID == uuid.Nil {
		return nil, apperrors.UnauthorizedError("not authenticated")
	}

	member, err := u.membership(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanWrite() {
		return nil, apperrors.ForbiddenError("not allowed to edit this project")
	}

	proj, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("project")
		}
		return nil, apperrors.InternalError("failed to get project", err)
	}

	if input.Name != nil {
		proj.Name = *input.Name
	}
	if input.Description != nil {
		proj.Description = *input.Description
	}
	if input.Status != nil {
		proj.Status = *input.Status
	}

	if err := u.projectRepo.Update(ctx, proj); err != nil {
		return nil, apperrors.InternalError("failed to update project", err)
	}

	return proj.ToResponse(), nil
}

func (u *projectUseCase) Delete(ctx context.Context, actorID, projectID uuid.UUID) error {
	if actorID == uuid.Nil {
		return apperrors.UnauthorizedError("not authenticated")
	}

	member, err := u.membership(ctx, projectID, actorID)
	if err != nil {
		return err
	}
	if !member.Role.CanManage() {
		return apperrors.ForbiddenError("only the owner can delete a project")
	}

	if err := u.projectRepo.Delete(ctx, projectID); err != nil {
		return apperrors.InternalError("failed to delete project", err)
	}

	return nil
}

package member

import (
	"context"

	"github.com/google/uuid"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
	"github.com/corvidlabs/reviewdesk/internal/domain/repository"
	apperrors "github.com/corvidlabs/reviewdesk/pkg/errors"
)

// UseCase defines the project membership use case interface
type UseCase interface {
	Grant(ctx context.Context, actorID, projectID uuid.UUID, input *GrantInput) (*entity.MembershipResponse, error)
	UpdateRole(ctx context.Context, actorID, projectID, userID uuid.UUID, role entity.MemberRole) error
	Revoke(ctx context.Context, actorID, projectID, userID uuid.UUID) error
	ListByProject(ctx context.Context, actorID, projectID uuid.UUID) ([]entity.MembershipResponse, error)
	RoleOf(ctx context.Context, projectID, userID uuid.UUID) (entity.MemberRole, error)
}

// GrantInput represents membership grant input
type GrantInput struct {
	UserID uuid.UUID         `json:"user_id" binding:"required"`
	Role   entity.MemberRole `json:"role" binding:"required"`
}

type memberUseCase struct {
	memberRepo repository.MembershipRepository
	userRepo   repository.UserRepository
}

// NewUseCase creates a new membership use case
func NewUseCase(
	memberRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
) UseCase {
	return &memberUseCase{
		memberRepo: memberRepo,
		userRepo:   userRepo,
	}
}

func (u *memberUseCase) requireManager(ctx context.Context, projectID, actorID uuid.UUID) error {
	m, err := u.memberRepo.GetByProjectAndUser(ctx, projectID, actorID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.ForbiddenError("not a member of this project")
		}
		return apperrors.InternalError("failed to check membership", err)
	}
	if !m.Role.CanManage() {
		return apperrors.ForbiddenError("only the owner can manage members")
	}
	return nil
}

func (u *memberUseCase) Grant(ctx context.Context, actorID, projectID uuid.UUID, input *GrantInput) (*entity.MembershipResponse, error) {
	if actorID == uuid.Nil {
		return nil, apperrors.UnauthorizedError("not authenticated")
	}
	if !input.Role.IsValid() {
		return nil, apperrors.ValidationError("invalid role")
	}
	if err := u.requireManager(ctx, projectID, actorID); err != nil {
		return nil, err
	}

	// The user must exist before being granted access.
	grantee, err := u.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("user")
		}
		return nil, apperrors.InternalError("failed to get user", err)
	}

	if _, err := u.memberRepo.GetByProjectAndUser(ctx, projectID, input.UserID); err == nil {
		return nil, apperrors.AlreadyExistsError("membership")
	} else if !apperrors.IsNotFound(err) {
		return nil, apperrors.InternalError("failed to check membership", err)
	}

	membership := &entity.Membership{
		ProjectID: projectID,
		UserID:    input.UserID,
		Role:      input.Role,
		GrantedBy: actorID,
	}
	if err := u.memberRepo.Create(ctx, membership); err != nil {
		return nil, apperrors.InternalError("failed to grant membership", err)
	}

	membership.User = grantee
	return membership.ToResponse(), nil
}

func (u *memberUseCase) UpdateRole(ctx context.Context, actorID, projectID, userID uuid.UUID, role entity.MemberRole) error {
	if actorID == uuid.Nil {
		return apperrors.UnauthorizedError("not authenticated")
	}
	if !role.IsValid() {
		return apperrors.ValidationError("invalid role")
	}
	if err := u.requireManager(ctx, projectID, actorID); err != nil {
		return err
	}

	if err := u.memberRepo.UpdateRole(ctx, projectID, userID, role); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NotFoundError("membership")
		}
		return apperrors.InternalError("failed to update membership", err)
	}
	return nil
}

func (u *memberUseCase) Revoke(ctx context.Context, actorID, projectID, userID uuid.UUID) error {
	if actorID == uuid.Nil {
		return apperrors.UnauthorizedError("not authenticated")
	}
	if err := u.requireManager(ctx, projectID, actorID); err != nil {
		return err
	}
	if actorID == userID {
		return apperrors.ValidationError("the owner cannot revoke their own membership")
	}

	if err := u.memberRepo.Delete(ctx, projectID, userID); err != nil {
		return apperrors.InternalError("failed to revoke membership", err)
	}
	return nil
}

func (u *memberUseCase) ListByProject(ctx context.Context, actorID, projectID uuid.UUID) ([]entity.MembershipResponse, error) {
	if actorID == uuid.Nil {
		return nil, apperrors.UnauthorizedError("not authenticated")
	}

	if _, err := u.memberRepo.GetByProjectAndUser(ctx, projectID, actorID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ForbiddenError("not a member of this project")
		}
		return nil, apperrors.InternalError("failed to check membership", err)
	}

	memberships, err := u.memberRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.InternalError("failed to list members", err)
	}

	responses := make([]entity.MembershipResponse, len(memberships))
	for i := range memberships {
		responses[i] = *memberships[i].ToResponse()
	}

	return responses, nil
}

func (u *memberUseCase) RoleOf(ctx context.Context, projectID, userID uuid.UUID) (entity.MemberRole, error) {
	m, err := u.memberRepo.GetByProjectAndUser(ctx, projectID, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", apperrors.ForbiddenError("not a member of this project")
		}
		return "", apperrors.InternalError("failed to check membership", err)
	}
	return m.Role, nil
}

package version

import (
	"context"

	"github.com/google/uuid"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
	"github.com/corvidlabs/reviewdesk/internal/domain/repository"
	apperrors "github.com/corvidlabs/reviewdesk/pkg/errors"
)

// UseCase defines the video version use case interface. Every operation takes
// the acting user's id explicitly; there is no ambient session lookup. An
// operation invoked with uuid.Nil as the actor fails with an unauthorized
// error before anything is written.
type UseCase interface {
	ListByProject(ctx context.Context, actorID, projectID uuid.UUID) ([]entity.VideoVersionResponse, error)
	GetByID(ctx context.Context, actorID, versionID uuid.UUID) (*entity.VideoVersionResponse, error)
	Save(ctx context.Context, actorID uuid.UUID, input *SaveInput) (*SaveResult, error)
	Approve(ctx context.Context, actorID, versionID uuid.UUID) (*entity.VideoVersionResponse, error)
	Delete(ctx context.Context, actorID, versionID uuid.UUID) error
}

// SaveInput carries the editable fields of a version. A nil VersionID selects
// the create path; otherwise the identified version's links are rewritten.
// URL fields are raw user input: blank means "not provided" and is stored as
// absent, anything else must parse as an absolute URL.
type SaveInput struct {
	ProjectID  uuid.UUID  `json:"project_id"`
	VersionID  *uuid.UUID `json:"version_id,omitempty"`
	PreviewURL string     `json:"preview_url"`
	FinalURL   string     `json:"final_url"`
}

// SaveResult reports the saved version and whether it was newly created
type SaveResult struct {
	Version *entity.VideoVersionResponse `json:"version"`
	Created bool                         `json:"created"`
}

type versionUseCase struct {
	versionRepo repository.VersionRepository
	memberRepo  repository.MembershipRepository
}

// NewUseCase creates a new video version use case
func NewUseCase(
	versionRepo repository.VersionRepository,
	memberRepo repository.MembershipRepository,
) UseCase {
	return &versionUseCase{
		versionRepo: versionRepo,
		memberRepo:  memberRepo,
	}
}

// memberRole resolves the actor's role in the project, or a forbidden error
// when the actor is not a member.
func (u *versionUseCase) memberRole(ctx context.Context, projectID, actorID uuid.UUID) (entity.MemberRole, error) {
	membership, err := u.memberRepo.GetByProjectAndUser(ctx, projectID, actorID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", apperrors.ForbiddenError("not a member of this project")
		}
		return "", apperrors.InternalError("failed to check membership", err)
	}
	return membership.Role, nil
}

func (u *versionUseCase) ListByProject(ctx context.Context, actorID, projectID uuid.UUID) ([]entity.VideoVersionResponse, error) {
	if actorID == uuid.Nil {
		return nil, apperrors.UnauthorizedError("not authenticated")
	}

	role, err := u.memberRole(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !role.CanRead() {
		return nil, apperrors.ForbiddenError("not allowed to view versions")
	}

	versions, err := u.versionRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.InternalError("failed to list versions", err)
	}

	responses := make([]entity.VideoVersionResponse, len(versions))
	for i := range versions {
		responses[i] = *versions[i].ToResponse()
	}

	return responses, nil
}

func (u *versionUseCase) GetByID(ctx context.Context, actorID, versionID uuid.UUID) (*entity.VideoVersionResponse, error) {
	if actorID == uuid.Nil {
		return nil, apperrors.UnauthorizedError("not authenticated")
	}

	ver, err := u.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("version")
		}
		return nil, apperrors.InternalError("failed to get version", err)
	}

	role, err := u.memberRole(ctx, ver.ProjectID, actorID)
	if err != nil {
		return nil, err
	}
	if !role.CanRead() {
		return nil, apperrors.ForbiddenError("not allowed to view versions")
	}

	return ver.ToResponse(), nil
}

func (u *versionUseCase) Save(ctx context.Context, actorID uuid.UUID, input *SaveInput) (*SaveResult, error) {
	if actorID == uuid.Nil {
		return nil, apperrors.UnauthorizedError("not authenticated")
	}

	// Validation gate: both link fields must be well-formed before any
	// repository call is made.
	if err := entity.ValidateURL(input.PreviewURL); err != nil {
		return nil, apperrors.ValidationError("invalid preview URL")
	}
	if err := entity.ValidateURL(input.FinalURL); err != nil {
		return nil, apperrors.ValidationError("invalid final URL")
	}

	role, err := u.memberRole(ctx, input.ProjectID, actorID)
	if err != nil {
		return nil, err
	}
	if !role.CanWrite() {
		return nil, apperrors.ForbiddenError("not allowed to edit versions")
	}

	links := entity.VideoVersionLinks{
		PreviewURL: entity.NormalizeURL(input.PreviewURL),
		FinalURL:   entity.NormalizeURL(input.FinalURL),
	}

	if input.VersionID != nil {
		return u.update(ctx, input.ProjectID, *input.VersionID, links)
	}
	return u.create(ctx, actorID, input.ProjectID, links)
}

func (u *versionUseCase) update(ctx context.Context, projectID, versionID uuid.UUID, links entity.VideoVersionLinks) (*SaveResult, error) {
	existing, err := u.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("version")
		}
		return nil, apperrors.InternalError("failed to get version", err)
	}
	if existing.ProjectID != projectID {
		return nil, apperrors.NotFoundError("version")
	}

	if err := u.versionRepo.UpdateLinks(ctx, versionID, links); err != nil {
		return nil, apperrors.InternalError("failed to update version", err)
	}

	updated, err := u.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		return nil, apperrors.InternalError("failed to get version", err)
	}

	return &SaveResult{Version: updated.ToResponse(), Created: false}, nil
}

func (u *versionUseCase) create(ctx context.Context, actorID, projectID uuid.UUID, links entity.VideoVersionLinks) (*SaveResult, error) {
	nextNumber, err := u.versionRepo.NextVersionNumber(ctx, projectID)
	if err != nil {
		return nil, apperrors.InternalError("failed to get next version number", err)
	}

	ver := &entity.VideoVersion{
		ProjectID:     projectID,
		VersionNumber: nextNumber,
		PreviewURL:    links.PreviewURL,
		FinalURL:      links.FinalURL,
		UploadedBy:    actorID,
		IsApproved:    false,
	}

	if err := u.versionRepo.Create(ctx, ver); err != nil {
		return nil, apperrors.InternalError("failed to create version", err)
	}

	return &SaveResult{Version: ver.ToResponse(), Created: true}, nil
}

func (u *versionUseCase) Approve(ctx context.Context, actorID, versionID uuid.UUID) (*entity.VideoVersionResponse, error) {
	if actorID == uuid.Nil {
		return nil, apperrors.UnauthorizedError("not authenticated")
	}

	ver, err := u.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("version")
		}
		return nil, apperrors.InternalError("failed to get version", err)
	}

	role, err := u.memberRole(ctx, ver.ProjectID, actorID)
	if err != nil {
		return nil, err
	}
	if !role.CanApprove() {
		return nil, apperrors.ForbiddenError("only the client can approve a version")
	}

	// Approval is one-way; an approved version stays approved.
	if ver.IsApproved {
		return nil, apperrors.ConflictError("version already approved")
	}

	if err := u.versionRepo.SetApproved(ctx, versionID, actorID); err != nil {
		return nil, apperrors.InternalError("failed to approve version", err)
	}

	approved, err := u.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		return nil, apperrors.InternalError("failed to get version", err)
	}

	return approved.ToResponse(), nil
}

func (u *versionUseCase) Delete(ctx context.Context, actorID, versionID uuid.UUID) error {
	if actorID == uuid.Nil {
		return apperrors.UnauthorizedError("not authenticated")
	}

	ver, err := u.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NotFoundError("version")
		}
		return apperrors.InternalError("failed to get version", err)
	}

	role, err := u.memberRole(ctx, ver.ProjectID, actorID)
	if err != nil {
		return err
	}
	if !role.CanWrite() {
		return apperrors.ForbiddenError("not allowed to delete versions")
	}

	if err := u.versionRepo.Delete(ctx, versionID); err != nil {
		return apperrors.InternalError("failed to delete version", err)
	}

	return nil
}

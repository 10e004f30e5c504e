package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
	"github.com/corvidlabs/reviewdesk/internal/domain/repository"
	apperrors "github.com/corvidlabs/reviewdesk/pkg/errors"
)

// VideoVersionModel is the Gorm model for video_versions table
type VideoVersionModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProjectID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_project_version,unique,priority:1"`
	VersionNumber int        `gorm:"not null;index:idx_project_version,unique,priority:2"`
	PreviewURL    *string    `gorm:"size:2000"`
	FinalURL      *string    `gorm:"size:2000"`
	UploadedBy    uuid.UUID  `gorm:"type:uuid;not null;index"`
	IsApproved    bool       `gorm:"not null;default:false"`
	ApprovedBy    *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relations
	Uploader *UserModel `gorm:"foreignKey:UploadedBy"`
}

// TableName returns the table name
func (VideoVersionModel) TableName() string {
	return "video_versions"
}

// ToEntity converts VideoVersionModel to entity.VideoVersion
func (m *VideoVersionModel) ToEntity() *entity.VideoVersion {
	ver := &entity.VideoVersion{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		VersionNumber: m.VersionNumber,
		PreviewURL:    m.PreviewURL,
		FinalURL:      m.FinalURL,
		UploadedBy:    m.UploadedBy,
		IsApproved:    m.IsApproved,
		ApprovedBy:    m.ApprovedBy,
		ApprovedAt:    m.ApprovedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.Uploader != nil {
		ver.Uploader = m.Uploader.ToEntity()
	}

	return ver
}

// versionRepository implements repository.VersionRepository
type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new video version repository
func NewVersionRepository(db *gorm.DB) repository.VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) Create(ctx context.Context, version *entity.VideoVersion) error {
	if version.ID == uuid.Nil {
		version.ID = uuid.New()
	}
	version.CreatedAt = time.Now()
	version.UpdatedAt = version.CreatedAt

	model := &VideoVersionModel{
		ID:            version.ID,
		ProjectID:     version.ProjectID,
		VersionNumber: version.VersionNumber,
		PreviewURL:    version.PreviewURL,
		FinalURL:      version.FinalURL,
		UploadedBy:    version.UploadedBy,
		IsApproved:    version.IsApproved,
		CreatedAt:     version.CreatedAt,
		UpdatedAt:     version.UpdatedAt,
	}

	return r.db.WithContext(ctx).Create(model).Error
}

func (r *versionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.VideoVersion, error) {
	var model VideoVersionModel
	if err := r.db.WithContext(ctx).
		Preload("Uploader").
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

func (r *versionRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.VideoVersion, error) {
	var models []VideoVersionModel
	if err := r.db.WithContext(ctx).
		Preload("Uploader").
		Where("project_id = ?", projectID).
		Order("version_number ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	versions := make([]entity.VideoVersion, len(models))
	for i := range models {
		versions[i] = *models[i].ToEntity()
	}

	return versions, nil
}

func (r *versionRepository) UpdateLinks(ctx context.Context, id uuid.UUID, links entity.VideoVersionLinks) error {
	result := r.db.WithContext(ctx).Model(&VideoVersionModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"preview_url": links.PreviewURL,
			"final_url":   links.FinalURL,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *versionRepository) SetApproved(ctx context.Context, id uuid.UUID, approvedBy uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&VideoVersionModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_approved": true,
			"approved_by": approvedBy,
			"approved_at": &now,
			"updated_at":  now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *versionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&VideoVersionModel{}, "id = ?", id).Error
}

func (r *versionRepository) NextVersionNumber(ctx context.Context, projectID uuid.UUID) (int, error) {
	var maxVersion int
	if err := r.db.WithContext(ctx).Model(&VideoVersionModel{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&maxVersion).Error; err != nil {
		return 0, err
	}
	return maxVersion + 1, nil
}

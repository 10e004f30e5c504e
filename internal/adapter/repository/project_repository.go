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

// ProjectModel is the Gorm model for projects table
type ProjectModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:200;not null"`
	Description string    `gorm:"size:2000"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"size:20;default:'active'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relations
	Owner *UserModel `gorm:"foreignKey:OwnerID"`
}

// TableName returns the table name
func (ProjectModel) TableName() string {
	return "projects"
}

// ToEntity converts ProjectModel to entity.Project
func (m *ProjectModel) ToEntity() *entity.Project {
	p := &entity.Project{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		Status:      entity.ProjectStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if m.Owner != nil {
		p.Owner = m.Owner.ToEntity()
	}

	return p
}

// projectRepository implements repository.ProjectRepository
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	if project.Status == "" {
		project.Status = entity.ProjectStatusActive
	}

	model := &ProjectModel{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		Status:      string(project.Status),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	return r.db.WithContext(ctx).Create(model).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var model ProjectModel
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

func (r *projectRepository) ListByMember(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]entity.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&ProjectModel{}).
		Joins("JOIN memberships ON memberships.project_id = projects.id").
		Where("memberships.user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	var models []ProjectModel
	if err := query.Offset(offset).Limit(pageSize).
		Preload("Owner").
		Order("projects.created_at DESC").
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	projects := make([]entity.Project, len(models))
	for i := range models {
		projects[i] = *models[i].ToEntity()
	}

	return projects, total, nil
}

func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	project.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Model(&ProjectModel{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"name":        project.Name,
			"description": project.Description,
			"status":      string(project.Status),
			"updated_at":  project.UpdatedAt,
		}).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&VideoVersionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&MembershipModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ProjectModel{}, "id = ?", id).Error
	})
}

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

// MembershipModel is the Gorm model for memberships table
type MembershipModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_project_user,unique,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_project_user,unique,priority:2"`
	Role      string    `gorm:"size:20;not null"`
	GrantedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName returns the table name
func (MembershipModel) TableName() string {
	return "memberships"
}

// ToEntity converts MembershipModel to entity.Membership
func (m *MembershipModel) ToEntity() *entity.Membership {
	member := &entity.Membership{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Role:      entity.MemberRole(m.Role),
		GrantedBy: m.GrantedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.User != nil {
		member.User = m.User.ToEntity()
	}

	return member
}

// membershipRepository implements repository.MembershipRepository
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, membership *entity.Membership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	membership.CreatedAt = time.Now()
	membership.UpdatedAt = membership.CreatedAt

	model := &MembershipModel{
		ID:        membership.ID,
		ProjectID: membership.ProjectID,
		UserID:    membership.UserID,
		Role:      string(membership.Role),
		GrantedBy: membership.GrantedBy,
		CreatedAt: membership.CreatedAt,
		UpdatedAt: membership.UpdatedAt,
	}

	return r.db.WithContext(ctx).Create(model).Error
}

func (r *membershipRepository) GetByProjectAndUser(ctx context.Context, projectID, userID uuid.UUID) (*entity.Membership, error) {
	var model MembershipModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

func (r *membershipRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Membership, error) {
	var models []MembershipModel
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	memberships := make([]entity.Membership, len(models))
	for i := range models {
		memberships[i] = *models[i].ToEntity()
	}

	return memberships, nil
}

func (r *membershipRepository) UpdateRole(ctx context.Context, projectID, userID uuid.UUID, role entity.MemberRole) error {
	result := r.db.WithContext(ctx).Model(&MembershipModel{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Updates(map[string]interface{}{
			"role":       string(role),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *membershipRepository) Delete(ctx context.Context, projectID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&MembershipModel{}).Error
}

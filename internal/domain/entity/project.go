package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the project lifecycle status
type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
)

// Project represents a video production project. Versions belong to exactly
// one project.
type Project struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	OwnerID     uuid.UUID     `json:"owner_id"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations (not stored in DB)
	Owner *User `json:"owner,omitempty"`
}

// ProjectCreate represents the data needed to create a project
type ProjectCreate struct {
	Name        string
	Description string
	OwnerID     uuid.UUID
}

// ProjectUpdate represents the data that can be updated
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *ProjectStatus
}

// ProjectResponse represents the project data returned to client
type ProjectResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	Owner       *UserResponse `json:"owner,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ToResponse converts Project to ProjectResponse
func (p *Project) ToResponse() *ProjectResponse {
	resp := &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if p.Owner != nil {
		resp.Owner = p.Owner.ToResponse()
	}

	return resp
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// MemberRole represents a user's role within a project
type MemberRole string

const (
	// MemberRoleOwner owns the project and manages memberships.
	MemberRoleOwner MemberRole = "owner"
	// MemberRoleEditor produces versions: create, edit, delete.
	MemberRoleEditor MemberRole = "editor"
	// MemberRoleClient is the requester who commissioned the video; the only
	// role allowed to approve a version.
	MemberRoleClient MemberRole = "client"
)

// Membership represents a user's membership in a project
type Membership struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID uuid.UUID  `json:"project_id"`
	UserID    uuid.UUID  `json:"user_id"`
	Role      MemberRole `json:"role"`
	GrantedBy uuid.UUID  `json:"granted_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations (not stored in DB)
	User *User `json:"user,omitempty"`
}

// MembershipCreate represents the data needed to grant a membership
type MembershipCreate struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Role      MemberRole
	GrantedBy uuid.UUID
}

// MembershipUpdate represents the data to update a membership
type MembershipUpdate struct {
	Role MemberRole
}

// MembershipResponse represents the membership data returned to client
type MembershipResponse struct {
	ID        uuid.UUID     `json:"id"`
	Role      MemberRole    `json:"role"`
	User      *UserResponse `json:"user,omitempty"`
	GrantedAt time.Time     `json:"granted_at"`
}

// ToResponse converts Membership to MembershipResponse
func (m *Membership) ToResponse() *MembershipResponse {
	resp := &MembershipResponse{
		ID:        m.ID,
		Role:      m.Role,
		GrantedAt: m.CreatedAt,
	}

	if m.User != nil {
		resp.User = m.User.ToResponse()
	}

	return resp
}

// CanRead checks if the role can view the project and its versions
func (r MemberRole) CanRead() bool {
	return r == MemberRoleOwner || r == MemberRoleEditor || r == MemberRoleClient
}

// CanWrite checks if the role can create, edit and delete versions
func (r MemberRole) CanWrite() bool {
	return r == MemberRoleOwner || r == MemberRoleEditor
}

// CanApprove checks if the role can approve a version
func (r MemberRole) CanApprove() bool {
	return r == MemberRoleClient
}

// CanManage checks if the role can manage memberships
func (r MemberRole) CanManage() bool {
	return r == MemberRoleOwner
}

// IsValid checks if the role is valid
func (r MemberRole) IsValid() bool {
	return r == MemberRoleOwner || r == MemberRoleEditor || r == MemberRoleClient
}

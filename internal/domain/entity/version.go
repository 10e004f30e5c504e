package entity

import (
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidURL is returned when a link field fails strict URL parsing.
var ErrInvalidURL = errors.New("invalid url")

// VideoVersion represents a single tracked iteration of a deliverable video.
// PreviewURL and FinalURL are nil when not provided; an empty string is never
// stored.
type VideoVersion struct {
	ID            uuid.UUID  `json:"id"`
	ProjectID     uuid.UUID  `json:"project_id"`
	VersionNumber int        `json:"version_number"`
	PreviewURL    *string    `json:"preview_url,omitempty"`
	FinalURL      *string    `json:"final_url,omitempty"`
	UploadedBy    uuid.UUID  `json:"uploaded_by"`
	IsApproved    bool       `json:"is_approved"`
	ApprovedBy    *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations (not stored in DB)
	Uploader *User `json:"uploader,omitempty"`
}

// VideoVersionCreate represents the data needed to create a version
type VideoVersionCreate struct {
	ProjectID  uuid.UUID
	PreviewURL *string
	FinalURL   *string
	UploadedBy uuid.UUID
}

// VideoVersionLinks represents the editable link fields of a version.
// Approval state is never touched through this type.
type VideoVersionLinks struct {
	PreviewURL *string
	FinalURL   *string
}

// VideoVersionResponse represents the version data returned to client
type VideoVersionResponse struct {
	ID            uuid.UUID     `json:"id"`
	ProjectID     uuid.UUID     `json:"project_id"`
	VersionNumber int           `json:"version_number"`
	PreviewURL    *string       `json:"preview_url,omitempty"`
	FinalURL      *string       `json:"final_url,omitempty"`
	IsApproved    bool          `json:"is_approved"`
	ApprovedAt    *time.Time    `json:"approved_at,omitempty"`
	Uploader      *UserResponse `json:"uploader,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ToResponse converts VideoVersion to VideoVersionResponse
func (v *VideoVersion) ToResponse() *VideoVersionResponse {
	resp := &VideoVersionResponse{
		ID:            v.ID,
		ProjectID:     v.ProjectID,
		VersionNumber: v.VersionNumber,
		PreviewURL:    v.PreviewURL,
		FinalURL:      v.FinalURL,
		IsApproved:    v.IsApproved,
		ApprovedAt:    v.ApprovedAt,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}

	if v.Uploader != nil {
		resp.Uploader = v.Uploader.ToResponse()
	}

	return resp
}

// NextVersionNumber returns one greater than the maximum version number in the
// given list, or 1 when the list is empty. Gaps in the numbering are allowed;
// only the maximum matters.
func NextVersionNumber(versions []VideoVersion) int {
	max := 0
	for i := range versions {
		if versions[i].VersionNumber > max {
			max = versions[i].VersionNumber
		}
	}
	return max + 1
}

// ValidateURL checks that s parses as an absolute URL. The empty string is
// exempt: it means "not provided" and is stored as absent.
func ValidateURL(s string) error {
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// NormalizeURL maps a blank input to nil so that "absent" and "empty string"
// never get conflated in storage.
func NormalizeURL(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// URLValue is the inverse of NormalizeURL, for seeding edit drafts.
func URLValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CanApprove reports whether the approve action is available for the version
// under the given membership role. Already approved versions are never
// approvable again; only the client (requester) role may approve.
func (v *VideoVersion) CanApprove(role MemberRole) bool {
	return !v.IsApproved && role == MemberRoleClient
}

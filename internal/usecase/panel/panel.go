// Package panel implements the version management panel: the dialog state
// machine, the unsaved form draft, the two-step delete confirmation and the
// notification flow behind the project's version list. One Session serves one
// connected client; all remote writes go through the version use case.
package panel

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/logger"
	"github.com/corvidlabs/reviewdesk/internal/usecase/version"
)

// DialogState represents the create/edit dialog state
type DialogState string

const (
	DialogClosed DialogState = "closed"
	DialogCreate DialogState = "create"
	DialogEdit   DialogState = "edit"
)

// User-facing notification messages
const (
	MsgVersionUpdated  = "Version updated successfully"
	MsgVersionCreated  = "New version created successfully"
	MsgVersionDeleted  = "Version deleted"
	MsgVersionApproved = "Version approved"
	MsgSaveFailed      = "Failed to save version"
	MsgDeleteFailed    = "Failed to delete version"
	MsgApproveFailed   = "Failed to approve version"
	MsgInvalidPreview  = "Please enter a valid preview URL"
	MsgInvalidFinal    = "Please enter a valid final URL"
)

// Notifier receives user-facing toast notifications
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Draft holds the unsaved state of the create/edit form
type Draft struct {
	PreviewURL string `json:"preview_url"`
	FinalURL   string `json:"final_url"`
}

// Actions reports which row actions are available for a version under the
// session's role. Approve is never offered for an already approved version.
type Actions struct {
	CanEdit    bool `json:"can_edit"`
	CanDelete  bool `json:"can_delete"`
	CanApprove bool `json:"can_approve"`
}

// Session is the server-held state of one client's management panel. Methods
// are safe for concurrent use; a submit that arrives while a save is still in
// flight is dropped rather than producing a second request.
type Session struct {
	mu sync.Mutex

	projectID uuid.UUID
	actorID   uuid.UUID
	role      entity.MemberRole

	versions      []entity.VideoVersionResponse
	state         DialogState
	draft         Draft
	editing       *uuid.UUID
	pendingDelete *uuid.UUID
	saving        bool

	service   version.UseCase
	notifier  Notifier
	onRefresh func()
	log       zerolog.Logger
}

// NewSession creates a panel session for one authenticated member of a
// project. onRefresh is invoked after every successful mutation so other
// viewers of the list can re-fetch; it may be nil.
func NewSession(
	projectID, actorID uuid.UUID,
	role entity.MemberRole,
	service version.UseCase,
	notifier Notifier,
	onRefresh func(),
) *Session {
	return &Session{
		projectID: projectID,
		actorID:   actorID,
		role:      role,
		state:     DialogClosed,
		service:   service,
		notifier:  notifier,
		onRefresh: onRefresh,
		log: logger.NewLogger("panel").With().
			Str("project_id", projectID.String()).
			Str("user_id", actorID.String()).
			Logger(),
	}
}

// Refresh re-fetches the project's version list
func (s *Session) Refresh(ctx context.Context) error {
	versions, err := s.service.ListByProject(ctx, s.actorID, s.projectID)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to refresh version list")
		return err
	}

	s.mu.Lock()
	s.versions = versions
	s.mu.Unlock()
	return nil
}

// Versions returns the current snapshot of the version list
func (s *Session) Versions() []entity.VideoVersionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.VideoVersionResponse, len(s.versions))
	copy(out, s.versions)
	return out
}

// State returns the dialog state
func (s *Session) State() DialogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns the current form draft
func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// EditingID returns the id of the version being edited, or nil in create mode
func (s *Session) EditingID() *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == nil {
		return nil
	}
	id := *s.editing
	return &id
}

// PendingDeleteID returns the id awaiting delete confirmation, or nil
func (s *Session) PendingDeleteID() *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingDelete == nil {
		return nil
	}
	id := *s.pendingDelete
	return &id
}

// ActionsFor reports the row actions available for the given version
func (s *Session) ActionsFor(v *entity.VideoVersionResponse) Actions {
	return Actions{
		CanEdit:    s.role.CanWrite(),
		CanDelete:  s.role.CanWrite(),
		CanApprove: !v.IsApproved && s.role.CanApprove(),
	}
}

// OpenCreate opens the dialog in create mode with an empty draft
func (s *Session) OpenCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = DialogCreate
	s.draft = Draft{}
	s.editing = nil
}

// OpenEdit opens the dialog in edit mode, seeding the draft from the listed
// version. Unknown ids are ignored.
func (s *Session) OpenEdit(versionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.versions {
		if s.versions[i].ID == versionID {
			s.state = DialogEdit
			s.draft = Draft{
				PreviewURL: entity.URLValue(s.versions[i].PreviewURL),
				FinalURL:   entity.URLValue(s.versions[i].FinalURL),
			}
			id := versionID
			s.editing = &id
			return
		}
	}
}

// SetDraft replaces the form fields while the dialog is open
func (s *Session) SetDraft(draft Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == DialogClosed {
		return
	}
	s.draft = draft
}

// Close dismisses the dialog. The draft and edit target are cleared on every
// transition into the closed state, whatever the cause.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// reset must be called with s.mu held
func (s *Session) reset() {
	s.state = DialogClosed
	s.draft = Draft{}
	s.editing = nil
}

// Submit validates the draft and saves it. Validation failure or a remote
// error leaves the dialog open with the draft intact so the user can retry;
// success closes the dialog, clears the draft and triggers a refresh.
func (s *Session) Submit(ctx context.Context) {
	s.mu.Lock()
	if s.state == DialogClosed {
		s.mu.Unlock()
		return
	}
	if s.saving {
		// A save is already in flight; drop the duplicate submit.
		s.mu.Unlock()
		return
	}

	draft := s.draft
	if entity.ValidateURL(draft.PreviewURL) != nil {
		s.mu.Unlock()
		s.notifier.Error(MsgInvalidPreview)
		return
	}
	if entity.ValidateURL(draft.FinalURL) != nil {
		s.mu.Unlock()
		s.notifier.Error(MsgInvalidFinal)
		return
	}

	input := &version.SaveInput{
		ProjectID:  s.projectID,
		VersionID:  s.editing,
		PreviewURL: draft.PreviewURL,
		FinalURL:   draft.FinalURL,
	}
	s.saving = true
	s.mu.Unlock()

	result, err := s.service.Save(ctx, s.actorID, input)

	s.mu.Lock()
	s.saving = false
	if err != nil {
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("Failed to save version")
		s.notifier.Error(MsgSaveFailed)
		return
	}
	s.reset()
	s.mu.Unlock()

	if result.Created {
		s.notifier.Success(MsgVersionCreated)
	} else {
		s.notifier.Success(MsgVersionUpdated)
	}
	s.refreshAfterMutation(ctx)
}

// RequestDelete starts the two-step delete confirmation for a version. No
// remote call is made until ConfirmDelete.
func (s *Session) RequestDelete(versionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := versionID
	s.pendingDelete = &id
}

// DismissDelete cancels a pending delete without issuing any call
func (s *Session) DismissDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = nil
}

// ConfirmDelete issues the delete for the pending version id
func (s *Session) ConfirmDelete(ctx context.Context) {
	s.mu.Lock()
	if s.pendingDelete == nil {
		s.mu.Unlock()
		return
	}
	id := *s.pendingDelete
	s.pendingDelete = nil
	s.mu.Unlock()

	if err := s.service.Delete(ctx, s.actorID, id); err != nil {
		s.log.Error().Err(err).Str("version_id", id.String()).Msg("Failed to delete version")
		s.notifier.Error(MsgDeleteFailed)
		return
	}

	s.notifier.Success(MsgVersionDeleted)
	s.refreshAfterMutation(ctx)
}

// Approve marks a version as approved
func (s *Session) Approve(ctx context.Context, versionID uuid.UUID) {
	if _, err := s.service.Approve(ctx, s.actorID, versionID); err != nil {
		s.log.Error().Err(err).Str("version_id", versionID.String()).Msg("Failed to approve version")
		s.notifier.Error(MsgApproveFailed)
		return
	}

	s.notifier.Success(MsgVersionApproved)
	s.refreshAfterMutation(ctx)
}

func (s *Session) refreshAfterMutation(ctx context.Context) {
	if s.onRefresh != nil {
		s.onRefresh()
	}
	// Failure here only leaves the snapshot stale; the mutation itself
	// already succeeded.
	_ = s.Refresh(ctx)
}

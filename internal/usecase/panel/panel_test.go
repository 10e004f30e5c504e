package panel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
	"github.com/corvidlabs/reviewdesk/internal/usecase/version"
)

// recordingNotifier captures toasts in order
type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.errors = append(n.errors, message) }

// fakeService is an in-memory version.UseCase. Save can be made to fail or to
// block on a channel so the in-flight guard is observable.
type fakeService struct {
	versions map[uuid.UUID]*entity.VideoVersionResponse

	saveCalls    int
	deleteCalls  int
	approveCalls int

	failSave    bool
	failDelete  bool
	failApprove bool

	saveStarted chan struct{}
	saveRelease chan struct{}
}

func newFakeService() *fakeService {
	return &fakeService{versions: make(map[uuid.UUID]*entity.VideoVersionResponse)}
}

func (s *fakeService) add(projectID uuid.UUID, number int, preview, final *string) *entity.VideoVersionResponse {
	v := &entity.VideoVersionResponse{
		ID:            uuid.New(),
		ProjectID:     projectID,
		VersionNumber: number,
		PreviewURL:    preview,
		FinalURL:      final,
		CreatedAt:     time.Now(),
	}
	s.versions[v.ID] = v
	return v
}

func (s *fakeService) ListByProject(_ context.Context, _, projectID uuid.UUID) ([]entity.VideoVersionResponse, error) {
	var out []entity.VideoVersionResponse
	for _, v := range s.versions {
		if v.ProjectID == projectID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (s *fakeService) GetByID(_ context.Context, _, versionID uuid.UUID) (*entity.VideoVersionResponse, error) {
	v, ok := s.versions[versionID]
	if !ok {
		return nil, errors.New("not found")
	}
	out := *v
	return &out, nil
}

func (s *fakeService) Save(_ context.Context, _ uuid.UUID, input *version.SaveInput) (*version.SaveResult, error) {
	s.saveCalls++
	if s.saveStarted != nil {
		close(s.saveStarted)
		s.saveStarted = nil
		<-s.saveRelease
	}
	if s.failSave {
		return nil, errors.New("store unavailable")
	}

	if input.VersionID != nil {
		v, ok := s.versions[*input.VersionID]
		if !ok {
			return nil, errors.New("not found")
		}
		v.PreviewURL = entity.NormalizeURL(input.PreviewURL)
		v.FinalURL = entity.NormalizeURL(input.FinalURL)
		out := *v
		return &version.SaveResult{Version: &out, Created: false}, nil
	}

	created := s.add(input.ProjectID, len(s.versions)+1,
		entity.NormalizeURL(input.PreviewURL), entity.NormalizeURL(input.FinalURL))
	out := *created
	return &version.SaveResult{Version: &out, Created: true}, nil
}

func (s *fakeService) Approve(_ context.Context, actorID, versionID uuid.UUID) (*entity.VideoVersionResponse, error) {
	s.approveCalls++
	if s.failApprove {
		return nil, errors.New("store unavailable")
	}
	v, ok := s.versions[versionID]
	if !ok {
		return nil, errors.New("not found")
	}
	now := time.Now()
	v.IsApproved = true
	v.ApprovedAt = &now
	_ = actorID
	out := *v
	return &out, nil
}

func (s *fakeService) Delete(_ context.Context, _, versionID uuid.UUID) error {
	s.deleteCalls++
	if s.failDelete {
		return errors.New("store unavailable")
	}
	if _, ok := s.versions[versionID]; !ok {
		return errors.New("not found")
	}
	delete(s.versions, versionID)
	return nil
}

type panelFixture struct {
	session   *Session
	service   *fakeService
	notifier  *recordingNotifier
	projectID uuid.UUID
	refreshes int
}

func newPanelFixture(t *testing.T, role entity.MemberRole) *panelFixture {
	t.Helper()
	f := &panelFixture{
		service:   newFakeService(),
		notifier:  &recordingNotifier{},
		projectID: uuid.New(),
	}
	f.session = NewSession(f.projectID, uuid.New(), role, f.service, f.notifier, func() {
		f.refreshes++
	})
	return f
}

func (f *panelFixture) refresh(t *testing.T) {
	t.Helper()
	require.NoError(t, f.session.Refresh(context.Background()))
}

func strptr(s string) *string { return &s }

func TestOpenCreateStartsWithEmptyDraft(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)

	f.session.OpenCreate()

	assert.Equal(t, DialogCreate, f.session.State())
	assert.Equal(t, Draft{}, f.session.Draft())
	assert.Nil(t, f.session.EditingID())
}

func TestOpenEditSeedsDraftFromListedVersion(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)
	v := f.service.add(f.projectID, 1, strptr("https://example.com/preview"), nil)
	f.refresh(t)

	f.session.OpenEdit(v.ID)

	assert.Equal(t, DialogEdit, f.session.State())
	// Absent links surface as empty fields in the form.
	assert.Equal(t, Draft{PreviewURL: "https://example.com/preview", FinalURL: ""}, f.session.Draft())
	require.NotNil(t, f.session.EditingID())
	assert.Equal(t, v.ID, *f.session.EditingID())
}

func TestOpenEditUnknownIDIsIgnored(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)
	f.refresh(t)

	f.session.OpenEdit(uuid.New())

	assert.Equal(t, DialogClosed, f.session.State())
}

func TestSetDraftIgnoredWhileClosed(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)

	f.session.SetDraft(Draft{PreviewURL: "https://example.com"})

	assert.Equal(t, Draft{}, f.session.Draft())
}

func TestCloseClearsDraft(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)

	f.session.OpenCreate()
	f.session.SetDraft(Draft{PreviewURL: "https://example.com/wip"})
	f.session.Close()

	assert.Equal(t, DialogClosed, f.session.State())
	assert.Equal(t, Draft{}, f.session.Draft())

	// Reopening starts fresh; the dismissed draft does not leak back in.
	f.session.OpenCreate()
	assert.Equal(t, Draft{}, f.session.Draft())
}

func TestSubmitCreateSuccess(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)
	f.refresh(t)

	f.session.OpenCreate()
	f.session.SetDraft(Draft{PreviewURL: "https://example.com/v1", FinalURL: ""})
	f.session.Submit(context.Background())

	assert.Equal(t, []string{MsgVersionCreated}, f.notifier.successes)
	assert.Empty(t, f.notifier.errors)
	assert.Equal(t, DialogClosed, f.session.State())
	assert.Equal(t, Draft{}, f.session.Draft())
	assert.Equal(t, 1, f.refreshes)
	assert.Len(t, f.session.Versions(), 1)
}

func TestSubmitEditSuccess(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)
	v := f.service.add(f.projectID, 1, strptr("https://example.com/old"), nil)
	f.refresh(t)

	f.session.OpenEdit(v.ID)
	f.session.SetDraft(Draft{PreviewURL: "https://example.com/new"})
	f.session.Submit(context.Background())

	assert.Equal(t, []string{MsgVersionUpdated}, f.notifier.successes)
	assert.Equal(t, DialogClosed, f.session.State())
	assert.Equal(t, 1, f.refreshes)
}

func TestSubmitInvalidPreviewKeepsDialogOpen(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)

	f.session.OpenCreate()
	draft := Draft{PreviewURL: "not a url", FinalURL: "https://example.com/final"}
	f.session.SetDraft(draft)
	f.session.Submit(context.Background())

	assert.Equal(t, []string{MsgInvalidPreview}, f.notifier.errors)
	assert.Equal(t, DialogCreate, f.session.State())
	assert.Equal(t, draft, f.session.Draft())
	assert.Zero(t, f.service.saveCalls)
}

func TestSubmitInvalidFinalKeepsDialogOpen(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)

	f.session.OpenCreate()
	f.session.SetDraft(Draft{FinalURL: "not a url"})
	f.session.Submit(context.Background())

	assert.Equal(t, []string{MsgInvalidFinal}, f.notifier.errors)
	assert.Equal(t, DialogCreate, f.session.State())
	assert.Zero(t, f.service.saveCalls)
}

func TestSubmitRemoteFailureRetainsDraft(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)
	f.service.failSave = true

	f.session.OpenCreate()
	draft := Draft{PreviewURL: "https://example.com/v1"}
	f.session.SetDraft(draft)
	f.session.Submit(context.Background())

	assert.Equal(t, []string{MsgSaveFailed}, f.notifier.errors)
	assert.Equal(t, DialogCreate, f.session.State())
	assert.Equal(t, draft, f.session.Draft())
	assert.Zero(t, f.refreshes)

	// A retry after the store recovers goes through with the same draft.
	f.service.failSave = false
	f.session.Submit(context.Background())
	assert.Equal(t, []string{MsgVersionCreated}, f.notifier.successes)
	assert.Equal(t, DialogClosed, f.session.State())
}

func TestSubmitWhileSaveInFlightIsDropped(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)
	started := make(chan struct{})
	release := make(chan struct{})
	f.service.saveStarted = started
	f.service.saveRelease = release

	f.session.OpenCreate()
	f.session.SetDraft(Draft{PreviewURL: "https://example.com/v1"})

	done := make(chan struct{})
	go func() {
		f.session.Submit(context.Background())
		close(done)
	}()

	<-started
	// Second submit arrives while the first save is still in flight.
	f.session.Submit(context.Background())
	close(release)
	<-done

	assert.Equal(t, 1, f.service.saveCalls)
	assert.Equal(t, []string{MsgVersionCreated}, f.notifier.successes)
}

func TestSubmitWhileClosedIsIgnored(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)

	f.session.Submit(context.Background())

	assert.Zero(t, f.service.saveCalls)
	assert.Empty(t, f.notifier.errors)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)
	v := f.service.add(f.projectID, 1, nil, nil)
	f.refresh(t)

	f.session.RequestDelete(v.ID)
	require.NotNil(t, f.session.PendingDeleteID())
	assert.Equal(t, v.ID, *f.session.PendingDeleteID())
	assert.Zero(t, f.service.deleteCalls)

	f.session.ConfirmDelete(context.Background())
	assert.Equal(t, 1, f.service.deleteCalls)
	assert.Nil(t, f.session.PendingDeleteID())
	assert.Equal(t, []string{MsgVersionDeleted}, f.notifier.successes)
	assert.Equal(t, 1, f.refreshes)
	assert.Empty(t, f.session.Versions())
}

func TestDismissDeleteIssuesNoCall(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)
	v := f.service.add(f.projectID, 1, nil, nil)
	f.refresh(t)

	f.session.RequestDelete(v.ID)
	f.session.DismissDelete()

	assert.Nil(t, f.session.PendingDeleteID())
	assert.Zero(t, f.service.deleteCalls)

	// Confirm after dismissal is a no-op.
	f.session.ConfirmDelete(context.Background())
	assert.Zero(t, f.service.deleteCalls)
}

func TestConfirmDeleteFailure(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleEditor)
	v := f.service.add(f.projectID, 1, nil, nil)
	f.refresh(t)
	f.service.failDelete = true

	f.session.RequestDelete(v.ID)
	f.session.ConfirmDelete(context.Background())

	assert.Equal(t, []string{MsgDeleteFailed}, f.notifier.errors)
	assert.Zero(t, f.refreshes)
}

func TestApprove(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleClient)
	v := f.service.add(f.projectID, 1, nil, nil)
	f.refresh(t)

	f.session.Approve(context.Background(), v.ID)

	assert.Equal(t, []string{MsgVersionApproved}, f.notifier.successes)
	assert.Equal(t, 1, f.refreshes)

	versions := f.session.Versions()
	require.Len(t, versions, 1)
	assert.True(t, versions[0].IsApproved)
}

func TestApproveFailure(t *testing.T) {
	f := newPanelFixture(t, entity.MemberRoleClient)
	v := f.service.add(f.projectID, 1, nil, nil)
	f.refresh(t)
	f.service.failApprove = true

	f.session.Approve(context.Background(), v.ID)

	assert.Equal(t, []string{MsgApproveFailed}, f.notifier.errors)
	assert.Zero(t, f.refreshes)
}

func TestActionsFor(t *testing.T) {
	pending := entity.VideoVersionResponse{ID: uuid.New()}
	approved := entity.VideoVersionResponse{ID: uuid.New(), IsApproved: true}

	editor := newPanelFixture(t, entity.MemberRoleEditor)
	assert.Equal(t, Actions{CanEdit: true, CanDelete: true, CanApprove: false},
		editor.session.ActionsFor(&pending))

	client := newPanelFixture(t, entity.MemberRoleClient)
	assert.Equal(t, Actions{CanEdit: false, CanDelete: false, CanApprove: true},
		client.session.ActionsFor(&pending))
	// Approve is never offered twice.
	assert.Equal(t, Actions{CanEdit: false, CanDelete: false, CanApprove: false},
		client.session.ActionsFor(&approved))
}

package version

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
	apperrors "github.com/corvidlabs/reviewdesk/pkg/errors"
)

// fakeVersionRepo is an in-memory VersionRepository that counts calls so tests
// can assert that validation failures never reach the store.
type fakeVersionRepo struct {
	versions map[uuid.UUID]*entity.VideoVersion
	calls    int
}

func newFakeVersionRepo() *fakeVersionRepo {
	return &fakeVersionRepo{versions: make(map[uuid.UUID]*entity.VideoVersion)}
}

func (r *fakeVersionRepo) Create(_ context.Context, v *entity.VideoVersion) error {
	r.calls++
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	stored := *v
	r.versions[v.ID] = &stored
	return nil
}

func (r *fakeVersionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.VideoVersion, error) {
	r.calls++
	v, ok := r.versions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := *v
	return &out, nil
}

func (r *fakeVersionRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]entity.VideoVersion, error) {
	r.calls++
	var out []entity.VideoVersion
	for _, v := range r.versions {
		if v.ProjectID == projectID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeVersionRepo) UpdateLinks(_ context.Context, id uuid.UUID, links entity.VideoVersionLinks) error {
	r.calls++
	v, ok := r.versions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	v.PreviewURL = links.PreviewURL
	v.FinalURL = links.FinalURL
	v.UpdatedAt = time.Now()
	return nil
}

func (r *fakeVersionRepo) SetApproved(_ context.Context, id uuid.UUID, approvedBy uuid.UUID) error {
	r.calls++
	v, ok := r.versions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	now := time.Now()
	v.IsApproved = true
	v.ApprovedBy = &approvedBy
	v.ApprovedAt = &now
	return nil
}

func (r *fakeVersionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.calls++
	if _, ok := r.versions[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.versions, id)
	return nil
}

func (r *fakeVersionRepo) NextVersionNumber(_ context.Context, projectID uuid.UUID) (int, error) {
	r.calls++
	max := 0
	for _, v := range r.versions {
		if v.ProjectID == projectID && v.VersionNumber > max {
			max = v.VersionNumber
		}
	}
	return max + 1, nil
}

// fakeMembershipRepo serves a fixed set of memberships
type fakeMembershipRepo struct {
	roles map[uuid.UUID]entity.MemberRole // userID -> role, single project
}

func (r *fakeMembershipRepo) Create(_ context.Context, _ *entity.Membership) error { return nil }

func (r *fakeMembershipRepo) GetByProjectAndUser(_ context.Context, projectID, userID uuid.UUID) (*entity.Membership, error) {
	role, ok := r.roles[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &entity.Membership{ProjectID: projectID, UserID: userID, Role: role}, nil
}

func (r *fakeMembershipRepo) ListByProject(_ context.Context, _ uuid.UUID) ([]entity.Membership, error) {
	return nil, nil
}

func (r *fakeMembershipRepo) UpdateRole(_ context.Context, _, _ uuid.UUID, _ entity.MemberRole) error {
	return nil
}

func (r *fakeMembershipRepo) Delete(_ context.Context, _, _ uuid.UUID) error { return nil }

type fixture struct {
	uc        UseCase
	repo      *fakeVersionRepo
	projectID uuid.UUID
	owner     uuid.UUID
	editor    uuid.UUID
	client    uuid.UUID
	stranger  uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		repo:      newFakeVersionRepo(),
		projectID: uuid.New(),
		owner:     uuid.New(),
		editor:    uuid.New(),
		client:    uuid.New(),
		stranger:  uuid.New(),
	}
	members := &fakeMembershipRepo{roles: map[uuid.UUID]entity.MemberRole{
		f.owner:  entity.MemberRoleOwner,
		f.editor: entity.MemberRoleEditor,
		f.client: entity.MemberRoleClient,
	}}
	f.uc = NewUseCase(f.repo, members)
	return f
}

func (f *fixture) seed(t *testing.T, number int, preview, final *string) *entity.VideoVersion {
	t.Helper()
	v := &entity.VideoVersion{
		ID:            uuid.New(),
		ProjectID:     f.projectID,
		VersionNumber: number,
		PreviewURL:    preview,
		FinalURL:      final,
		UploadedBy:    f.editor,
	}
	require.NoError(t, f.repo.Create(context.Background(), v))
	return v
}

func strptr(s string) *string { return &s }

func TestSaveCreateAssignsNextNumber(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.uc.Save(ctx, f.editor, &SaveInput{ProjectID: f.projectID})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, 1, first.Version.VersionNumber)
	assert.Nil(t, first.Version.PreviewURL)
	assert.Nil(t, first.Version.FinalURL)

	f.seed(t, 2, nil, nil)
	f.seed(t, 4, nil, nil)

	next, err := f.uc.Save(ctx, f.editor, &SaveInput{ProjectID: f.projectID})
	require.NoError(t, err)
	assert.Equal(t, 5, next.Version.VersionNumber)
}

func TestSaveNormalizesBlankLinks(t *testing.T) {
	f := newFixture()

	result, err := f.uc.Save(context.Background(), f.editor, &SaveInput{
		ProjectID:  f.projectID,
		PreviewURL: "https://example.com/preview",
		FinalURL:   "",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Version.PreviewURL)
	assert.Equal(t, "https://example.com/preview", *result.Version.PreviewURL)
	assert.Nil(t, result.Version.FinalURL)
}

func TestSaveRejectsInvalidURLsBeforeAnyRepositoryCall(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Save(ctx, f.editor, &SaveInput{ProjectID: f.projectID, PreviewURL: "not a url"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "invalid preview URL", apperrors.GetAppError(err).Message)

	_, err = f.uc.Save(ctx, f.editor, &SaveInput{ProjectID: f.projectID, FinalURL: "://bad"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "invalid final URL", apperrors.GetAppError(err).Message)

	assert.Zero(t, f.repo.calls)
}

func TestSaveRequiresAuthenticatedActor(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Save(context.Background(), uuid.Nil, &SaveInput{ProjectID: f.projectID})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Zero(t, f.repo.calls)
}

func TestSaveForbidsNonWriters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Save(ctx, f.client, &SaveInput{ProjectID: f.projectID})
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))

	_, err = f.uc.Save(ctx, f.stranger, &SaveInput{ProjectID: f.projectID})
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestSaveUpdateRewritesLinksOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	seeded := f.seed(t, 1, strptr("https://example.com/old"), nil)
	require.NoError(t, f.repo.SetApproved(ctx, seeded.ID, f.client))

	result, err := f.uc.Save(ctx, f.editor, &SaveInput{
		ProjectID:  f.projectID,
		VersionID:  &seeded.ID,
		PreviewURL: "https://example.com/new",
		FinalURL:   "https://example.com/final",
	})
	require.NoError(t, err)

	assert.False(t, result.Created)
	assert.Equal(t, 1, result.Version.VersionNumber)
	require.NotNil(t, result.Version.PreviewURL)
	assert.Equal(t, "https://example.com/new", *result.Version.PreviewURL)
	// Rewriting links never touches approval state.
	assert.True(t, result.Version.IsApproved)
}

func TestSaveUpdateRejectsVersionFromAnotherProject(t *testing.T) {
	f := newFixture()
	seeded := f.seed(t, 1, nil, nil)

	_, err := f.uc.Save(context.Background(), f.editor, &SaveInput{
		ProjectID: uuid.New(),
		VersionID: &seeded.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestApprove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seeded := f.seed(t, 1, nil, nil)

	approved, err := f.uc.Approve(ctx, f.client, seeded.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.NotNil(t, approved.ApprovedAt)
}

func TestApproveForbidsNonClientRoles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seeded := f.seed(t, 1, nil, nil)

	for _, actor := range []uuid.UUID{f.owner, f.editor, f.stranger} {
		_, err := f.uc.Approve(ctx, actor, seeded.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsForbidden(err))
	}
}

func TestApproveAlreadyApprovedConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seeded := f.seed(t, 1, nil, nil)

	_, err := f.uc.Approve(ctx, f.client, seeded.ID)
	require.NoError(t, err)

	_, err = f.uc.Approve(ctx, f.client, seeded.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsAlreadyExists(err))
}

func TestDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seeded := f.seed(t, 1, nil, nil)

	require.NoError(t, f.uc.Delete(ctx, f.editor, seeded.ID))

	_, err := f.uc.GetByID(ctx, f.editor, seeded.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteForbidsClient(t *testing.T) {
	f := newFixture()
	seeded := f.seed(t, 1, nil, nil)

	err := f.uc.Delete(context.Background(), f.client, seeded.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestDeleteMissingVersion(t *testing.T) {
	f := newFixture()

	err := f.uc.Delete(context.Background(), f.editor, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListByProjectForbidsNonMembers(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ListByProject(context.Background(), f.stranger, f.projectID)
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/config"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/events"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/middleware"
	"github.com/corvidlabs/reviewdesk/internal/usecase/version"
	apperrors "github.com/corvidlabs/reviewdesk/pkg/errors"
)

// fakeVersionUseCase is a canned version.UseCase for handler tests
type fakeVersionUseCase struct {
	listResult []entity.VideoVersionResponse
	saveResult *version.SaveResult
	saveErr    error
	saveInput  *version.SaveInput
	actorID    uuid.UUID
}

func (f *fakeVersionUseCase) ListByProject(_ context.Context, actorID, _ uuid.UUID) ([]entity.VideoVersionResponse, error) {
	f.actorID = actorID
	return f.listResult, nil
}

func (f *fakeVersionUseCase) GetByID(_ context.Context, _, _ uuid.UUID) (*entity.VideoVersionResponse, error) {
	return nil, apperrors.NotFoundError("version")
}

func (f *fakeVersionUseCase) Save(_ context.Context, actorID uuid.UUID, input *version.SaveInput) (*version.SaveResult, error) {
	f.actorID = actorID
	f.saveInput = input
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return f.saveResult, nil
}

func (f *fakeVersionUseCase) Approve(_ context.Context, _, _ uuid.UUID) (*entity.VideoVersionResponse, error) {
	return nil, apperrors.ConflictError("version already approved")
}

func (f *fakeVersionUseCase) Delete(_ context.Context, _, _ uuid.UUID) error {
	return errors.New("unused")
}

func setupVersionRouter(uc version.UseCase, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.ContextUserID, userID.String())
		}
		c.Next()
	})

	hub := events.NewHub(&config.EventsConfig{})
	h := NewVersionHandler(uc, hub)
	router.GET("/projects/:project_id/versions", h.ListByProject)
	router.POST("/projects/:project_id/versions", h.Create)
	router.PUT("/projects/:project_id/versions/:version_id", h.Update)
	router.POST("/versions/:version_id/approve", h.Approve)
	return router
}

func TestListByProjectPassesActor(t *testing.T) {
	uc := &fakeVersionUseCase{listResult: []entity.VideoVersionResponse{}}
	actor := uuid.New()
	router := setupVersionRouter(uc, actor)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+uuid.New().String()+"/versions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, actor, uc.actorID)
}

func TestListByProjectInvalidID(t *testing.T) {
	router := setupVersionRouter(&fakeVersionUseCase{}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/projects/not-a-uuid/versions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateVersion(t *testing.T) {
	projectID := uuid.New()
	created := &entity.VideoVersionResponse{ID: uuid.New(), ProjectID: projectID, VersionNumber: 1}
	uc := &fakeVersionUseCase{saveResult: &version.SaveResult{Version: created, Created: true}}
	router := setupVersionRouter(uc, uuid.New())

	body, _ := json.Marshal(map[string]string{
		"preview_url": "https://example.com/preview",
		"final_url":   "",
	})
	req := httptest.NewRequest(http.MethodPost, "/projects/"+projectID.String()+"/versions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.saveInput)
	assert.Equal(t, projectID, uc.saveInput.ProjectID)
	assert.Nil(t, uc.saveInput.VersionID)
	assert.Equal(t, "https://example.com/preview", uc.saveInput.PreviewURL)
	assert.Equal(t, "", uc.saveInput.FinalURL)
}

func TestCreateVersionValidationErrorMapsToBadRequest(t *testing.T) {
	uc := &fakeVersionUseCase{saveErr: apperrors.ValidationError("invalid preview URL")}
	router := setupVersionRouter(uc, uuid.New())

	body, _ := json.Marshal(map[string]string{"preview_url": "not a url"})
	req := httptest.NewRequest(http.MethodPost, "/projects/"+uuid.New().String()+"/versions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid preview URL")
}

func TestUpdateVersionTargetsIdentifiedVersion(t *testing.T) {
	projectID := uuid.New()
	versionID := uuid.New()
	updated := &entity.VideoVersionResponse{ID: versionID, ProjectID: projectID, VersionNumber: 2}
	uc := &fakeVersionUseCase{saveResult: &version.SaveResult{Version: updated, Created: false}}
	router := setupVersionRouter(uc, uuid.New())

	body, _ := json.Marshal(map[string]string{"final_url": "https://example.com/final"})
	req := httptest.NewRequest(http.MethodPut,
		"/projects/"+projectID.String()+"/versions/"+versionID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.saveInput)
	require.NotNil(t, uc.saveInput.VersionID)
	assert.Equal(t, versionID, *uc.saveInput.VersionID)
}

func TestApproveConflictMapsToConflict(t *testing.T) {
	router := setupVersionRouter(&fakeVersionUseCase{}, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/versions/"+uuid.New().String()+"/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "version already approved")
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/corvidlabs/reviewdesk/internal/infrastructure/events"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/middleware"
	"github.com/corvidlabs/reviewdesk/internal/usecase/version"
	"github.com/corvidlabs/reviewdesk/pkg/response"
)

// VersionHandler handles video version requests. Every successful mutation is
// followed by a versions.updated broadcast so panel subscribers re-fetch.
type VersionHandler struct {
	versionUseCase version.UseCase
	hub            *events.Hub
}

// NewVersionHandler creates a new version handler
func NewVersionHandler(versionUseCase version.UseCase, hub *events.Hub) *VersionHandler {
	return &VersionHandler{versionUseCase: versionUseCase, hub: hub}
}

// saveVersionRequest carries the two link fields of the version form. Blank
// fields are accepted and stored as absent.
type saveVersionRequest struct {
	PreviewURL string `json:"preview_url"`
	FinalURL   string `json:"final_url"`
}

// ListByProject godoc
// @Summary List versions for a project
// @Tags versions
// @Security BearerAuth
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} response.Response{data=[]entity.VideoVersionResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/v1/projects/{project_id}/versions [get]
func (h *VersionHandler) ListByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.BadRequest(c, "invalid project ID")
		return
	}

	versions, err := h.versionUseCase.ListByProject(c.Request.Context(), middleware.GetUserUUID(c), projectID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, versions)
}

// Create godoc
// @Summary Create a new version
// @Description The version number is assigned server-side: one greater than
// @Description the project's current maximum, or 1 for the first version.
// @Tags versions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param request body saveVersionRequest true "Version links"
// @Success 201 {object} response.Response{data=entity.VideoVersionResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/v1/projects/{project_id}/versions [post]
func (h *VersionHandler) Create(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.BadRequest(c, "invalid project ID")
		return
	}

	var req saveVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.versionUseCase.Save(c.Request.Context(), middleware.GetUserUUID(c), &version.SaveInput{
		ProjectID:  projectID,
		PreviewURL: req.PreviewURL,
		FinalURL:   req.FinalURL,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	h.hub.NotifyVersionsUpdated(projectID)
	response.Created(c, result.Version)
}

// Update godoc
// @Summary Update a version's links
// @Tags versions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param version_id path string true "Version ID"
// @Param request body saveVersionRequest true "Version links"
// @Success 200 {object} response.Response{data=entity.VideoVersionResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/projects/{project_id}/versions/{version_id} [put]
func (h *VersionHandler) Update(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.BadRequest(c, "invalid project ID")
		return
	}

	versionID, err := uuid.Parse(c.Param("version_id"))
	if err != nil {
		response.BadRequest(c, "invalid version ID")
		return
	}

	var req saveVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.versionUseCase.Save(c.Request.Context(), middleware.GetUserUUID(c), &version.SaveInput{
		ProjectID:  projectID,
		VersionID:  &versionID,
		PreviewURL: req.PreviewURL,
		FinalURL:   req.FinalURL,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	h.hub.NotifyVersionsUpdated(projectID)
	response.Success(c, result.Version)
}

// GetByID godoc
// @Summary Get version by ID
// @Tags versions
// @Security BearerAuth
// @Produce json
// @Param version_id path string true "Version ID"
// @Success 200 {object} response.Response{data=entity.VideoVersionResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/versions/{version_id} [get]
func (h *VersionHandler) GetByID(c *gin.Context) {
	versionID, err := uuid.Parse(c.Param("version_id"))
	if err != nil {
		response.BadRequest(c, "invalid version ID")
		return
	}

	ver, err := h.versionUseCase.GetByID(c.Request.Context(), middleware.GetUserUUID(c), versionID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, ver)
}

// Approve godoc
// @Summary Approve a version
// @Description Only the client member may approve, and only once per version.
// @Tags versions
// @Security BearerAuth
// @Produce json
// @Param version_id path string true "Version ID"
// @Success 200 {object} response.Response{data=entity.VideoVersionResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/versions/{version_id}/approve [post]
func (h *VersionHandler) Approve(c *gin.Context) {
	versionID, err := uuid.Parse(c.Param("version_id"))
	if err != nil {
		response.BadRequest(c, "invalid version ID")
		return
	}

	approved, err := h.versionUseCase.Approve(c.Request.Context(), middleware.GetUserUUID(c), versionID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	h.hub.NotifyVersionsUpdated(approved.ProjectID)
	response.Success(c, approved)
}

// Delete godoc
// @Summary Delete a version
// @Tags versions
// @Security BearerAuth
// @Param version_id path string true "Version ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/versions/{version_id} [delete]
func (h *VersionHandler) Delete(c *gin.Context) {
	versionID, err := uuid.Parse(c.Param("version_id"))
	if err != nil {
		response.BadRequest(c, "invalid version ID")
		return
	}

	actorID := middleware.GetUserUUID(c)

	// Resolve the project before the row disappears so the broadcast can be
	// addressed after a successful delete.
	ver, err := h.versionUseCase.GetByID(c.Request.Context(), actorID, versionID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if err := h.versionUseCase.Delete(c.Request.Context(), actorID, versionID); err != nil {
		response.HandleError(c, err)
		return
	}

	h.hub.NotifyVersionsUpdated(ver.ProjectID)
	response.Success(c, gin.H{"message": "version deleted"})
}

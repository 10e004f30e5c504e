package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/corvidlabs/reviewdesk/internal/infrastructure/middleware"
	"github.com/corvidlabs/reviewdesk/internal/usecase/project"
	"github.com/corvidlabs/reviewdesk/pkg/response"
)

// ProjectHandler handles project requests
type ProjectHandler struct {
	projectUseCase project.UseCase
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectUseCase project.UseCase) *ProjectHandler {
	return &ProjectHandler{projectUseCase: projectUseCase}
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body project.CreateInput true "Project input"
// @Success 201 {object} response.Response{data=entity.ProjectResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var input project.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	proj, err := h.projectUseCase.Create(c.Request.Context(), middleware.GetUserUUID(c), &input)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, proj)
}

// List godoc
// @Summary List projects the user is a member of
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} response.Response{data=response.PaginatedData}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	page := 1
	pageSize := 20

	if p := c.Query("page"); p != "" {
		if pInt, err := strconv.Atoi(p); err == nil && pInt > 0 {
			page = pInt
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if psInt, err := strconv.Atoi(ps); err == nil && psInt > 0 && psInt <= 100 {
			pageSize = psInt
		}
	}

	projects, total, err := h.projectUseCase.List(c.Request.Context(), middleware.GetUserUUID(c), page, pageSize)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithPagination(c, projects, page, pageSize, total)
}

// GetByID godoc
// @Summary Get project by ID
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} response.Response{data=entity.ProjectResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/projects/{project_id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.BadRequest(c, "invalid project ID")
		return
	}

	proj, err := h.projectUseCase.GetByID(c.Request.Context(), middleware.GetUserUUID(c), projectID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, proj)
}

// Update godoc
// @Summary Update a project
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param request body project.UpdateInput true "Project update"
// @Success 200 {object} response.Response{data=entity.ProjectResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/projects/{project_id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.BadRequest(c, "invalid project ID")
		return
	}

	var input project.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	proj, err := h.projectUseCase.Update(c.Request.Context(), middleware.GetUserUUID(c), projectID, &input)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, proj)
}

// Delete godoc
// @Summary Delete a project and everything under it
// @Tags projects
// @Security BearerAuth
// @Param project_id path string true "Project ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/v1/projects/{project_id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.BadRequest(c, "invalid project ID")
		return
	}

	if err := h.projectUseCase.Delete(c.Request.Context(), middleware.GetUserUUID(c), projectID); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "project deleted"})
}

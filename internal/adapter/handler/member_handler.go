package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/middleware"
	"github.com/corvidlabs/reviewdesk/internal/usecase/member"
	"github.com/corvidlabs/reviewdesk/pkg/response"
)

// MemberHandler handles project membership requests
type MemberHandler struct {
	memberUseCase member.UseCase
}

// NewMemberHandler creates a new membership handler
func NewMemberHandler(memberUseCase member.UseCase) *MemberHandler {
	return &MemberHandler{memberUseCase: memberUseCase}
}

// ListByProject godoc
// @Summary List members of a project
// @Tags members
// @Security BearerAuth
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} response.Response{data=[]entity.MembershipResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/v1/projects/{project_id}/members [get]
func (h *MemberHandler) ListByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.BadRequest(c, "invalid project ID")
		return
	}

	members, err := h.memberUseCase.ListByProject(c.Request.Context(), middleware.GetUserUUID(c), projectID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, members)
}

// Grant godoc
// @Summary Grant a user membership in a project
// @Tags members
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param request body member.GrantInput true "Membership grant"
// @Success 201 {object} response.Response{data=entity.MembershipResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/projects/{project_id}/members [post]
func (h *MemberHandler) Grant(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.BadRequest(c, "invalid project ID")
		return
	}

	var input member.GrantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	membership, err := h.memberUseCase.Grant(c.Request.Context(), middleware.GetUserUUID(c), projectID, &input)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, membership)
}

// Update godoc
// @Summary Change a member's role
// @Tags members
// @Security BearerAuth
// @Accept json
// @Param project_id path string true "Project ID"
// @Param user_id path string true "User ID"
// @Param request body updateRoleRequest true "Role update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/projects/{project_id}/members/{user_id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.BadRequest(c, "invalid project ID")
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.memberUseCase.UpdateRole(c.Request.Context(), middleware.GetUserUUID(c), projectID, userID, req.Role); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "membership updated"})
}

// Revoke godoc
// @Summary Revoke a user's membership
// @Tags members
// @Security BearerAuth
// @Param project_id path string true "Project ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/v1/projects/{project_id}/members/{user_id} [delete]
func (h *MemberHandler) Revoke(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.BadRequest(c, "invalid project ID")
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	if err := h.memberUseCase.Revoke(c.Request.Context(), middleware.GetUserUUID(c), projectID, userID); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "membership revoked"})
}

type updateRoleRequest struct {
	Role entity.MemberRole `json:"role" binding:"required"`
}

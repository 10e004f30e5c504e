package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/middleware"
	"github.com/corvidlabs/reviewdesk/internal/usecase/user"
	"github.com/corvidlabs/reviewdesk/pkg/response"
)

// UserHandler handles user requests
type UserHandler struct {
	userUseCase user.UseCase
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUseCase user.UseCase) *UserHandler {
	return &UserHandler{userUseCase: userUseCase}
}

// GetMe godoc
// @Summary Get current user profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response{data=entity.UserResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := middleware.GetUserUUID(c)

	u, err := h.userUseCase.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, u)
}

// UpdateMe godoc
// @Summary Update current user profile
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body entity.UserUpdate true "Profile update"
// @Success 200 {object} response.Response{data=entity.UserResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := middleware.GetUserUUID(c)

	var input entity.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.userUseCase.Update(c.Request.Context(), userID, &input)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, u)
}

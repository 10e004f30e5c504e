package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/corvidlabs/reviewdesk/internal/infrastructure/middleware"
	"github.com/corvidlabs/reviewdesk/internal/usecase/auth"
	"github.com/corvidlabs/reviewdesk/pkg/response"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authUseCase auth.UseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUseCase auth.UseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.RegisterInput true "Register input"
// @Success 201 {object} response.Response{data=auth.AuthOutput}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input auth.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	output, err := h.authUseCase.Register(c.Request.Context(), &input)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, output)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginInput true "Login input"
// @Success 200 {object} response.Response{data=auth.AuthOutput}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input auth.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), &input)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, output)
}

// RefreshToken godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body refreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Response{data=auth.AuthOutput}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	output, err := h.authUseCase.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, output)
}

// Logout godoc
// @Summary Logout user
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.GetUserUUID(c)

	if err := h.authUseCase.Logout(c.Request.Context(), userID); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "logged out successfully"})
}

// ChangePassword godoc
// @Summary Change user password
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body changePasswordRequest true "Password change input"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/users/me/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetUserUUID(c)

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authUseCase.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "password changed successfully"})
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

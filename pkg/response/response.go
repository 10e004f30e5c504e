package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/corvidlabs/reviewdesk/pkg/errors"
)

// Error codes as strings
const (
	CodeSuccess         = "SUCCESS"
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "PERMISSION_DENIED"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "ALREADY_EXISTS"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
)

// RequestIDKey is the context key under which the logging middleware stores
// the request ID
const RequestIDKey = "request_id"

// RequestIDHeader is the header carrying the request ID
const RequestIDHeader = "X-Request-ID"

// Response is the standard API response structure for success
type Response struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"requestId"`
}

// ErrorResponse is the standard API response structure for errors
type ErrorResponse struct {
	Code      string `json:"code"`
	HTTPCode  int    `json:"httpCode"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// Pagination holds pagination info
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PaginatedData holds paginated response data
type PaginatedData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// GetRequestID retrieves the request ID from context, or generates a new one
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok && id != "" {
			return id
		}
	}

	if requestID := c.GetHeader(RequestIDHeader); requestID != "" {
		return requestID
	}

	return "req-" + uuid.New().String()
}

// Success sends a success response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:      CodeSuccess,
		Message:   "success",
		Data:      data,
		RequestID: GetRequestID(c),
	})
}

// Created sends a created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:      CodeSuccess,
		Message:   "created",
		Data:      data,
		RequestID: GetRequestID(c),
	})
}

// SuccessWithPagination sends a paginated success response
func SuccessWithPagination(c *gin.Context, items interface{}, page, pageSize int, total int64) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data: PaginatedData{
			Items: items,
			Pagination: Pagination{
				Page:       page,
				PageSize:   pageSize,
				Total:      total,
				TotalPages: totalPages,
			},
		},
		RequestID: GetRequestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, httpStatus int, code string, message string) {
	c.JSON(httpStatus, ErrorResponse{
		Code:      code,
		HTTPCode:  httpStatus,
		Message:   message,
		RequestID: GetRequestID(c),
	})
}

// BadRequest sends a bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, message)
}

// Unauthorized sends an unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden sends a forbidden response
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeForbidden, message)
}

// NotFound sends a not found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// Conflict sends a conflict response
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, CodeConflict, message)
}

// InternalError sends an internal server error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternalError, message)
}

// ValidationError sends a validation error response
func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeValidationError, message)
}

// HandleError maps an application error onto an HTTP response
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if appErr := apperrors.GetAppError(err); appErr != nil {
		switch {
		case apperrors.IsNotFound(appErr.Err):
			NotFound(c, appErr.Message)
		case apperrors.IsAlreadyExists(appErr.Err):
			Conflict(c, appErr.Message)
		case apperrors.IsUnauthorized(appErr.Err):
			Unauthorized(c, appErr.Message)
		case apperrors.IsForbidden(appErr.Err):
			Forbidden(c, appErr.Message)
		case apperrors.IsValidation(appErr.Err):
			ValidationError(c, appErr.Message)
		default:
			InternalError(c, appErr.Message)
		}
		return
	}

	InternalError(c, "internal server error")
}

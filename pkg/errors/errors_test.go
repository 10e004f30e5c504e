package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	plain := NewAppError(40000, "something failed", nil)
	assert.Equal(t, "something failed", plain.Error())

	wrapped := NewAppError(50000, "query failed", errors.New("connection reset"))
	assert.Equal(t, "query failed: connection reset", wrapped.Error())
}

func TestSentinelChecks(t *testing.T) {
	assert.True(t, IsNotFound(NotFoundError("project")))
	assert.True(t, IsAlreadyExists(AlreadyExistsError("membership")))
	assert.True(t, IsAlreadyExists(ConflictError("version already approved")))
	assert.True(t, IsUnauthorized(UnauthorizedError("not authenticated")))
	assert.True(t, IsForbidden(ForbiddenError("not a member")))
	assert.True(t, IsValidation(ValidationError("invalid preview URL")))

	assert.False(t, IsNotFound(ForbiddenError("not a member")))
	assert.False(t, IsValidation(errors.New("plain error")))
}

func TestSentinelChecksThroughWrapping(t *testing.T) {
	err := fmt.Errorf("list versions: %w", NotFoundError("version"))
	assert.True(t, IsNotFound(err))
}

func TestGetAppError(t *testing.T) {
	appErr := NotFoundError("version")
	wrapped := fmt.Errorf("outer: %w", appErr)

	got := GetAppError(wrapped)
	assert.Same(t, appErr, got)
	assert.Equal(t, "version not found", got.Message)

	assert.Nil(t, GetAppError(errors.New("plain error")))
	assert.Nil(t, GetAppError(nil))
}

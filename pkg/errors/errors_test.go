package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	plain := NewValidationError("profile ID is required")
	assert.Equal(t, "VALIDATION: profile ID is required", plain.Error())

	wrapped := NewDatabaseError("PutItem", errors.New("throttled"))
	assert.Contains(t, wrapped.Error(), "PutItem")
	assert.Contains(t, wrapped.Error(), "throttled")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewDeckUnavailableError("deck failed to parse").WithCause(cause)

	assert.ErrorIs(t, err, cause)

	// Type checks survive another layer of wrapping.
	doubleWrapped := fmt.Errorf("loading catalog: %w", err)
	assert.True(t, IsDeckUnavailable(doubleWrapped))
}

func TestTypeHelpers(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("x")))
	assert.True(t, IsDeckUnavailable(NewDeckUnavailableError("x")))
	assert.True(t, IsStoreUnavailable(NewStoreUnavailableError("x")))
	assert.False(t, IsValidation(NewStoreUnavailableError("x")))
	assert.False(t, IsDeckUnavailable(errors.New("plain")))
	assert.False(t, IsValidation(nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewStoreUnavailableError("x")))
	assert.True(t, IsRetryable(NewDatabaseError("Query", errors.New("x"))))
	assert.False(t, IsRetryable(NewValidationError("x")))
	assert.False(t, IsRetryable(NewDeckUnavailableError("x")))
	assert.False(t, IsRetryable(errors.New("plain")))
}

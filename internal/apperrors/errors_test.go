package apperrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError(
		FieldError{Field: "phone_number", Reason: "Please enter a valid phone number"},
		FieldError{Field: "quantity", Reason: "Quantity must be at least 1"},
	)

	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Len(t, err.Fields, 2)
	assert.Contains(t, err.Error(), "phone_number: Please enter a valid phone number")
	assert.Contains(t, err.Error(), "quantity: Quantity must be at least 1")
}

func TestKindHelpers_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("get support record: %w", NewNotFoundError("Record not found"))

	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsForbiddenError(wrapped))
	assert.False(t, IsValidationError(wrapped))

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestKindsAreDistinct(t *testing.T) {
	forbidden := NewForbiddenError("You do not have permission to delete records.")
	unauth := NewUnauthenticatedError()

	assert.True(t, IsForbiddenError(forbidden))
	assert.False(t, IsNotFoundError(forbidden))
	assert.True(t, IsUnauthenticatedError(unauth))
	assert.False(t, IsForbiddenError(unauth))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

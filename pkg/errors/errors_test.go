package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/gearshare/backend/pkg/errors"
)

func TestAppError(t *testing.T) {
	t.Run("formats without cause", func(t *testing.T) {
		err := apperrors.NewNotFoundError("user with id 7 not found")
		assert.Equal(t, "NOT_FOUND: user with id 7 not found", err.Error())
	})

	t.Run("formats and unwraps cause", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		err := apperrors.NewInternalError("failed to get user", cause)

		assert.Contains(t, err.Error(), "connection refused")
		assert.ErrorIs(t, err, cause)
	})
}

func TestIsType(t *testing.T) {
	t.Run("matches the type", func(t *testing.T) {
		err := apperrors.NewConflictError("email taken")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		assert.False(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("sees through wrapping", func(t *testing.T) {
		err := fmt.Errorf("creating user: %w", apperrors.NewValidationError("bad email"))
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("plain errors never match", func(t *testing.T) {
		assert.False(t, apperrors.IsType(stderrors.New("boom"), apperrors.ErrorTypeInternal))
		assert.False(t, apperrors.IsType(nil, apperrors.ErrorTypeInternal))
	})
}

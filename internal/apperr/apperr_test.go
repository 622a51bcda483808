package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsStatus(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
		code   string
	}{
		{Unauthenticated("Unauthorized"), http.StatusUnauthorized, "UNAUTHENTICATED"},
		{Forbidden("identity mismatch"), http.StatusForbidden, "FORBIDDEN"},
		{NotFound("Lesson"), http.StatusNotFound, "NOT_FOUND"},
		{Conflict("dup"), http.StatusConflict, "CONFLICT"},
		{ValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{CredentialMismatch(), http.StatusBadRequest, "CREDENTIAL_MISMATCH"},
		{Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{Unavailable("down"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Vocabulary not found", NotFound("Vocabulary").Error())
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := Internal(cause)

	assert.NotContains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, cause)
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Forbidden("insufficient privileges"))

	ae := As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
	assert.True(t, Is(wrapped, "FORBIDDEN"))
	assert.False(t, Is(wrapped, "NOT_FOUND"))
	assert.Nil(t, As(errors.New("plain")))
}

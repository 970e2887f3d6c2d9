package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRemoteErrorMapsStatus(t *testing.T) {
	cases := []struct {
		status int
		code   ErrorCode
	}{
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeForbidden},
		{http.StatusConflict, ErrCodeConflict},
		{http.StatusBadRequest, ErrCodeBadRequest},
		{http.StatusInternalServerError, ErrCodeRemote},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			err := NewRemoteError(tc.status, "boom")
			assert.Equal(t, tc.code, err.Code)
			assert.Equal(t, tc.status, err.Status)
			assert.Equal(t, "boom", err.Message)
			assert.Equal(t, tc.status, HTTPStatus(err))
		})
	}
}

func TestNewRemoteErrorFallsBackToStatusText(t *testing.T) {
	err := NewRemoteError(http.StatusBadGateway, "")
	assert.Equal(t, "Bad Gateway", err.Message)
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	base := NewNetworkError("auth", io.ErrUnexpectedEOF)
	wrapped := fmt.Errorf("login: %w", base)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.True(t, appErr.IsTransport())
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)
	assert.True(t, HasCode(wrapped, ErrCodeNetwork))
	assert.False(t, IsNotFound(wrapped))

	_, ok = AsAppError(io.EOF)
	assert.False(t, ok)
	_, ok = AsAppError(nil)
	assert.False(t, ok)
}

func TestHTTPStatusByCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationError("phone", "required")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NewNotFoundError("user", 1)))
	assert.Equal(t, http.StatusMethodNotAllowed, HTTPStatus(New(ErrCodeMethod, "nope")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(New(ErrCodeInternal, "x")))
}

package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/digits/internal/digits/service"
	"github.com/aussiebroadwan/digits/pkg/digitsdk"
	"github.com/stretchr/testify/assert"
)

func TestAPIErrorFor(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{service.ErrMissingToken, digitsdk.ErrorCodeInvalidRequest, http.StatusBadRequest},
		{fmt.Errorf("verify: %w", service.ErrExpiredToken), digitsdk.ErrorCodeExpiredToken, http.StatusForbidden},
		{service.ErrNoChallenge, digitsdk.ErrorCodeNoChallenge, http.StatusBadRequest},
		{service.ErrChallengeExpired, digitsdk.ErrorCodeChallengeExpired, http.StatusForbidden},
		{service.ErrInvalidPosition, digitsdk.ErrorCodeInvalidPosition, http.StatusBadRequest},
		{service.ErrNotFound, digitsdk.ErrorCodeNotFound, http.StatusNotFound},
		{service.ErrInvalidCredentials, digitsdk.ErrorCodeInvalidCredentials, http.StatusUnauthorized},
		{errors.New("disk on fire"), digitsdk.ErrorCodeServerError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := apiErrorFor(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, got.StatusCode)
		})
	}
}

func TestAPIErrorForValidationKeepsField(t *testing.T) {
	err := &service.ValidationError{Field: "user_number", Message: "must be exactly 5 digits"}

	got := apiErrorFor(err)
	assert.Equal(t, digitsdk.ErrorCodeValidation, got.Code)
	assert.Equal(t, "user_number", got.Field)
	assert.Equal(t, "must be exactly 5 digits", got.Description)
	assert.Empty(t, digitsdk.ErrValidation.Field, "shared error value untouched")
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/", safeNext(""))
	assert.Equal(t, "/list", safeNext("/list"))
	assert.Equal(t, "/reveal/x?y=1", safeNext("/reveal/x?y=1"))
	assert.Equal(t, "/", safeNext("https://evil.example.com"))
	assert.Equal(t, "/", safeNext("//evil.example.com"))
	assert.Equal(t, "/", safeNext(`/\evil.example.com`))
}

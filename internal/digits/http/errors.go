package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/digits/internal/digits/service"
	"github.com/aussiebroadwan/digits/pkg/digitsdk"
	"github.com/aussiebroadwan/digits/pkg/slogx"
)

// apiErrorFor maps a service error onto the wire error. Unknown errors become
// server_error and never leak their text.
func apiErrorFor(err error) *digitsdk.APIError {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		e := digitsdk.ErrValidation.WithDescription(ve.Message)
		e.Field = ve.Field
		return e
	}

	switch {
	case errors.Is(err, service.ErrMissingToken):
		return digitsdk.ErrMissingToken
	case errors.Is(err, service.ErrInvalidToken):
		return digitsdk.ErrInvalidToken
	case errors.Is(err, service.ErrExpiredToken):
		return digitsdk.ErrExpiredToken
	case errors.Is(err, service.ErrNoChallenge):
		return digitsdk.ErrNoChallenge
	case errors.Is(err, service.ErrChallengeExpired):
		return digitsdk.ErrChallengeExpired
	case errors.Is(err, service.ErrInvalidPosition):
		return digitsdk.ErrInvalidPosition
	case errors.Is(err, service.ErrNotFound):
		return digitsdk.ErrNotFound
	case errors.Is(err, service.ErrUnauthorized):
		return digitsdk.ErrUnauthorized
	case errors.Is(err, service.ErrInvalidCredentials):
		return digitsdk.ErrInvalidCredentials
	}
	return digitsdk.ErrServerError
}

// writeServiceError logs and writes err. Only unexpected failures are logged
// at error level, the rest are ordinary client mistakes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apiErrorFor(err)
	log := slogx.FromContext(r.Context())

	if apiErr.StatusCode >= http.StatusInternalServerError {
		log.Error("request failed", slog.Any("error", err))
	} else {
		log.Info("request rejected", slog.String("code", apiErr.Code), slog.Any("error", err))
	}
	apiErr.WriteError(w)
}

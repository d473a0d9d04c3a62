package digitsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/digits/pkg/httpx"
)

// Error codes carried in the "error" field of failure responses.
const (
	ErrorCodeValidation         = "validation_error"
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeExpiredToken       = "expired_token"
	ErrorCodeNoChallenge        = "no_challenge"
	ErrorCodeChallengeExpired   = "challenge_expired"
	ErrorCodeInvalidPosition    = "invalid_position"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeCSRFFailed         = "csrf_failed"
	ErrorCodeRateLimitExceeded  = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
	ErrorCodeUnavailable        = "unavailable"
)

// APIError is the failure body of every endpoint. Servers write it with
// WriteError, the client returns it as the error of a failed call.
type APIError struct {
	StatusCode int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description"`

	// Field names the offending form field of a validation error.
	Field string `json:"field,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another APIError with the same code, so callers can write
// errors.Is(err, digitsdk.ErrExpiredToken).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes e as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// WithDescription returns a copy of e with a different description.
func (e *APIError) WithDescription(desc string) *APIError {
	c := *e
	c.Description = desc
	return &c
}

func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Description: description}
}

var (
	ErrValidation = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "invalid input",
	}

	ErrMissingToken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "Missing token.",
	}

	ErrInvalidFormBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid form body",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInvalidToken,
		Description: "Invalid token.",
	}

	ErrExpiredToken = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeExpiredToken,
		Description: "Token expired.",
	}

	ErrNoChallenge = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeNoChallenge,
		Description: "No challenge found. Request a reveal first.",
	}

	ErrChallengeExpired = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeChallengeExpired,
		Description: "Challenge expired. Please request reveal again.",
	}

	ErrInvalidPosition = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidPosition,
		Description: "Invalid challenge positions.",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "entry not found",
	}

	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "authentication required",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "Please enter a correct username and password.",
	}

	ErrCSRFFailed = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeCSRFFailed,
		Description: "CSRF token missing or incorrect.",
	}

	ErrRateLimited = &APIError{
		StatusCode:  http.StatusTooManyRequests,
		Code:        ErrorCodeRateLimitExceeded,
		Description: "Too many requests. Please try again later.",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	ErrUnavailable = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeUnavailable,
		Description: "service unavailable",
	}
)

// parseErrorResponse decodes an APIError body. Bodies that are not JSON still
// produce an APIError carrying the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = ErrorCodeServerError
		apiErr.Description = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	return apiErr
}

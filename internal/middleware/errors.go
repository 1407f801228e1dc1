package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/popeskul/gridpulse/internal/api"
)

// Error codes returned in api.ErrorResponse.Error.
const (
	ErrorCodeInternal          = "INTERNAL_ERROR"
	ErrorCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrorCodeRequestTimeout    = "REQUEST_TIMEOUT"
	ErrorCodeValidation        = "VALIDATION_ERROR"
	ErrorCodeInvalidRequest    = "INVALID_REQUEST"
	ErrorCodeContactNotFound   = "CONTACT_NOT_FOUND"
	ErrorCodeContactNotOptedIn = "CONTACT_NOT_OPTED_IN"
	ErrorCodeInvalidSignature  = "INVALID_SIGNATURE"
)

const (
	ErrorMessageInternal          = "An internal error occurred"
	ErrorMessageRateLimitExceeded = "Too many requests"
	ErrorMessageRequestTimeout    = "Request timeout"
	ErrorMessageInvalidJSON       = "Request body must be valid JSON"
	ErrorMessageInvalidForm       = "Request body must be form encoded"
	ErrorMessageInvalidSignature  = "Invalid webhook signature"
	ErrorMessageContactNotFound   = "Contact not found"
	ErrorMessageNotOptedIn        = "Contact has not opted in for notifications"
)

// WriteError renders the shared JSON error body with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	now := time.Now()
	render.Status(r, status)
	render.JSON(w, r, api.ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: &now,
	})
}

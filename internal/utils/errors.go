package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidPhone   = errors.New("invalid_phone")
	ErrEmailExists    = errors.New("email_exists")
	ErrUnknownHost    = errors.New("unknown_host")
	ErrNotFound       = errors.New("not_found")
	ErrLeaseNotDraft  = errors.New("lease_not_draft")
	ErrTierUnknown    = errors.New("tier_unknown")
	ErrNotSubscribed  = errors.New("not_subscribed")

	// Signing-link terminal states
	ErrLinkExpired   = errors.New("link_expired")
	ErrAlreadySigned = errors.New("already_signed")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// For rate limiting OTP requests
	ErrRateLimitExceeded = errors.New("rate_limit_exceeded")

	// Wrong, expired, or already consumed portal login code
	ErrInvalidOTP = errors.New("invalid_otp")

	// For external service failures (Twilio, SendGrid, Stripe, object store)
	ErrExternalServiceFailure = errors.New("external_service_failure")

	ErrNoRowsUpdated = errors.New("no_rows_updated")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}

package services

import "errors"

// Expected, user-facing conditions. Handlers translate these to HTTP statuses;
// anything else bubbling out of a service is an infrastructure fault and is
// reported as a generic internal error.
var (
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrPasswordMismatch      = errors.New("new password and confirmation do not match")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrInvalidTimeFormat     = errors.New("invalid time format")
	ErrOverlapConflict       = errors.New("time window overlaps an existing entry")
	ErrSlotUnavailable       = errors.New("requested time is outside the mentor's availability")
	ErrNotFound              = errors.New("not found")
	ErrForbidden             = errors.New("not authorized")
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrInvalidParticipants   = errors.New("client and mentor could not be resolved")
	ErrEmptyMessage          = errors.New("message content is empty")
)

package services

import "errors"

// Caller errors. Controllers map these to 4xx with errors.Is; anything else
// coming out of a service is an infrastructure failure and surfaces as 500.
var (
	ErrInvalidDateRange   = errors.New("invalid_date_range")
	ErrCapacityExceeded   = errors.New("capacity_exceeded")
	ErrBookingNotFound    = errors.New("booking_not_found")
	ErrRoomNotFound       = errors.New("room_not_found")
	ErrInvalidTransition  = errors.New("invalid_transition")
	ErrMissingReason      = errors.New("missing_reason")
	ErrConflict           = errors.New("conflict")
	ErrContactNotAllowed  = errors.New("contact_not_allowed")
	ErrRoomUnavailable    = errors.New("room_unavailable")
	ErrValidation         = errors.New("validation")
	ErrNotOwner           = errors.New("not_owner")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrReviewNotFound     = errors.New("review_not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailAlreadyTaken  = errors.New("email_already_taken")
	ErrRoomNumberTaken    = errors.New("room_number_taken")
)

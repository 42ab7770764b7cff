package models

import "fmt"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusApproved   BookingStatus = "approved"
	StatusDenied     BookingStatus = "denied"
	StatusBooked     BookingStatus = "booked"
	StatusCheckedIn  BookingStatus = "checked-in"
	StatusCheckedOut BookingStatus = "checked-out"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no-show"
)

// validTransitions is the single source of truth for the booking state
// machine. A status missing a target here cannot reach it, full stop.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusApproved, StatusDenied, StatusCancelled},
	StatusApproved:   {StatusBooked, StatusCancelled},
	StatusBooked:     {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: {},
	StatusDenied:     {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// AllowsContact returns true if the customer may still be contacted about a
// booking in this status. Contact stays open for no-show follow-ups.
func (s BookingStatus) AllowsContact() bool {
	switch s {
	case StatusCheckedOut, StatusCancelled, StatusDenied:
		return false
	}
	return true
}

// RequiresReason returns true when moving to target needs a non-empty denied
// reason. Denial always needs one; cancellation needs one only when an admin
// does it, a guest cancelling their own booking does not.
func RequiresReason(target BookingStatus, byAdmin bool) bool {
	switch target {
	case StatusDenied:
		return true
	case StatusCancelled:
		return byAdmin
	}
	return false
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// AllStatuses lists every recognized status; handy for validation and tests.
func AllStatuses() []BookingStatus {
	return []BookingStatus{
		StatusPending, StatusApproved, StatusDenied, StatusBooked,
		StatusCheckedIn, StatusCheckedOut, StatusCancelled, StatusNoShow,
	}
}

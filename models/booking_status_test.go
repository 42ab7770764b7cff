package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// allowedPairs mirrors the booking workflow: every legal (from, to) pair.
// Anything absent from this map must be rejected.
var allowedPairs = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusApproved, StatusDenied, StatusCancelled},
	StatusApproved:  {StatusBooked, StatusCancelled},
	StatusBooked:    {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusCheckedOut},
}

func contains(list []BookingStatus, s BookingStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestCanTransitionTo_ExhaustiveMatrix(t *testing.T) {
	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			want := contains(allowedPairs[from], to)
			got := from.CanTransitionTo(to)
			assert.Equalf(t, want, got, "transition %s -> %s", from, to)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	terminal := []BookingStatus{StatusCheckedOut, StatusDenied, StatusCancelled, StatusNoShow}
	for _, s := range terminal {
		assert.Truef(t, s.IsTerminal(), "%s should be terminal", s)
		for _, to := range AllStatuses() {
			assert.Falsef(t, s.CanTransitionTo(to), "terminal %s must not reach %s", s, to)
		}
	}

	for _, s := range []BookingStatus{StatusPending, StatusApproved, StatusBooked, StatusCheckedIn} {
		assert.Falsef(t, s.IsTerminal(), "%s should not be terminal", s)
	}
}

func TestRequiresReason(t *testing.T) {
	assert.True(t, RequiresReason(StatusDenied, true))
	assert.True(t, RequiresReason(StatusDenied, false))
	assert.True(t, RequiresReason(StatusCancelled, true))
	assert.False(t, RequiresReason(StatusCancelled, false)) // guest cancelling their own booking
	assert.False(t, RequiresReason(StatusApproved, true))
	assert.False(t, RequiresReason(StatusNoShow, true))
}

func TestAllowsContact(t *testing.T) {
	blocked := []BookingStatus{StatusCheckedOut, StatusCancelled, StatusDenied}
	for _, s := range blocked {
		assert.Falsef(t, s.AllowsContact(), "%s should block contact", s)
	}
	open := []BookingStatus{StatusPending, StatusApproved, StatusBooked, StatusCheckedIn, StatusNoShow}
	for _, s := range open {
		assert.Truef(t, s.AllowsContact(), "%s should allow contact", s)
	}
}

func TestParseBookingStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		parsed, err := ParseBookingStatus(string(s))
		assert.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	for _, bad := range []string{"", "Pending", "checkedout", "deleted", "no_show"} {
		_, err := ParseBookingStatus(bad)
		assert.Errorf(t, err, "%q should not parse", bad)
	}
}

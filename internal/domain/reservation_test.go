package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservationStatusTransitions(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{ReservationPending, ReservationPaid, true},
		{ReservationPending, ReservationConfirmed, true},
		{ReservationPending, ReservationCancelled, true},
		{ReservationPending, ReservationRejected, true},
		{ReservationPending, ReservationCompleted, false},
		{ReservationPaid, ReservationConfirmed, true},
		{ReservationPaid, ReservationCancelled, true},
		{ReservationPaid, ReservationRejected, false},
		{ReservationConfirmed, ReservationCompleted, true},
		{ReservationConfirmed, ReservationCancelled, true},
		{ReservationConfirmed, ReservationPending, false},
		{ReservationCompleted, ReservationCancelled, false},
		{ReservationCancelled, ReservationPending, false},
		{ReservationRejected, ReservationConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReservationStatusTerminal(t *testing.T) {
	assert.False(t, ReservationPending.IsTerminal())
	assert.False(t, ReservationPaid.IsTerminal())
	assert.False(t, ReservationConfirmed.IsTerminal())
	assert.True(t, ReservationCompleted.IsTerminal())
	assert.True(t, ReservationCancelled.IsTerminal())
	assert.True(t, ReservationRejected.IsTerminal())
}

func TestReservationValidateDates(t *testing.T) {
	r := &Reservation{PickupDate: date(2025, 6, 1), DropoffDate: date(2025, 6, 5)}
	assert.NoError(t, r.ValidateDates())
	assert.Equal(t, 4, r.DurationDays())

	// pickup == dropoff viole l'invariant strict
	r = &Reservation{PickupDate: date(2025, 6, 1), DropoffDate: date(2025, 6, 1)}
	assert.ErrorIs(t, r.ValidateDates(), ErrInvalidDate)

	r = &Reservation{PickupDate: date(2025, 6, 5), DropoffDate: date(2025, 6, 1)}
	assert.ErrorIs(t, r.ValidateDates(), ErrInvalidDate)

	r = &Reservation{DropoffDate: date(2025, 6, 1)}
	assert.ErrorIs(t, r.ValidateDates(), ErrInvalidDate)
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-06-04")
	assert.NoError(t, err)
	assert.Equal(t, date(2025, 6, 4), parsed)

	_, err = ParseDate("04/06/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestHasStarted(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

	assert.True(t, HasStarted(date(2025, 6, 10), now))
	assert.True(t, HasStarted(date(2025, 6, 9), now))
	assert.False(t, HasStarted(date(2025, 6, 11), now))
}

func TestProlongationStatusTransitions(t *testing.T) {
	assert.True(t, ProlongationPending.CanTransitionTo(ProlongationAccepted))
	assert.True(t, ProlongationPending.CanTransitionTo(ProlongationRejected))
	assert.True(t, ProlongationPending.CanTransitionTo(ProlongationWaitingForPayment))
	assert.True(t, ProlongationWaitingForPayment.CanTransitionTo(ProlongationAccepted))
	assert.False(t, ProlongationWaitingForPayment.CanTransitionTo(ProlongationRejected))
	assert.False(t, ProlongationAccepted.CanTransitionTo(ProlongationPending))
	assert.True(t, ProlongationAccepted.IsTerminal())
	assert.True(t, ProlongationRejected.IsTerminal())
}

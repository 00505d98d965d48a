package domain

import (
	"time"

	"github.com/GBTour/GBT-ReservationService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationPaid      ReservationStatus = "paid"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationRejected  ReservationStatus = "rejected"
)

// reservationTransitions is the single source of truth for legal status
// transitions. Calendar side effects hang off entering or leaving
// confirmed, never off individual handlers.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationPaid, ReservationConfirmed, ReservationCancelled, ReservationRejected},
	ReservationPaid:      {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCompleted, ReservationCancelled},
}

// CanTransitionTo reports whether the status change from s to target is
// part of the lifecycle
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition leaves this status
func (s ReservationStatus) IsTerminal() bool {
	return len(reservationTransitions[s]) == 0
}

// IsValid reports whether s is a known reservation status
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationPending, ReservationPaid, ReservationConfirmed,
		ReservationCompleted, ReservationCancelled, ReservationRejected:
		return true
	}
	return false
}

// RequiresPayment reports whether the status requires a positive payment
// percentage on the reservation
func (s ReservationStatus) RequiresPayment() bool {
	return s == ReservationPaid || s == ReservationConfirmed
}

// Reservation represents a booking of one matriculation for one user
// over a closed date range
type Reservation struct {
	ID                int64
	UserID            int64
	VehicleID         int64
	Plate             string
	PickupLocation    string
	DropoffLocation   string
	PickupDate        time.Time // UTC midnight, inclusive
	DropoffDate       time.Time // UTC midnight, inclusive
	PickupTime        types.TimeString
	DropoffTime       types.TimeString
	Status            ReservationStatus
	PaymentPercentage int // 0, 30 or 100
	TotalPrice        float64
	AmountPaid        float64
	FlightNumber      *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HoldsCalendarPeriod reports whether this reservation currently owns an
// unavailable period on its matriculation
func (r *Reservation) HoldsCalendarPeriod() bool {
	return r.Status == ReservationConfirmed
}

// DurationDays returns the rental length in days
func (r *Reservation) DurationDays() int {
	return DaysBetween(r.PickupDate, r.DropoffDate)
}

// ValidateDates checks the pickupDate < dropoffDate invariant
func (r *Reservation) ValidateDates() error {
	if r.PickupDate.IsZero() || r.DropoffDate.IsZero() {
		return ErrInvalidDate
	}
	if !NormalizeDate(r.PickupDate).Before(NormalizeDate(r.DropoffDate)) {
		return ErrInvalidDate
	}
	return nil
}

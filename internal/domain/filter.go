package domain

import "time"

// VehicleReservationsFilter filters a vehicle's reservation history
type VehicleReservationsFilter struct {
	VehicleID       int64
	Plate           *string            // restrict to one matriculation
	StartDate       *time.Time         // period start, inclusive
	EndDate         *time.Time         // period end, inclusive
	Status          *ReservationStatus // restrict to one status
	IncludeTerminal bool               // include completed/cancelled/rejected
}

// TerminalReservationStatuses statuses excluded from active listings
var TerminalReservationStatuses = []ReservationStatus{
	ReservationCompleted,
	ReservationCancelled,
	ReservationRejected,
}

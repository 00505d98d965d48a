package domain

import "time"

// ProlongationStatus represents the lifecycle state of a prolongation
// request
type ProlongationStatus string

const (
	ProlongationPending           ProlongationStatus = "pending"
	ProlongationAccepted          ProlongationStatus = "accepted"
	ProlongationRejected          ProlongationStatus = "rejected"
	ProlongationWaitingForPayment ProlongationStatus = "waiting_for_payment"
)

// ProlongationPaymentStatus tracks whether the additional cost has been
// settled
type ProlongationPaymentStatus string

const (
	ProlongationUnpaid ProlongationPaymentStatus = "unpaid"
	ProlongationPaid   ProlongationPaymentStatus = "paid"
)

// PaymentMethod how the customer settles a prolongation
type PaymentMethod string

const (
	// PaymentEnAgence settled in person at the agency; the calendar is
	// updated synchronously
	PaymentEnAgence PaymentMethod = "en_agence"
	// PaymentParCarte settled by card through the payment gateway; the
	// calendar is only updated once the gateway confirms
	PaymentParCarte PaymentMethod = "par_carte"
)

// IsValid reports whether m is a known payment method
func (m PaymentMethod) IsValid() bool {
	return m == PaymentEnAgence || m == PaymentParCarte
}

var prolongationTransitions = map[ProlongationStatus][]ProlongationStatus{
	ProlongationPending:           {ProlongationAccepted, ProlongationRejected, ProlongationWaitingForPayment},
	ProlongationWaitingForPayment: {ProlongationAccepted},
}

// CanTransitionTo reports whether the status change from s to target is
// part of the lifecycle
func (s ProlongationStatus) CanTransitionTo(target ProlongationStatus) bool {
	for _, allowed := range prolongationTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition leaves this status
func (s ProlongationStatus) IsTerminal() bool {
	return len(prolongationTransitions[s]) == 0
}

// ProlongationRequest is a proposal to extend a confirmed reservation's
// dropoff date
type ProlongationRequest struct {
	ID               int64
	ReservationID    int64
	NewDropoffDate   time.Time // UTC midnight, inclusive
	AdditionalDays   int
	ReductionPercent int // 0, 5, 10 or 15
	TotalPrice       float64
	Status           ProlongationStatus
	PaymentStatus    ProlongationPaymentStatus
	OrderID          *string
	PaymentRef       *string
	PaymentExpiresAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsSettled reports whether the request has already been accepted and
// paid. Used by the payment callback to stay idempotent.
func (p *ProlongationRequest) IsSettled() bool {
	return p.Status == ProlongationAccepted && p.PaymentStatus == ProlongationPaid
}

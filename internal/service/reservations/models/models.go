package models

import (
	"errors"
	"time"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus renvoyé pour un statut de réservation inconnu
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Modèles de requête

// CreateReservationRequest requête de création d'une réservation.
// Le prix total est toujours recalculé côté serveur.
type CreateReservationRequest struct {
	UserID            int64   `json:"userId"`
	VehicleID         int64   `json:"vehicleId"`
	Plate             string  `json:"plate"`
	PickupLocation    string  `json:"pickupLocation"`
	DropoffLocation   string  `json:"dropoffLocation"`
	PickupDate        string  `json:"pickupDate"`  // "2025-06-01"
	DropoffDate       string  `json:"dropoffDate"` // "2025-06-05"
	PickupTime        string  `json:"pickupTime"`  // "10:00"
	DropoffTime       string  `json:"dropoffTime"` // "18:00"
	PaymentPercentage int     `json:"paymentPercentage"`
	FlightNumber      *string `json:"flightNumber,omitempty"`
}

// GetUserReservationsRequest requête des réservations d'un utilisateur
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetVehicleReservationsRequest requête des réservations d'un véhicule
type GetVehicleReservationsRequest struct {
	VehicleID       int64      `json:"vehicleId"`
	Plate           *string    `json:"plate,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeTerminal bool       `json:"includeTerminal,omitempty"`
}

// ToDomainFilter convertit la requête en filtre domaine
func (r *GetVehicleReservationsRequest) ToDomainFilter() (domain.VehicleReservationsFilter, error) {
	filter := domain.VehicleReservationsFilter{
		VehicleID:       r.VehicleID,
		Plate:           r.Plate,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeTerminal: r.IncludeTerminal,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Modèles de réponse

// ReservationResponse réponse avec les données d'une réservation
type ReservationResponse struct {
	ID                int64   `json:"id"`
	UserID            int64   `json:"userId"`
	VehicleID         int64   `json:"vehicleId"`
	Plate             string  `json:"plate"`
	PickupLocation    string  `json:"pickupLocation"`
	DropoffLocation   string  `json:"dropoffLocation"`
	PickupDate        string  `json:"pickupDate"`
	DropoffDate       string  `json:"dropoffDate"`
	PickupTime        string  `json:"pickupTime"`
	DropoffTime       string  `json:"dropoffTime"`
	Status            string  `json:"status"`
	PaymentPercentage int     `json:"paymentPercentage"`
	TotalPrice        float64 `json:"totalPrice"`
	AmountPaid        float64 `json:"amountPaid"`
	FlightNumber      *string `json:"flightNumber,omitempty"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// ReservationListResponse réponse avec une liste de réservations
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// Convertisseurs

// ToDomainReservationStatus convertit une chaîne en statut domaine
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainReservation convertit une réservation domaine en réponse
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                res.ID,
		UserID:            res.UserID,
		VehicleID:         res.VehicleID,
		Plate:             res.Plate,
		PickupLocation:    res.PickupLocation,
		DropoffLocation:   res.DropoffLocation,
		PickupDate:        res.PickupDate.Format(domain.DateFormat),
		DropoffDate:       res.DropoffDate.Format(domain.DateFormat),
		PickupTime:        res.PickupTime.String(),
		DropoffTime:       res.DropoffTime.String(),
		Status:            string(res.Status),
		PaymentPercentage: res.PaymentPercentage,
		TotalPrice:        res.TotalPrice,
		AmountPaid:        res.AmountPaid,
		FlightNumber:      res.FlightNumber,
		CreatedAt:         res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         res.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList convertit une liste de réservations
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, res := range list {
		out = append(out, FromDomainReservation(res))
	}
	return &ReservationListResponse{
		Reservations: out,
		Total:        len(out),
	}
}

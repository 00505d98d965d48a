package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	reservationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/reservation"
	vehicleRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/vehicle"
	"github.com/GBTour/GBT-ReservationService/internal/pricing"
	"github.com/GBTour/GBT-ReservationService/internal/service/reservations/models"
	"github.com/GBTour/GBT-ReservationService/pkg/types"
)

// Service service de lecture et de création des réservations
type Service struct {
	reservationRepo ReservationRepository
	vehicleRepo     VehicleRepository
	logger          Logger
}

// NewService crée un nouveau service réservations
func NewService(
	reservationRepo ReservationRepository,
	vehicleRepo VehicleRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		logger:          logger,
	}
}

// Create crée une réservation en statut "pending". Le prix total est
// recalculé depuis le tarif journalier du véhicule et le barème long
// séjour, jamais repris du client. Aucune période n'est inscrite au
// calendrier avant la confirmation.
func (s *Service) Create(ctx context.Context, req *models.CreateReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Create: creating reservation for user=%d, vehicle=%d, plate=%s", req.UserID, req.VehicleID, req.Plate)

	pickupDate, err := domain.ParseDate(req.PickupDate)
	if err != nil {
		s.logger.Warn("Create: invalid pickup date %q for user=%d", req.PickupDate, req.UserID)
		return nil, fmt.Errorf("%w: invalid pickup date", ErrInvalidDates)
	}
	dropoffDate, err := domain.ParseDate(req.DropoffDate)
	if err != nil {
		s.logger.Warn("Create: invalid dropoff date %q for user=%d", req.DropoffDate, req.UserID)
		return nil, fmt.Errorf("%w: invalid dropoff date", ErrInvalidDates)
	}

	pickupTime, err := types.NewTimeStringFromString(req.PickupTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pickup time", ErrInvalidInput)
	}
	dropoffTime, err := types.NewTimeStringFromString(req.DropoffTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dropoff time", ErrInvalidInput)
	}

	if !domain.IsAllowedPaymentPercentage(req.PaymentPercentage) {
		s.logger.Warn("Create: payment percentage %d not allowed for user=%d", req.PaymentPercentage, req.UserID)
		return nil, fmt.Errorf("%w: payment percentage must be 0, 30 or 100", ErrInvalidInput)
	}

	res := &domain.Reservation{
		UserID:            req.UserID,
		VehicleID:         req.VehicleID,
		Plate:             req.Plate,
		PickupLocation:    req.PickupLocation,
		DropoffLocation:   req.DropoffLocation,
		PickupDate:        pickupDate,
		DropoffDate:       dropoffDate,
		PickupTime:        pickupTime,
		DropoffTime:       dropoffTime,
		Status:            domain.ReservationPending,
		PaymentPercentage: req.PaymentPercentage,
		FlightNumber:      req.FlightNumber,
	}

	if err := res.ValidateDates(); err != nil {
		s.logger.Warn("Create: pickup date not before dropoff date for user=%d", req.UserID)
		return nil, ErrInvalidDates
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("Create: vehicle=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("Create: repository error for vehicle=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	if vehicle.FindMatriculation(req.Plate) == nil {
		s.logger.Warn("Create: plate=%s not found on vehicle=%d", req.Plate, req.VehicleID)
		return nil, ErrMatriculationNotFound
	}

	total, err := pricing.RentalTotal(res.DurationDays(), vehicle.PricePerDay)
	if err != nil {
		s.logger.Warn("Create: pricing rejected reservation for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	res.TotalPrice = total
	res.AmountPaid = 0

	created, err := s.reservationRepo.Create(ctx, res)
	if err != nil {
		s.logger.Error("Create: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: reservation id=%d created for user=%d, total=%.2f", created.ID, created.UserID, created.TotalPrice)
	return models.FromDomainReservation(created), nil
}

// GetByID récupère une réservation. L'utilisateur ne voit que ses
// propres réservations.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if res.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// GetUserReservations récupère l'historique des réservations d'un
// utilisateur, avec filtre de statut optionnel
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	list, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(list), req.UserID)
	return models.FromDomainReservationList(list), nil
}

// GetVehicleReservations récupère les réservations d'un véhicule avec
// filtrage par matricule, période et statut. Les statuts terminaux sont
// exclus sauf demande explicite.
func (s *Service) GetVehicleReservations(ctx context.Context, req *models.GetVehicleReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetVehicleReservations: fetching reservations for vehicle=%d", req.VehicleID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVehicleReservations: invalid filter for vehicle=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	list, err := s.reservationRepo.GetByVehicleWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVehicleReservations: repository error for vehicle=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: GetVehicleReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVehicleReservations: fetched %d reservations for vehicle=%d", len(list), req.VehicleID)
	return models.FromDomainReservationList(list), nil
}

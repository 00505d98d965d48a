package confirm_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	reservationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/reservation"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/notifservice"
	"github.com/GBTour/GBT-ReservationService/internal/pricing"
	"github.com/GBTour/GBT-ReservationService/internal/service/calendar"
)

// UseCase confirmation d'une réservation avec inscription de la
// période au calendrier
type UseCase struct {
	reservationRepo ReservationRepository
	calendarSvc     CalendarService
	notifClient     NotificationClient
	fleetCache      FleetCache
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase crée un nouveau usecase de confirmation
func NewUseCase(
	reservationRepo ReservationRepository,
	calendarSvc CalendarService,
	notifClient NotificationClient,
	fleetCache FleetCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		calendarSvc:     calendarSvc,
		notifClient:     notifClient,
		fleetCache:      fleetCache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute confirme une réservation. L'inscription de la période et le
// changement de statut s'effectuent dans une seule transaction
// sérialisable : en cas de course sur le même matricule, le premier
// commit gagne et le second échoue sur le contrôle de chevauchement.
// Les transactions avortées ne sont jamais rejouées ici.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmReservation: reservation=%d", req.ReservationID)

	if req.ReservationID <= 0 {
		uc.logger.Warn("ConfirmReservation: invalid reservation id=%d", req.ReservationID)
		return nil, fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var result *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Chargement de la réservation (FOR UPDATE dans la transaction)
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("ConfirmReservation: reservation=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("ConfirmReservation: failed to get reservation=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2. Transition autorisée vers "confirmed"
		if !res.Status.CanTransitionTo(domain.ReservationConfirmed) {
			uc.logger.Warn("ConfirmReservation: reservation=%d cannot move from %s to confirmed",
				res.ID, res.Status)
			return ErrInvalidTransition
		}

		// 3. Une réservation confirmée doit porter un pourcentage de paiement
		if res.PaymentPercentage <= 0 {
			uc.logger.Warn("ConfirmReservation: reservation=%d has no payment percentage", res.ID)
			return ErrPaymentRequired
		}

		// 4. Inscription de la période au calendrier
		if err := uc.calendarSvc.ApplyConfirm(txCtx, res, now); err != nil {
			return mapCalendarError(err)
		}

		// 5. Mise à jour du statut et du montant payé
		res.Status = domain.ReservationConfirmed
		res.AmountPaid = pricing.RoundCents(res.TotalPrice * float64(res.PaymentPercentage) / 100)

		if err := uc.reservationRepo.Update(txCtx, res); err != nil {
			uc.logger.Error("ConfirmReservation: failed to update reservation=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmReservation: reservation=%d confirmed, amount_paid=%.2f", result.ID, result.AmountPaid)

	// Purge du cache du parc après commit, échec journalisé seulement :
	// le TTL borne la fraîcheur si la purge échoue
	if uc.fleetCache != nil {
		if err := uc.fleetCache.Invalidate(ctx); err != nil {
			uc.logger.Warn("ConfirmReservation: failed to invalidate fleet cache: %v", err)
		}
	}

	// Notification après commit, échec journalisé seulement
	uc.notifClient.SendAsync(notifservice.Event{
		Type:   notifservice.EventReservationConfirmed,
		UserID: result.UserID,
		Payload: map[string]interface{}{
			"reservation_id": result.ID,
			"pickup_date":    result.PickupDate.Format(domain.DateFormat),
			"dropoff_date":   result.DropoffDate.Format(domain.DateFormat),
			"total_price":    result.TotalPrice,
		},
	})

	return &Response{
		ID:                result.ID,
		UserID:            result.UserID,
		VehicleID:         result.VehicleID,
		Plate:             result.Plate,
		PickupDate:        result.PickupDate,
		DropoffDate:       result.DropoffDate,
		Status:            string(result.Status),
		PaymentPercentage: result.PaymentPercentage,
		TotalPrice:        result.TotalPrice,
		AmountPaid:        result.AmountPaid,
		UpdatedAt:         result.UpdatedAt,
	}, nil
}

// mapCalendarError traduit les erreurs du service calendrier en
// erreurs du usecase
func mapCalendarError(err error) error {
	switch {
	case errors.Is(err, calendar.ErrMatriculationNotFound):
		return ErrMatriculationNotFound
	case errors.Is(err, calendar.ErrMatriculationUnavailable):
		return ErrMatriculationUnavailable
	case errors.Is(err, calendar.ErrDateConflict):
		return ErrDateConflict
	default:
		return fmt.Errorf("%w: calendar error: %v", ErrInternal, err)
	}
}

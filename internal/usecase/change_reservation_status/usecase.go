package change_reservation_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	reservationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/reservation"
	vehicleRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/vehicle"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/notifservice"
	"github.com/GBTour/GBT-ReservationService/internal/pricing"
	"github.com/GBTour/GBT-ReservationService/internal/service/calendar"
)

// UseCase mutation d'une réservation : changement de statut et/ou
// édition des dates ou du matricule, avec réconciliation du calendrier
type UseCase struct {
	reservationRepo ReservationRepository
	vehicleRepo     VehicleRepository
	calendarSvc     CalendarService
	notifClient     NotificationClient
	fleetCache      FleetCache
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase crée un nouveau usecase de mutation de réservation
func NewUseCase(
	reservationRepo ReservationRepository,
	vehicleRepo VehicleRepository,
	calendarSvc CalendarService,
	notifClient NotificationClient,
	fleetCache FleetCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		calendarSvc:     calendarSvc,
		notifClient:     notifClient,
		fleetCache:      fleetCache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute applique la mutation dans une seule transaction sérialisable.
// Tout échec de validation (transition interdite, chevauchement,
// maintenance) avorte la transaction : quand une ancienne période a
// déjà été libérée dans la transaction, le rollback la restaure, aucun
// état partiel ne survit.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeReservationStatus: reservation=%d, status=%v", req.ReservationID, req.Status)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeReservationStatus: validation failed: %v", err)
		return nil, err
	}

	targetStatus, err := parseTargetStatus(req)
	if err != nil {
		uc.logger.Warn("ChangeReservationStatus: %v", err)
		return nil, err
	}
	newPickup, err := parseDateEdit(req.PickupDate)
	if err != nil {
		uc.logger.Warn("ChangeReservationStatus: %v", err)
		return nil, err
	}
	newDropoff, err := parseDateEdit(req.DropoffDate)
	if err != nil {
		uc.logger.Warn("ChangeReservationStatus: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Reservation

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Chargement de la réservation (FOR UPDATE dans la transaction)
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("ChangeReservationStatus: reservation=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("ChangeReservationStatus: failed to get reservation=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2. Statut cible et transition
		status := res.Status
		if targetStatus != nil && *targetStatus != res.Status {
			if !res.Status.CanTransitionTo(*targetStatus) {
				uc.logger.Warn("ChangeReservationStatus: reservation=%d cannot move from %s to %s",
					res.ID, res.Status, *targetStatus)
				return ErrInvalidTransition
			}
			status = *targetStatus
		}

		hasEdits := newPickup != nil || newDropoff != nil || req.Plate != nil
		if hasEdits && res.Status.IsTerminal() {
			uc.logger.Warn("ChangeReservationStatus: reservation=%d is terminal (%s), edits rejected",
				res.ID, res.Status)
			return ErrInvalidTransition
		}

		wasHolding := res.HoldsCalendarPeriod()
		willHold := status == domain.ReservationConfirmed

		// 3. Libération de l'ancienne période quand on quitte "confirmed"
		// ou qu'on réécrit dates/matricule d'une réservation confirmée
		if wasHolding && (hasEdits || !willHold) {
			if err := uc.calendarSvc.Release(txCtx, res, now); err != nil {
				return uc.mapCalendarError(err)
			}
		}

		// 4. Application des éditions
		if hasEdits {
			if newPickup != nil {
				res.PickupDate = *newPickup
			}
			if newDropoff != nil {
				res.DropoffDate = *newDropoff
			}
			if req.Plate != nil {
				res.Plate = *req.Plate
			}
			if err := res.ValidateDates(); err != nil {
				uc.logger.Warn("ChangeReservationStatus: reservation=%d invalid dates after edit", res.ID)
				return ErrInvalidDates
			}

			// Les dates ont pu changer la durée : le prix est recalculé
			// depuis le tarif du véhicule, jamais repris du client
			if err := uc.repriceReservation(txCtx, res); err != nil {
				return err
			}
		}

		// 5. Exigence de paiement pour paid/confirmed
		if status.RequiresPayment() && res.PaymentPercentage <= 0 {
			uc.logger.Warn("ChangeReservationStatus: reservation=%d has no payment percentage for %s",
				res.ID, status)
			return ErrPaymentRequired
		}

		// 6. Réinscription au calendrier quand la réservation (re)devient
		// confirmée : contrôle complet maintenance + chevauchement
		if willHold && (hasEdits || !wasHolding) {
			if err := uc.calendarSvc.ApplyConfirm(txCtx, res, now); err != nil {
				return uc.mapCalendarError(err)
			}
		}

		res.Status = status
		if status.RequiresPayment() {
			res.AmountPaid = pricing.RoundCents(res.TotalPrice * float64(res.PaymentPercentage) / 100)
		} else if status.IsTerminal() {
			// Hors des statuts de paiement le pourcentage n'a plus de
			// porteur ; amount_paid reste la trace de l'encaissement
			res.PaymentPercentage = 0
		}

		if err := uc.reservationRepo.Update(txCtx, res); err != nil {
			uc.logger.Error("ChangeReservationStatus: failed to update reservation=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ChangeReservationStatus: reservation=%d now %s", result.ID, result.Status)

	// Purge du cache du parc après commit, échec journalisé seulement
	if uc.fleetCache != nil {
		if err := uc.fleetCache.Invalidate(ctx); err != nil {
			uc.logger.Warn("ChangeReservationStatus: failed to invalidate fleet cache: %v", err)
		}
	}

	if result.Status == domain.ReservationCancelled {
		uc.notifClient.SendAsync(notifservice.Event{
			Type:   notifservice.EventReservationCancelled,
			UserID: result.UserID,
			Payload: map[string]interface{}{
				"reservation_id": result.ID,
			},
		})
	}

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

// repriceReservation recalcule le prix total depuis le tarif journalier
// du véhicule et le barème long séjour
func (uc *UseCase) repriceReservation(ctx context.Context, res *domain.Reservation) error {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, res.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("ChangeReservationStatus: vehicle=%d not found", res.VehicleID)
			return ErrVehicleNotFound
		}
		uc.logger.Error("ChangeReservationStatus: failed to get vehicle=%d: %v", res.VehicleID, err)
		return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	if vehicle.FindMatriculation(res.Plate) == nil {
		uc.logger.Warn("ChangeReservationStatus: plate=%s not found on vehicle=%d", res.Plate, res.VehicleID)
		return ErrMatriculationNotFound
	}

	total, err := pricing.RentalTotal(res.DurationDays(), vehicle.PricePerDay)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	res.TotalPrice = total
	return nil
}

// mapCalendarError traduit les erreurs du service calendrier
func (uc *UseCase) mapCalendarError(err error) error {
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

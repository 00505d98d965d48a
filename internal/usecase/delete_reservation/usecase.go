package delete_reservation

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/reservation"
	"github.com/GBTour/GBT-ReservationService/internal/service/calendar"
)

// Request requête de suppression d'une réservation
type Request struct {
	ReservationID int64
}

// UseCase suppression d'une réservation avec restitution de la
// disponibilité quand elle détenait une période au calendrier
type UseCase struct {
	reservationRepo ReservationRepository
	calendarSvc     CalendarService
	fleetCache      FleetCache
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase crée un nouveau usecase de suppression
func NewUseCase(
	reservationRepo ReservationRepository,
	calendarSvc CalendarService,
	fleetCache FleetCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		calendarSvc:     calendarSvc,
		fleetCache:      fleetCache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute supprime la réservation et sa période au calendrier dans la
// même transaction
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("DeleteReservation: reservation=%d", req.ReservationID)

	if req.ReservationID <= 0 {
		uc.logger.Warn("DeleteReservation: invalid reservation id=%d", req.ReservationID)
		return fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("DeleteReservation: reservation=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("DeleteReservation: failed to get reservation=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if res.HoldsCalendarPeriod() {
			if err := uc.calendarSvc.Release(txCtx, res, now); err != nil {
				if errors.Is(err, calendar.ErrMatriculationNotFound) {
					return ErrMatriculationNotFound
				}
				return fmt.Errorf("%w: calendar error: %v", ErrInternal, err)
			}
		}

		if err := uc.reservationRepo.Delete(txCtx, res.ID); err != nil {
			uc.logger.Error("DeleteReservation: failed to delete reservation=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to delete reservation: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.invalidateFleetCache(ctx)

	uc.logger.Info("DeleteReservation: reservation=%d deleted", req.ReservationID)
	return nil
}

// invalidateFleetCache purge le parc en cache après la mutation du
// calendrier ; un échec n'annule pas l'opération, le TTL borne la
// fraîcheur
func (uc *UseCase) invalidateFleetCache(ctx context.Context) {
	if uc.fleetCache == nil {
		return
	}
	if err := uc.fleetCache.Invalidate(ctx); err != nil {
		uc.logger.Warn("DeleteReservation: failed to invalidate fleet cache: %v", err)
	}
}

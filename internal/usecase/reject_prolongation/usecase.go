package reject_prolongation

import (
	"context"
	"errors"
	"fmt"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	prolongationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/prolongation"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/notifservice"
)

// Request requête de rejet d'une prolongation
type Request struct {
	ProlongationID int64
}

// UseCase rejet d'une demande de prolongation. Terminal depuis
// "pending" ; rien n'ayant été inscrit au calendrier, aucune mutation
// n'est nécessaire.
type UseCase struct {
	prolongationRepo ProlongationRepository
	reservationRepo  ReservationRepository
	notifClient      NotificationClient
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase crée un nouveau usecase de rejet
func NewUseCase(
	prolongationRepo ProlongationRepository,
	reservationRepo ReservationRepository,
	notifClient NotificationClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		prolongationRepo: prolongationRepo,
		reservationRepo:  reservationRepo,
		notifClient:      notifClient,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute rejette la prolongation et notifie le client
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("RejectProlongation: prolongation=%d", req.ProlongationID)

	if req.ProlongationID <= 0 {
		uc.logger.Warn("RejectProlongation: invalid prolongation id=%d", req.ProlongationID)
		return fmt.Errorf("%w: prolongation id must be positive", ErrInvalidInput)
	}

	var userID int64

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		p, err := uc.prolongationRepo.GetByID(txCtx, req.ProlongationID)
		if err != nil {
			if errors.Is(err, prolongationRepo.ErrProlongationNotFound) {
				uc.logger.Warn("RejectProlongation: prolongation=%d not found", req.ProlongationID)
				return ErrProlongationNotFound
			}
			uc.logger.Error("RejectProlongation: failed to get prolongation=%d: %v", req.ProlongationID, err)
			return fmt.Errorf("%w: failed to get prolongation: %v", ErrInternal, err)
		}

		if !p.Status.CanTransitionTo(domain.ProlongationRejected) {
			uc.logger.Warn("RejectProlongation: prolongation=%d has status %s, cannot reject", p.ID, p.Status)
			return ErrInvalidTransition
		}

		if err := uc.prolongationRepo.UpdateStatus(txCtx, p.ID, domain.ProlongationRejected); err != nil {
			uc.logger.Error("RejectProlongation: failed to update prolongation=%d: %v", p.ID, err)
			return fmt.Errorf("%w: failed to update prolongation: %v", ErrInternal, err)
		}

		if res, err := uc.reservationRepo.GetByID(txCtx, p.ReservationID); err == nil {
			userID = res.UserID
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Info("RejectProlongation: prolongation=%d rejected", req.ProlongationID)

	if userID != 0 {
		uc.notifClient.SendAsync(notifservice.Event{
			Type:   notifservice.EventProlongationRejected,
			UserID: userID,
			Payload: map[string]interface{}{
				"prolongation_id": req.ProlongationID,
			},
		})
	}
	return nil
}

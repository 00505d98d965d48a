package confirm_prolongation_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	prolongationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/prolongation"
	reservationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/reservation"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/notifservice"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/paymee"
	"github.com/GBTour/GBT-ReservationService/internal/pricing"
	"github.com/GBTour/GBT-ReservationService/internal/service/calendar"
)

// Request paramètres renvoyés par la redirection de la passerelle.
// Jamais crus tels quels : l'état faisant foi est relu auprès de la
// passerelle.
type Request struct {
	ProlongationID int64
	OrderID        string
	PaymentRef     string
}

// UseCase callback de confirmation du paiement carte d'une
// prolongation. Idempotent : rejouer un callback déjà réglé est un
// no-op, le prix n'est jamais majoré deux fois ni la période dupliquée.
type UseCase struct {
	prolongationRepo ProlongationRepository
	reservationRepo  ReservationRepository
	calendarSvc      CalendarService
	gateway          PaymentGateway
	notifClient      NotificationClient
	fleetCache       FleetCache
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase crée un nouveau usecase de confirmation de paiement
func NewUseCase(
	prolongationRepo ProlongationRepository,
	reservationRepo ReservationRepository,
	calendarSvc CalendarService,
	gateway PaymentGateway,
	notifClient NotificationClient,
	fleetCache FleetCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		prolongationRepo: prolongationRepo,
		reservationRepo:  reservationRepo,
		calendarSvc:      calendarSvc,
		gateway:          gateway,
		notifClient:      notifClient,
		fleetCache:       fleetCache,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute vérifie le paiement auprès de la passerelle puis applique la
// prolongation. Toute discordance (ordre, montant, statut) ou un
// conflit de dates survenu depuis l'envoi du lien avorte la
// transaction : la prolongation reste en "waiting_for_payment" et le
// calendrier est inchangé.
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("ConfirmProlongationPayment: prolongation=%d, order=%s", req.ProlongationID, req.OrderID)

	if req.ProlongationID <= 0 || req.OrderID == "" || req.PaymentRef == "" {
		uc.logger.Warn("ConfirmProlongationPayment: missing identifiers, prolongation=%d", req.ProlongationID)
		return fmt.Errorf("%w: prolongation id, order id and payment ref are required", ErrInvalidInput)
	}

	// 1. État du paiement relu auprès de la passerelle, hors transaction.
	// Seule cette réponse fait foi.
	payment, err := uc.gateway.GetPayment(ctx, req.PaymentRef)
	if err != nil {
		return uc.mapGatewayError(req.ProlongationID, err)
	}

	now := uc.timeProvider.Now()

	var (
		settledUserID int64
		alreadyDone   bool
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. La prolongation doit correspondre au triplet complet
		p, err := uc.prolongationRepo.GetByPaymentOrder(txCtx, req.ProlongationID, req.OrderID, req.PaymentRef)
		if err != nil {
			if errors.Is(err, prolongationRepo.ErrProlongationNotFound) {
				uc.logger.Warn("ConfirmProlongationPayment: no prolongation matches id=%d, order=%s",
					req.ProlongationID, req.OrderID)
				return ErrProlongationNotFound
			}
			uc.logger.Error("ConfirmProlongationPayment: failed to get prolongation=%d: %v", req.ProlongationID, err)
			return fmt.Errorf("%w: failed to get prolongation: %v", ErrInternal, err)
		}

		// 3. Rejeu d'un callback déjà réglé : no-op
		if p.IsSettled() {
			uc.logger.Info("ConfirmProlongationPayment: prolongation=%d already settled, no-op", p.ID)
			alreadyDone = true
			return nil
		}

		if p.Status != domain.ProlongationWaitingForPayment {
			uc.logger.Warn("ConfirmProlongationPayment: prolongation=%d has status %s", p.ID, p.Status)
			return ErrNotAwaitingPayment
		}

		// 4. Lien de paiement expiré
		if p.PaymentExpiresAt != nil && now.After(*p.PaymentExpiresAt) {
			uc.logger.Warn("ConfirmProlongationPayment: prolongation=%d payment link expired at %s",
				p.ID, p.PaymentExpiresAt)
			return ErrPaymentExpired
		}

		// 5. Vérifications contre l'état de la passerelle
		if payment.OrderID != req.OrderID {
			uc.logger.Warn("ConfirmProlongationPayment: order mismatch for prolongation=%d: gateway=%s, expected=%s",
				p.ID, payment.OrderID, req.OrderID)
			return ErrOrderIDMismatch
		}
		if payment.Status != paymee.PaymentStatusCompleted {
			uc.logger.Warn("ConfirmProlongationPayment: prolongation=%d payment status=%s", p.ID, payment.Status)
			return ErrPaymentNotCompleted
		}
		expectedAmount := pricing.ToSmallestUnit(p.TotalPrice)
		if payment.Amount != expectedAmount {
			uc.logger.Warn("ConfirmProlongationPayment: amount mismatch for prolongation=%d: gateway=%d, expected=%d",
				p.ID, payment.Amount, expectedAmount)
			return ErrPaymentAmountMismatch
		}

		res, err := uc.reservationRepo.GetByID(txCtx, p.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("ConfirmProlongationPayment: reservation=%d not found", p.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("ConfirmProlongationPayment: failed to get reservation=%d: %v", p.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 6. La réservation doit encore détenir sa période : annulée ou
		// clôturée entre-temps, il n'y a plus rien à prolonger. Fatal
		// même après encaissement, la réconciliation est manuelle.
		if !res.HoldsCalendarPeriod() {
			uc.logger.Warn("ConfirmProlongationPayment: reservation=%d has status %s, prolongation=%d cannot be applied",
				res.ID, res.Status, p.ID)
			return ErrReservationNotConfirmed
		}

		// 7. Le calendrier a pu bouger depuis l'envoi du lien : le
		// contrôle de chevauchement est rejoué. Un conflit est fatal
		// même après encaissement, la réconciliation est manuelle.
		if err := uc.calendarSvc.ExtendPeriod(txCtx, res, p.NewDropoffDate); err != nil {
			switch {
			case errors.Is(err, calendar.ErrDateConflict):
				return ErrDateConflict
			case errors.Is(err, calendar.ErrMatriculationNotFound):
				return ErrMatriculationNotFound
			default:
				return fmt.Errorf("%w: calendar error: %v", ErrInternal, err)
			}
		}

		// 8. Même mutation de prix que le chemin en agence
		newTotal := pricing.RoundCents(res.TotalPrice + p.TotalPrice)
		newAmountPaid := pricing.RoundCents(newTotal * float64(res.PaymentPercentage) / 100)

		if err := uc.reservationRepo.ExtendDropoff(txCtx, res.ID, p.NewDropoffDate, newTotal, newAmountPaid); err != nil {
			uc.logger.Error("ConfirmProlongationPayment: failed to extend reservation=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to extend reservation: %v", ErrInternal, err)
		}

		if err := uc.prolongationRepo.Settle(txCtx, p.ID, domain.ProlongationPaid); err != nil {
			uc.logger.Error("ConfirmProlongationPayment: failed to settle prolongation=%d: %v", p.ID, err)
			return fmt.Errorf("%w: failed to settle prolongation: %v", ErrInternal, err)
		}

		settledUserID = res.UserID
		return nil
	})
	if err != nil {
		return err
	}

	if alreadyDone {
		return nil
	}

	uc.logger.Info("ConfirmProlongationPayment: prolongation=%d settled, order=%s", req.ProlongationID, req.OrderID)

	// Purge du cache du parc après commit, échec journalisé seulement
	if uc.fleetCache != nil {
		if err := uc.fleetCache.Invalidate(ctx); err != nil {
			uc.logger.Warn("ConfirmProlongationPayment: failed to invalidate fleet cache: %v", err)
		}
	}

	uc.notifClient.SendAsync(notifservice.Event{
		Type:   notifservice.EventPaymentConfirmed,
		UserID: settledUserID,
		Payload: map[string]interface{}{
			"prolongation_id": req.ProlongationID,
			"order_id":        req.OrderID,
		},
	})
	return nil
}

// mapGatewayError distingue le refus d'authentification des erreurs
// transitoires
func (uc *UseCase) mapGatewayError(prolongationID int64, err error) error {
	switch {
	case errors.Is(err, paymee.ErrUnauthorized):
		uc.logger.Error("ConfirmProlongationPayment: gateway auth failed for prolongation=%d: %v", prolongationID, err)
		return fmt.Errorf("%w: %v", ErrGatewayAuth, err)
	case errors.Is(err, paymee.ErrPaymentNotFound):
		uc.logger.Warn("ConfirmProlongationPayment: payment not found at gateway for prolongation=%d", prolongationID)
		return ErrPaymentNotCompleted
	default:
		uc.logger.Error("ConfirmProlongationPayment: gateway unavailable for prolongation=%d: %v", prolongationID, err)
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
}

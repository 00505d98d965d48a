package accept_prolongation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	prolongationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/prolongation"
	reservationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/reservation"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/notifservice"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/paymee"
	"github.com/GBTour/GBT-ReservationService/internal/pricing"
	"github.com/GBTour/GBT-ReservationService/internal/service/calendar"
)

// UseCase acceptation d'une prolongation. Deux chemins : règlement en
// agence (mutation synchrone du calendrier) ou par carte (ordre de
// paiement externe, le calendrier n'est touché qu'au callback).
type UseCase struct {
	prolongationRepo ProlongationRepository
	reservationRepo  ReservationRepository
	calendarSvc      CalendarService
	gateway          PaymentGateway
	notifClient      NotificationClient
	fleetCache       FleetCache
	txManager        TransactionManager
	timeProvider     TimeProvider
	paymentLinkTTL   time.Duration
	logger           Logger
}

// NewUseCase crée un nouveau usecase d'acceptation de prolongation
func NewUseCase(
	prolongationRepo ProlongationRepository,
	reservationRepo ReservationRepository,
	calendarSvc CalendarService,
	gateway PaymentGateway,
	notifClient NotificationClient,
	fleetCache FleetCache,
	txManager TransactionManager,
	paymentLinkTTL time.Duration,
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
		paymentLinkTTL:   paymentLinkTTL,
		logger:           logger,
	}
}

// Execute accepte la prolongation selon le mode de paiement demandé
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptProlongation: prolongation=%d, method=%s", req.ProlongationID, req.PaymentMethod)

	if req.ProlongationID <= 0 {
		uc.logger.Warn("AcceptProlongation: invalid prolongation id=%d", req.ProlongationID)
		return nil, fmt.Errorf("%w: prolongation id must be positive", ErrInvalidInput)
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		uc.logger.Warn("AcceptProlongation: invalid payment method %q", req.PaymentMethod)
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	if method == domain.PaymentEnAgence {
		return uc.acceptInPerson(ctx, req.ProlongationID)
	}
	return uc.acceptByCard(ctx, req.ProlongationID)
}

// acceptInPerson applique la prolongation immédiatement : contrôle de
// chevauchement sur l'intervalle étendu [départ, nouveau retour],
// remplacement de la période, majoration du prix total et recalcul du
// montant payé au prorata du pourcentage, le tout dans une transaction
func (uc *UseCase) acceptInPerson(ctx context.Context, prolongationID int64) (*Response, error) {
	var (
		p   *domain.ProlongationRequest
		res *domain.Reservation
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		p, res, err = uc.loadPending(txCtx, prolongationID)
		if err != nil {
			return err
		}

		if err := uc.calendarSvc.ExtendPeriod(txCtx, res, p.NewDropoffDate); err != nil {
			return uc.mapCalendarError(err)
		}

		newTotal := pricing.RoundCents(res.TotalPrice + p.TotalPrice)
		newAmountPaid := pricing.RoundCents(newTotal * float64(res.PaymentPercentage) / 100)

		if err := uc.reservationRepo.ExtendDropoff(txCtx, res.ID, p.NewDropoffDate, newTotal, newAmountPaid); err != nil {
			uc.logger.Error("AcceptProlongation: failed to extend reservation=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to extend reservation: %v", ErrInternal, err)
		}

		// Règlement encaissé au comptoir au moment de l'acceptation
		if err := uc.prolongationRepo.Settle(txCtx, p.ID, domain.ProlongationPaid); err != nil {
			uc.logger.Error("AcceptProlongation: failed to settle prolongation=%d: %v", p.ID, err)
			return fmt.Errorf("%w: failed to settle prolongation: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AcceptProlongation: prolongation=%d accepted in person, reservation=%d extended to %s",
		p.ID, res.ID, p.NewDropoffDate.Format(domain.DateFormat))

	// Purge du cache du parc après commit, échec journalisé seulement
	if uc.fleetCache != nil {
		if err := uc.fleetCache.Invalidate(ctx); err != nil {
			uc.logger.Warn("AcceptProlongation: failed to invalidate fleet cache: %v", err)
		}
	}

	uc.notifClient.SendAsync(notifservice.Event{
		Type:   notifservice.EventProlongationAccepted,
		UserID: res.UserID,
		Payload: map[string]interface{}{
			"prolongation_id":  p.ID,
			"reservation_id":   res.ID,
			"new_dropoff_date": p.NewDropoffDate.Format(domain.DateFormat),
			"additional_cost":  p.TotalPrice,
		},
	})

	return &Response{
		ID:               p.ID,
		ReservationID:    p.ReservationID,
		NewDropoffDate:   p.NewDropoffDate,
		AdditionalDays:   p.AdditionalDays,
		ReductionPercent: p.ReductionPercent,
		TotalPrice:       p.TotalPrice,
		Status:           string(domain.ProlongationAccepted),
		PaymentStatus:    string(domain.ProlongationPaid),
	}, nil
}

// acceptByCard ne touche pas au calendrier : un ordre de paiement est
// créé auprès de la passerelle (identifiant d'ordre généré, clé
// d'idempotence), puis la prolongation passe en "waiting_for_payment"
// et le lien de paiement est notifié au client. Un échec de la
// passerelle annule tout, aucun ordre orphelin n'est référencé.
func (uc *UseCase) acceptByCard(ctx context.Context, prolongationID int64) (*Response, error) {
	var (
		p   *domain.ProlongationRequest
		res *domain.Reservation
	)

	// Contrôle préalable hors mutation : inutile d'envoyer un lien de
	// paiement pour un intervalle déjà conflictuel
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		p, res, err = uc.loadPending(txCtx, prolongationID)
		if err != nil {
			return err
		}
		if err := uc.calendarSvc.CheckAvailability(txCtx, res, res.PickupDate, p.NewDropoffDate); err != nil {
			return uc.mapCalendarError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Appel passerelle hors transaction
	orderID := uuid.NewString()
	initResp, err := uc.gateway.InitPayment(ctx, paymee.InitPaymentRequest{
		OrderID:     orderID,
		Amount:      pricing.ToSmallestUnit(p.TotalPrice),
		Description: fmt.Sprintf("Prolongation reservation %d (+%d jours)", res.ID, p.AdditionalDays),
	})
	if err != nil {
		return nil, uc.mapGatewayError(p.ID, err)
	}

	now := uc.timeProvider.Now()
	expiresAt := now.Add(uc.paymentLinkTTL)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Relecture sous verrou : la prolongation doit toujours être "pending"
		current, _, err := uc.loadPending(txCtx, prolongationID)
		if err != nil {
			return err
		}
		if err := uc.prolongationRepo.SetPaymentOrder(txCtx, current.ID, orderID, initResp.PaymentRef, expiresAt); err != nil {
			uc.logger.Error("AcceptProlongation: failed to store payment order for prolongation=%d: %v", current.ID, err)
			return fmt.Errorf("%w: failed to store payment order: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AcceptProlongation: prolongation=%d waiting for payment, order=%s, expires=%s",
		p.ID, orderID, expiresAt.Format(time.RFC3339))

	uc.notifClient.SendAsync(notifservice.Event{
		Type:   notifservice.EventPaymentLinkCreated,
		UserID: res.UserID,
		Payload: map[string]interface{}{
			"prolongation_id": p.ID,
			"reservation_id":  res.ID,
			"pay_url":         initResp.PayURL,
			"amount":          p.TotalPrice,
			"expires_at":      expiresAt.Format(time.RFC3339),
		},
	})

	payURL := initResp.PayURL
	return &Response{
		ID:               p.ID,
		ReservationID:    p.ReservationID,
		NewDropoffDate:   p.NewDropoffDate,
		AdditionalDays:   p.AdditionalDays,
		ReductionPercent: p.ReductionPercent,
		TotalPrice:       p.TotalPrice,
		Status:           string(domain.ProlongationWaitingForPayment),
		PaymentStatus:    string(domain.ProlongationUnpaid),
		PayURL:           &payURL,
		PaymentExpiresAt: &expiresAt,
	}, nil
}

// loadPending charge la prolongation et sa réservation, et vérifie que
// la prolongation est encore en "pending"
func (uc *UseCase) loadPending(ctx context.Context, prolongationID int64) (*domain.ProlongationRequest, *domain.Reservation, error) {
	p, err := uc.prolongationRepo.GetByID(ctx, prolongationID)
	if err != nil {
		if errors.Is(err, prolongationRepo.ErrProlongationNotFound) {
			uc.logger.Warn("AcceptProlongation: prolongation=%d not found", prolongationID)
			return nil, nil, ErrProlongationNotFound
		}
		uc.logger.Error("AcceptProlongation: failed to get prolongation=%d: %v", prolongationID, err)
		return nil, nil, fmt.Errorf("%w: failed to get prolongation: %v", ErrInternal, err)
	}

	if p.Status != domain.ProlongationPending {
		uc.logger.Warn("AcceptProlongation: prolongation=%d has status %s, expected pending", p.ID, p.Status)
		return nil, nil, ErrInvalidTransition
	}

	res, err := uc.reservationRepo.GetByID(ctx, p.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("AcceptProlongation: reservation=%d not found for prolongation=%d", p.ReservationID, p.ID)
			return nil, nil, ErrReservationNotFound
		}
		uc.logger.Error("AcceptProlongation: failed to get reservation=%d: %v", p.ReservationID, err)
		return nil, nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// La réservation a pu être annulée ou clôturée depuis la demande :
	// sans période au calendrier il n'y a rien à prolonger
	if !res.HoldsCalendarPeriod() {
		uc.logger.Warn("AcceptProlongation: reservation=%d has status %s, prolongation=%d cannot be applied",
			res.ID, res.Status, p.ID)
		return nil, nil, ErrReservationNotConfirmed
	}

	return p, res, nil
}

// mapCalendarError traduit les erreurs du service calendrier
func (uc *UseCase) mapCalendarError(err error) error {
	switch {
	case errors.Is(err, calendar.ErrDateConflict):
		return ErrDateConflict
	case errors.Is(err, calendar.ErrMatriculationNotFound):
		return ErrMatriculationNotFound
	default:
		return fmt.Errorf("%w: calendar error: %v", ErrInternal, err)
	}
}

// mapGatewayError distingue le refus d'authentification, non
// réessayable, des erreurs transitoires de la passerelle
func (uc *UseCase) mapGatewayError(prolongationID int64, err error) error {
	if errors.Is(err, paymee.ErrUnauthorized) {
		uc.logger.Error("AcceptProlongation: gateway auth failed for prolongation=%d: %v", prolongationID, err)
		return fmt.Errorf("%w: %v", ErrGatewayAuth, err)
	}
	uc.logger.Error("AcceptProlongation: gateway unavailable for prolongation=%d: %v", prolongationID, err)
	return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
}

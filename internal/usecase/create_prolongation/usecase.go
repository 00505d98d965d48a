package create_prolongation

import (
	"context"
	"errors"
	"fmt"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	reservationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/reservation"
	vehicleRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/vehicle"
	"github.com/GBTour/GBT-ReservationService/internal/pricing"
)

// UseCase création d'une demande de prolongation en statut "pending".
// Aucune mutation du calendrier à ce stade : elle n'intervient qu'à
// l'acceptation.
type UseCase struct {
	reservationRepo  ReservationRepository
	vehicleRepo      VehicleRepository
	prolongationRepo ProlongationRepository
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase crée un nouveau usecase de création de prolongation
func NewUseCase(
	reservationRepo ReservationRepository,
	vehicleRepo VehicleRepository,
	prolongationRepo ProlongationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:  reservationRepo,
		vehicleRepo:      vehicleRepo,
		prolongationRepo: prolongationRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute crée la demande de prolongation. Le prix du supplément est
// calculé côté serveur : jours supplémentaires × tarif journalier,
// remise long séjour dérivée du nombre de jours, arrondi au centime.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateProlongation: reservation=%d, new_dropoff=%s", req.ReservationID, req.NewDropoffDate)

	if req.ReservationID <= 0 {
		uc.logger.Warn("CreateProlongation: invalid reservation id=%d", req.ReservationID)
		return nil, fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	newDropoff, err := domain.ParseDate(req.NewDropoffDate)
	if err != nil {
		uc.logger.Warn("CreateProlongation: invalid new dropoff date %q", req.NewDropoffDate)
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.NewDropoffDate)
	}

	var result *domain.ProlongationRequest

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("CreateProlongation: reservation=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("CreateProlongation: failed to get reservation=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// Seule une réservation détenant sa période au calendrier se prolonge
		if !res.HoldsCalendarPeriod() {
			uc.logger.Warn("CreateProlongation: reservation=%d has status %s, not prolongable", res.ID, res.Status)
			return ErrReservationNotProlongable
		}

		// La nouvelle date de retour doit être strictement après la
		// date de retour courante au moment de la demande
		if !newDropoff.After(domain.NormalizeDate(res.DropoffDate)) {
			uc.logger.Warn("CreateProlongation: new dropoff %s not after current dropoff %s for reservation=%d",
				newDropoff.Format(domain.DateFormat), res.DropoffDate.Format(domain.DateFormat), res.ID)
			return ErrInvalidNewDropoff
		}

		// Une seule prolongation non réglée à la fois par réservation
		pending, err := uc.prolongationRepo.GetPendingByReservation(txCtx, res.ID)
		if err != nil {
			uc.logger.Error("CreateProlongation: failed to list pending for reservation=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to list pending prolongations: %v", ErrInternal, err)
		}
		if len(pending) > 0 {
			uc.logger.Warn("CreateProlongation: reservation=%d already has %d unsettled prolongation(s)",
				res.ID, len(pending))
			return ErrAlreadyPending
		}

		vehicle, err := uc.vehicleRepo.GetByID(txCtx, res.VehicleID)
		if err != nil {
			if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
				uc.logger.Warn("CreateProlongation: vehicle=%d not found", res.VehicleID)
				return ErrVehicleNotFound
			}
			uc.logger.Error("CreateProlongation: failed to get vehicle=%d: %v", res.VehicleID, err)
			return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
		}

		additionalDays := domain.DaysBetween(res.DropoffDate, newDropoff)
		reduction := pricing.LongStayReductionPercent(additionalDays)

		// Une réduction explicite doit coller au barème
		if req.Reduction != nil && *req.Reduction != reduction {
			uc.logger.Warn("CreateProlongation: requested reduction %d%% does not match tier %d%% for %d days",
				*req.Reduction, reduction, additionalDays)
			return ErrInvalidReduction
		}

		total, err := pricing.RentalTotal(additionalDays, vehicle.PricePerDay)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		p := &domain.ProlongationRequest{
			ReservationID:    res.ID,
			NewDropoffDate:   newDropoff,
			AdditionalDays:   additionalDays,
			ReductionPercent: reduction,
			TotalPrice:       total,
			Status:           domain.ProlongationPending,
			PaymentStatus:    domain.ProlongationUnpaid,
		}

		created, err := uc.prolongationRepo.Create(txCtx, p)
		if err != nil {
			uc.logger.Error("CreateProlongation: failed to create prolongation for reservation=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to create prolongation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateProlongation: prolongation=%d created for reservation=%d, days=%d, total=%.2f",
		result.ID, result.ReservationID, result.AdditionalDays, result.TotalPrice)

	return &Response{
		ID:               result.ID,
		ReservationID:    result.ReservationID,
		NewDropoffDate:   result.NewDropoffDate,
		AdditionalDays:   result.AdditionalDays,
		ReductionPercent: result.ReductionPercent,
		TotalPrice:       result.TotalPrice,
		Status:           string(result.Status),
		PaymentStatus:    string(result.PaymentStatus),
		CreatedAt:        result.CreatedAt,
	}, nil
}

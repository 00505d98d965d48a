package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	vehicleRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/vehicle"
)

// Service règles de réconciliation du calendrier d'indisponibilités.
// Toutes les méthodes doivent s'exécuter dans la transaction de
// l'appelant : le matricule est verrouillé FOR UPDATE et sert de point
// de sérialisation pour les réservations concurrentes.
type Service struct {
	vehicleRepo VehicleRepository
	logger      Logger
}

// NewService crée un nouveau service calendrier
func NewService(vehicleRepo VehicleRepository, logger Logger) *Service {
	return &Service{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// ApplyConfirm inscrit la période d'une réservation dans le calendrier.
// Vérifie que le matricule n'est pas en maintenance, recherche un
// chevauchement avec les périodes existantes (bornes incluses, la
// période propre à la réservation est ignorée), puis insère la période.
// Si la date de départ est déjà entamée, le matricule passe en "rented".
func (s *Service) ApplyConfirm(ctx context.Context, res *domain.Reservation, now time.Time) error {
	mat, err := s.lockMatriculation(ctx, res)
	if err != nil {
		return err
	}

	if !mat.IsBookable() {
		s.logger.Warn("ApplyConfirm: matriculation plate=%s is in maintenance, reservation=%d", res.Plate, res.ID)
		return ErrMatriculationUnavailable
	}

	if domain.HasOverlap(mat.UnavailablePeriods, res.PickupDate, res.DropoffDate, res.ID) {
		s.logger.Warn("ApplyConfirm: date conflict for plate=%s, reservation=%d, period=%s..%s",
			res.Plate, res.ID, res.PickupDate.Format(domain.DateFormat), res.DropoffDate.Format(domain.DateFormat))
		return ErrDateConflict
	}

	period := &domain.UnavailablePeriod{
		MatriculationID: mat.ID,
		ReservationID:   res.ID,
		StartDate:       res.PickupDate,
		EndDate:         res.DropoffDate,
	}
	if _, err := s.vehicleRepo.AddUnavailablePeriod(ctx, period); err != nil {
		s.logger.Error("ApplyConfirm: failed to add period for reservation=%d: %v", res.ID, err)
		return fmt.Errorf("%w: ApplyConfirm - repository error: %v", ErrInternal, err)
	}

	// Le matricule passe en "rented" seulement si la location a déjà commencé
	if domain.HasStarted(res.PickupDate, now) && mat.Status != domain.MatriculationRented {
		if err := s.vehicleRepo.UpdateMatriculationStatus(ctx, mat.ID, domain.MatriculationRented); err != nil {
			s.logger.Error("ApplyConfirm: failed to update matriculation status plate=%s: %v", res.Plate, err)
			return fmt.Errorf("%w: ApplyConfirm - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("ApplyConfirm: period applied for reservation=%d, plate=%s", res.ID, res.Plate)
	return nil
}

// Release retire du calendrier la période détenue par une réservation.
// L'absence de période n'est pas une erreur : une réservation jamais
// confirmée n'a rien inscrit au calendrier. Le matricule ne repasse en
// "available" que si c'est cette réservation qui l'avait mis en
// "rented", c'est-à-dire si sa date de départ est déjà entamée ; libérer
// une réservation future ne touche pas au statut d'un véhicule sorti
// pour une autre location.
func (s *Service) Release(ctx context.Context, res *domain.Reservation, now time.Time) error {
	mat, err := s.lockMatriculation(ctx, res)
	if err != nil {
		return err
	}

	if err := s.vehicleRepo.RemoveUnavailablePeriod(ctx, mat.ID, res.ID); err != nil {
		if errors.Is(err, vehicleRepo.ErrPeriodNotFound) {
			s.logger.Info("Release: no calendar period for reservation=%d, plate=%s", res.ID, res.Plate)
			return nil
		}
		s.logger.Error("Release: failed to remove period for reservation=%d: %v", res.ID, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	if mat.Status == domain.MatriculationRented && domain.HasStarted(res.PickupDate, now) {
		if err := s.vehicleRepo.UpdateMatriculationStatus(ctx, mat.ID, domain.MatriculationAvailable); err != nil {
			s.logger.Error("Release: failed to update matriculation status plate=%s: %v", res.Plate, err)
			return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Release: period released for reservation=%d, plate=%s", res.ID, res.Plate)
	return nil
}

// CheckAvailability vérifie qu'un intervalle est libre sur le matricule
// d'une réservation, sans modifier le calendrier. Utilisé avant de
// générer un lien de paiement pour une prolongation.
func (s *Service) CheckAvailability(ctx context.Context, res *domain.Reservation, start, end time.Time) error {
	mat, err := s.lockMatriculation(ctx, res)
	if err != nil {
		return err
	}

	if domain.HasOverlap(mat.UnavailablePeriods, start, end, res.ID) {
		return ErrDateConflict
	}
	return nil
}

// ExtendPeriod remplace la période d'une réservation par une période
// prolongée. La période courante est retirée avant la vérification de
// chevauchement puis la nouvelle est inscrite. Une réservation qui ne
// détient plus de période (sortie de "confirmed" entre-temps) ne peut
// pas être prolongée.
func (s *Service) ExtendPeriod(ctx context.Context, res *domain.Reservation, newDropoff time.Time) error {
	mat, err := s.lockMatriculation(ctx, res)
	if err != nil {
		return err
	}

	if domain.HasOverlap(mat.UnavailablePeriods, res.PickupDate, newDropoff, res.ID) {
		s.logger.Warn("ExtendPeriod: date conflict for plate=%s, reservation=%d, new dropoff=%s",
			res.Plate, res.ID, newDropoff.Format(domain.DateFormat))
		return ErrDateConflict
	}

	if err := s.vehicleRepo.RemoveUnavailablePeriod(ctx, mat.ID, res.ID); err != nil {
		if errors.Is(err, vehicleRepo.ErrPeriodNotFound) {
			s.logger.Warn("ExtendPeriod: reservation=%d holds no period on plate=%s", res.ID, res.Plate)
			return ErrPeriodNotHeld
		}
		s.logger.Error("ExtendPeriod: failed to remove period for reservation=%d: %v", res.ID, err)
		return fmt.Errorf("%w: ExtendPeriod - repository error: %v", ErrInternal, err)
	}

	period := &domain.UnavailablePeriod{
		MatriculationID: mat.ID,
		ReservationID:   res.ID,
		StartDate:       res.PickupDate,
		EndDate:         newDropoff,
	}
	if _, err := s.vehicleRepo.AddUnavailablePeriod(ctx, period); err != nil {
		s.logger.Error("ExtendPeriod: failed to add extended period for reservation=%d: %v", res.ID, err)
		return fmt.Errorf("%w: ExtendPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ExtendPeriod: reservation=%d extended to %s on plate=%s",
		res.ID, newDropoff.Format(domain.DateFormat), res.Plate)
	return nil
}

// lockMatriculation charge le matricule de la réservation avec ses
// périodes. Dans une transaction le repository pose un FOR UPDATE.
func (s *Service) lockMatriculation(ctx context.Context, res *domain.Reservation) (*domain.Matriculation, error) {
	mat, err := s.vehicleRepo.GetMatriculation(ctx, res.VehicleID, res.Plate)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrMatriculationNotFound) {
			s.logger.Warn("lockMatriculation: plate=%s not found on vehicle=%d", res.Plate, res.VehicleID)
			return nil, ErrMatriculationNotFound
		}
		s.logger.Error("lockMatriculation: repository error for plate=%s: %v", res.Plate, err)
		return nil, fmt.Errorf("%w: lockMatriculation - repository error: %v", ErrInternal, err)
	}
	return mat, nil
}

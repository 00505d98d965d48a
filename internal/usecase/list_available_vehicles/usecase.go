package list_available_vehicles

import (
	"context"
	"fmt"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
)

// UseCase listing des véhicules ayant au moins un matricule libre sur
// une période donnée. Lecture seule, servie depuis le cache flotte
// quand il est disponible.
type UseCase struct {
	vehicleRepo VehicleRepository
	cache       FleetCache
	logger      Logger
}

// NewUseCase crée un nouveau usecase de listing. cache peut être nil.
func NewUseCase(vehicleRepo VehicleRepository, cache FleetCache, logger Logger) *UseCase {
	return &UseCase{
		vehicleRepo: vehicleRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Execute renvoie les véhicules disponibles sur la période demandée.
// Un matricule est disponible s'il n'est pas en maintenance et
// qu'aucune de ses périodes ne chevauche l'intervalle (bornes incluses).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListAvailableVehicles: period=%s..%s", req.StartDate, req.EndDate)

	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		uc.logger.Warn("ListAvailableVehicles: invalid start date %q", req.StartDate)
		return nil, fmt.Errorf("%w: invalid start date %q", ErrInvalidDates, req.StartDate)
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		uc.logger.Warn("ListAvailableVehicles: invalid end date %q", req.EndDate)
		return nil, fmt.Errorf("%w: invalid end date %q", ErrInvalidDates, req.EndDate)
	}
	if start.After(end) {
		uc.logger.Warn("ListAvailableVehicles: start %s after end %s", req.StartDate, req.EndDate)
		return nil, fmt.Errorf("%w: start date after end date", ErrInvalidDates)
	}

	fleet, err := uc.loadFleet(ctx)
	if err != nil {
		return nil, err
	}

	resp := &Response{Vehicles: []AvailableVehicle{}}
	for _, v := range fleet {
		var plates []string
		for i := range v.Matriculations {
			mat := &v.Matriculations[i]
			if !mat.IsBookable() {
				continue
			}
			if domain.HasOverlap(mat.UnavailablePeriods, start, end, 0) {
				continue
			}
			plates = append(plates, mat.Plate)
		}
		if len(plates) > 0 {
			resp.Vehicles = append(resp.Vehicles, AvailableVehicle{
				ID:              v.ID,
				Name:            v.Name,
				PricePerDay:     v.PricePerDay,
				AvailablePlates: plates,
			})
		}
	}
	resp.Total = len(resp.Vehicles)

	uc.logger.Info("ListAvailableVehicles: %d vehicle(s) available", resp.Total)
	return resp, nil
}

// loadFleet lit la flotte depuis le cache, et se rabat sur le
// repository en cas d'absence ou de panne du cache
func (uc *UseCase) loadFleet(ctx context.Context) ([]*domain.Vehicle, error) {
	if uc.cache != nil {
		fleet, err := uc.cache.GetFleet(ctx)
		if err != nil {
			// Panne de cache tolérée, la BDD fait autorité
			uc.logger.Warn("ListAvailableVehicles: fleet cache read failed: %v", err)
		} else if fleet != nil {
			uc.logger.Info("ListAvailableVehicles: fleet served from cache (%d vehicles)", len(fleet))
			return fleet, nil
		}
	}

	fleet, err := uc.vehicleRepo.List(ctx)
	if err != nil {
		uc.logger.Error("ListAvailableVehicles: failed to list fleet: %v", err)
		return nil, fmt.Errorf("%w: failed to list fleet: %v", ErrInternal, err)
	}

	if uc.cache != nil {
		if err := uc.cache.SetFleet(ctx, fleet); err != nil {
			uc.logger.Warn("ListAvailableVehicles: fleet cache write failed: %v", err)
		}
	}
	return fleet, nil
}

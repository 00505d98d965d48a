package vehicle

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	"github.com/GBTour/GBT-ReservationService/pkg/dbmetrics"
	"github.com/GBTour/GBT-ReservationService/pkg/psqlbuilder"
)

// Repository dépôt des véhicules, matricules et périodes
// d'indisponibilité. Les périodes sont des lignes indépendantes indexées
// par (matricule, réservation), jamais des sous-documents.
type Repository struct {
	db DBExecutor
}

// NewRepository crée le dépôt des véhicules
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID récupère un véhicule avec ses matricules et leurs périodes
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price_per_day",
		"created_at",
		"updated_at",
	).
		From("vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var v domain.Vehicle
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID,
		&v.Name,
		&v.PricePerDay,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan vehicle: %v", ErrScanRow, err)
	}

	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time

	matriculations, err := r.getMatriculations(ctx, executor, squirrel.Eq{"vehicle_id": id})
	if err != nil {
		return nil, err
	}
	v.Matriculations = matriculations

	return &v, nil
}

// List récupère tous les véhicules avec matricules et périodes.
// Alimente la recherche de disponibilité du parc.
func (r *Repository) List(ctx context.Context) ([]*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price_per_day",
		"created_at",
		"updated_at",
	).
		From("vehicles").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0)
	byID := make(map[int64]*domain.Vehicle)

	for rows.Next() {
		var v domain.Vehicle
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&v.ID, &v.Name, &v.PricePerDay, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan vehicle: %v", ErrScanRow, err)
		}
		v.CreatedAt = createdAt.Time
		v.UpdatedAt = updatedAt.Time
		vehicles = append(vehicles, &v)
		byID[v.ID] = &v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	matriculations, err := r.getMatriculations(ctx, executor, nil)
	if err != nil {
		return nil, err
	}
	for _, m := range matriculations {
		if v, ok := byID[m.VehicleID]; ok {
			v.Matriculations = append(v.Matriculations, m)
		}
	}

	return vehicles, nil
}

// GetMatriculation récupère un matricule d'un véhicule, avec ses
// périodes. À l'intérieur d'une transaction, la ligne du matricule est
// verrouillée (FOR UPDATE) : deux confirmations concurrentes sur le même
// matricule se sérialisent dessus.
func (r *Repository) GetMatriculation(ctx context.Context, vehicleID int64, plate string) (*domain.Matriculation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"vehicle_id",
		"plate",
		"status",
	).
		From("matriculations").
		Where(squirrel.Eq{"vehicle_id": vehicleID, "plate": plate})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMatriculation - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.Matriculation
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.VehicleID,
		&m.Plate,
		&m.Status,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMatriculationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetMatriculation - scan matriculation: %v", ErrScanRow, err)
	}

	periods, err := r.getPeriods(ctx, executor, squirrel.Eq{"matriculation_id": m.ID})
	if err != nil {
		return nil, err
	}
	m.UnavailablePeriods = periods

	return &m, nil
}

// UpdateMatriculationStatus change le statut opérationnel d'un matricule
func (r *Repository) UpdateMatriculationStatus(ctx context.Context, matriculationID int64, status domain.MatriculationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("matriculations").
		Set("status", status).
		Where(squirrel.Eq{"id": matriculationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateMatriculationStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateMatriculationStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateMatriculationStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMatriculationNotFound
	}

	return nil
}

// AddUnavailablePeriod insère une période d'indisponibilité détenue par
// une réservation
func (r *Repository) AddUnavailablePeriod(ctx context.Context, period *domain.UnavailablePeriod) (*domain.UnavailablePeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("unavailable_periods").
		Columns(
			"matriculation_id",
			"reservation_id",
			"start_date",
			"end_date",
		).
		Values(
			period.MatriculationID,
			period.ReservationID,
			period.StartDate,
			period.EndDate,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddUnavailablePeriod - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&period.ID); err != nil {
		return nil, fmt.Errorf("%w: AddUnavailablePeriod - execute insert: %v", ErrExecQuery, err)
	}

	return period, nil
}

// RemoveUnavailablePeriod supprime la période détenue par une
// réservation sur un matricule. Renvoie ErrPeriodNotFound si la
// réservation ne détenait rien.
func (r *Repository) RemoveUnavailablePeriod(ctx context.Context, matriculationID, reservationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("unavailable_periods").
		Where(squirrel.Eq{
			"matriculation_id": matriculationID,
			"reservation_id":   reservationID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveUnavailablePeriod - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveUnavailablePeriod - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveUnavailablePeriod - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPeriodNotFound
	}

	return nil
}

// getMatriculations récupère les matricules (et leurs périodes)
// correspondant au prédicat donné ; pred nil = tous
func (r *Repository) getMatriculations(ctx context.Context, executor DBExecutor, pred interface{}) ([]domain.Matriculation, error) {
	selectBuilder := psqlbuilder.Select(
		"id",
		"vehicle_id",
		"plate",
		"status",
	).
		From("matriculations").
		OrderBy("id ASC")

	if pred != nil {
		selectBuilder = selectBuilder.Where(pred)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getMatriculations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getMatriculations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	matriculations := make([]domain.Matriculation, 0)
	byID := make(map[int64]int)

	for rows.Next() {
		var m domain.Matriculation
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.Plate, &m.Status); err != nil {
			return nil, fmt.Errorf("%w: getMatriculations - scan row: %v", ErrScanRow, err)
		}
		byID[m.ID] = len(matriculations)
		matriculations = append(matriculations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getMatriculations - rows error: %v", ErrScanRow, err)
	}

	if len(matriculations) == 0 {
		return matriculations, nil
	}

	ids := make([]int64, 0, len(matriculations))
	for _, m := range matriculations {
		ids = append(ids, m.ID)
	}

	periods, err := r.getPeriods(ctx, executor, squirrel.Eq{"matriculation_id": ids})
	if err != nil {
		return nil, err
	}
	for _, p := range periods {
		if idx, ok := byID[p.MatriculationID]; ok {
			matriculations[idx].UnavailablePeriods = append(matriculations[idx].UnavailablePeriods, p)
		}
	}

	return matriculations, nil
}

// getPeriods récupère des périodes d'indisponibilité
func (r *Repository) getPeriods(ctx context.Context, executor DBExecutor, pred interface{}) ([]domain.UnavailablePeriod, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"matriculation_id",
		"reservation_id",
		"start_date",
		"end_date",
	).
		From("unavailable_periods").
		Where(pred).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getPeriods - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getPeriods - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	periods := make([]domain.UnavailablePeriod, 0)
	for rows.Next() {
		var p domain.UnavailablePeriod
		var start, end time.Time
		if err := rows.Scan(&p.ID, &p.MatriculationID, &p.ReservationID, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: getPeriods - scan row: %v", ErrScanRow, err)
		}
		p.StartDate = domain.NormalizeDate(start)
		p.EndDate = domain.NormalizeDate(end)
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getPeriods - rows error: %v", ErrScanRow, err)
	}

	return periods, nil
}

package reservation

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

// colonnes de la table reservations, dans l'ordre de scan
var columns = []string{
	"id",
	"user_id",
	"vehicle_id",
	"plate",
	"pickup_location",
	"dropoff_location",
	"pickup_date",
	"dropoff_date",
	"pickup_time",
	"dropoff_time",
	"status",
	"payment_percentage",
	"total_price",
	"amount_paid",
	"flight_number",
	"created_at",
	"updated_at",
}

// Repository dépôt des réservations
type Repository struct {
	db DBExecutor
}

// NewRepository crée le dépôt des réservations
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create insère une réservation. Si le contexte porte une transaction
// active, elle est utilisée.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"vehicle_id",
			"plate",
			"pickup_location",
			"dropoff_location",
			"pickup_date",
			"dropoff_date",
			"pickup_time",
			"dropoff_time",
			"status",
			"payment_percentage",
			"total_price",
			"amount_paid",
			"flight_number",
		).
		Values(
			res.UserID,
			res.VehicleID,
			res.Plate,
			res.PickupLocation,
			res.DropoffLocation,
			res.PickupDate,
			res.DropoffDate,
			res.PickupTime,
			res.DropoffTime,
			res.Status,
			res.PaymentPercentage,
			res.TotalPrice,
			res.AmountPaid,
			res.FlightNumber,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID récupère une réservation par son ID.
// À l'intérieur d'une transaction, la ligne est verrouillée (FOR UPDATE)
// pour que les transitions concurrentes sur la même réservation se
// sérialisent.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByUserID récupère l'historique des réservations d'un utilisateur,
// avec filtre optionnel par statut
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("pickup_date DESC, id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByVehicleWithFilter récupère les réservations d'un véhicule avec
// filtres par matricule, période et statut
func (r *Repository) GetByVehicleWithFilter(ctx context.Context, filter domain.VehicleReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("reservations").
		Where(squirrel.Eq{"vehicle_id": filter.VehicleID})

	if filter.Plate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"plate": *filter.Plate})
	}

	// chevauchement de période : pickup <= fin ET dropoff >= début
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"pickup_date": *filter.EndDate})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"dropoff_date": *filter.StartDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeTerminal {
		terminal := make([]string, len(domain.TerminalReservationStatuses))
		for i, s := range domain.TerminalReservationStatuses {
			terminal[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminal})
	}

	selectBuilder = selectBuilder.OrderBy("pickup_date ASC, id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVehicleWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVehicleWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Update réécrit les champs mutables d'une réservation (statut, dates,
// matricule, paiement). Utilisé par les transitions de cycle de vie, à
// l'intérieur de leur transaction.
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("plate", res.Plate).
		Set("pickup_date", res.PickupDate).
		Set("dropoff_date", res.DropoffDate).
		Set("pickup_time", res.PickupTime).
		Set("dropoff_time", res.DropoffTime).
		Set("status", res.Status).
		Set("payment_percentage", res.PaymentPercentage).
		Set("total_price", res.TotalPrice).
		Set("amount_paid", res.AmountPaid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// ExtendDropoff applique une prolongation acceptée : nouvelle date de
// restitution, nouveau total et montant payé recalculé
func (r *Repository) ExtendDropoff(ctx context.Context, id int64, newDropoff time.Time, totalPrice, amountPaid float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("dropoff_date", newDropoff).
		Set("total_price", totalPrice).
		Set("amount_paid", amountPaid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ExtendDropoff - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ExtendDropoff - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ExtendDropoff - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Delete supprime physiquement une réservation
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation scanne une ligne dans une réservation
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.VehicleID,
		&res.Plate,
		&res.PickupLocation,
		&res.DropoffLocation,
		&res.PickupDate,
		&res.DropoffDate,
		&res.PickupTime,
		&res.DropoffTime,
		&res.Status,
		&res.PaymentPercentage,
		&res.TotalPrice,
		&res.AmountPaid,
		&res.FlightNumber,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.PickupDate = domain.NormalizeDate(res.PickupDate)
	res.DropoffDate = domain.NormalizeDate(res.DropoffDate)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations scanne le résultat d'une requête liste
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

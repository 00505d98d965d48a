package prolongation

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

// colonnes de la table prolongation_requests, dans l'ordre de scan
var columns = []string{
	"id",
	"reservation_id",
	"new_dropoff_date",
	"additional_days",
	"reduction_percent",
	"total_price",
	"status",
	"payment_status",
	"order_id",
	"payment_ref",
	"payment_expires_at",
	"created_at",
	"updated_at",
}

// Repository dépôt des demandes de prolongation
type Repository struct {
	db DBExecutor
}

// NewRepository crée le dépôt des prolongations
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create insère une demande de prolongation
func (r *Repository) Create(ctx context.Context, p *domain.ProlongationRequest) (*domain.ProlongationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("prolongation_requests").
		Columns(
			"reservation_id",
			"new_dropoff_date",
			"additional_days",
			"reduction_percent",
			"total_price",
			"status",
			"payment_status",
		).
		Values(
			p.ReservationID,
			p.NewDropoffDate,
			p.AdditionalDays,
			p.ReductionPercent,
			p.TotalPrice,
			p.Status,
			p.PaymentStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID récupère une demande par son ID. À l'intérieur d'une
// transaction, la ligne est verrouillée (FOR UPDATE) pour sérialiser les
// décisions concurrentes sur la même demande.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ProlongationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("prolongation_requests").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanProlongation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProlongationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan prolongation: %v", ErrScanRow, err)
	}

	return p, nil
}

// GetByPaymentOrder récupère la demande correspondant au triplet
// (id, order_id, payment_ref) renvoyé par la passerelle de paiement
func (r *Repository) GetByPaymentOrder(ctx context.Context, id int64, orderID, paymentRef string) (*domain.ProlongationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("prolongation_requests").
		Where(squirrel.Eq{
			"id":          id,
			"order_id":    orderID,
			"payment_ref": paymentRef,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentOrder - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanProlongation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProlongationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentOrder - scan prolongation: %v", ErrScanRow, err)
	}

	return p, nil
}

// GetPendingByReservation renvoie les demandes non terminées d'une
// réservation
func (r *Repository) GetPendingByReservation(ctx context.Context, reservationID int64) ([]*domain.ProlongationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("prolongation_requests").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		Where(squirrel.Eq{"status": []string{
			string(domain.ProlongationPending),
			string(domain.ProlongationWaitingForPayment),
		}}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByReservation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByReservation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.ProlongationRequest, 0)
	for rows.Next() {
		p, err := scanProlongation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetPendingByReservation - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPendingByReservation - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// UpdateStatus change le statut d'une demande
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ProlongationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("prolongation_requests").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// SetPaymentOrder enregistre l'ordre de paiement externe et passe la
// demande en attente de paiement
func (r *Repository) SetPaymentOrder(ctx context.Context, id int64, orderID, paymentRef string, expiresAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("prolongation_requests").
		Set("status", domain.ProlongationWaitingForPayment).
		Set("order_id", orderID).
		Set("payment_ref", paymentRef).
		Set("payment_expires_at", expiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentOrder - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetPaymentOrder")
}

// Settle marque une demande acceptée avec le statut de paiement donné
func (r *Repository) Settle(ctx context.Context, id int64, paymentStatus domain.ProlongationPaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("prolongation_requests").
		Set("status", domain.ProlongationAccepted).
		Set("payment_status", paymentStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Settle - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Settle")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrProlongationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProlongation scanne une ligne dans une demande de prolongation
func scanProlongation(row rowScanner) (*domain.ProlongationRequest, error) {
	var p domain.ProlongationRequest
	var createdAt, updatedAt sql.NullTime
	var expiresAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.ReservationID,
		&p.NewDropoffDate,
		&p.AdditionalDays,
		&p.ReductionPercent,
		&p.TotalPrice,
		&p.Status,
		&p.PaymentStatus,
		&p.OrderID,
		&p.PaymentRef,
		&expiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.NewDropoffDate = domain.NormalizeDate(p.NewDropoffDate)
	if expiresAt.Valid {
		t := expiresAt.Time
		p.PaymentExpiresAt = &t
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

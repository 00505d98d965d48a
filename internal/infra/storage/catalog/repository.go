package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	"github.com/GBTour/GBT-ReservationService/pkg/dbmetrics"
	"github.com/GBTour/GBT-ReservationService/pkg/psqlbuilder"
)

// Interfaces d'accès BDD réutilisées depuis dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository dépôt du catalogue tarifaire : liaisons de transfert et
// excursions. Source de vérité des prix, côté serveur uniquement.
type Repository struct {
	db DBExecutor
}

// NewRepository crée le dépôt du catalogue
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTransferRoute récupère la liaison entre deux localités. La paire
// est non ordonnée : la liaison est cherchée dans les deux sens.
func (r *Repository) GetTransferRoute(ctx context.Context, departure, destination string) (*domain.TransferRoute, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"departure",
		"destination",
		"distance_km",
		"price_per_km",
	).
		From("transfer_routes").
		Where(squirrel.Or{
			squirrel.Eq{"departure": departure, "destination": destination},
			squirrel.Eq{"departure": destination, "destination": departure},
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTransferRoute - build select query: %v", ErrBuildQuery, err)
	}

	var route domain.TransferRoute
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&route.ID,
		&route.Departure,
		&route.Destination,
		&route.DistanceKm,
		&route.PricePerKm,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTransferRoute - scan route: %v", ErrScanRow, err)
	}

	return &route, nil
}

// ListDestinations renvoie les destinations proposées depuis un départ,
// en excluant les liaisons de moins de 50 km (règle métier : trop
// proches pour un transfert)
func (r *Repository) ListDestinations(ctx context.Context, departure string) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"departure",
		"destination",
	).
		From("transfer_routes").
		Where(squirrel.Or{
			squirrel.Eq{"departure": departure},
			squirrel.Eq{"destination": departure},
		}).
		Where(squirrel.GtOrEq{"distance_km": domain.MinTransferDistanceKm}).
		OrderBy("destination ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDestinations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDestinations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	destinations := make([]string, 0)
	for rows.Next() {
		var from, to string
		if err := rows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("%w: ListDestinations - scan row: %v", ErrScanRow, err)
		}
		// la paire est non ordonnée, renvoyer l'autre extrémité
		if from == departure {
			destinations = append(destinations, to)
		} else {
			destinations = append(destinations, from)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDestinations - rows error: %v", ErrScanRow, err)
	}

	return destinations, nil
}

// GetExcursion récupère une excursion du catalogue
func (r *Repository) GetExcursion(ctx context.Context, id int64) (*domain.Excursion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price_tier_1_4",
		"price_tier_5_6",
		"price_tier_7_8",
		"created_at",
		"updated_at",
	).
		From("excursions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExcursion - build select query: %v", ErrBuildQuery, err)
	}

	var exc domain.Excursion
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&exc.ID,
		&exc.Name,
		&exc.PriceTierOneFour,
		&exc.PriceTierFiveSix,
		&exc.PriceTierSevenUp,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrExcursionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetExcursion - scan excursion: %v", ErrScanRow, err)
	}

	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return &exc, nil
}

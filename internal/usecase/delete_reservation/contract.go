package delete_reservation

import (
	"context"
	"time"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
)

// ReservationRepository interface du repository réservations
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// CalendarService interface du service calendrier
type CalendarService interface {
	Release(ctx context.Context, res *domain.Reservation, now time.Time) error
}

// FleetCache interface d'invalidation du cache du parc, optionnelle
type FleetCache interface {
	Invalidate(ctx context.Context) error
}

// TimeProvider interface d'horloge injectable (pour les tests)
type TimeProvider interface {
	Now() time.Time
}

// TransactionManager interface de gestion des transactions
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger interface de journalisation
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider horloge système pour la production
type RealTimeProvider struct{}

// Now renvoie l'heure courante
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

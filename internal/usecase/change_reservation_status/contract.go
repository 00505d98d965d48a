package change_reservation_status

import (
	"context"
	"time"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/notifservice"
)

// ReservationRepository interface du repository réservations
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
}

// VehicleRepository interface du repository véhicules
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// CalendarService interface du service calendrier
type CalendarService interface {
	ApplyConfirm(ctx context.Context, res *domain.Reservation, now time.Time) error
	Release(ctx context.Context, res *domain.Reservation, now time.Time) error
}

// NotificationClient interface du client de notifications
type NotificationClient interface {
	SendAsync(event notifservice.Event)
}

// FleetCache interface d'invalidation du cache du parc, optionnelle
type FleetCache interface {
	Invalidate(ctx context.Context) error
}

// TransactionManager interface de gestion des transactions
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider interface d'horloge injectable (pour les tests)
type TimeProvider interface {
	Now() time.Time
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

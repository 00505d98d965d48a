package confirm_prolongation_payment

import (
	"context"
	"time"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/notifservice"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/paymee"
)

// ProlongationRepository interface du repository des prolongations
type ProlongationRepository interface {
	GetByPaymentOrder(ctx context.Context, id int64, orderID, paymentRef string) (*domain.ProlongationRequest, error)
	Settle(ctx context.Context, id int64, paymentStatus domain.ProlongationPaymentStatus) error
}

// ReservationRepository interface du repository réservations
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ExtendDropoff(ctx context.Context, id int64, newDropoff time.Time, totalPrice, amountPaid float64) error
}

// CalendarService interface du service calendrier
type CalendarService interface {
	ExtendPeriod(ctx context.Context, res *domain.Reservation, newDropoff time.Time) error
}

// PaymentGateway interface du client de la passerelle de paiement
type PaymentGateway interface {
	GetPayment(ctx context.Context, paymentRef string) (*paymee.Payment, error)
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

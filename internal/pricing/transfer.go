package pricing

import (
	"errors"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
)

var (
	// ErrRouteTooShort renvoyé quand la destination est à moins de 50 km
	// du départ choisi : la liaison n'est pas proposée en transfert
	ErrRouteTooShort = errors.New("pricing: destination is too close to departure")

	// ErrInvalidDistance renvoyé pour une distance non positive
	ErrInvalidDistance = errors.New("pricing: distance must be positive")
)

// TransferInput paramètres d'un devis de transfert
type TransferInput struct {
	DistanceKm float64
	PricePerKm float64
	RoundTrip  bool
	// Languages langues demandées pour le chauffeur ; la présence d'au
	// moins une langue déclenche le supplément forfaitaire
	Languages []string
}

// TransferPrice calcule le prix d'un transfert :
// distance × tarif kilométrique × (2 si aller-retour) + supplément langue
func TransferPrice(in TransferInput) (float64, error) {
	if in.DistanceKm <= 0 {
		return 0, ErrInvalidDistance
	}
	if in.PricePerKm <= 0 {
		return 0, ErrInvalidAmount
	}
	if in.DistanceKm < domain.MinTransferDistanceKm {
		return 0, ErrRouteTooShort
	}

	multiplier := 1.0
	if in.RoundTrip {
		multiplier = domain.RoundTripMultiplier
	}

	price := in.DistanceKm * in.PricePerKm * multiplier
	if len(in.Languages) > 0 {
		price += domain.LanguageFee
	}

	return RoundCents(price), nil
}

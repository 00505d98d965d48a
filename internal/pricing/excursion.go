package pricing

import "github.com/GBTour/GBT-ReservationService/internal/domain"

// ExcursionTiers prix par palier d'effectif d'une excursion
type ExcursionTiers struct {
	OneToFour    float64 // 1 à 4 personnes
	FiveToSix    float64 // 5 à 6 personnes
	SevenToEight float64 // 7 à 8 personnes
}

// ExcursionInput paramètres d'un devis d'excursion
type ExcursionInput struct {
	Tiers     ExcursionTiers
	Adults    int
	Children  int
	Babies    int
	WithGuide bool
}

// Headcount effectif total, bébés compris
func (in ExcursionInput) Headcount() int {
	return in.Adults + in.Children + in.Babies
}

// ExcursionPrice calcule le prix d'une excursion à partir du palier
// d'effectif, plus le supplément guide forfaitaire
func ExcursionPrice(in ExcursionInput) (float64, error) {
	if in.Adults < 0 || in.Children < 0 || in.Babies < 0 {
		return 0, ErrInvalidHeadcount
	}

	headcount := in.Headcount()
	if headcount < domain.MinExcursionHeadcount || headcount > domain.MaxExcursionHeadcount {
		return 0, ErrInvalidHeadcount
	}

	var price float64
	switch {
	case headcount <= 4:
		price = in.Tiers.OneToFour
	case headcount <= 6:
		price = in.Tiers.FiveToSix
	default:
		price = in.Tiers.SevenToEight
	}

	if in.WithGuide {
		price += domain.GuideFee
	}

	return RoundCents(price), nil
}

package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Pricing constants (TND)
const (
	// LanguageFee flat surcharge when the customer requests one or more
	// driver languages on a transfer
	LanguageFee = 30.0

	// GuideFee flat surcharge when a guide accompanies an excursion
	GuideFee = 200.0

	// RoundTripMultiplier applied to transfer prices for return trips
	RoundTripMultiplier = 2.0

	// MinTransferDistanceKm destinations closer than this from the chosen
	// departure are not selectable for a transfer
	MinTransferDistanceKm = 50.0
)

// Excursion headcount bounds
const (
	MinExcursionHeadcount = 1
	MaxExcursionHeadcount = 8
)

// AllowedPaymentPercentages the enumerated deposit levels a reservation
// may carry. 0 is only valid outside paid/confirmed states.
var AllowedPaymentPercentages = []int{0, 30, 100}

// IsAllowedPaymentPercentage reports whether p is one of the enumerated
// deposit levels
func IsAllowedPaymentPercentage(p int) bool {
	for _, allowed := range AllowedPaymentPercentages {
		if p == allowed {
			return true
		}
	}
	return false
}

// AllowedReductions the enumerated long-stay discount percentages for
// prolongation requests
var AllowedReductions = []int{0, 5, 10, 15}

// IsAllowedReduction reports whether r is one of the enumerated discount
// percentages
func IsAllowedReduction(r int) bool {
	for _, allowed := range AllowedReductions {
		if r == allowed {
			return true
		}
	}
	return false
}

package domain

import "time"

// TransferRoute is a priced liaison between two locations. The pair is
// unordered: the route Tunis–Hammamet also serves Hammamet–Tunis.
type TransferRoute struct {
	ID          int64
	Departure   string
	Destination string
	DistanceKm  float64
	PricePerKm  float64
}

// Excursion is a catalog excursion with headcount-tiered pricing
type Excursion struct {
	ID               int64
	Name             string
	PriceTierOneFour float64
	PriceTierFiveSix float64
	PriceTierSevenUp float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

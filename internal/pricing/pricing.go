// Package pricing contient le moteur de tarification. Toutes les
// fonctions sont pures et déterministes : le serveur recalcule chaque
// prix lui-même et ne fait jamais confiance à un total envoyé par le
// client.
package pricing

import (
	"errors"
	"math"
)

var (
	// ErrInvalidHeadcount renvoyé quand l'effectif d'une excursion sort
	// des paliers 1-8
	ErrInvalidHeadcount = errors.New("pricing: headcount must be between 1 and 8")

	// ErrInvalidDays renvoyé pour une durée non positive
	ErrInvalidDays = errors.New("pricing: day count must be positive")

	// ErrInvalidAmount renvoyé pour un tarif unitaire non positif
	ErrInvalidAmount = errors.New("pricing: unit price must be positive")
)

// RoundCents arrondit au centime, demi-centime vers le haut
func RoundCents(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}

// ToSmallestUnit convertit un montant en centimes entiers, la seule
// représentation utilisée pour comparer des montants avec la passerelle
// de paiement
func ToSmallestUnit(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}

// longStayFactor facteur de remise longue durée par palier de jours :
// 4-10 jours -5%, 11-20 jours -10%, au-delà -15%
func longStayFactor(days int) float64 {
	switch {
	case days > 20:
		return 0.85
	case days >= 11:
		return 0.90
	case days >= 4:
		return 0.95
	default:
		return 1.0
	}
}

// LongStayReductionPercent renvoie le pourcentage de remise appliqué
// pour la durée donnée (0, 5, 10 ou 15)
func LongStayReductionPercent(days int) int {
	switch {
	case days > 20:
		return 15
	case days >= 11:
		return 10
	case days >= 4:
		return 5
	default:
		return 0
	}
}

// RentalTotal calcule le prix d'une location ou d'une prolongation :
// jours × tarif journalier, remise longue durée multiplicative, arrondi
// au centime
func RentalTotal(days int, pricePerDay float64) (float64, error) {
	if days <= 0 {
		return 0, ErrInvalidDays
	}
	if pricePerDay <= 0 {
		return 0, ErrInvalidAmount
	}
	return RoundCents(float64(days) * pricePerDay * longStayFactor(days)), nil
}

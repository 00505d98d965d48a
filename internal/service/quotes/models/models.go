package models

// Modèles de requête

// TransferQuoteRequest requête de devis de transfert
type TransferQuoteRequest struct {
	Departure   string   `json:"departure"`
	Destination string   `json:"destination"`
	RoundTrip   bool     `json:"roundTrip"`
	Languages   []string `json:"languages,omitempty"`
}

// ExcursionQuoteRequest requête de devis d'excursion
type ExcursionQuoteRequest struct {
	ExcursionID int64 `json:"excursionId"`
	Adults      int   `json:"adults"`
	Children    int   `json:"children"`
	Babies      int   `json:"babies"`
	WithGuide   bool  `json:"withGuide"`
}

// Modèles de réponse

// TransferQuoteResponse devis de transfert calculé
type TransferQuoteResponse struct {
	Departure   string  `json:"departure"`
	Destination string  `json:"destination"`
	DistanceKm  float64 `json:"distanceKm"`
	RoundTrip   bool    `json:"roundTrip"`
	Price       float64 `json:"price"`
}

// ExcursionQuoteResponse devis d'excursion calculé
type ExcursionQuoteResponse struct {
	ExcursionID int64   `json:"excursionId"`
	Name        string  `json:"name"`
	Headcount   int     `json:"headcount"`
	WithGuide   bool    `json:"withGuide"`
	Price       float64 `json:"price"`
}

// DestinationsResponse destinations sélectionnables depuis un départ
type DestinationsResponse struct {
	Departure    string   `json:"departure"`
	Destinations []string `json:"destinations"`
}

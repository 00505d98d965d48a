package list_available_vehicles

// Request période demandée, bornes incluses
type Request struct {
	StartDate string // "2025-06-01"
	EndDate   string // "2025-06-05"
}

// AvailableVehicle véhicule disponible avec ses matricules libres sur
// la période
type AvailableVehicle struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	PricePerDay     float64  `json:"pricePerDay"`
	AvailablePlates []string `json:"availablePlates"`
}

// Response liste des véhicules disponibles
type Response struct {
	Vehicles []AvailableVehicle `json:"vehicles"`
	Total    int                `json:"total"`
}

package domain

import "time"

// MatriculationStatus represents the operational status of one physical
// vehicle unit
type MatriculationStatus string

const (
	MatriculationAvailable   MatriculationStatus = "available"
	MatriculationRented      MatriculationStatus = "rented"
	MatriculationMaintenance MatriculationStatus = "maintenance"
)

// Vehicle represents a vehicle class offered for rental. Physical units
// are tracked per matriculation (license plate).
type Vehicle struct {
	ID             int64
	Name           string
	PricePerDay    float64
	Matriculations []Matriculation
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Matriculation represents one physical unit of a vehicle, identified by
// its license plate
type Matriculation struct {
	ID                 int64
	VehicleID          int64
	Plate              string
	Status             MatriculationStatus
	UnavailablePeriods []UnavailablePeriod
}

// UnavailablePeriod is a closed date range during which a matriculation
// is committed to a reservation. Both bounds are inclusive UTC-midnight
// dates. Periods of the same matriculation owned by distinct
// reservations must never overlap.
type UnavailablePeriod struct {
	ID              int64
	MatriculationID int64
	ReservationID   int64
	StartDate       time.Time
	EndDate         time.Time
}

// IntervalsOverlap reports whether the closed date intervals [s1, e1]
// and [s2, e2] intersect. A reservation ending on day D conflicts with
// one starting on day D: same-day turnover is deliberately excluded.
func IntervalsOverlap(s1, e1, s2, e2 time.Time) bool {
	s1, e1 = NormalizeDate(s1), NormalizeDate(e1)
	s2, e2 = NormalizeDate(s2), NormalizeDate(e2)
	return !s1.After(e2) && !s2.After(e1)
}

// HasOverlap reports whether the candidate range [start, end] conflicts
// with any of the given periods. Periods owned by excludeReservationID
// are skipped, so a reservation re-validating its own dates never
// rejects itself.
func HasOverlap(periods []UnavailablePeriod, start, end time.Time, excludeReservationID int64) bool {
	for _, p := range periods {
		if p.ReservationID == excludeReservationID {
			continue
		}
		if IntervalsOverlap(p.StartDate, p.EndDate, start, end) {
			return true
		}
	}
	return false
}

// FindMatriculation returns the matriculation with the given plate, or
// nil when the vehicle has no such unit
func (v *Vehicle) FindMatriculation(plate string) *Matriculation {
	for i := range v.Matriculations {
		if v.Matriculations[i].Plate == plate {
			return &v.Matriculations[i]
		}
	}
	return nil
}

// IsBookable reports whether the unit can accept new reservations at
// all. Units under maintenance are excluded; rented units stay bookable
// for future, non-overlapping ranges.
func (m *Matriculation) IsBookable() bool {
	return m.Status != MatriculationMaintenance
}

package types

import (
	"errors"
	"fmt"
	"time"
)

// timeLayout format HH:MM
const timeLayout = "15:04"

// ErrInvalidTimeString renvoyé quand la chaîne n'est pas au format HH:MM
var ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

// TimeString heure de la journée au format "HH:MM".
// Utilisé pour les heures de prise en charge et de restitution, qui ne
// portent pas de composante date.
type TimeString string

// NewTimeString construit un TimeString à partir d'un time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString valide et construit un TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String renvoie la représentation "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero indique si la valeur est vide
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate vérifie le format HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

func (t TimeString) parse() (time.Time, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed, nil
}

// AddMinutes renvoie l'heure décalée de minutes, bornée à la même journée
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	parsed, err := t.parse()
	if err != nil {
		return "", err
	}
	return NewTimeString(parsed.Add(time.Duration(minutes) * time.Minute)), nil
}

// IsBefore compare deux heures de la journée
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.parse()
	b, errB := other.parse()
	if errA != nil || errB != nil {
		return false
	}
	return a.Before(b)
}

// IsAfter compare deux heures de la journée
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.parse()
	b, errB := other.parse()
	if errA != nil || errB != nil {
		return false
	}
	return a.After(b)
}

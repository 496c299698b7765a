package entity

import (
	"strings"

	"github.com/google/uuid"
)

type MotorcycleType string

const (
	MotorcycleAdventure MotorcycleType = "ADVENTURE"
	MotorcycleDualSport MotorcycleType = "DUAL_SPORT"
	MotorcycleSport     MotorcycleType = "SPORT"
	MotorcycleTouring   MotorcycleType = "TOURING"
	MotorcycleCruiser   MotorcycleType = "CRUISER"
	MotorcycleStandard  MotorcycleType = "STANDARD"
)

var motorcycleTypes = []MotorcycleType{
	MotorcycleAdventure, MotorcycleDualSport, MotorcycleSport,
	MotorcycleTouring, MotorcycleCruiser, MotorcycleStandard,
}

// ParseMotorcycleType accepts enum values or display labels ("Dual Sport", "dual-sport").
func ParseMotorcycleType(s string) (MotorcycleType, bool) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	for _, t := range motorcycleTypes {
		if string(t) == norm {
			return t, true
		}
	}
	return "", false
}

// Label is the human form, e.g. "Dual Sport".
func (t MotorcycleType) Label() string {
	words := strings.Split(strings.ToLower(string(t)), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

type Motorcycle struct {
	Base
	Make        string         `db:"make"`
	Model       string         `db:"model"`
	Type        MotorcycleType `db:"type"`
	EngineSize  int            `db:"engine_size"`
	PricePerDay float64        `db:"price_per_day"`
	Description string         `db:"description"`
	ImageURL    *string        `db:"image_url"`
}

func (m *Motorcycle) Name() string {
	return m.Make + " " + m.Model
}

// TourMotorcycle links a motorcycle to a tour; Motorcycle is filled when joined.
type TourMotorcycle struct {
	BaseSimple
	TourID       uuid.UUID `db:"tour_id"`
	MotorcycleID uuid.UUID `db:"motorcycle_id"`
	Surcharge    *float64  `db:"surcharge"`

	Motorcycle *Motorcycle
}

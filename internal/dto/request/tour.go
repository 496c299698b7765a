package request

import "time"

type TourRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=200"`
	Description     string   `json:"description" validate:"required"`
	Difficulty      string   `json:"difficulty" validate:"required,oneof=EASY MODERATE CHALLENGING EXTREME"`
	Duration        int      `json:"duration" validate:"required,min=1"`
	Distance        int      `json:"distance" validate:"gte=0"`
	StartLocation   string   `json:"startLocation" validate:"required"`
	EndLocation     string   `json:"endLocation" validate:"required"`
	MaxParticipants int      `json:"maxParticipants" validate:"required,min=1"`
	BasePrice       float64  `json:"basePrice" validate:"gte=0"`
	Published       bool     `json:"published"`
	Highlights      []string `json:"highlights,omitempty"`
	Inclusions      []string `json:"inclusions,omitempty"`
	Exclusions      []string `json:"exclusions,omitempty"`
	Images          []string `json:"images,omitempty"`
}

type ScheduleRequest struct {
	StartDate      time.Time `json:"startDate" validate:"required"`
	EndDate        time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
	Price          *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	AvailableSpots int       `json:"availableSpots" validate:"gte=0"`
}

type TourMotorcycleRequest struct {
	MotorcycleID string   `json:"motorcycleId" validate:"required,uuid"`
	Surcharge    *float64 `json:"surcharge,omitempty" validate:"omitempty,gte=0"`
}

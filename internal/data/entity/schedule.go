package entity

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleStatus string

const (
	ScheduleStatusOpen      ScheduleStatus = "OPEN"
	ScheduleStatusFull      ScheduleStatus = "FULL"
	ScheduleStatusCancelled ScheduleStatus = "CANCELLED"
	ScheduleStatusCompleted ScheduleStatus = "COMPLETED"
)

type TourSchedule struct {
	Base
	TourID         uuid.UUID      `db:"tour_id"`
	StartDate      time.Time      `db:"start_date"`
	EndDate        time.Time      `db:"end_date"`
	Price          *float64       `db:"price"`
	AvailableSpots int            `db:"available_spots"`
	Status         ScheduleStatus `db:"status"`
}

// EffectivePrice is the per-participant price: the schedule price whenever one is set
// (zero included), otherwise basePrice.
func (s *TourSchedule) EffectivePrice(basePrice float64) float64 {
	if s != nil && s.Price != nil {
		return *s.Price
	}
	return basePrice
}

func (s *TourSchedule) Bookable() bool {
	return s.Status == ScheduleStatusOpen && s.AvailableSpots > 0
}

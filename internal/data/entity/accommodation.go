package entity

import "github.com/google/uuid"

type TourAccommodation struct {
	BaseSimple
	TourID   uuid.UUID `db:"tour_id"`
	Name     string    `db:"name"`
	Location string    `db:"location"`
	Nights   int       `db:"nights"`
}

type ItineraryDay struct {
	BaseSimple
	TourID      uuid.UUID `db:"tour_id"`
	Day         int       `db:"day"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
}

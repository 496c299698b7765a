package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return st, true
	}
	return "", false
}

type Booking struct {
	Base
	Reference    string        `db:"reference"`
	UserID       uuid.UUID     `db:"user_id"`
	TourID       uuid.UUID     `db:"tour_id"`
	ScheduleID   uuid.UUID     `db:"schedule_id"`
	Participants int           `db:"participants"`
	TotalPrice   float64       `db:"total_price"`
	Status       BookingStatus `db:"status"`

	Riders []*BookingRider
}

// BookingRider is one participant's contact record; Position 0 is the primary contact.
type BookingRider struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	Position  int       `db:"position"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
}

// BookingSummary is a booking joined with its tour and schedule for listings.
type BookingSummary struct {
	ID           uuid.UUID     `db:"id"`
	Reference    string        `db:"reference"`
	TourName     string        `db:"tour_name"`
	Location     string        `db:"start_location"`
	CheckIn      time.Time     `db:"start_date"`
	CheckOut     time.Time     `db:"end_date"`
	Status       BookingStatus `db:"status"`
	Participants int           `db:"participants"`
	TotalPrice   float64       `db:"total_price"`
	Images       []string      `db:"images"`
	UserID       uuid.UUID     `db:"user_id"`
	CreatedAt    time.Time     `db:"created_at"`
}

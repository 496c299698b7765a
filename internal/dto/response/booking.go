package response

import (
	"time"

	"moto-tours/internal/data/entity"
)

// PlaceholderImage is shown for bookings whose tour has no image.
const PlaceholderImage = "/images/placeholder.jpg"

type BookingSummaryResponse struct {
	ID           string    `json:"id"`
	Reference    string    `json:"reference"`
	TourName     string    `json:"tourName"`
	Location     string    `json:"location"`
	CheckIn      time.Time `json:"checkIn"`
	CheckOut     time.Time `json:"checkOut"`
	Status       string    `json:"status"`
	Participants int       `json:"participants"`
	TotalPrice   float64   `json:"totalPrice"`
	ImageURL     string    `json:"imageUrl"`
}

type RiderResponse struct {
	Position  int    `json:"position"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type BookingResponse struct {
	ID           string          `json:"id"`
	Reference    string          `json:"reference"`
	TourID       string          `json:"tourId"`
	ScheduleID   string          `json:"scheduleId"`
	Participants int             `json:"participants"`
	TotalPrice   float64         `json:"totalPrice"`
	Status       string          `json:"status"`
	Riders       []RiderResponse `json:"riders"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func BookingSummaryToResponse(s *entity.BookingSummary) BookingSummaryResponse {
	image := PlaceholderImage
	if len(s.Images) > 0 && s.Images[0] != "" {
		image = s.Images[0]
	}

	return BookingSummaryResponse{
		ID:           s.ID.String(),
		Reference:    s.Reference,
		TourName:     s.TourName,
		Location:     s.Location,
		CheckIn:      s.CheckIn,
		CheckOut:     s.CheckOut,
		Status:       string(s.Status),
		Participants: s.Participants,
		TotalPrice:   s.TotalPrice,
		ImageURL:     image,
	}
}

func BookingSummariesToResponse(ss []*entity.BookingSummary) []BookingSummaryResponse {
	out := make([]BookingSummaryResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, BookingSummaryToResponse(s))
	}
	return out
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:           b.ID.String(),
		Reference:    b.Reference,
		TourID:       b.TourID.String(),
		ScheduleID:   b.ScheduleID.String(),
		Participants: b.Participants,
		TotalPrice:   b.TotalPrice,
		Status:       string(b.Status),
		Riders:       make([]RiderResponse, 0, len(b.Riders)),
		CreatedAt:    b.CreatedAt,
	}
	for _, r := range b.Riders {
		resp.Riders = append(resp.Riders, RiderResponse{
			Position:  r.Position,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			Phone:     r.Phone,
		})
	}
	return resp
}

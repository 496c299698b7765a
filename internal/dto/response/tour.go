package response

import (
	"time"

	"moto-tours/internal/data/entity"
)

type ScheduleResponse struct {
	ID             string    `json:"id"`
	TourID         string    `json:"tourId"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Price          *float64  `json:"price"`
	AvailableSpots int       `json:"availableSpots"`
	Status         string    `json:"status"`
}

type TourMotorcycleResponse struct {
	ID           string              `json:"id"`
	TourID       string              `json:"tourId"`
	MotorcycleID string              `json:"motorcycleId"`
	Surcharge    *float64            `json:"surcharge"`
	Motorcycle   *MotorcycleResponse `json:"motorcycle,omitempty"`
}

type TourResponse struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Description     string                   `json:"description"`
	Difficulty      string                   `json:"difficulty"`
	Duration        int                      `json:"duration"`
	Distance        int                      `json:"distance"`
	StartLocation   string                   `json:"startLocation"`
	EndLocation     string                   `json:"endLocation"`
	MaxParticipants int                      `json:"maxParticipants"`
	BasePrice       float64                  `json:"basePrice"`
	Published       bool                     `json:"published"`
	Highlights      []string                 `json:"highlights"`
	Inclusions      []string                 `json:"inclusions"`
	Exclusions      []string                 `json:"exclusions"`
	Images          []string                 `json:"images"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
	Schedules       []ScheduleResponse       `json:"schedules"`
	Motorcycles     []TourMotorcycleResponse `json:"motorcycles"`
}

type AccommodationResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Nights   int    `json:"nights"`
}

type ItineraryDayResponse struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type TourDetailResponse struct {
	TourResponse
	Accommodations []AccommodationResponse `json:"accommodations"`
	Itinerary      []ItineraryDayResponse  `json:"itinerary"`
}

func ScheduleToResponse(s *entity.TourSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:             s.ID.String(),
		TourID:         s.TourID.String(),
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		Price:          s.Price,
		AvailableSpots: s.AvailableSpots,
		Status:         string(s.Status),
	}
}

func TourMotorcycleToResponse(tm *entity.TourMotorcycle) TourMotorcycleResponse {
	resp := TourMotorcycleResponse{
		ID:           tm.ID.String(),
		TourID:       tm.TourID.String(),
		MotorcycleID: tm.MotorcycleID.String(),
		Surcharge:    tm.Surcharge,
	}
	if tm.Motorcycle != nil {
		m := MotorcycleToResponse(tm.Motorcycle)
		resp.Motorcycle = &m
	}
	return resp
}

// Helper converters
func TourToResponse(t *entity.Tour) TourResponse {
	resp := TourResponse{
		ID:              t.ID.String(),
		Name:            t.Name,
		Description:     t.Description,
		Difficulty:      string(t.Difficulty),
		Duration:        t.Duration,
		Distance:        t.Distance,
		StartLocation:   t.StartLocation,
		EndLocation:     t.EndLocation,
		MaxParticipants: t.MaxParticipants,
		BasePrice:       t.BasePrice,
		Published:       t.Published,
		Highlights:      orEmpty(t.Highlights),
		Inclusions:      orEmpty(t.Inclusions),
		Exclusions:      orEmpty(t.Exclusions),
		Images:          orEmpty(t.Images),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		Schedules:       make([]ScheduleResponse, 0, len(t.Schedules)),
		Motorcycles:     make([]TourMotorcycleResponse, 0, len(t.Motorcycles)),
	}

	for _, s := range t.Schedules {
		resp.Schedules = append(resp.Schedules, ScheduleToResponse(s))
	}
	for _, tm := range t.Motorcycles {
		resp.Motorcycles = append(resp.Motorcycles, TourMotorcycleToResponse(tm))
	}

	return resp
}

func ToursToResponse(tours []*entity.Tour) []TourResponse {
	out := make([]TourResponse, 0, len(tours))
	for _, t := range tours {
		out = append(out, TourToResponse(t))
	}
	return out
}

func TourToDetailResponse(t *entity.Tour) TourDetailResponse {
	resp := TourDetailResponse{
		TourResponse:   TourToResponse(t),
		Accommodations: make([]AccommodationResponse, 0, len(t.Accommodations)),
		Itinerary:      make([]ItineraryDayResponse, 0, len(t.Itinerary)),
	}

	for _, a := range t.Accommodations {
		resp.Accommodations = append(resp.Accommodations, AccommodationResponse{
			ID:       a.ID.String(),
			Name:     a.Name,
			Location: a.Location,
			Nights:   a.Nights,
		})
	}
	for _, d := range t.Itinerary {
		resp.Itinerary = append(resp.Itinerary, ItineraryDayResponse{
			Day:         d.Day,
			Title:       d.Title,
			Description: d.Description,
		})
	}

	return resp
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

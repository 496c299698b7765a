package request

const MaxParticipants = 5

// RiderRequest is one participant's contact details. Every field is mandatory.
type RiderRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
}

// CreateBookingRequest carries the primary contact plus participants-1 additional riders.
type CreateBookingRequest struct {
	TourID           string         `json:"tourId" validate:"required,uuid"`
	ScheduleID       string         `json:"scheduleId" validate:"required,uuid"`
	Participants     int            `json:"participants" validate:"required,min=1,max=5"`
	PrimaryContact   RiderRequest   `json:"primaryContact"`
	AdditionalRiders []RiderRequest `json:"additionalRiders" validate:"dive"`
}

type BookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

// Package bookingflow drives the two-step booking form: pick a schedule and head count,
// fill in one contact record per rider, submit.
package bookingflow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"moto-tours/internal/dto/request"
	"moto-tours/internal/dto/response"
	"moto-tours/pkg/utils"

	"github.com/google/uuid"
)

type Step string

const (
	StepSelect   Step = "select"
	StepDetails  Step = "details"
	StepComplete Step = "complete"
)

var (
	ErrNoSchedule          = errors.New("select a schedule first")
	ErrUnknownSchedule     = errors.New("schedule is not offered for this tour")
	ErrScheduleUnavailable = errors.New("schedule has no available spots")
	ErrNotEnoughSpots      = errors.New("not enough spots for that many participants")
	ErrParticipants        = errors.New("participants must be between 1 and 5")
	ErrRiderIndex          = errors.New("no such rider")
	ErrWrongStep           = errors.New("action not available in this step")
	ErrSubmissionInFlight  = errors.New("a submission is already in progress")
)

// FieldErrors maps rider field paths such as "AdditionalRiders[0].Email" to messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "invalid rider details: " + utils.FormatValidationErrors(e)
}

type ScheduleOption struct {
	ID             uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	Price          *float64
	AvailableSpots int
}

// Disabled reports whether the option cannot be picked.
func (o ScheduleOption) Disabled() bool {
	return o.AvailableSpots <= 0
}

// Identity is the signed-in user the primary contact is pre-filled from.
type Identity struct {
	Name  string
	Email string
}

type Rider = request.RiderRequest

// Submitter persists a booking.
type Submitter interface {
	Submit(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
}

// Flow is safe for concurrent use. At most one Submit runs at a time.
type Flow struct {
	mu sync.Mutex

	tourID    uuid.UUID
	basePrice float64
	schedules []ScheduleOption
	identity  Identity
	submitter Submitter

	step         Step
	selected     int
	participants int
	primary      Rider
	riders       []Rider
	submitting   bool
	err          error
	result       *response.BookingResponse
}

func New(tourID uuid.UUID, basePrice float64, schedules []ScheduleOption, identity Identity, submitter Submitter) *Flow {
	f := &Flow{
		tourID:    tourID,
		basePrice: basePrice,
		schedules: append([]ScheduleOption(nil), schedules...),
		identity:  identity,
		submitter: submitter,
	}
	f.reset()
	return f
}

func (f *Flow) reset() {
	f.step = StepSelect
	f.selected = -1
	f.participants = 1
	f.primary = primaryFrom(f.identity)
	f.riders = nil
	f.err = nil
	f.result = nil
}

func primaryFrom(id Identity) Rider {
	first, last, _ := strings.Cut(strings.TrimSpace(id.Name), " ")
	return Rider{
		FirstName: first,
		LastName:  strings.TrimSpace(last),
		Email:     id.Email,
	}
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) SelectSchedule(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepSelect {
		return ErrWrongStep
	}
	for i, s := range f.schedules {
		if s.ID != id {
			continue
		}
		if s.Disabled() {
			return ErrScheduleUnavailable
		}
		f.selected = i
		return nil
	}
	return ErrUnknownSchedule
}

// SetParticipants resizes the additional-rider roster to n-1 entries. Growing appends blank
// riders and shrinking drops from the end. The count is only editable in the select step,
// where Continue checks it against the schedule's spots.
func (f *Flow) SetParticipants(n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepSelect {
		return ErrWrongStep
	}
	if n < 1 || n > request.MaxParticipants {
		return ErrParticipants
	}
	f.participants = n
	f.resizeRoster()
	return nil
}

func (f *Flow) resizeRoster() {
	want := f.participants - 1
	if len(f.riders) > want {
		f.riders = f.riders[:want:want]
		return
	}
	for len(f.riders) < want {
		f.riders = append(f.riders, Rider{})
	}
}

func (f *Flow) Participants() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.participants
}

// Continue moves from select to details.
func (f *Flow) Continue() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepSelect {
		return ErrWrongStep
	}
	if f.selected < 0 {
		return ErrNoSchedule
	}
	if f.participants > f.schedules[f.selected].AvailableSpots {
		return ErrNotEnoughSpots
	}
	f.resizeRoster()
	f.step = StepDetails
	return nil
}

func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepDetails || f.submitting {
		return ErrWrongStep
	}
	f.step = StepSelect
	return nil
}

func (f *Flow) SetPrimary(r Rider) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step == StepComplete || f.submitting {
		return ErrWrongStep
	}
	f.primary = r
	return nil
}

// SetRider replaces additional rider i (0-based, the primary contact excluded).
func (f *Flow) SetRider(i int, r Rider) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step == StepComplete || f.submitting {
		return ErrWrongStep
	}
	if i < 0 || i >= len(f.riders) {
		return ErrRiderIndex
	}
	f.riders[i] = r
	return nil
}

func (f *Flow) Primary() Rider {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.primary
}

// Riders returns a copy of the additional riders.
func (f *Flow) Riders() []Rider {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Rider(nil), f.riders...)
}

// Total is the selected schedule's price when it has one, zero included, otherwise the
// base price, times participants.
func (f *Flow) Total() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total()
}

func (f *Flow) total() float64 {
	price := f.basePrice
	if f.selected >= 0 && f.schedules[f.selected].Price != nil {
		price = *f.schedules[f.selected].Price
	}
	return price * float64(f.participants)
}

func (f *Flow) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Err is the last submission failure, cleared by the next attempt.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Flow) Result() *response.BookingResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Submit validates every rider and hands the booking to the submitter. On failure the flow
// stays in details with all entered data.
func (f *Flow) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if f.step != StepDetails {
		f.mu.Unlock()
		return ErrWrongStep
	}
	if f.participants > f.schedules[f.selected].AvailableSpots {
		f.mu.Unlock()
		return ErrNotEnoughSpots
	}

	req := &request.CreateBookingRequest{
		TourID:           f.tourID.String(),
		ScheduleID:       f.schedules[f.selected].ID.String(),
		Participants:     f.participants,
		PrimaryContact:   f.primary,
		AdditionalRiders: append([]Rider(nil), f.riders...),
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		f.err = FieldErrors(errs)
		f.mu.Unlock()
		return f.err
	}

	f.submitting = true
	f.err = nil
	f.mu.Unlock()

	result, err := f.submitter.Submit(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.err = err
		return err
	}
	f.result = result
	f.step = StepComplete
	return nil
}

// Reset clears everything and returns to select.
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrSubmissionInFlight
	}
	f.reset()
	return nil
}

package bookingflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"moto-tours/internal/dto/request"
	"moto-tours/internal/dto/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   []*request.CreateBookingRequest
	err     error
	release chan struct{}
	started chan struct{}
}

func (s *fakeSubmitter) Submit(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	return &response.BookingResponse{ID: uuid.NewString(), Status: "PENDING"}, nil
}

func price(v float64) *float64 { return &v }

var (
	start     = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	priced    = ScheduleOption{ID: uuid.New(), StartDate: start, EndDate: start.AddDate(0, 0, 7), Price: price(150), AvailableSpots: 4}
	free      = ScheduleOption{ID: uuid.New(), StartDate: start, EndDate: start.AddDate(0, 0, 7), Price: price(0), AvailableSpots: 4}
	unpriced  = ScheduleOption{ID: uuid.New(), StartDate: start, EndDate: start.AddDate(0, 0, 7), AvailableSpots: 2}
	soldOut   = ScheduleOption{ID: uuid.New(), StartDate: start, EndDate: start.AddDate(0, 0, 7), AvailableSpots: 0}
	allDates  = []ScheduleOption{priced, free, unpriced, soldOut}
	rider     = Rider{FirstName: "Ben", LastName: "Ortiz", Email: "ben@example.com", Phone: "555-0101"}
	anaJordan = Identity{Name: "Ana Maria Jordan", Email: "ana@example.com"}
)

func newFlow(sub Submitter) *Flow {
	return New(uuid.New(), 100, allDates, anaJordan, sub)
}

// toDetails selects schedule id with n participants and fills every rider.
func toDetails(t *testing.T, f *Flow, id uuid.UUID, n int) {
	t.Helper()
	require.NoError(t, f.SelectSchedule(id))
	require.NoError(t, f.SetParticipants(n))
	require.NoError(t, f.Continue())

	primary := f.Primary()
	primary.Phone = "555-0100"
	require.NoError(t, f.SetPrimary(primary))
	for i := 0; i < n-1; i++ {
		require.NoError(t, f.SetRider(i, rider))
	}
}

func TestPrimaryContactIsPrefilled(t *testing.T) {
	f := newFlow(&fakeSubmitter{})

	p := f.Primary()
	assert.Equal(t, "Ana", p.FirstName)
	assert.Equal(t, "Maria Jordan", p.LastName)
	assert.Equal(t, "ana@example.com", p.Email)
	assert.Empty(t, p.Phone)
	assert.Equal(t, StepSelect, f.Step())
}

func TestSelectSchedule(t *testing.T) {
	f := newFlow(&fakeSubmitter{})

	assert.ErrorIs(t, f.Continue(), ErrNoSchedule)
	assert.ErrorIs(t, f.SelectSchedule(soldOut.ID), ErrScheduleUnavailable)
	assert.ErrorIs(t, f.SelectSchedule(uuid.New()), ErrUnknownSchedule)
	assert.True(t, soldOut.Disabled())

	require.NoError(t, f.SelectSchedule(unpriced.ID))
	require.NoError(t, f.SetParticipants(3))
	assert.ErrorIs(t, f.Continue(), ErrNotEnoughSpots)
	assert.Equal(t, StepSelect, f.Step())
}

func TestRosterResizing(t *testing.T) {
	f := newFlow(&fakeSubmitter{})

	require.NoError(t, f.SetParticipants(3))
	assert.Len(t, f.Riders(), 2)
	require.NoError(t, f.SetRider(1, rider))

	require.NoError(t, f.SetParticipants(1))
	assert.Empty(t, f.Riders())

	require.NoError(t, f.SetParticipants(3))
	assert.Equal(t, []Rider{{}, {}}, f.Riders(), "removed riders do not come back")

	require.NoError(t, f.SetRider(0, rider))
	require.NoError(t, f.SetParticipants(2))
	assert.Equal(t, []Rider{rider}, f.Riders(), "shrinking keeps the leading riders")

	assert.ErrorIs(t, f.SetParticipants(0), ErrParticipants)
	assert.ErrorIs(t, f.SetParticipants(6), ErrParticipants)
	assert.ErrorIs(t, f.SetRider(5, rider), ErrRiderIndex)
	assert.Equal(t, 2, f.Participants())
}

func TestTotalPricePolicy(t *testing.T) {
	tests := []struct {
		name     string
		schedule ScheduleOption
		n        int
		want     float64
	}{
		{"schedule price wins", priced, 3, 450},
		{"zero schedule price is a real price", free, 3, 0},
		{"base price when the schedule has none", unpriced, 2, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlow(&fakeSubmitter{})
			require.NoError(t, f.SelectSchedule(tt.schedule.ID))
			require.NoError(t, f.SetParticipants(tt.n))
			assert.Equal(t, tt.want, f.Total())
		})
	}

	assert.Equal(t, 100.0, newFlow(&fakeSubmitter{}).Total(), "nothing selected yet")
}

func TestSubmitSuccess(t *testing.T) {
	sub := &fakeSubmitter{}
	f := newFlow(sub)
	toDetails(t, f, priced.ID, 3)

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, StepComplete, f.Step())
	require.NotNil(t, f.Result())

	require.Len(t, sub.calls, 1)
	req := sub.calls[0]
	assert.Equal(t, priced.ID.String(), req.ScheduleID)
	assert.Equal(t, 3, req.Participants)
	assert.Equal(t, "Ana", req.PrimaryContact.FirstName)
	assert.Len(t, req.AdditionalRiders, 2)

	assert.ErrorIs(t, f.SetParticipants(2), ErrWrongStep)
	require.NoError(t, f.Reset())
	assert.Equal(t, StepSelect, f.Step())
	assert.Equal(t, 1, f.Participants())
	assert.Empty(t, f.Riders())
	assert.Nil(t, f.Result())
}

func TestSubmitRequiresEveryRiderField(t *testing.T) {
	sub := &fakeSubmitter{}
	f := newFlow(sub)
	require.NoError(t, f.SelectSchedule(priced.ID))
	require.NoError(t, f.SetParticipants(2))
	require.NoError(t, f.Continue())

	err := f.Submit(context.Background())
	var fields FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Contains(t, fields, "PrimaryContact.Phone")
	assert.Contains(t, fields, "AdditionalRiders[0].FirstName")
	assert.Contains(t, fields, "AdditionalRiders[0].Email")
	assert.Empty(t, sub.calls)
	assert.Equal(t, StepDetails, f.Step())
}

func TestSubmitFailureKeepsData(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("network down")}
	f := newFlow(sub)
	toDetails(t, f, priced.ID, 2)

	err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, err, f.Err())
	assert.Equal(t, StepDetails, f.Step())
	assert.False(t, f.Submitting())
	assert.Equal(t, []Rider{rider}, f.Riders())
	assert.Equal(t, "555-0100", f.Primary().Phone)

	sub.err = nil
	require.NoError(t, f.Submit(context.Background()))
	assert.Nil(t, f.Err())
	assert.Equal(t, StepComplete, f.Step())
}

func TestSingleSubmissionInFlight(t *testing.T) {
	sub := &fakeSubmitter{release: make(chan struct{}), started: make(chan struct{})}
	f := newFlow(sub)
	toDetails(t, f, priced.ID, 1)

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()
	<-sub.started

	assert.True(t, f.Submitting())
	assert.ErrorIs(t, f.Submit(context.Background()), ErrSubmissionInFlight)
	assert.ErrorIs(t, f.Back(), ErrWrongStep)
	assert.ErrorIs(t, f.Reset(), ErrSubmissionInFlight)

	close(sub.release)
	require.NoError(t, <-done)
	assert.Len(t, sub.calls, 1)
	assert.Equal(t, StepComplete, f.Step())
}

func TestParticipantsLockedOutsideSelect(t *testing.T) {
	sub := &fakeSubmitter{}
	f := newFlow(sub)
	toDetails(t, f, unpriced.ID, 2)

	assert.ErrorIs(t, f.SetParticipants(5), ErrWrongStep)
	assert.Equal(t, 2, f.Participants())
	assert.Len(t, f.Riders(), 1)

	require.NoError(t, f.Submit(context.Background()))
	require.Len(t, sub.calls, 1)
	assert.Equal(t, 2, sub.calls[0].Participants)
}

func TestChangingParticipantsGoesBackThroughTheSpotsCheck(t *testing.T) {
	f := newFlow(&fakeSubmitter{})
	toDetails(t, f, unpriced.ID, 2)

	require.NoError(t, f.Back())
	require.NoError(t, f.SetParticipants(3))
	assert.ErrorIs(t, f.Continue(), ErrNotEnoughSpots)
	assert.Equal(t, StepSelect, f.Step())
}

func TestBackReturnsToSelect(t *testing.T) {
	f := newFlow(&fakeSubmitter{})
	toDetails(t, f, priced.ID, 2)

	require.NoError(t, f.Back())
	assert.Equal(t, StepSelect, f.Step())
	assert.Equal(t, []Rider{rider}, f.Riders())
	assert.ErrorIs(t, f.Submit(context.Background()), ErrWrongStep)
}

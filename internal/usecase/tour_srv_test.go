package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"moto-tours/internal/data/entity"
	"moto-tours/internal/data/filter"
	"moto-tours/internal/data/repository"
	"moto-tours/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTourService(f *fixture, c *memCache) *tourService {
	svc := NewTourService(f.repo, c, zap.NewNop()).(*tourService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func validTourRequest() *request.TourRequest {
	return &request.TourRequest{
		Name:            "Rockies Loop",
		Description:     "Mountain passes",
		Difficulty:      "MODERATE",
		Duration:        7,
		Distance:        1400,
		StartLocation:   "Denver",
		EndLocation:     "Denver",
		MaxParticipants: 8,
		BasePrice:       2500,
		Published:       true,
	}
}

func TestListPublishedHidesDrafts(t *testing.T) {
	f := newFixture()
	f.tours.tours = append(f.tours.tours, newTour("Alps", true, 100), newTour("Draft", false, 100))
	svc := newTestTourService(f, newMemCache())

	tours, err := svc.ListPublished(context.Background(), filter.TourParams{})
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "Alps", tours[0].Name)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListPublishedIsCachedUntilAWrite(t *testing.T) {
	f := newFixture()
	f.tours.tours = append(f.tours.tours, newTour("Alps", true, 100))
	c := newMemCache()
	svc := newTestTourService(f, c)
	ctx := context.Background()

	_, err := svc.ListPublished(ctx, filter.TourParams{})
	require.NoError(t, err)
	_, err = svc.ListPublished(ctx, filter.TourParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.tours.findCalls)

	_, err = svc.Create(ctx, validTourRequest())
	require.NoError(t, err)
	assert.Zero(t, c.Len())

	tours, err := svc.ListPublished(ctx, filter.TourParams{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.tours.findCalls)
	assert.Len(t, tours, 2)
}

func TestMonthListingIsNotReusedAcrossYears(t *testing.T) {
	f := newFixture()
	tour := newTour("Alps", true, 100)
	march := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
	f.tours.tours = append(f.tours.tours, tour)
	f.schedules.schedules = append(f.schedules.schedules, &entity.TourSchedule{
		Base: entity.NewBase(testNow), TourID: tour.ID,
		StartDate: march, EndDate: march.AddDate(0, 0, 7),
		AvailableSpots: 4, Status: entity.ScheduleStatusOpen,
	})
	svc := newTestTourService(f, newMemCache())
	ctx := context.Background()
	params := filter.TourParams{Month: "march"}

	_, err := svc.ListPublished(ctx, params)
	require.NoError(t, err)

	svc.now = func() time.Time { return testNow.AddDate(1, 0, 0) }
	_, err = svc.ListPublished(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 2, f.tours.findCalls)
}

func TestGetTourByID(t *testing.T) {
	f := newFixture()
	tour := newTour("Alps", true, 100)
	f.tours.tours = append(f.tours.tours, tour)
	f.schedules.schedules = append(f.schedules.schedules, newSchedule(tour.ID, nil, 4))
	svc := newTestTourService(f, newMemCache())

	detail, err := svc.GetByID(context.Background(), tour.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Alps", detail.Name)
	assert.Len(t, detail.Schedules, 1)

	_, err = svc.GetByID(context.Background(), uuid.NewString())
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.GetByID(context.Background(), "not-a-uuid")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestCreateTourRejectsInvalidInput(t *testing.T) {
	svc := newTestTourService(newFixture(), newMemCache())

	req := validTourRequest()
	req.Difficulty = "INSANE"
	req.Duration = 0

	_, err := svc.Create(context.Background(), req)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "Difficulty")
	assert.Contains(t, verr.Fields, "Duration")
}

func TestDeleteTour(t *testing.T) {
	f := newFixture()
	tour := newTour("Alps", true, 100)
	f.tours.tours = append(f.tours.tours, tour)
	svc := newTestTourService(f, newMemCache())

	require.NoError(t, svc.Delete(context.Background(), tour.ID.String()))
	assert.Empty(t, f.tours.tours)

	err := svc.Delete(context.Background(), tour.ID.String())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteTourWithBookingsConflicts(t *testing.T) {
	f := newFixture()
	tour := newTour("Alps", true, 100)
	f.tours.tours = append(f.tours.tours, tour)
	f.tours.deleteErr = fmt.Errorf("failed to delete tour: %w", repository.ErrTourHasBookings)
	svc := newTestTourService(f, newMemCache())

	err := svc.Delete(context.Background(), tour.ID.String())
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Len(t, f.tours.tours, 1)
}

func TestAddSchedule(t *testing.T) {
	f := newFixture()
	tour := newTour("Alps", true, 100)
	f.tours.tours = append(f.tours.tours, tour)
	svc := newTestTourService(f, newMemCache())
	start := testNow.AddDate(0, 1, 0)

	t.Run("zero spots is full", func(t *testing.T) {
		s, err := svc.AddSchedule(context.Background(), tour.ID.String(), &request.ScheduleRequest{
			StartDate: start, EndDate: start.AddDate(0, 0, 7), AvailableSpots: 0,
		})
		require.NoError(t, err)
		assert.Equal(t, "FULL", s.Status)
	})

	t.Run("more spots than the tour allows", func(t *testing.T) {
		_, err := svc.AddSchedule(context.Background(), tour.ID.String(), &request.ScheduleRequest{
			StartDate: start, EndDate: start.AddDate(0, 0, 7), AvailableSpots: 11,
		})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "AvailableSpots")
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := svc.AddSchedule(context.Background(), tour.ID.String(), &request.ScheduleRequest{
			StartDate: start, EndDate: start.AddDate(0, 0, -1), AvailableSpots: 3,
		})
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("unknown tour", func(t *testing.T) {
		_, err := svc.AddSchedule(context.Background(), uuid.NewString(), &request.ScheduleRequest{
			StartDate: start, EndDate: start.AddDate(0, 0, 7), AvailableSpots: 3,
		})
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestUpdateTour(t *testing.T) {
	f := newFixture()
	tour := newTour("Alps", false, 100)
	tour.Highlights = []string{"Stelvio"}
	tour.Images = []string{"alps.jpg"}
	f.tours.tours = append(f.tours.tours, newTour("Dolomites", true, 90), tour)
	c := newMemCache()
	svc := newTestTourService(f, c)
	ctx := context.Background()

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			id   string
			req  *request.TourRequest
			want error
		}{
			{"malformed id", "not-a-uuid", validTourRequest(), ErrValidation},
			{"unknown tour", uuid.NewString(), validTourRequest(), ErrNotFound},
			{"invalid body", tour.ID.String(), &request.TourRequest{Name: "x"}, ErrValidation},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Update(ctx, tt.id, tt.req)
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			})
		}
	})

	_, err := svc.ListPublished(ctx, filter.TourParams{})
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	req := validTourRequest()
	req.Inclusions = []string{"Fuel", "Hotels"}
	updated, err := svc.Update(ctx, tour.ID.String(), req)
	require.NoError(t, err)

	assert.Equal(t, tour.ID.String(), updated.ID)
	assert.Equal(t, "Rockies Loop", updated.Name)
	assert.Equal(t, "MODERATE", updated.Difficulty)
	assert.Equal(t, 1400, updated.Distance)
	assert.Equal(t, 8, updated.MaxParticipants)
	assert.Equal(t, 2500.0, updated.BasePrice)
	assert.True(t, updated.Published)
	assert.Equal(t, []string{"Fuel", "Hotels"}, updated.Inclusions)
	assert.Equal(t, []string{}, updated.Highlights, "omitted lists are cleared, not kept")
	assert.Equal(t, []string{}, updated.Images)
	assert.Equal(t, testNow, updated.UpdatedAt)

	stored, err := f.tours.FindByID(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rockies Loop", stored.Name)
	assert.NotNil(t, stored.Exclusions)

	assert.Zero(t, c.Len())
	listed, err := svc.ListPublished(ctx, filter.TourParams{})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestAddMotorcycleToTour(t *testing.T) {
	f := newFixture()
	f.repo.Motorcycle = repository.NewFixtureMotorcycleRepository(repository.FixtureMotorcycles(), zap.NewNop())
	tour := newTour("Alps", true, 100)
	f.tours.tours = append(f.tours.tours, tour)
	c := newMemCache()
	svc := newTestTourService(f, c)
	ctx := context.Background()
	bike := repository.FixtureMotorcycles()[0]

	t.Run("unknown motorcycle", func(t *testing.T) {
		_, err := svc.AddMotorcycle(ctx, tour.ID.String(), &request.TourMotorcycleRequest{MotorcycleID: uuid.NewString()})
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("unknown tour", func(t *testing.T) {
		_, err := svc.AddMotorcycle(ctx, uuid.NewString(), &request.TourMotorcycleRequest{MotorcycleID: bike.ID.String()})
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("malformed motorcycle id", func(t *testing.T) {
		_, err := svc.AddMotorcycle(ctx, tour.ID.String(), &request.TourMotorcycleRequest{MotorcycleID: "gs"})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "MotorcycleID")
	})
	assert.Empty(t, f.tours.links)

	_, err := svc.GetByID(ctx, tour.ID.String())
	require.NoError(t, err)

	link, err := svc.AddMotorcycle(ctx, tour.ID.String(), &request.TourMotorcycleRequest{
		MotorcycleID: bike.ID.String(),
		Surcharge:    floatPtr(75),
	})
	require.NoError(t, err)
	require.NotNil(t, link.Surcharge)
	assert.Equal(t, 75.0, *link.Surcharge)
	require.NotNil(t, link.Motorcycle)
	assert.Equal(t, bike.Model, link.Motorcycle.Model)
	assert.Zero(t, c.Len())

	stored := f.tours.links[tour.ID]
	require.Len(t, stored, 1)
	assert.Equal(t, bike.ID, stored[0].MotorcycleID)
	assert.Equal(t, 75.0, *stored[0].Surcharge)

	detail, err := svc.GetByID(ctx, tour.ID.String())
	require.NoError(t, err)
	require.Len(t, detail.Motorcycles, 1)
}

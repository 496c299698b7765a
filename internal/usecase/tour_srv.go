package usecase

import (
	"context"
	"errors"
	"time"

	"moto-tours/internal/data/entity"
	"moto-tours/internal/data/filter"
	"moto-tours/internal/data/repository"
	"moto-tours/internal/dto/request"
	"moto-tours/internal/dto/response"
	"moto-tours/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const tourCachePrefix = "tours:"

type TourService interface {
	// Public
	ListPublished(ctx context.Context, params filter.TourParams) ([]response.TourResponse, error)
	GetByID(ctx context.Context, id string) (*response.TourDetailResponse, error)

	// Admin / guide
	ListAll(ctx context.Context) ([]response.TourResponse, error)
	Create(ctx context.Context, req *request.TourRequest) (*response.TourResponse, error)
	Update(ctx context.Context, id string, req *request.TourRequest) (*response.TourResponse, error)
	Delete(ctx context.Context, id string) error
	AddSchedule(ctx context.Context, tourID string, req *request.ScheduleRequest) (*response.ScheduleResponse, error)
	AddMotorcycle(ctx context.Context, tourID string, req *request.TourMotorcycleRequest) (*response.TourMotorcycleResponse, error)
}

type tourService struct {
	repo  *repository.Repository
	cache cache.Cache
	now   func() time.Time
	log   *zap.Logger
}

func NewTourService(repo *repository.Repository, c cache.Cache, log *zap.Logger) TourService {
	return &tourService{
		repo:  repo,
		cache: c,
		now:   time.Now,
		log:   log.With(zap.String("service", "tour")),
	}
}

func (s *tourService) ListPublished(ctx context.Context, params filter.TourParams) ([]response.TourResponse, error) {
	now := s.now()
	key := tourCachePrefix + "list:" + params.Key(now)

	var cached []response.TourResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("Tour listing cache read failed", zap.Error(err))
	}

	tours, err := s.repo.Tour.Find(ctx, filter.TourPredicate(params, now))
	if err != nil {
		return nil, err
	}
	if err := s.attachListingData(ctx, tours); err != nil {
		return nil, err
	}

	result := response.ToursToResponse(tours)
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.log.Warn("Tour listing cache write failed", zap.Error(err))
	}

	return result, nil
}

func (s *tourService) ListAll(ctx context.Context) ([]response.TourResponse, error) {
	tours, err := s.repo.Tour.Find(ctx, filter.Predicate[*entity.Tour]{})
	if err != nil {
		return nil, err
	}
	if err := s.attachListingData(ctx, tours); err != nil {
		return nil, err
	}

	return response.ToursToResponse(tours), nil
}

// attachListingData loads schedules and motorcycle links for all tours with two batched queries.
func (s *tourService) attachListingData(ctx context.Context, tours []*entity.Tour) error {
	if len(tours) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(tours))
	for _, t := range tours {
		ids = append(ids, t.ID)
	}

	var schedules map[uuid.UUID][]*entity.TourSchedule
	var motorcycles map[uuid.UUID][]*entity.TourMotorcycle

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		schedules, err = s.repo.Schedule.FindByTourIDs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		motorcycles, err = s.repo.Tour.FindMotorcycles(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for _, t := range tours {
		t.Schedules = schedules[t.ID]
		t.Motorcycles = motorcycles[t.ID]
	}
	return nil
}

func (s *tourService) GetByID(ctx context.Context, id string) (*response.TourDetailResponse, error) {
	tourID, err := uuid.Parse(id)
	if err != nil {
		return nil, newError(ErrValidation, "invalid tour ID format %s", id)
	}

	key := tourCachePrefix + "detail:" + tourID.String()
	var cached response.TourDetailResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("Tour detail cache read failed", zap.Error(err))
	}

	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, newError(ErrNotFound, "tour %s not found", id)
	}

	ids := []uuid.UUID{tourID}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		schedules, err := s.repo.Schedule.FindByTourIDs(gctx, ids)
		tour.Schedules = schedules[tourID]
		return err
	})
	g.Go(func() error {
		links, err := s.repo.Tour.FindMotorcycles(gctx, ids)
		tour.Motorcycles = links[tourID]
		return err
	})
	g.Go(func() error {
		var err error
		tour.Accommodations, err = s.repo.Tour.FindAccommodations(gctx, tourID)
		return err
	})
	g.Go(func() error {
		var err error
		tour.Itinerary, err = s.repo.Tour.FindItinerary(gctx, tourID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := response.TourToDetailResponse(tour)
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.log.Warn("Tour detail cache write failed", zap.Error(err))
	}

	return &result, nil
}

func (s *tourService) Create(ctx context.Context, req *request.TourRequest) (*response.TourResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create tour validation failed", zap.Error(err))
		return nil, err
	}

	tour := &entity.Tour{Base: entity.NewBase(s.now())}
	applyTourRequest(tour, req)

	if err := s.repo.Tour.Create(ctx, tour); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.log.Info("Tour created", zap.String("tour_id", tour.ID.String()), zap.String("name", tour.Name))

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) Update(ctx context.Context, id string, req *request.TourRequest) (*response.TourResponse, error) {
	tourID, err := uuid.Parse(id)
	if err != nil {
		return nil, newError(ErrValidation, "invalid tour ID format %s", id)
	}
	if err := validate(req); err != nil {
		s.log.Warn("Update tour validation failed", zap.Error(err))
		return nil, err
	}

	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, newError(ErrNotFound, "tour %s not found", id)
	}

	applyTourRequest(tour, req)
	tour.UpdatedAt = s.now()

	updated, err := s.repo.Tour.Update(ctx, tour)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, newError(ErrNotFound, "tour %s not found", id)
	}
	s.invalidate(ctx)

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) Delete(ctx context.Context, id string) error {
	tourID, err := uuid.Parse(id)
	if err != nil {
		return newError(ErrValidation, "invalid tour ID format %s", id)
	}

	deleted, err := s.repo.Tour.Delete(ctx, tourID)
	if errors.Is(err, repository.ErrTourHasBookings) {
		return newError(ErrConflict, "tour %s has bookings and cannot be deleted", id)
	}
	if err != nil {
		return err
	}
	if !deleted {
		return newError(ErrNotFound, "tour %s not found", id)
	}
	s.invalidate(ctx)

	return nil
}

func (s *tourService) AddSchedule(ctx context.Context, tourID string, req *request.ScheduleRequest) (*response.ScheduleResponse, error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid tour ID format %s", tourID)
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, newError(ErrNotFound, "tour %s not found", tourID)
	}
	if req.AvailableSpots > tour.MaxParticipants {
		return nil, validationFailed(map[string]string{
			"AvailableSpots": "Must be at most the tour's maximum participants",
		})
	}

	schedule := &entity.TourSchedule{
		Base:           entity.NewBase(s.now()),
		TourID:         id,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Price:          req.Price,
		AvailableSpots: req.AvailableSpots,
		Status:         entity.ScheduleStatusOpen,
	}
	if schedule.AvailableSpots == 0 {
		schedule.Status = entity.ScheduleStatusFull
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	resp := response.ScheduleToResponse(schedule)
	return &resp, nil
}

func (s *tourService) AddMotorcycle(ctx context.Context, tourID string, req *request.TourMotorcycleRequest) (*response.TourMotorcycleResponse, error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid tour ID format %s", tourID)
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	motorcycleID, _ := uuid.Parse(req.MotorcycleID)

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, newError(ErrNotFound, "tour %s not found", tourID)
	}

	motorcycle, err := s.repo.Motorcycle.FindByID(ctx, motorcycleID)
	if err != nil {
		return nil, err
	}
	if motorcycle == nil {
		return nil, newError(ErrNotFound, "motorcycle %s not found", req.MotorcycleID)
	}

	now := s.now()
	link := &entity.TourMotorcycle{
		BaseSimple:   entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		TourID:       id,
		MotorcycleID: motorcycleID,
		Surcharge:    req.Surcharge,
		Motorcycle:   motorcycle,
	}
	if err := s.repo.Tour.AddMotorcycle(ctx, link); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	resp := response.TourMotorcycleToResponse(link)
	return &resp, nil
}

func (s *tourService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, tourCachePrefix); err != nil {
		s.log.Warn("Tour cache invalidation failed", zap.Error(err))
	}
}

func applyTourRequest(tour *entity.Tour, req *request.TourRequest) {
	difficulty, _ := entity.ParseDifficulty(req.Difficulty)

	tour.Name = req.Name
	tour.Description = req.Description
	tour.Difficulty = difficulty
	tour.Duration = req.Duration
	tour.Distance = req.Distance
	tour.StartLocation = req.StartLocation
	tour.EndLocation = req.EndLocation
	tour.MaxParticipants = req.MaxParticipants
	tour.BasePrice = req.BasePrice
	tour.Published = req.Published
	tour.Highlights = orEmpty(req.Highlights)
	tour.Inclusions = orEmpty(req.Inclusions)
	tour.Exclusions = orEmpty(req.Exclusions)
	tour.Images = orEmpty(req.Images)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"moto-tours/internal/data/entity"
	"moto-tours/internal/data/repository"
	"moto-tours/internal/dto/request"
	"moto-tours/internal/dto/response"
	"moto-tours/pkg/cache"
	"moto-tours/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Authenticated user
	ListForUser(ctx context.Context, userID uuid.UUID, status, sortBy string) ([]response.BookingSummaryResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// Admin
	ListAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingSummaryResponse], error)
	GetByID(ctx context.Context, id string) (*response.BookingResponse, error)
	UpdateStatus(ctx context.Context, id string, req *request.BookingStatusRequest) error
}

type bookingService struct {
	repo  *repository.Repository
	cache cache.Cache
	now   func() time.Time
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, c cache.Cache, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		cache: c,
		now:   time.Now,
		log:   log.With(zap.String("service", "booking")),
	}
}

// ListForUser filters by exact status unless status is empty or "all"; an unknown status matches nothing.
func (s *bookingService) ListForUser(ctx context.Context, userID uuid.UUID, status, sortBy string) ([]response.BookingSummaryResponse, error) {
	var statusFilter *entity.BookingStatus
	if status = strings.TrimSpace(status); status != "" && !strings.EqualFold(status, "all") {
		st, ok := entity.ParseBookingStatus(status)
		if !ok {
			return []response.BookingSummaryResponse{}, nil
		}
		statusFilter = &st
	}

	summaries, err := s.repo.Booking.FindSummariesByUser(ctx, userID, statusFilter, repository.ParseBookingSort(sortBy))
	if err != nil {
		return nil, err
	}

	return response.BookingSummariesToResponse(summaries), nil
}

func (s *bookingService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}
	if len(req.AdditionalRiders) != req.Participants-1 {
		return nil, validationFailed(map[string]string{
			"AdditionalRiders": "Must contain one entry per participant besides the primary contact",
		})
	}

	tourID, _ := uuid.Parse(req.TourID)
	scheduleID, _ := uuid.Parse(req.ScheduleID)

	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if tour == nil || !tour.Published {
		return nil, newError(ErrNotFound, "tour %s not found", req.TourID)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil || schedule.TourID != tour.ID {
		return nil, newError(ErrNotFound, "schedule %s not found for tour %s", req.ScheduleID, req.TourID)
	}
	if schedule.Status != entity.ScheduleStatusOpen {
		return nil, newError(ErrConflict, "schedule %s is not open for booking", req.ScheduleID)
	}
	if req.Participants > schedule.AvailableSpots {
		return nil, newError(ErrConflict, "not enough spots: %d requested, %d available",
			req.Participants, schedule.AvailableSpots)
	}

	now := s.now()
	booking := &entity.Booking{
		Base:         entity.NewBase(now),
		Reference:    utils.GenerateBookingReference(now),
		UserID:       userID,
		TourID:       tour.ID,
		ScheduleID:   schedule.ID,
		Participants: req.Participants,
		TotalPrice:   schedule.EffectivePrice(tour.BasePrice) * float64(req.Participants),
		Status:       entity.BookingStatusPending,
	}

	riders := append([]request.RiderRequest{req.PrimaryContact}, req.AdditionalRiders...)
	for i, r := range riders {
		booking.Riders = append(booking.Riders, &entity.BookingRider{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			BookingID:  booking.ID,
			Position:   i,
			FirstName:  strings.TrimSpace(r.FirstName),
			LastName:   strings.TrimSpace(r.LastName),
			Email:      strings.TrimSpace(r.Email),
			Phone:      strings.TrimSpace(r.Phone),
		})
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrNotEnoughSpots) {
			return nil, newError(ErrConflict, "not enough spots left on schedule %s", req.ScheduleID)
		}
		return nil, err
	}

	// Cached tour listings and details carry the schedule's spots and status.
	if err := s.cache.DeletePrefix(ctx, tourCachePrefix); err != nil {
		s.log.Warn("Tour cache invalidation failed", zap.Error(err))
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("user_id", userID.String()),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingSummaryResponse], error) {
	summaries, err := s.repo.Booking.FindSummaries(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.BookingSummariesToResponse(summaries), req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*response.BookingResponse, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, newError(ErrValidation, "invalid booking ID format %s", id)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "booking %s not found", id)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id string, req *request.BookingStatusRequest) error {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return newError(ErrValidation, "invalid booking ID format %s", id)
	}
	if err := validate(req); err != nil {
		return err
	}

	status, _ := entity.ParseBookingStatus(req.Status)
	updated, err := s.repo.Booking.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return err
	}
	if !updated {
		return newError(ErrNotFound, "booking %s not found", id)
	}

	s.log.Info("Booking status updated", zap.String("booking_id", id), zap.String("status", string(status)))
	return nil
}

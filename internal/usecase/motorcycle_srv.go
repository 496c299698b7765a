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
)

const motorcycleCachePrefix = "motorcycles:"

type MotorcycleService interface {
	List(ctx context.Context, params filter.MotorcycleParams) ([]response.MotorcycleResponse, error)
	GetByID(ctx context.Context, id string) (*response.MotorcycleResponse, error)
	Create(ctx context.Context, req *request.MotorcycleRequest) (*response.MotorcycleResponse, error)
}

type motorcycleService struct {
	motorcycles repository.MotorcycleRepository
	cache       cache.Cache
	log         *zap.Logger
}

func NewMotorcycleService(motorcycles repository.MotorcycleRepository, c cache.Cache, log *zap.Logger) MotorcycleService {
	return &motorcycleService{
		motorcycles: motorcycles,
		cache:       c,
		log:         log.With(zap.String("service", "motorcycle")),
	}
}

func (s *motorcycleService) List(ctx context.Context, params filter.MotorcycleParams) ([]response.MotorcycleResponse, error) {
	key := motorcycleCachePrefix + "list:" + params.Key()

	var cached []response.MotorcycleResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("Motorcycle listing cache read failed", zap.Error(err))
	}

	motorcycles, err := s.motorcycles.Find(ctx, filter.MotorcyclePredicate(params))
	if err != nil {
		return nil, err
	}

	result := response.MotorcyclesToResponse(motorcycles)
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.log.Warn("Motorcycle listing cache write failed", zap.Error(err))
	}

	return result, nil
}

func (s *motorcycleService) GetByID(ctx context.Context, id string) (*response.MotorcycleResponse, error) {
	motorcycleID, err := uuid.Parse(id)
	if err != nil {
		return nil, newError(ErrValidation, "invalid motorcycle ID format %s", id)
	}

	m, err := s.motorcycles.FindByID(ctx, motorcycleID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, newError(ErrNotFound, "motorcycle %s not found", id)
	}

	resp := response.MotorcycleToResponse(m)
	return &resp, nil
}

func (s *motorcycleService) Create(ctx context.Context, req *request.MotorcycleRequest) (*response.MotorcycleResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create motorcycle validation failed", zap.Error(err))
		return nil, err
	}

	motorcycleType, _ := entity.ParseMotorcycleType(req.Type)
	m := &entity.Motorcycle{
		Base:        entity.NewBase(time.Now()),
		Make:        req.Make,
		Model:       req.Model,
		Type:        motorcycleType,
		EngineSize:  req.EngineSize,
		PricePerDay: req.PricePerDay,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	if err := s.motorcycles.Create(ctx, m); err != nil {
		return nil, err
	}
	if err := s.cache.DeletePrefix(ctx, motorcycleCachePrefix); err != nil {
		s.log.Warn("Motorcycle cache invalidation failed", zap.Error(err))
	}

	s.log.Info("Motorcycle created", zap.String("motorcycle_id", m.ID.String()), zap.String("name", m.Name()))

	resp := response.MotorcycleToResponse(m)
	return &resp, nil
}

package usecase

import (
	"moto-tours/internal/data/repository"
	"moto-tours/pkg/cache"
	"moto-tours/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Tour       TourService
	Motorcycle MotorcycleService
	Booking    BookingService
	Dashboard  DashboardService
}

func NewService(repo *repository.Repository, c cache.Cache, tokens *utils.SessionTokens, provider IdentityProvider, log *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(repo.User, provider, tokens, log),
		User:       NewUserService(repo.User, log),
		Tour:       NewTourService(repo, c, log),
		Motorcycle: NewMotorcycleService(repo.Motorcycle, c, log),
		Booking:    NewBookingService(repo, c, log),
		Dashboard:  NewDashboardService(repo, log),
	}
}

package usecase

import (
	"context"

	"moto-tours/internal/data/entity"
	"moto-tours/internal/data/repository"
	"moto-tours/internal/dto/request"
	"moto-tours/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	UpdateRole(ctx context.Context, actorID uuid.UUID, userID string, req *request.RoleRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, actorID uuid.UUID, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, newError(ErrNotFound, "user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, response.UserToResponse(u))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

// UpdateRole changes another user's role; admins cannot change their own.
func (us *userService) UpdateRole(ctx context.Context, actorID uuid.UUID, userID string, req *request.RoleRequest) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid user ID format %s", userID)
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	if id == actorID {
		return nil, newError(ErrForbidden, "forbidden: cannot change your own role")
	}

	role, _ := entity.ParseRole(req.Role)
	updated, err := us.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, newError(ErrNotFound, "user %s not found", userID)
	}

	us.log.Info("User role updated",
		zap.String("user_id", userID),
		zap.String("role", string(role)),
		zap.String("by", actorID.String()),
	)

	return us.GetProfile(ctx, id)
}

func (us *userService) DeleteUser(ctx context.Context, actorID uuid.UUID, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return newError(ErrValidation, "invalid user ID format %s", userID)
	}
	if id == actorID {
		return newError(ErrForbidden, "forbidden: cannot delete your own account")
	}

	deleted, err := us.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return newError(ErrNotFound, "user %s not found", userID)
	}

	return nil
}

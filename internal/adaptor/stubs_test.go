package adaptor

import (
	"context"

	"moto-tours/internal/data/filter"
	"moto-tours/internal/dto/request"
	"moto-tours/internal/dto/response"
	"moto-tours/internal/usecase"
	"moto-tours/pkg/utils"

	"github.com/google/uuid"
)

// stubTourService records the last listing params and returns canned values.
type stubTourService struct {
	usecase.TourService
	params filter.TourParams
	tours  []response.TourResponse
	err    error
}

func (s *stubTourService) ListPublished(_ context.Context, params filter.TourParams) ([]response.TourResponse, error) {
	s.params = params
	return s.tours, s.err
}

func (s *stubTourService) GetByID(_ context.Context, id string) (*response.TourDetailResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response.TourDetailResponse{TourResponse: response.TourResponse{ID: id}}, nil
}

type stubBookingService struct {
	usecase.BookingService
	userID         uuid.UUID
	status, sortBy string
	created        *request.CreateBookingRequest
	err            error
}

func (s *stubBookingService) ListForUser(_ context.Context, userID uuid.UUID, status, sortBy string) ([]response.BookingSummaryResponse, error) {
	s.userID, s.status, s.sortBy = userID, status, sortBy
	return []response.BookingSummaryResponse{}, s.err
}

func (s *stubBookingService) Create(_ context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	s.userID = userID
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &response.BookingResponse{ID: uuid.NewString(), Status: "PENDING"}, nil
}

type stubAuthService struct {
	signIn *usecase.SignIn
	err    error
	code   string
}

func (s *stubAuthService) SignInURL() (string, string, error) {
	return "https://accounts.example.com/auth?state=abc", "abc", nil
}

func (s *stubAuthService) CompleteSignIn(_ context.Context, code string) (*usecase.SignIn, error) {
	s.code = code
	return s.signIn, s.err
}

func (s *stubAuthService) Session(claims *utils.SessionClaims) response.SessionResponse {
	if claims == nil {
		return response.SessionResponse{}
	}
	return response.SessionResponse{User: &response.SessionUser{ID: claims.UserID, Role: claims.Role}}
}
